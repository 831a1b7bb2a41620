package common

// Gig lifecycle. The only legal transition is Open -> Assigned,
// performed exactly once by the hiring coordinator.
const (
	Open     = "open"
	Assigned = "assigned"
)

// Bid lifecycle. Pending bids are resolved to Hired or Rejected by
// the hiring coordinator; at most one bid per gig ever becomes Hired.
const (
	Pending  = "pending"
	Hired    = "hired"
	Rejected = "rejected"
)

// User roles.
const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

// Reason recorded on bids rejected as part of a hire.
const RejectedCompetitorReason = "Another freelancer was hired"
