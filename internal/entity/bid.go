package entity

import (
	"github.com/google/uuid"
)

// db model
type Bid struct {
	Id             uuid.UUID `json:"id" db:"id"`
	GigId          uuid.UUID `json:"gigId" db:"gig_id"`
	FreelancerId   uuid.UUID `json:"freelancerId" db:"freelancer_id"`
	Message        string    `json:"message" db:"message"`
	Price          float64   `json:"price" db:"price"`
	Status         string    `json:"status" db:"status"`
	RejectedReason string    `json:"rejectedReason" db:"rejected_reason"`
	HiredAt        string    `json:"hiredAt" db:"hired_at"`
	RejectedAt     string    `json:"rejectedAt" db:"rejected_at"`
	CreatedAt      string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBidInput struct {
	GigId        string  // given
	FreelancerId string  // given
	Message      string  // given
	Price        float64 // given
	Status       string  // should be set: "pending"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// filter for bid listings
type BidFilter struct {
	GigId        string
	FreelancerId string
	Status       string
}

// controller model
type BidOutputModel struct {
	Id             string  `json:"id"`
	GigId          string  `json:"gigId"`
	FreelancerId   string  `json:"freelancerId"`
	Message        string  `json:"message"`
	Price          float64 `json:"price"`
	Status         string  `json:"status"`
	RejectedReason string  `json:"rejectedReason,omitempty"`
	HiredAt        string  `json:"hiredAt,omitempty"`
	RejectedAt     string  `json:"rejectedAt,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}
