package service

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("user with this email already exists")

	ErrGigNotFound = errors.New("gig not found")
	ErrBidNotFound = errors.New("bid not found")

	ErrNotGigOwner   = errors.New("caller is not the gig owner")
	ErrNoAccessToBid = errors.New("caller is neither the bid's freelancer nor the gig owner")

	ErrGigNotOpen   = errors.New("gig is not open")
	ErrOwnGigBid    = errors.New("attempt to bid on caller's own gig")
	ErrDuplicateBid = errors.New("a bid from this freelancer on this gig already exists")

	// Terminal hire conflicts: a legitimate lost race, reported immediately.
	ErrGigAlreadyAssigned = errors.New("gig already assigned")
	ErrBidNotAvailable    = errors.New("bid no longer available")

	// Transient retry budget exhausted during a hire.
	ErrHireContention = errors.New("hire could not complete due to contention, try again")
)
