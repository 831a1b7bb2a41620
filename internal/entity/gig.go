package entity

import (
	"github.com/google/uuid"
)

// db model
type Gig struct {
	Id          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Budget      float64   `json:"budget" db:"budget"`
	Status      string    `json:"status" db:"status"`
	OwnerId     uuid.UUID `json:"ownerId" db:"owner_id"`
	HiredBy     string    `json:"hiredBy" db:"hired_by"`
	HiredAt     string    `json:"hiredAt" db:"hired_at"`
	CreatedAt   string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateGigInput struct {
	Title       string  // given
	Description string  // given
	Budget      float64 // given
	OwnerId     string  // given
	Status      string  // should be set: "open"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

type UpdateGigInput struct {
	Title       string
	Description string
	Budget      float64
}

// controller model
type GigOutputModel struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	Status      string  `json:"status"`
	OwnerId     string  `json:"ownerId"`
	HiredBy     string  `json:"hiredBy,omitempty"`
	HiredAt     string  `json:"hiredAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}
