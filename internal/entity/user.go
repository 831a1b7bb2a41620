package entity

import (
	"github.com/google/uuid"
)

// db model
type User struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type RegisterUserInput struct {
	Name  string // given
	Email string // given
	Role  string // given
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type UserOutputModel struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}
