package model

import (
	"time"

	"github.com/google/uuid"
)

// UserAccount is the top-level identity record, keyed by email. Accounts are
// created once at first contact-form submission and never updated by this
// flow. Email uniqueness is enforced by the lookup-before-create resolution
// logic, not by a store constraint.
type UserAccount struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest carries the contact form.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
}
