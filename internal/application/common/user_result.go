package common

import (
	"time"

	"listings-service/internal/domain/entities"
)

// UserResult is the public-safe projection of an account. It never carries
// the password hash.
type UserResult struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	FirstName     *string           `json:"firstName,omitempty"`
	LastName      *string           `json:"lastName,omitempty"`
	Role          entities.UserRole `json:"role"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	EmailVerified bool              `json:"emailVerified"`
}
