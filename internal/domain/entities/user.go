package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UserRole defines what an account is allowed to do.
type UserRole string

const (
	RoleBuyerRent     UserRole = "BUYER_RENT"
	RolePropertyOwner UserRole = "PROPERTY_OWNER"
	RoleAdmin         UserRole = "ADMIN"
)

func ParseUserRole(s string) (UserRole, error) {
	switch r := UserRole(s); r {
	case RoleBuyerRent, RolePropertyOwner, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown user role %q", s)
	}
}

type User struct {
	ID                  string
	Email               string
	PasswordHash        string
	FirstName           *string
	LastName            *string
	Role                UserRole
	FavoritePropertyIDs []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	IsActive            bool
	EmailVerified       bool
	PhoneNumber         *string
	ProfilePictureURL   *string
}

func NewUser(email, passwordHash string, role UserRole) *User {
	now := time.Now().UTC()
	return &User{
		Email:               strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:        passwordHash,
		Role:                role,
		FavoritePropertyIDs: make([]string, 0),
		CreatedAt:           now,
		UpdatedAt:           now,
		IsActive:            true,
		EmailVerified:       false,
	}
}

func (u *User) validate() error {
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("email is not valid")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash must not be empty")
	}
	if _, err := ParseUserRole(string(u.Role)); err != nil {
		return err
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}

func (u *User) MarkAsVerified() {
	u.EmailVerified = true
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
}

// IsFavorite reports whether the property id is in the user's favorites.
func (u *User) IsFavorite(propertyID string) bool {
	for _, id := range u.FavoritePropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}
