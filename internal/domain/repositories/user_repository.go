package repositories

import (
	"context"
	"errors"

	"listings-service/internal/domain/entities"
)

// ErrDuplicateEmail is returned by Create when another account already uses
// the email, whether caught by the pre-insert check or the unique index.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicateEmail on an email
	// collision and (nil, nil) when the write was not acknowledged.
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	// FindByEmail looks a user up by case-insensitive email; (nil, nil) when absent.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// FindByID returns (nil, nil) for absent or malformed ids.
	FindByID(ctx context.Context, id string) (*entities.User, error)
	// AddFavorite adds the property to the user's favorites with set
	// semantics. Reports false when nothing was modified.
	AddFavorite(ctx context.Context, userID, propertyID string) (bool, error)
	RemoveFavorite(ctx context.Context, userID, propertyID string) (bool, error)
	// GetFavoriteIDs returns an empty list when the user is absent.
	GetFavoriteIDs(ctx context.Context, userID string) ([]string, error)
	SetEmailVerified(ctx context.Context, userID string) (bool, error)
}
