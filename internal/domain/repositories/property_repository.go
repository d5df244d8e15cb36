package repositories

import (
	"context"

	"listings-service/internal/domain/entities"
)

// PropertyFilter is a conjunction of predicates; nil fields are not applied.
type PropertyFilter struct {
	Type            *string
	ListingType     *entities.ListingType
	Location        *string
	MinPrice        *float64
	MaxPrice        *float64
	MinSize         *float64
	MaxSize         *float64
	IsAvailable     *bool
	Amenities       []string
	PropertyOwnerID *string
}

// FieldChange assigns a new value to a named field, or removes the field
// entirely when Value is nil.
type FieldChange struct {
	Field string
	Value any
}

// PropertyChanges is a sparse, ordered set of field updates built from only
// the fields present in a request.
type PropertyChanges struct {
	changes []FieldChange
}

func (c *PropertyChanges) Set(field string, value any) {
	c.changes = append(c.changes, FieldChange{Field: field, Value: value})
}

func (c *PropertyChanges) Unset(field string) {
	c.changes = append(c.changes, FieldChange{Field: field})
}

func (c *PropertyChanges) Empty() bool {
	return len(c.changes) == 0
}

func (c *PropertyChanges) Fields() []FieldChange {
	return c.changes
}

type PropertyRepository interface {
	// Create persists a new property. Returns (nil, nil) when the write was
	// not acknowledged.
	Create(ctx context.Context, property *entities.ValidatedProperty) (*entities.Property, error)
	// FindByID returns (nil, nil) for absent or malformed ids.
	FindByID(ctx context.Context, id string) (*entities.Property, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*entities.Property, error)
	// FindByIDs skips malformed ids and returns the existing subset;
	// empty input yields an empty result without a store round-trip.
	FindByIDs(ctx context.Context, ids []string) ([]*entities.Property, error)
	// FindAll returns one page of matches plus the total count across all pages.
	FindAll(ctx context.Context, filter *PropertyFilter, page, pageSize int) ([]*entities.Property, int64, error)
	// Update applies the sparse changes and stamps updatedAt. An empty change
	// set returns the current record untouched. Returns (nil, nil) when absent.
	Update(ctx context.Context, id string, changes *PropertyChanges) (*entities.Property, error)
	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
	// SetAvailability atomically sets the flag and stamps updatedAt. Reports
	// false when no record matched or the value was already set.
	SetAvailability(ctx context.Context, id string, available bool) (bool, error)
	// Search matches the query as a case-insensitive substring of name,
	// description, location or type.
	Search(ctx context.Context, query string, page, pageSize int) ([]*entities.Property, int64, error)
}
