package common

import (
	"time"

	"listings-service/internal/domain/entities"
)

// PropertyResult is the outward-facing projection of a stored property,
// augmented with the viewer-relative favorite flag.
type PropertyResult struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Type               string               `json:"type"`
	ListingType        entities.ListingType `json:"listingType"`
	Description        *string              `json:"description,omitempty"`
	Price              float64              `json:"price"`
	Location           string               `json:"location"`
	IsAvailable        bool                 `json:"isAvailable"`
	SizeInSquareMeters *float64             `json:"sizeInSquareMeters,omitempty"`
	Images             []string             `json:"images"`
	Amenities          []string             `json:"amenities"`
	PropertyOwnerID    string               `json:"propertyOwnerId"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
	LeaseTerms         *string              `json:"leaseTerms,omitempty"`
	SaleTerms          *string              `json:"saleTerms,omitempty"`
	Rating             *float32             `json:"rating,omitempty"`
	IsFavorited        bool                 `json:"isFavorited"`
}
