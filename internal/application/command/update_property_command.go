package command

import "listings-service/internal/application/common"

// UpdatePropertyCommand carries partial-update semantics: nil fields are left
// untouched.
type UpdatePropertyCommand struct {
	Name               *string   `json:"name,omitempty"`
	Type               *string   `json:"type,omitempty"`
	ListingType        *string   `json:"listingType,omitempty"`
	Description        *string   `json:"description,omitempty"`
	Price              *float64  `json:"price,omitempty"`
	Location           *string   `json:"location,omitempty"`
	IsAvailable        *bool     `json:"isAvailable,omitempty"`
	SizeInSquareMeters *float64  `json:"sizeInSquareMeters,omitempty"`
	Images             *[]string `json:"images,omitempty"`
	Amenities          *[]string `json:"amenities,omitempty"`
	LeaseTerms         *string   `json:"leaseTerms,omitempty"`
	SaleTerms          *string   `json:"saleTerms,omitempty"`
	Rating             *float32  `json:"rating,omitempty"`
}

type UpdatePropertyCommandResult struct {
	Result *common.PropertyResult `json:"result"`
}
