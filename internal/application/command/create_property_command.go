package command

import "listings-service/internal/application/common"

type CreatePropertyCommand struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	ListingType        string   `json:"listingType"`
	Description        *string  `json:"description,omitempty"`
	Price              float64  `json:"price"`
	Location           string   `json:"location"`
	SizeInSquareMeters *float64 `json:"sizeInSquareMeters,omitempty"`
	Images             []string `json:"images,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	LeaseTerms         *string  `json:"leaseTerms,omitempty"`
	SaleTerms          *string  `json:"saleTerms,omitempty"`
	// PropertyOwnerID is accepted on the wire but ignored; the owner is
	// always the authenticated caller.
	PropertyOwnerID string `json:"propertyOwnerId,omitempty"`
}

type CreatePropertyCommandResult struct {
	Result *common.PropertyResult `json:"result"`
}
