package query

import "listings-service/internal/application/common"

// PropertyListQuery carries the composable filter plus 1-based pagination.
// Nil filter fields are not applied.
type PropertyListQuery struct {
	Type            *string  `json:"type,omitempty"`
	ListingType     *string  `json:"listingType,omitempty"`
	Location        *string  `json:"location,omitempty"`
	MinPrice        *float64 `json:"minPrice,omitempty"`
	MaxPrice        *float64 `json:"maxPrice,omitempty"`
	MinSize         *float64 `json:"minSize,omitempty"`
	MaxSize         *float64 `json:"maxSize,omitempty"`
	IsAvailable     *bool    `json:"isAvailable,omitempty"`
	Amenities       []string `json:"amenities,omitempty"`
	PropertyOwnerID *string  `json:"ownerId,omitempty"`
	Page            int      `json:"page"`
	PageSize        int      `json:"pageSize"`
}

type PropertySearchQuery struct {
	Query    string `json:"q"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type PropertyQueryResult struct {
	Result *common.PropertyResult `json:"result"`
}

type PropertyListQueryResult struct {
	Result []*common.PropertyResult `json:"result"`
}
