package mapper

import (
	"listings-service/internal/application/common"
	"listings-service/internal/domain/entities"
)

func NewPropertyResultFromEntity(property *entities.Property, isFavorited bool) *common.PropertyResult {
	images := property.Images
	if images == nil {
		images = make([]string, 0)
	}
	amenities := property.Amenities
	if amenities == nil {
		amenities = make([]string, 0)
	}

	return &common.PropertyResult{
		ID:                 property.ID,
		Name:               property.Name,
		Type:               property.Type,
		ListingType:        property.ListingType,
		Description:        property.Description,
		Price:              property.Price,
		Location:           property.Location,
		IsAvailable:        property.IsAvailable,
		SizeInSquareMeters: property.SizeInSquareMeters,
		Images:             images,
		Amenities:          amenities,
		PropertyOwnerID:    property.PropertyOwnerID,
		CreatedAt:          property.CreatedAt,
		UpdatedAt:          property.UpdatedAt,
		LeaseTerms:         property.LeaseTerms,
		SaleTerms:          property.SaleTerms,
		Rating:             property.Rating,
		IsFavorited:        isFavorited,
	}
}
