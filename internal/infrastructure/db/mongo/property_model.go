package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"listings-service/internal/domain/entities"
)

type propertyDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	Type               string             `bson:"type"`
	ListingType        string             `bson:"listingType"`
	Description        *string            `bson:"description,omitempty"`
	Price              float64            `bson:"price"`
	Location           string             `bson:"location"`
	IsAvailable        bool               `bson:"isAvailable"`
	SizeInSquareMeters *float64           `bson:"sizeInSquareMeters,omitempty"`
	Images             []string           `bson:"images"`
	Amenities          []string           `bson:"amenities"`
	PropertyOwnerID    string             `bson:"propertyOwnerId"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
	LeaseTerms         *string            `bson:"leaseTerms,omitempty"`
	SaleTerms          *string            `bson:"saleTerms,omitempty"`
	Rating             *float32           `bson:"rating,omitempty"`
}

func newPropertyDoc(property *entities.Property) (*propertyDoc, error) {
	doc := &propertyDoc{
		Name:               property.Name,
		Type:               property.Type,
		ListingType:        string(property.ListingType),
		Description:        property.Description,
		Price:              property.Price,
		Location:           property.Location,
		IsAvailable:        property.IsAvailable,
		SizeInSquareMeters: property.SizeInSquareMeters,
		Images:             property.Images,
		Amenities:          property.Amenities,
		PropertyOwnerID:    property.PropertyOwnerID,
		CreatedAt:          property.CreatedAt,
		UpdatedAt:          property.UpdatedAt,
		LeaseTerms:         property.LeaseTerms,
		SaleTerms:          property.SaleTerms,
		Rating:             property.Rating,
	}

	if property.ID != "" {
		oid, err := primitive.ObjectIDFromHex(property.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *propertyDoc) toEntity() *entities.Property {
	return &entities.Property{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Type:               d.Type,
		ListingType:        entities.ListingType(d.ListingType),
		Description:        d.Description,
		Price:              d.Price,
		Location:           d.Location,
		IsAvailable:        d.IsAvailable,
		SizeInSquareMeters: d.SizeInSquareMeters,
		Images:             d.Images,
		Amenities:          d.Amenities,
		PropertyOwnerID:    d.PropertyOwnerID,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		LeaseTerms:         d.LeaseTerms,
		SaleTerms:          d.SaleTerms,
		Rating:             d.Rating,
	}
}
