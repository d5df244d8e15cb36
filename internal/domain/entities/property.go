package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ListingType classifies how a property is offered on the market.
type ListingType string

const (
	ListingForRent ListingType = "FOR_RENT"
	ListingForSale ListingType = "FOR_SALE"
)

func ParseListingType(s string) (ListingType, error) {
	switch lt := ListingType(s); lt {
	case ListingForRent, ListingForSale:
		return lt, nil
	default:
		return "", fmt.Errorf("unknown listing type %q", s)
	}
}

type Property struct {
	ID                 string
	Name               string
	Type               string
	ListingType        ListingType
	Description        *string
	Price              float64
	Location           string
	IsAvailable        bool
	SizeInSquareMeters *float64
	Images             []string
	Amenities          []string
	PropertyOwnerID    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	LeaseTerms         *string
	SaleTerms          *string
	Rating             *float32
}

func NewProperty(name, propertyType string, listingType ListingType, price float64, location, ownerID string) *Property {
	now := time.Now().UTC()
	return &Property{
		Name:            name,
		Type:            propertyType,
		ListingType:     listingType,
		Price:           price,
		Location:        location,
		IsAvailable:     true,
		Images:          make([]string, 0),
		Amenities:       make([]string, 0),
		PropertyOwnerID: ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (p *Property) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("property name must not be empty")
	}
	if strings.TrimSpace(p.Type) == "" {
		return errors.New("property type must not be empty")
	}
	if _, err := ParseListingType(string(p.ListingType)); err != nil {
		return err
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	if strings.TrimSpace(p.Location) == "" {
		return errors.New("location must not be empty")
	}
	if p.SizeInSquareMeters != nil && *p.SizeInSquareMeters <= 0 {
		return errors.New("size must be positive")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return errors.New("rating must be between 0 and 5")
	}
	if p.PropertyOwnerID == "" {
		return errors.New("property owner id must not be empty")
	}
	if p.CreatedAt.After(p.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}

func (p *Property) SetAvailability(available bool) {
	p.IsAvailable = available
	p.UpdatedAt = time.Now().UTC()
}
