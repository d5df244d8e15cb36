package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"listings-service/internal/domain/entities"
	"listings-service/internal/domain/repositories"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func ltPtr(lt entities.ListingType) *entities.ListingType { return &lt }

func TestBuildPropertyFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildPropertyFilter(nil))
	assert.Equal(t, bson.M{}, buildPropertyFilter(&repositories.PropertyFilter{}))
}

func TestBuildPropertyFilterEqualityPredicates(t *testing.T) {
	query := buildPropertyFilter(&repositories.PropertyFilter{
		Type:            strPtr("apartment"),
		ListingType:     ltPtr(entities.ListingForRent),
		IsAvailable:     boolPtr(true),
		PropertyOwnerID: strPtr("owner-1"),
	})

	assert.Equal(t, "apartment", query["type"])
	assert.Equal(t, "FOR_RENT", query["listingType"])
	assert.Equal(t, true, query["isAvailable"])
	assert.Equal(t, "owner-1", query["propertyOwnerId"])
}

func TestBuildPropertyFilterLocationIsSubstringMatch(t *testing.T) {
	query := buildPropertyFilter(&repositories.PropertyFilter{
		Location: strPtr("lis(bon)"),
	})

	pattern, ok := query["location"].(primitive.Regex)
	require.True(t, ok)
	// Regex metacharacters in user input are matched literally.
	assert.Equal(t, `lis\(bon\)`, pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestBuildPropertyFilterMergesRangeBounds(t *testing.T) {
	query := buildPropertyFilter(&repositories.PropertyFilter{
		MinPrice: f64Ptr(500),
		MaxPrice: f64Ptr(2000),
		MinSize:  f64Ptr(40),
		MaxSize:  f64Ptr(120),
	})

	assert.Equal(t, bson.M{"$gte": 500.0, "$lte": 2000.0}, query["price"])
	assert.Equal(t, bson.M{"$gte": 40.0, "$lte": 120.0}, query["sizeInSquareMeters"])
}

func TestBuildPropertyFilterSingleBound(t *testing.T) {
	query := buildPropertyFilter(&repositories.PropertyFilter{
		MaxPrice: f64Ptr(2000),
	})

	assert.Equal(t, bson.M{"$lte": 2000.0}, query["price"])
}

func TestBuildPropertyFilterAmenitiesRequireAll(t *testing.T) {
	query := buildPropertyFilter(&repositories.PropertyFilter{
		Amenities: []string{"pool", "garage"},
	})

	assert.Equal(t, bson.M{"$all": []string{"pool", "garage"}}, query["amenities"])
}

func TestPropertyDocRoundTripKeepsOptionalFields(t *testing.T) {
	size := 85.5
	property := entities.NewProperty("Flat", "apartment", entities.ListingForRent, 1200, "Lisbon", "owner-1")
	property.SizeInSquareMeters = &size
	property.Amenities = []string{"pool"}

	doc, err := newPropertyDoc(property)
	require.NoError(t, err)
	doc.ID = primitive.NewObjectID()

	restored := doc.toEntity()
	assert.Equal(t, doc.ID.Hex(), restored.ID)
	assert.Equal(t, property.Name, restored.Name)
	assert.Equal(t, property.ListingType, restored.ListingType)
	require.NotNil(t, restored.SizeInSquareMeters)
	assert.Equal(t, size, *restored.SizeInSquareMeters)
	assert.Nil(t, restored.Description)
}

func TestNewPropertyDocRejectsMalformedID(t *testing.T) {
	property := entities.NewProperty("Flat", "apartment", entities.ListingForRent, 1200, "Lisbon", "owner-1")
	property.ID = "not-an-object-id"

	_, err := newPropertyDoc(property)
	assert.Error(t, err)
}
