package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"listings-service/internal/domain/entities"
	"listings-service/internal/domain/repositories"
)

const propertiesCollection = "properties"

type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) repositories.PropertyRepository {
	return &PropertyRepository{
		collection: db.Collection(propertiesCollection),
	}
}

func (r *PropertyRepository) Create(ctx context.Context, property *entities.ValidatedProperty) (*entities.Property, error) {
	doc, err := newPropertyDoc(property.GetProperty())
	if err != nil {
		return nil, fmt.Errorf("failed to build property document: %w", err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	// Read back to confirm the write was acknowledged.
	return r.FindByID(ctx, doc.ID.Hex())
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*entities.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id is indistinguishable from "not found" here.
		return nil, nil
	}

	var doc propertyDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *PropertyRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*entities.Property, error) {
	return r.findMany(ctx, bson.M{"propertyOwnerId": ownerID}, nil)
}

func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.Property, error) {
	if len(ids) == 0 {
		return []*entities.Property{}, nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*entities.Property{}, nil
	}

	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

func (r *PropertyRepository) FindAll(ctx context.Context, filter *repositories.PropertyFilter, page, pageSize int) ([]*entities.Property, int64, error) {
	return r.findPage(ctx, buildPropertyFilter(filter), page, pageSize)
}

func (r *PropertyRepository) Update(ctx context.Context, id string, changes *repositories.PropertyChanges) (*entities.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	if changes == nil || changes.Empty() {
		return r.FindByID(ctx, id)
	}

	set := bson.M{}
	unset := bson.M{}
	for _, change := range changes.Fields() {
		// Identifier fields are never updatable through this path.
		if change.Field == "id" || change.Field == "_id" {
			continue
		}
		if change.Value == nil {
			unset[change.Field] = ""
		} else {
			set[change.Field] = change.Value
		}
	}
	set["updatedAt"] = time.Now().UTC()

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc propertyDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete property: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *PropertyRepository) SetAvailability(ctx context.Context, id string, available bool) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"isAvailable": available,
			"updatedAt":   time.Now().UTC(),
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to update availability: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *PropertyRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*entities.Property, int64, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
		bson.M{"location": pattern},
		bson.M{"type": pattern},
	}}

	return r.findPage(ctx, filter, page, pageSize)
}

// buildPropertyFilter translates the structured filter into a conjunction of
// store predicates; an empty filter matches everything.
func buildPropertyFilter(filter *repositories.PropertyFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}

	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if filter.ListingType != nil {
		query["listingType"] = string(*filter.ListingType)
	}
	if filter.Location != nil {
		query["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Location), Options: "i"}
	}
	if filter.MinPrice != nil {
		query["price"] = bson.M{"$gte": *filter.MinPrice}
	}
	if filter.MaxPrice != nil {
		if existing, ok := query["price"].(bson.M); ok {
			existing["$lte"] = *filter.MaxPrice
		} else {
			query["price"] = bson.M{"$lte": *filter.MaxPrice}
		}
	}
	if filter.MinSize != nil {
		query["sizeInSquareMeters"] = bson.M{"$gte": *filter.MinSize}
	}
	if filter.MaxSize != nil {
		if existing, ok := query["sizeInSquareMeters"].(bson.M); ok {
			existing["$lte"] = *filter.MaxSize
		} else {
			query["sizeInSquareMeters"] = bson.M{"$lte": *filter.MaxSize}
		}
	}
	if filter.IsAvailable != nil {
		query["isAvailable"] = *filter.IsAvailable
	}
	if filter.PropertyOwnerID != nil {
		query["propertyOwnerId"] = *filter.PropertyOwnerID
	}
	if len(filter.Amenities) > 0 {
		// Every listed amenity must be present, not any-of.
		query["amenities"] = bson.M{"$all": filter.Amenities}
	}

	return query
}

func (r *PropertyRepository) findPage(ctx context.Context, filter bson.M, page, pageSize int) ([]*entities.Property, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	skip := int64(page-1) * int64(pageSize)
	opts := options.Find().SetSkip(skip).SetLimit(int64(pageSize))
	properties, err := r.findMany(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *PropertyRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entities.Property, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := make([]*entities.Property, 0)
	for cursor.Next(ctx) {
		var doc propertyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode property: %w", err)
		}
		properties = append(properties, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return properties, nil
}
