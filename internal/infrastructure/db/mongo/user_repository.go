package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"listings-service/internal/domain/entities"
	"listings-service/internal/domain/repositories"
)

const usersCollection = "users"

type userDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Email               string             `bson:"email"`
	PasswordHash        string             `bson:"passwordHash"`
	FirstName           *string            `bson:"firstName,omitempty"`
	LastName            *string            `bson:"lastName,omitempty"`
	Role                string             `bson:"role"`
	FavoritePropertyIDs []string           `bson:"favoritePropertyIds"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
	IsActive            bool               `bson:"isActive"`
	EmailVerified       bool               `bson:"emailVerified"`
	PhoneNumber         *string            `bson:"phoneNumber,omitempty"`
	ProfilePictureURL   *string            `bson:"profilePictureUrl,omitempty"`
}

func (d *userDoc) toEntity() *entities.User {
	favorites := d.FavoritePropertyIDs
	if favorites == nil {
		favorites = make([]string, 0)
	}
	return &entities.User{
		ID:                  d.ID.Hex(),
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Role:                entities.UserRole(d.Role),
		FavoritePropertyIDs: favorites,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		IsActive:            d.IsActive,
		EmailVerified:       d.EmailVerified,
		PhoneNumber:         d.PhoneNumber,
		ProfilePictureURL:   d.ProfilePictureURL,
	}
}

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique email index. Call at startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	entity := user.GetUser()

	// Explicit pre-insert check for a clean domain error path; the unique
	// index still guards against concurrent races that slip past it.
	existing, err := r.FindByEmail(ctx, entity.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repositories.ErrDuplicateEmail
	}

	doc := &userDoc{
		ID:                  primitive.NewObjectID(),
		Email:               strings.ToLower(entity.Email),
		PasswordHash:        entity.PasswordHash,
		FirstName:           entity.FirstName,
		LastName:            entity.LastName,
		Role:                string(entity.Role),
		FavoritePropertyIDs: entity.FavoritePropertyIDs,
		CreatedAt:           entity.CreatedAt,
		UpdatedAt:           entity.UpdatedAt,
		IsActive:            entity.IsActive,
		EmailVerified:       entity.EmailVerified,
		PhoneNumber:         entity.PhoneNumber,
		ProfilePictureURL:   entity.ProfilePictureURL,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repositories.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return r.FindByID(ctx, doc.ID.Hex())
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc userDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}

	// $addToSet keeps the favorites list duplicate-free.
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$addToSet": bson.M{"favoritePropertyIds": propertyID},
	})
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{"favoritePropertyIds": propertyID},
	})
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *UserRepository) GetFavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []string{}, nil
	}
	return user.FavoritePropertyIDs, nil
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, userID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"emailVerified": true,
			"updatedAt":     time.Now().UTC(),
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark email verified: %w", err)
	}
	return result.ModifiedCount > 0, nil
}
