package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"listings-service/internal/application/command"
	"listings-service/internal/application/common"
	"listings-service/internal/application/interfaces"
	"listings-service/internal/application/mapper"
	"listings-service/internal/application/query"
	"listings-service/internal/domain/entities"
	"listings-service/internal/domain/repositories"
	"listings-service/internal/messaging"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	propertyCacheTTL = 15 * time.Minute
)

// PropertyCache is the optional cache-aside store for point lookups; a nil
// cache disables caching.
type PropertyCache interface {
	GetProperty(ctx context.Context, id string) (*entities.Property, error)
	SetProperty(ctx context.Context, property *entities.Property, ttl time.Duration) error
	InvalidateProperty(ctx context.Context, id string) error
}

type PropertyService struct {
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
	cache        PropertyCache
	events       messaging.Publisher
	logger       zerolog.Logger
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	cache PropertyCache,
	events messaging.Publisher,
	logger zerolog.Logger,
) interfaces.PropertyService {
	if events == nil {
		events = messaging.NoopPublisher{}
	}
	return &PropertyService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		cache:        cache,
		events:       events,
		logger:       logger,
	}
}

func (s *PropertyService) CreateProperty(ctx context.Context, callerID string, callerRole entities.UserRole, cmd *command.CreatePropertyCommand) (*command.CreatePropertyCommandResult, error) {
	if callerRole != entities.RolePropertyOwner {
		return nil, common.NewAuthorizationError("only property owners can create property listings")
	}

	listingType, err := entities.ParseListingType(cmd.ListingType)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}

	// The owner is always the authenticated caller; any ownerId in the
	// request body is ignored.
	property := entities.NewProperty(cmd.Name, cmd.Type, listingType, cmd.Price, cmd.Location, callerID)
	property.Description = cmd.Description
	property.SizeInSquareMeters = cmd.SizeInSquareMeters
	property.LeaseTerms = cmd.LeaseTerms
	property.SaleTerms = cmd.SaleTerms
	if cmd.Images != nil {
		property.Images = cmd.Images
	}
	if cmd.Amenities != nil {
		property.Amenities = cmd.Amenities
	}

	validated, err := entities.NewValidatedProperty(property)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}

	created, err := s.propertyRepo.Create(ctx, validated)
	if err != nil {
		return nil, common.NewInternalError("failed to create property", err)
	}
	if created == nil {
		return nil, common.NewInternalError("property write was not acknowledged", nil)
	}

	s.publish(messaging.SubjectPropertyCreated, created)

	return &command.CreatePropertyCommandResult{
		Result: mapper.NewPropertyResultFromEntity(created, false),
	}, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, propertyID, viewerID string) (*query.PropertyQueryResult, error) {
	property, err := s.loadProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, common.NewNotFoundError("property not found")
	}

	favorites := s.favoriteSet(ctx, viewerID)
	return &query.PropertyQueryResult{
		Result: mapper.NewPropertyResultFromEntity(property, favorites[property.ID]),
	}, nil
}

func (s *PropertyService) ListProperties(ctx context.Context, q *query.PropertyListQuery, viewerID string) (*common.PaginatedResult[*common.PropertyResult], error) {
	filter, err := buildRepositoryFilter(q)
	if err != nil {
		return nil, err
	}

	page, pageSize := clampPaging(q.Page, q.PageSize)
	properties, total, err := s.propertyRepo.FindAll(ctx, filter, page, pageSize)
	if err != nil {
		return nil, common.NewInternalError("failed to list properties", err)
	}

	return common.NewPaginatedResult(s.project(ctx, properties, viewerID), total, page, pageSize), nil
}

func (s *PropertyService) SearchProperties(ctx context.Context, q *query.PropertySearchQuery, viewerID string) (*common.PaginatedResult[*common.PropertyResult], error) {
	text := strings.TrimSpace(q.Query)
	if text == "" {
		return nil, common.NewValidationError("search query cannot be empty")
	}

	page, pageSize := clampPaging(q.Page, q.PageSize)
	properties, total, err := s.propertyRepo.Search(ctx, text, page, pageSize)
	if err != nil {
		return nil, common.NewInternalError("failed to search properties", err)
	}

	return common.NewPaginatedResult(s.project(ctx, properties, viewerID), total, page, pageSize), nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, propertyID, callerID string, cmd *command.UpdatePropertyCommand) (*command.UpdatePropertyCommandResult, error) {
	existing, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, common.NewInternalError("failed to load property", err)
	}
	if existing == nil {
		return nil, common.NewNotFoundError("property not found")
	}
	if existing.PropertyOwnerID != callerID {
		return nil, common.NewAuthorizationError("you are not the owner of this property")
	}

	changes, err := buildPropertyChanges(cmd)
	if err != nil {
		return nil, err
	}

	favorites := s.favoriteSet(ctx, callerID)

	// A request that changes nothing returns the current record untouched;
	// updatedAt is only stamped when a field actually changes.
	if changes.Empty() {
		return &command.UpdatePropertyCommandResult{
			Result: mapper.NewPropertyResultFromEntity(existing, favorites[existing.ID]),
		}, nil
	}

	updated, err := s.propertyRepo.Update(ctx, propertyID, changes)
	if err != nil {
		return nil, common.NewInternalError("failed to update property", err)
	}
	if updated == nil {
		return nil, common.NewNotFoundError("property not found")
	}

	s.invalidate(ctx, propertyID)
	s.publish(messaging.SubjectPropertyUpdated, updated)

	return &command.UpdatePropertyCommandResult{
		Result: mapper.NewPropertyResultFromEntity(updated, favorites[updated.ID]),
	}, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, propertyID, callerID string) error {
	existing, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return common.NewInternalError("failed to load property", err)
	}
	if existing == nil {
		return common.NewNotFoundError("property not found")
	}
	if existing.PropertyOwnerID != callerID {
		return common.NewAuthorizationError("you are not authorized to delete this property")
	}

	deleted, err := s.propertyRepo.Delete(ctx, propertyID)
	if err != nil {
		return common.NewInternalError("failed to delete property", err)
	}
	if !deleted {
		return common.NewInternalError("property delete was not acknowledged", nil)
	}

	s.invalidate(ctx, propertyID)
	s.publish(messaging.SubjectPropertyDeleted, existing)
	return nil
}

func (s *PropertyService) SetAvailability(ctx context.Context, propertyID, callerID string, available bool) error {
	existing, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return common.NewInternalError("failed to load property", err)
	}
	if existing == nil {
		return common.NewNotFoundError("property not found")
	}
	if existing.PropertyOwnerID != callerID {
		return common.NewAuthorizationError("you are not the owner of this property")
	}

	modified, err := s.propertyRepo.SetAvailability(ctx, propertyID, available)
	if err != nil {
		return common.NewInternalError("failed to update availability", err)
	}
	if !modified {
		// The flag already held the requested value.
		s.logger.Debug().Str("propertyId", propertyID).Bool("available", available).Msg("availability unchanged")
		return nil
	}

	s.invalidate(ctx, propertyID)
	s.publish(messaging.SubjectPropertyUpdated, existing)
	return nil
}

func (s *PropertyService) GetPropertiesByOwner(ctx context.Context, ownerID, viewerID string) (*query.PropertyListQueryResult, error) {
	properties, err := s.propertyRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, common.NewInternalError("failed to load owner properties", err)
	}

	return &query.PropertyListQueryResult{Result: s.project(ctx, properties, viewerID)}, nil
}

func (s *PropertyService) AddFavorite(ctx context.Context, userID, propertyID string) error {
	if err := s.checkFavoriteTargets(ctx, userID, propertyID); err != nil {
		return err
	}

	modified, err := s.userRepo.AddFavorite(ctx, userID, propertyID)
	if err != nil {
		return common.NewInternalError("failed to add favorite", err)
	}
	if !modified {
		// Already favorited; adding again is a harmless no-op.
		s.logger.Debug().Str("userId", userID).Str("propertyId", propertyID).Msg("favorite already present")
	}
	return nil
}

func (s *PropertyService) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	if err := s.checkFavoriteTargets(ctx, userID, propertyID); err != nil {
		return err
	}

	modified, err := s.userRepo.RemoveFavorite(ctx, userID, propertyID)
	if err != nil {
		return common.NewInternalError("failed to remove favorite", err)
	}
	if !modified {
		s.logger.Debug().Str("userId", userID).Str("propertyId", propertyID).Msg("favorite was not present")
	}
	return nil
}

func (s *PropertyService) GetFavoriteProperties(ctx context.Context, userID string) (*query.PropertyListQueryResult, error) {
	favoriteIDs, err := s.userRepo.GetFavoriteIDs(ctx, userID)
	if err != nil {
		return nil, common.NewInternalError("failed to load favorites", err)
	}
	if len(favoriteIDs) == 0 {
		return &query.PropertyListQueryResult{Result: make([]*common.PropertyResult, 0)}, nil
	}

	properties, err := s.propertyRepo.FindByIDs(ctx, favoriteIDs)
	if err != nil {
		return nil, common.NewInternalError("failed to load favorite properties", err)
	}

	results := make([]*common.PropertyResult, 0, len(properties))
	for _, property := range properties {
		// Every entry here is favorited by definition.
		results = append(results, mapper.NewPropertyResultFromEntity(property, true))
	}
	return &query.PropertyListQueryResult{Result: results}, nil
}

// checkFavoriteTargets validates both sides of the relation exist. The
// existence check and the mutation are separate store calls, so a concurrent
// delete in between is possible and accepted.
func (s *PropertyService) checkFavoriteTargets(ctx context.Context, userID, propertyID string) error {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return common.NewInternalError("failed to load property", err)
	}
	if property == nil {
		return common.NewNotFoundError("property not found")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return common.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return common.NewNotFoundError("user not found")
	}
	return nil
}

// favoriteSet loads the viewer's favorites once so list projections issue a
// single favorites read instead of one per property.
func (s *PropertyService) favoriteSet(ctx context.Context, viewerID string) map[string]bool {
	if viewerID == "" {
		return nil
	}
	ids, err := s.userRepo.GetFavoriteIDs(ctx, viewerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("userId", viewerID).Msg("failed to load favorites for projection")
		return nil
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (s *PropertyService) project(ctx context.Context, properties []*entities.Property, viewerID string) []*common.PropertyResult {
	favorites := s.favoriteSet(ctx, viewerID)
	results := make([]*common.PropertyResult, 0, len(properties))
	for _, property := range properties {
		results = append(results, mapper.NewPropertyResultFromEntity(property, favorites[property.ID]))
	}
	return results
}

func (s *PropertyService) loadProperty(ctx context.Context, propertyID string) (*entities.Property, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProperty(ctx, propertyID)
		if err != nil {
			s.logger.Warn().Err(err).Str("propertyId", propertyID).Msg("property cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, common.NewInternalError("failed to load property", err)
	}
	if property != nil && s.cache != nil {
		if err := s.cache.SetProperty(ctx, property, propertyCacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("propertyId", propertyID).Msg("property cache write failed")
		}
	}
	return property, nil
}

func (s *PropertyService) invalidate(ctx context.Context, propertyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProperty(ctx, propertyID); err != nil {
		s.logger.Warn().Err(err).Str("propertyId", propertyID).Msg("property cache invalidation failed")
	}
}

func (s *PropertyService) publish(subject string, property *entities.Property) {
	event := messaging.NewPropertyEvent(property.ID, property.PropertyOwnerID)
	if err := s.events.PublishPropertyEvent(subject, event); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish listing event")
	}
}

// clampPaging forces page and pageSize into their legal bounds instead of
// failing on abusive requests.
func clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func buildRepositoryFilter(q *query.PropertyListQuery) (*repositories.PropertyFilter, error) {
	if q == nil {
		return nil, nil
	}

	filter := &repositories.PropertyFilter{
		Type:            q.Type,
		Location:        q.Location,
		MinPrice:        q.MinPrice,
		MaxPrice:        q.MaxPrice,
		MinSize:         q.MinSize,
		MaxSize:         q.MaxSize,
		IsAvailable:     q.IsAvailable,
		Amenities:       q.Amenities,
		PropertyOwnerID: q.PropertyOwnerID,
	}
	if q.ListingType != nil {
		listingType, err := entities.ParseListingType(*q.ListingType)
		if err != nil {
			return nil, common.NewValidationError(err.Error())
		}
		filter.ListingType = &listingType
	}
	return filter, nil
}

// buildPropertyChanges maps only the fields present in the request, so unset
// fields are never overwritten.
func buildPropertyChanges(cmd *command.UpdatePropertyCommand) (*repositories.PropertyChanges, error) {
	changes := &repositories.PropertyChanges{}
	if cmd == nil {
		return changes, nil
	}

	if cmd.Name != nil {
		if strings.TrimSpace(*cmd.Name) == "" {
			return nil, common.NewValidationError("property name cannot be empty")
		}
		changes.Set("name", *cmd.Name)
	}
	if cmd.Type != nil {
		if strings.TrimSpace(*cmd.Type) == "" {
			return nil, common.NewValidationError("property type cannot be empty")
		}
		changes.Set("type", *cmd.Type)
	}
	if cmd.ListingType != nil {
		listingType, err := entities.ParseListingType(*cmd.ListingType)
		if err != nil {
			return nil, common.NewValidationError(err.Error())
		}
		changes.Set("listingType", string(listingType))
	}
	if cmd.Description != nil {
		changes.Set("description", *cmd.Description)
	}
	if cmd.Price != nil {
		if *cmd.Price <= 0 {
			return nil, common.NewValidationError("price must be positive")
		}
		changes.Set("price", *cmd.Price)
	}
	if cmd.Location != nil {
		if strings.TrimSpace(*cmd.Location) == "" {
			return nil, common.NewValidationError("location cannot be empty")
		}
		changes.Set("location", *cmd.Location)
	}
	if cmd.IsAvailable != nil {
		changes.Set("isAvailable", *cmd.IsAvailable)
	}
	if cmd.SizeInSquareMeters != nil {
		if *cmd.SizeInSquareMeters <= 0 {
			return nil, common.NewValidationError("size must be positive")
		}
		changes.Set("sizeInSquareMeters", *cmd.SizeInSquareMeters)
	}
	if cmd.Images != nil {
		changes.Set("images", *cmd.Images)
	}
	if cmd.Amenities != nil {
		changes.Set("amenities", *cmd.Amenities)
	}
	if cmd.LeaseTerms != nil {
		changes.Set("leaseTerms", *cmd.LeaseTerms)
	}
	if cmd.SaleTerms != nil {
		changes.Set("saleTerms", *cmd.SaleTerms)
	}
	if cmd.Rating != nil {
		if *cmd.Rating < 0 || *cmd.Rating > 5 {
			return nil, common.NewValidationError("rating must be between 0 and 5")
		}
		changes.Set("rating", *cmd.Rating)
	}

	return changes, nil
}
