package interfaces

import (
	"context"

	"listings-service/internal/application/command"
	"listings-service/internal/application/common"
	"listings-service/internal/application/query"
	"listings-service/internal/domain/entities"
)

// PropertyService exposes the listing operations. viewerID identifies the
// requesting user for favorite projection; pass the empty string for
// anonymous callers.
type PropertyService interface {
	CreateProperty(ctx context.Context, callerID string, callerRole entities.UserRole, cmd *command.CreatePropertyCommand) (*command.CreatePropertyCommandResult, error)
	GetProperty(ctx context.Context, propertyID, viewerID string) (*query.PropertyQueryResult, error)
	ListProperties(ctx context.Context, q *query.PropertyListQuery, viewerID string) (*common.PaginatedResult[*common.PropertyResult], error)
	SearchProperties(ctx context.Context, q *query.PropertySearchQuery, viewerID string) (*common.PaginatedResult[*common.PropertyResult], error)
	UpdateProperty(ctx context.Context, propertyID, callerID string, cmd *command.UpdatePropertyCommand) (*command.UpdatePropertyCommandResult, error)
	DeleteProperty(ctx context.Context, propertyID, callerID string) error
	SetAvailability(ctx context.Context, propertyID, callerID string, available bool) error
	GetPropertiesByOwner(ctx context.Context, ownerID, viewerID string) (*query.PropertyListQueryResult, error)
	AddFavorite(ctx context.Context, userID, propertyID string) error
	RemoveFavorite(ctx context.Context, userID, propertyID string) error
	GetFavoriteProperties(ctx context.Context, userID string) (*query.PropertyListQueryResult, error)
}
