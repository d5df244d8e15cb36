package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	SubjectPropertyCreated = "listings.property.created"
	SubjectPropertyUpdated = "listings.property.updated"
	SubjectPropertyDeleted = "listings.property.deleted"
)

// PropertyEvent is the envelope published after a successful listing mutation.
type PropertyEvent struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	OwnerID    string    `json:"ownerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewPropertyEvent(propertyID, ownerID string) *PropertyEvent {
	return &PropertyEvent{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher emits listing events. Publishing is best-effort: callers log
// failures but never fail the originating request.
type Publisher interface {
	PublishPropertyEvent(subject string, event *PropertyEvent) error
	Close()
}

type NATSPublisher struct {
	nc     *nats.Conn
	logger zerolog.Logger
}

func NewNATSPublisher(url string, logger zerolog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	logger.Info().Str("url", url).Msg("connected to nats")
	return &NATSPublisher{nc: nc, logger: logger}, nil
}

func (p *NATSPublisher) PublishPropertyEvent(subject string, event *PropertyEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.nc.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	p.logger.Debug().Str("subject", subject).Str("propertyId", event.PropertyID).Msg("event published")
	return nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		p.nc.Close()
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPropertyEvent(string, *PropertyEvent) error { return nil }
func (NoopPublisher) Close()                                           {}
