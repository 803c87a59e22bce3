package repository

import (
	"context"

	"StayPulse/internal/domain/models"
)

// ListingSource loads the immutable listing table at startup.
type ListingSource interface {
	Load(ctx context.Context) ([]models.Listing, error)
	Close() error
}

// Publisher emits a dashboard update event per filter transition.
type Publisher interface {
	Publish(ctx context.Context, ev models.UpdateEvent) error
	Close() error
}

// Broadcaster pushes a complete snapshot to connected dashboard clients.
type Broadcaster interface {
	Broadcast(s *models.Snapshot)
}

type Metrics interface {
	RecordSnapshot(filter string)
	RecordError(kind string)
	RecordSubsetSize(filter string, n int)
	RecordLatency(op string, seconds float64)
}
