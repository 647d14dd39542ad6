package ports

import (
	"context"

	"statuspulse-integration-layer/internal/domain"
)

// MappingRepository defines the interface for channel/title to product lookups.
// Lookups return nil, nil when no mapping exists; errors are reserved for
// storage failures (wrapped domain.ErrStorageUnavailable).
type MappingRepository interface {
	GetByChannelID(ctx context.Context, channelID string) (*domain.ChannelMapping, error)
	GetByTitle(ctx context.Context, title string) (*domain.ProductMapping, error)

	// Upsert operations are only used by the one-time import.
	UpsertChannelMapping(ctx context.Context, mapping *domain.ChannelMapping) error
	UpsertProductMapping(ctx context.Context, mapping *domain.ProductMapping) error
}
