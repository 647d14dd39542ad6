package ports

import (
	"context"

	"statuspulse-integration-layer/internal/domain"
)

// ChatClient lists channels on the chat platform. The reconciliation loop only
// reads channel names; gateway semantics stay with the platform.
type ChatClient interface {
	ListGuildChannels(ctx context.Context, guildID string) ([]domain.Channel, error)
}
