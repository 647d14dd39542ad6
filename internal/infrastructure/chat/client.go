package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/ports"

	"github.com/rs/zerolog"
)

// channelTypeText is the chat platform's type code for plain text channels.
const channelTypeText = 0

type client struct {
	baseURL  string
	botToken string
	http     *http.Client
	logger   zerolog.Logger
}

// NewClient creates a chat platform client that lists guild channels over the
// platform's REST API using a bot token.
func NewClient(baseURL, botToken string, logger zerolog.Logger) ports.ChatClient {
	return &client{
		baseURL:  baseURL,
		botToken: botToken,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type channelPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// ListGuildChannels fetches all channels of a guild
func (c *client) ListGuildChannels(ctx context.Context, guildID string) ([]domain.Channel, error) {
	url := fmt.Sprintf("%s/guilds/%s/channels", c.baseURL, guildID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel list request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild channels: %w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("guildId", guildID).
			Str("body", string(body)).
			Msg("Chat platform returned non-OK status for channel list")
		return nil, fmt.Errorf("failed to list guild channels: %w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var payload []channelPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode channel list: %w", err)
	}

	channels := make([]domain.Channel, 0, len(payload))
	for _, ch := range payload {
		channels = append(channels, domain.Channel{
			ID:      ch.ID,
			GuildID: guildID,
			Name:    ch.Name,
			IsText:  ch.Type == channelTypeText,
		})
	}

	return channels, nil
}
