package statuspush

import (
	"bytes"
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

type client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   zerolog.Logger
}

// NewClient creates the outbound status sink that reports tag changes to the
// product-status endpoint.
func NewClient(endpoint, token string, logger zerolog.Logger) ports.StatusSink {
	return &client{
		endpoint: endpoint,
		token:    token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// PushStatus delivers a single status update. Failures are returned to the
// reconciler, which leaves its cache untouched so the push is retried on the
// next cycle.
func (c *client) PushStatus(ctx context.Context, update *domain.StatusUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to encode status update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create status push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push status: %w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("productId", update.ProductID).
			Str("body", string(body)).
			Msg("Status push rejected")
		return fmt.Errorf("failed to push status: %w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	c.logger.Debug().
		Str("productId", update.ProductID).
		Str("tag", update.Tag.String()).
		Msg("Pushed status update")

	return nil
}
