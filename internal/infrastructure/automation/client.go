package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/ports"

	"github.com/rs/zerolog"
)

type client struct {
	webhookURL string
	http       *http.Client
	logger     zerolog.Logger
}

// NewClient creates the order sink that forwards completed orders to the
// automation webhook.
func NewClient(webhookURL string, logger zerolog.Logger) ports.OrderSink {
	return &client{
		webhookURL: webhookURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type orderLineItem struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
	VariantID string `json:"variant_id,omitempty"`
}

type orderPayload struct {
	SessionID   string          `json:"session_id"`
	Email       string          `json:"email"`
	LineItems   []orderLineItem `json:"line_items"`
	Currency    string          `json:"currency"`
	Total       string          `json:"total"`
	Fulfillment string          `json:"fulfillment"`
	ShopID      string          `json:"shop_id"`
}

// ForwardOrder posts the order to the automation webhook. Prices are
// formatted as decimal strings, which is what the automation side expects.
func (c *client) ForwardOrder(ctx context.Context, order *domain.Order) error {
	payload := orderPayload{
		SessionID:   order.SessionID,
		Email:       order.Email,
		LineItems:   make([]orderLineItem, len(order.LineItems)),
		Currency:    order.Currency,
		Total:       formatCents(order.TotalCents),
		Fulfillment: order.Fulfillment,
		ShopID:      order.ShopID,
	}
	for i, li := range order.LineItems {
		payload.LineItems[i] = orderLineItem{
			Title:     li.Title,
			Price:     formatCents(li.PriceCents),
			Quantity:  li.Quantity,
			VariantID: li.VariantID,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create order forward request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to forward order: %w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to forward order: %w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	c.logger.Info().
		Str("sessionId", order.SessionID).
		Str("shopId", order.ShopID).
		Msg("Forwarded order to automation webhook")

	return nil
}

func formatCents(cents int64) string {
	negative := ""
	if cents < 0 {
		negative = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", negative, cents/100, cents%100)
}
