package payments

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
	baseURL   string
	secretKey string
	http      *http.Client
	logger    zerolog.Logger
}

// NewClient creates a payments collaborator client for checkout session
// creation. Webhook consumption lives in WebhookVerifier plus the event types
// in event.go.
func NewClient(baseURL, secretKey string, logger zerolog.Logger) ports.PaymentsClient {
	return &client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type sessionLineItem struct {
	Title       string `json:"title"`
	AmountCents int64  `json:"amount_cents"`
	Quantity    int64  `json:"quantity"`
}

type createSessionRequest struct {
	LineItems  []sessionLineItem `json:"line_items"`
	Currency   string            `json:"currency"`
	Metadata   map[string]string `json:"metadata"`
	SuccessURL string            `json:"success_url,omitempty"`
	CancelURL  string            `json:"cancel_url,omitempty"`
}

type createSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession opens a checkout session with the payments collaborator. The
// cart key and shop id ride along as metadata and come back on the completion
// webhook.
func (c *client) CreateSession(ctx context.Context, input ports.CreateSessionInput) (*ports.CheckoutSession, error) {
	reqBody := createSessionRequest{
		LineItems: make([]sessionLineItem, len(input.Items)),
		Currency:  input.Currency,
		Metadata: map[string]string{
			"cart_key": input.CartKey,
			"shop_id":  input.ShopID,
		},
		SuccessURL: input.SuccessURL,
		CancelURL:  input.CancelURL,
	}
	for i, li := range input.Items {
		reqBody.LineItems[i] = sessionLineItem{
			Title:       li.Title,
			AmountCents: li.PriceCents,
			Quantity:    li.Quantity,
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session request: %w", err)
	}

	url := c.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Payments collaborator rejected session creation")
		return nil, fmt.Errorf("failed to create checkout session: %w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var session createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}

	c.logger.Info().
		Str("sessionId", session.ID).
		Str("cartKey", input.CartKey).
		Msg("Created checkout session")

	return &ports.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}
