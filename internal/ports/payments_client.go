package ports

import (
	"context"

	"statuspulse-integration-layer/internal/domain"
)

// CreateSessionInput carries everything the payments collaborator needs to
// open a checkout session. CartKey and ShopID travel as session metadata and
// come back on the completion webhook.
type CreateSessionInput struct {
	Items      []domain.LineItem
	Currency   string
	CartKey    string
	ShopID     string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the collaborator's handle for a created session.
type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// PaymentsClient creates checkout sessions against the payments collaborator.
type PaymentsClient interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error)
}
