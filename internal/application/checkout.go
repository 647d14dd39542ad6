package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/infrastructure/metrics"
	"statuspulse-integration-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const shopTokenTTL = time.Hour

// CheckoutService implements the cart, session and order lifecycle. It
// depends on ports (interfaces), not concrete implementations.
type CheckoutService struct {
	carts     ports.CartRepository
	orders    ports.OrderRepository
	tokens    ports.ShopTokenStore
	payments  ports.PaymentsClient
	commerce  ports.CommerceClient // optional, may be nil
	publisher ports.OrderPublisher
	logger    zerolog.Logger

	successURL string
	cancelURL  string
}

// NewCheckoutService creates a new checkout service. commerce may be nil when
// no commerce platform credentials are configured; order-id verification is
// then skipped.
func NewCheckoutService(
	carts ports.CartRepository,
	orders ports.OrderRepository,
	tokens ports.ShopTokenStore,
	payments ports.PaymentsClient,
	commerce ports.CommerceClient,
	publisher ports.OrderPublisher,
	logger zerolog.Logger,
	successURL string,
	cancelURL string,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		orders:     orders,
		tokens:     tokens,
		payments:   payments,
		commerce:   commerce,
		publisher:  publisher,
		logger:     logger,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// RegisterShop issues a short-lived token correlating checkout sessions back
// to a shop id.
func (s *CheckoutService) RegisterShop(ctx context.Context, shopID string) (string, error) {
	if shopID == "" {
		return "", fmt.Errorf("shop id is required: %w", domain.ErrInvalidInput)
	}

	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate shop token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	if err := s.tokens.Save(ctx, token, shopID, shopTokenTTL); err != nil {
		return "", err
	}

	s.logger.Info().Str("shopId", shopID).Msg("Registered shop")
	return token, nil
}

// CreateSessionInput is the inbound payload for session creation.
type CreateSessionInput struct {
	Token    string
	Items    []domain.LineItem
	Currency string
}

// CreateCheckoutSession validates the cart, persists it and opens a payment
// session with the payments collaborator.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, input CreateSessionInput) (*ports.CheckoutSession, error) {
	if input.Token == "" {
		return nil, fmt.Errorf("shop token is required: %w", domain.ErrInvalidInput)
	}
	if !strings.EqualFold(input.Currency, "usd") {
		return nil, fmt.Errorf("unsupported currency %q: %w", input.Currency, domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", domain.ErrInvalidInput)
	}
	for _, li := range input.Items {
		if li.Title == "" || li.PriceCents < 0 || li.Quantity <= 0 {
			return nil, fmt.Errorf("invalid line item %q: %w", li.Title, domain.ErrInvalidInput)
		}
	}

	shopID, err := s.tokens.Resolve(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	if shopID == "" {
		return nil, fmt.Errorf("unknown or expired shop token: %w", domain.ErrUnauthorized)
	}

	cart := &domain.Cart{
		CartKey:   uuid.NewString(),
		ShopID:    shopID,
		Items:     input.Items,
		Currency:  "usd",
		CreatedAt: time.Now(),
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}

	session, err := s.payments.CreateSession(ctx, ports.CreateSessionInput{
		Items:      cart.Items,
		Currency:   cart.Currency,
		CartKey:    cart.CartKey,
		ShopID:     cart.ShopID,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("cartKey", cart.CartKey).
		Str("shopId", shopID).
		Str("sessionId", session.ID).
		Msg("Checkout session created")

	return session, nil
}

// CompletedSession carries the fields of a verified completion webhook the
// service acts on.
type CompletedSession struct {
	SessionID   string
	CartKey     string
	ShopID      string
	Email       string
	AmountTotal int64
	Currency    string
}

// HandleCompletedSession turns a completed payment session into a persisted
// order: it loads the cart, spreads the session discount across line items
// and inserts the order under the unique session id. A duplicate delivery is
// resolved as benign and returns the already stored order.
func (s *CheckoutService) HandleCompletedSession(ctx context.Context, cs CompletedSession) (*domain.Order, error) {
	if cs.SessionID == "" || cs.CartKey == "" {
		return nil, fmt.Errorf("session id and cart key are required: %w", domain.ErrInvalidInput)
	}

	cart, err := s.carts.GetByKey(ctx, cs.CartKey)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("cart %s expired or missing: %w", cs.CartKey, domain.ErrNotFound)
	}

	subtotal := cart.SubtotalCents()
	items := domain.AllocateDiscount(subtotal, cs.AmountTotal, cart.Items)

	shopID := cart.ShopID
	if shopID == "" {
		shopID = cs.ShopID
	}

	order := &domain.Order{
		SessionID:   cs.SessionID,
		Email:       cs.Email,
		LineItems:   items,
		Currency:    cart.Currency,
		TotalCents:  cs.AmountTotal,
		Fulfillment: "automation",
		ShopID:      shopID,
		CreatedAt:   time.Now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			metrics.OrdersDuplicate.Inc()
			s.logger.Info().
				Str("sessionId", cs.SessionID).
				Msg("Duplicate webhook delivery, order already persisted")
			existing, getErr := s.orders.GetBySessionID(ctx, cs.SessionID)
			if getErr == nil && existing != nil {
				return existing, nil
			}
			return order, nil
		}
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	if s.publisher != nil {
		s.publisher.PublishOrder(order)
	}

	s.logger.Info().
		Str("sessionId", cs.SessionID).
		Str("shopId", shopID).
		Int64("totalCents", cs.AmountTotal).
		Msg("Order persisted from completed session")

	return order, nil
}

// GetOrderDetails retrieves an order by payment session id
func (s *CheckoutService) GetOrderDetails(ctx context.Context, sessionID string) (*domain.Order, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required: %w", domain.ErrInvalidInput)
	}

	order, err := s.orders.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order for session %s: %w", sessionID, domain.ErrNotFound)
	}

	return order, nil
}

// AttachShopifyOrder records the commerce platform's order id on an order,
// exactly once. Re-attaching is benign; a missing order is NotFound.
func (s *CheckoutService) AttachShopifyOrder(ctx context.Context, sessionID, shopifyOrderID string) error {
	if sessionID == "" || shopifyOrderID == "" {
		return fmt.Errorf("session id and shopify order id are required: %w", domain.ErrInvalidInput)
	}

	if s.commerce != nil {
		exists, err := s.commerce.OrderExists(ctx, shopifyOrderID)
		if err != nil {
			// Verification is best-effort; proceed but leave a trace.
			s.logger.Warn().
				Err(err).
				Str("shopifyOrderId", shopifyOrderID).
				Msg("Could not verify shopify order id, attaching anyway")
		} else if !exists {
			return fmt.Errorf("unknown shopify order %s: %w", shopifyOrderID, domain.ErrInvalidInput)
		}
	}

	updated, err := s.orders.AttachShopifyOrderID(ctx, sessionID, shopifyOrderID)
	if err != nil {
		return err
	}
	if !updated {
		order, getErr := s.orders.GetBySessionID(ctx, sessionID)
		if getErr != nil {
			return getErr
		}
		if order == nil {
			return fmt.Errorf("order for session %s: %w", sessionID, domain.ErrNotFound)
		}
		s.logger.Info().
			Str("sessionId", sessionID).
			Str("shopifyOrderId", order.ShopifyOrderID).
			Msg("Shopify order id already attached, ignoring update")
		return nil
	}

	s.logger.Info().
		Str("sessionId", sessionID).
		Str("shopifyOrderId", shopifyOrderID).
		Msg("Attached shopify order id")

	return nil
}
