package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"statuspulse-integration-layer/internal/application"
	"statuspulse-integration-layer/internal/domain"
	"statuspulse-integration-layer/internal/infrastructure/payments"

	"github.com/rs/zerolog"
)

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// writeError maps domain sentinels to HTTP status codes. Internal detail is
// logged, never sent to the caller.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		logger.Error().Err(err).Msg("Request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// registerShopHandler issues a checkout token for a shop
func registerShopHandler(svc *application.CheckoutService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ShopID string `json:"shop_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		token, err := svc.RegisterShop(r.Context(), body.ShopID)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

type lineItemPayload struct {
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int64  `json:"quantity"`
	VariantID  string `json:"variant_id"`
}

// createCheckoutSessionHandler accepts a cart and opens a payment session
func createCheckoutSessionHandler(svc *application.CheckoutService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token    string            `json:"token"`
			Items    []lineItemPayload `json:"items"`
			Currency string            `json:"currency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		items := make([]domain.LineItem, len(body.Items))
		for i, li := range body.Items {
			items[i] = domain.LineItem{
				Title:      li.Title,
				PriceCents: li.PriceCents,
				Quantity:   li.Quantity,
				VariantID:  li.VariantID,
			}
		}

		session, err := svc.CreateCheckoutSession(r.Context(), application.CreateSessionInput{
			Token:    body.Token,
			Items:    items,
			Currency: body.Currency,
		})
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

// paymentsWebhookHandler consumes signed deliveries from the payments
// collaborator. Signature failures are rejected without touching the payload.
func paymentsWebhookHandler(svc *application.CheckoutService, verifier *payments.WebhookVerifier, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		signature := r.Header.Get("X-Payment-Signature")
		if err := verifier.Verify(payload, signature); err != nil {
			logger.Warn().Err(err).Msg("Webhook signature verification failed")
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}

		var event payments.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if event.Type != payments.EventCheckoutSessionCompleted {
			logger.Debug().Str("type", event.Type).Msg("Ignoring webhook event type")
			writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
			return
		}

		session := event.Data.Object
		_, err = svc.HandleCompletedSession(r.Context(), application.CompletedSession{
			SessionID:   session.ID,
			CartKey:     session.Metadata["cart_key"],
			ShopID:      session.Metadata["shop_id"],
			Email:       session.CustomerEmail,
			AmountTotal: session.AmountTotal,
			Currency:    session.Currency,
		})
		if err != nil {
			// An expired cart is not worth a collaborator retry storm.
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn().
					Str("sessionId", session.ID).
					Msg("Completed session references an expired cart, acknowledging anyway")
				writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
				return
			}
			writeError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
	}
}

// orderDetailsHandler returns a persisted order by session id
func orderDetailsHandler(svc *application.CheckoutService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")

		order, err := svc.GetOrderDetails(r.Context(), sessionID)
		if err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

// updateOrderHandler attaches the commerce platform's order id
func updateOrderHandler(svc *application.CheckoutService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SessionID      string `json:"session_id"`
			ShopifyOrderID string `json:"shopify_order_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := svc.AttachShopifyOrder(r.Context(), body.SessionID, body.ShopifyOrderID); err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"updated": "true"})
	}
}

// updateProductTagHandler applies a status tag to a commerce product
func updateProductTagHandler(svc *application.ProductTagService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			http.Error(w, "commerce platform not configured", http.StatusServiceUnavailable)
			return
		}

		var body struct {
			Tag       string `json:"tag"`
			ProductID string `json:"productId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := svc.UpdateTag(r.Context(), body.ProductID, domain.ParseTag(body.Tag)); err != nil {
			writeError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"updated": "true"})
	}
}
