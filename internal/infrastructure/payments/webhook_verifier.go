package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// WebhookVerifier verifies the HMAC-SHA256 signature the payments
// collaborator sends with every webhook delivery.
type WebhookVerifier struct {
	secret []byte
}

// NewWebhookVerifier creates a verifier for the given webhook signing secret
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: []byte(secret)}
}

// Verify checks the hex-encoded signature against the raw payload. A payload
// that fails verification must not be processed.
func (v *WebhookVerifier) Verify(payload []byte, signature string) error {
	if signature == "" {
		return fmt.Errorf("missing signature")
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("malformed signature: %w", err)
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	expected := mac.Sum(nil)

	if !hmac.Equal(provided, expected) {
		return fmt.Errorf("signature mismatch")
	}

	return nil
}

// Sign computes the signature for a payload. Used by tests and by local
// tooling that replays webhook deliveries.
func (v *WebhookVerifier) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
