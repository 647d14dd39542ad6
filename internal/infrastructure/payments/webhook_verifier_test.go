package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookVerifier(t *testing.T) {
	v := NewWebhookVerifier("whsec_test")
	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"sess-1"}}}`)

	require.NoError(t, v.Verify(payload, v.Sign(payload)))
}

func TestWebhookVerifierRejects(t *testing.T) {
	v := NewWebhookVerifier("whsec_test")
	payload := []byte(`{"type":"checkout.session.completed"}`)
	valid := v.Sign(payload)

	tests := []struct {
		name      string
		payload   []byte
		signature string
	}{
		{"missing signature", payload, ""},
		{"malformed hex", payload, "not-hex!"},
		{"wrong secret", payload, NewWebhookVerifier("whsec_other").Sign(payload)},
		{"tampered payload", []byte(`{"type":"checkout.session.completed" }`), valid},
		{"truncated signature", payload, valid[:16]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, v.Verify(tt.payload, tt.signature))
		})
	}
}
