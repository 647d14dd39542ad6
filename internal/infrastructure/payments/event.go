package payments

// Event types the webhook endpoint cares about.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
)

// Event is the envelope of a webhook delivery from the payments collaborator.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object Session `json:"object"`
	} `json:"data"`
}

// Session is the checkout session object carried by completion events.
// Amounts are in minor currency units.
type Session struct {
	ID             string            `json:"id"`
	AmountSubtotal int64             `json:"amount_subtotal"`
	AmountTotal    int64             `json:"amount_total"`
	Currency       string            `json:"currency"`
	CustomerEmail  string            `json:"customer_email"`
	Metadata       map[string]string `json:"metadata"`
}
