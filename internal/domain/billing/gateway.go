package billing

import "context"

// PreferenceItem describes one line item on a checkout preference
type PreferenceItem struct {
	Title     string
	Quantity  int
	UnitPrice float64
	Currency  string
}

// PreferenceRequest is the input to CreatePreference.
// ExternalReference is the dues record id; the processor echoes it back
// on payment notifications so settlements can be correlated.
type PreferenceRequest struct {
	Items             []PreferenceItem
	PayerEmail        string
	ExternalReference string
	NotificationURL   string
	SuccessURL        string
	FailureURL        string
	PendingURL        string
}

// Preference is the processor's checkout preference
type Preference struct {
	ID              string
	InitPoint       string // production checkout URL
	SandboxInitPoint string
}

// Payment is the processor's authoritative view of a payment
type Payment struct {
	ID                string
	Status            string // approved, pending, rejected, ...
	ExternalReference string
}

// PaymentStatusApproved is the processor status that settles a dues record
const PaymentStatusApproved = "approved"

// PaymentGateway is the port to the external payment processor
type PaymentGateway interface {
	// CreatePreference registers a checkout preference and returns its
	// checkout URLs
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)

	// GetPayment fetches the authoritative payment state by processor
	// payment id. Notification bodies are never trusted for status.
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}
