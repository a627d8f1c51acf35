package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("payment not found")
	// ErrDuplicateEvent marks a webhook delivery whose payment id was
	// already processed. Handlers acknowledge it with 200 and do nothing.
	ErrDuplicateEvent = errors.New("duplicate webhook event")
)

// ValidationError marks input the caller can fix. Handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Payment is the local ledger record for a checkout. Immutable once written
// except for webhook-driven status transitions.
type Payment struct {
	ID          string    `firestore:"-" json:"id"`
	UserID      string    `firestore:"userId" json:"userId"`
	ProjectID   string    `firestore:"projectId,omitempty" json:"projectId,omitempty"`
	Amount      float64   `firestore:"amount" json:"amount"`
	Currency    string    `firestore:"currency" json:"currency"`
	Status      string    `firestore:"status" json:"status"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	InvoiceURL  string    `firestore:"invoiceUrl,omitempty" json:"invoiceUrl,omitempty"`
	// GatewayID is Mercado Pago's payment id once known; PreferenceID is
	// the checkout preference that produced it.
	GatewayID    string    `firestore:"gatewayId,omitempty" json:"gatewayId,omitempty"`
	PreferenceID string    `firestore:"preferenceId,omitempty" json:"preferenceId,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// WebhookEvent is the envelope Mercado Pago posts to the webhook endpoint.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// GatewayPayment is the slice of Mercado Pago's payment resource we read.
type GatewayPayment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
	Description       string  `json:"description"`
	ExternalReference string  `json:"external_reference"`
}

// StatusFromGateway maps Mercado Pago payment statuses onto our three
// local states. Anything not clearly terminal stays pending.
func StatusFromGateway(s string) string {
	switch s {
	case "approved":
		return StatusCompleted
	case "rejected", "cancelled", "refunded", "charged_back":
		return StatusFailed
	default:
		return StatusPending
	}
}

// CheckoutRequest is what the pricing page posts to create a preference.
type CheckoutRequest struct {
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	UserID    string  `json:"userId"`
	ProjectID string  `json:"projectId"`
	Email     string  `json:"email"`
}

func (r *CheckoutRequest) Validate() error {
	if r.Title == "" {
		return &ValidationError{Msg: "title is required"}
	}
	if r.Amount <= 0 {
		return &ValidationError{Msg: "amount must be positive"}
	}
	if r.Currency == "" {
		r.Currency = "ARS"
	}
	return nil
}

// Preference is the created checkout preference returned to the caller.
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point,omitempty"`
}
