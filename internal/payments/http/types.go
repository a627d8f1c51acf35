package http

import (
	"context"

	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
)

// Payments is the service surface these handlers consume.
type Payments interface {
	CreateCheckout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Preference, *domain.Payment, error)
	Status(ctx context.Context, gatewayPaymentID string) (*domain.GatewayPayment, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Payment, error)
	HandleWebhookEvent(ctx context.Context, event *domain.WebhookEvent) error
}

// Handler bundles the dependencies for payment HTTP endpoints.
type Handler struct {
	payments      Payments
	webhookSecret string
}

func New(payments Payments, webhookSecret string) *Handler {
	return &Handler{payments: payments, webhookSecret: webhookSecret}
}
