package http

import (
	"context"

	"github.com/tuwebai/tuweb-backend/internal/tickets/domain"
)

type Store interface {
	Create(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error)
	GetByID(ctx context.Context, id string) (*domain.SupportTicket, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SupportTicket, error)
	SetStatus(ctx context.Context, id, newStatus string) error
	AppendResponse(ctx context.Context, id string, resp domain.TicketResponse) error
}

// Handler bundles the dependencies for support ticket HTTP endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}
