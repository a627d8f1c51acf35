package http

import (
	"context"

	"github.com/tuwebai/tuweb-backend/internal/testimonials/domain"
)

type Store interface {
	Create(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error)
	ListApproved(ctx context.Context, limit int) ([]domain.Testimonial, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Handler bundles the dependencies for testimonial HTTP endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}
