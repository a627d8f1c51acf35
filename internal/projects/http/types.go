package http

import (
	"context"

	"github.com/tuwebai/tuweb-backend/internal/projects/domain"
)

type Store interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetActiveByUser(ctx context.Context, userID string) (*domain.Project, error)
}

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}
