package http

import (
	"context"

	"github.com/tuwebai/tuweb-backend/internal/users/domain"
)

// Store is the slice of user persistence this handler needs. The Firestore
// repository satisfies it in production; tests plug in a fake.
type Store interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	GetPreferences(ctx context.Context, uid string) (*domain.Preferences, error)
	SetPreferences(ctx context.Context, uid string, p *domain.Preferences) error
}

// Handler bundles the dependencies for user HTTP endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}
