package http

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	usersdomain "github.com/tuwebai/tuweb-backend/internal/users/domain"
)

// UserStore is the slice of the user repository the auth handlers need.
type UserStore interface {
	GetByVerificationToken(ctx context.Context, token string) (*usersdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*usersdomain.User, error)
	Update(ctx context.Context, u *usersdomain.User) error
	Ensure(ctx context.Context, uid, email string) (*usersdomain.User, error)
}

type Handler struct {
	users      UserStore
	oauth      *oauth2.Config
	production bool
}

// New builds the auth handler. clientID may be empty, in which case the
// Google routes respond 503.
func New(users UserStore, clientID, clientSecret, redirectURL string, production bool) *Handler {
	h := &Handler{users: users, production: production}
	if clientID != "" && clientSecret != "" {
		h.oauth = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return h
}
