package http

import (
	"context"

	"github.com/tuwebai/tuweb-backend/internal/leads/domain"
)

// Leads is the service surface the handlers need.
type Leads interface {
	SubmitContact(ctx context.Context, m *domain.ContactMessage) (string, error)
	SubscribeNewsletter(ctx context.Context, s *domain.NewsletterSubscriber) (string, error)
	SubmitProposal(ctx context.Context, p *domain.ProposalRequest) (string, error)
	SubmitApplication(ctx context.Context, a *domain.JobApplication) (string, error)
}

type Handler struct {
	leads Leads
}

func New(leads Leads) *Handler {
	return &Handler{leads: leads}
}
