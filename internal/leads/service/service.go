package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/tuwebai/tuweb-backend/internal/leads/domain"
	"github.com/tuwebai/tuweb-backend/internal/mailer"
)

// LeadStore is the persistence surface the service needs.
type LeadStore interface {
	CreateContact(ctx context.Context, m *domain.ContactMessage) (string, error)
	SubscribeNewsletter(ctx context.Context, s *domain.NewsletterSubscriber) (string, error)
	CreateProposal(ctx context.Context, p *domain.ProposalRequest) (string, error)
	CreateApplication(ctx context.Context, a *domain.JobApplication) (string, error)
}

// Service stores leads and notifies the team by mail. Notification
// failures are logged, never surfaced: the lead is already saved.
type Service struct {
	store    LeadStore
	mail     mailer.Mailer
	notifyTo string
}

func New(store LeadStore, mail mailer.Mailer, notifyTo string) *Service {
	return &Service{store: store, mail: mail, notifyTo: notifyTo}
}

func (s *Service) SubmitContact(ctx context.Context, m *domain.ContactMessage) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	id, err := s.store.CreateContact(ctx, m)
	if err != nil {
		return "", fmt.Errorf("store contact: %w", err)
	}
	s.notify("Nuevo mensaje de contacto",
		fmt.Sprintf("<p><b>%s</b> (%s)</p><p>%s</p>",
			html.EscapeString(m.Name), html.EscapeString(m.Email), html.EscapeString(m.Message)))
	return id, nil
}

func (s *Service) SubscribeNewsletter(ctx context.Context, sub *domain.NewsletterSubscriber) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}
	id, err := s.store.SubscribeNewsletter(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("store newsletter signup: %w", err)
	}
	return id, nil
}

func (s *Service) SubmitProposal(ctx context.Context, p *domain.ProposalRequest) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	id, err := s.store.CreateProposal(ctx, p)
	if err != nil {
		return "", fmt.Errorf("store proposal: %w", err)
	}
	s.notify("Nueva solicitud de propuesta",
		fmt.Sprintf("<p><b>%s</b> (%s) — %s</p><p>%s</p>",
			html.EscapeString(p.Name), html.EscapeString(p.Email),
			html.EscapeString(p.ProjectType), html.EscapeString(p.Details)))
	return id, nil
}

func (s *Service) SubmitApplication(ctx context.Context, a *domain.JobApplication) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	id, err := s.store.CreateApplication(ctx, a)
	if err != nil {
		return "", fmt.Errorf("store application: %w", err)
	}
	s.notify("Nueva postulación: "+a.Position,
		fmt.Sprintf("<p><b>%s</b> (%s)</p><p>%s</p>",
			html.EscapeString(a.Name), html.EscapeString(a.Email), html.EscapeString(a.Message)))
	return id, nil
}

func (s *Service) notify(subject, body string) {
	if s.mail == nil || s.notifyTo == "" {
		return
	}
	if err := s.mail.Send([]string{s.notifyTo}, subject, body); err != nil {
		log.Printf("[leads] notification mail failed: %v", err)
	}
}
