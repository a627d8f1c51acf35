package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuwebai/tuweb-backend/internal/leads/domain"
)

var ErrNotConfigured = errors.New("lead store not configured")

// LeadRepository persists inbound leads in Postgres. All tables are
// append-only; newsletter signups upsert on email.
type LeadRepository struct {
	db *pgxpool.Pool
}

// NewLeadRepository accepts a nil pool; every call then fails with
// ErrNotConfigured instead of panicking.
func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) CreateContact(ctx context.Context, m *domain.ContactMessage) (string, error) {
	if r.db == nil {
		return "", ErrNotConfigured
	}
	const q = `
insert into contact_messages (name, email, company, phone, message, source, created_at)
values ($1, $2, nullif($3,''), nullif($4,''), $5, nullif($6,''), now())
returning id::text;
`
	var id string
	err := r.db.QueryRow(ctx, q, m.Name, strings.ToLower(m.Email), m.Company, m.Phone, m.Message, m.Source).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *LeadRepository) SubscribeNewsletter(ctx context.Context, s *domain.NewsletterSubscriber) (string, error) {
	if r.db == nil {
		return "", ErrNotConfigured
	}
	const q = `
insert into newsletter_subscribers (email, source, created_at)
values ($1, nullif($2,''), now())
on conflict (email) do update
set source = coalesce(excluded.source, newsletter_subscribers.source)
returning id::text;
`
	var id string
	err := r.db.QueryRow(ctx, q, strings.ToLower(s.Email), s.Source).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *LeadRepository) CreateProposal(ctx context.Context, p *domain.ProposalRequest) (string, error) {
	if r.db == nil {
		return "", ErrNotConfigured
	}
	const q = `
insert into proposal_requests (name, email, company, project_type, budget, details, created_at)
values ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), $6, now())
returning id::text;
`
	var id string
	err := r.db.QueryRow(ctx, q, p.Name, strings.ToLower(p.Email), p.Company, p.ProjectType, p.Budget, p.Details).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *LeadRepository) CreateApplication(ctx context.Context, a *domain.JobApplication) (string, error) {
	if r.db == nil {
		return "", ErrNotConfigured
	}
	const q = `
insert into job_applications (name, email, position, linkedin, resume_url, message, created_at)
values ($1, $2, $3, nullif($4,''), nullif($5,''), nullif($6,''), now())
returning id::text;
`
	var id string
	err := r.db.QueryRow(ctx, q, a.Name, strings.ToLower(a.Email), a.Position, a.LinkedIn, a.ResumeURL, a.Message).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
