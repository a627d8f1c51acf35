package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/tuwebai/tuweb-backend/internal/projects/domain"
)

const projectsCollection = "projects"

// ProjectRepository persists projects in Firestore.
type ProjectRepository struct {
	client *firestore.Client
}

func NewProjectRepository(client *firestore.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.client.Collection(projectsCollection).Doc(p.ID).Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// GetActiveByUser returns the user's current active project. The dashboard
// shows one project at a time; the newest active one wins.
func (r *ProjectRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Project, error) {
	iter := r.client.Collection(projectsCollection).
		Where("userId", "==", userID).
		Where("status", "==", domain.StatusActive).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("query active project for %s: %w", userID, err)
	}
	if len(snaps) == 0 {
		return nil, domain.ErrNotFound
	}

	var p domain.Project
	if err := snaps[0].DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	p.ID = snaps[0].Ref.ID
	return &p, nil
}

