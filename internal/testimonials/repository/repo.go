package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tuwebai/tuweb-backend/internal/testimonials/domain"
)

const testimonialsCollection = "testimonials"

// TestimonialRepository persists testimonials in Firestore.
type TestimonialRepository struct {
	client *firestore.Client
}

func NewTestimonialRepository(client *firestore.Client) *TestimonialRepository {
	return &TestimonialRepository{client: client}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Approved = false
	t.CreatedAt = time.Now().UTC()

	if _, err := r.client.Collection(testimonialsCollection).Doc(t.ID).Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return t, nil
}

// ListApproved returns testimonials cleared for public display.
func (r *TestimonialRepository) ListApproved(ctx context.Context, limit int) ([]domain.Testimonial, error) {
	q := r.client.Collection(testimonialsCollection).
		Where("approved", "==", true).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list approved testimonials: %w", err)
	}

	out := make([]domain.Testimonial, 0, len(snaps))
	for _, snap := range snaps {
		var t domain.Testimonial
		if err := snap.DataTo(&t); err != nil {
			return nil, fmt.Errorf("decode testimonial %s: %w", snap.Ref.ID, err)
		}
		t.ID = snap.Ref.ID
		out = append(out, t)
	}
	return out, nil
}

func (r *TestimonialRepository) Approve(ctx context.Context, id string) error {
	_, err := r.client.Collection(testimonialsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "approved", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("approve testimonial %s: %w", id, err)
	}
	return nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	snap, err := r.client.Collection(testimonialsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get testimonial %s: %w", id, err)
	}
	if _, err := snap.Ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete testimonial %s: %w", id, err)
	}
	return nil
}
