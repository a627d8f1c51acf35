package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
)

const paymentsCollection = "payments"

// PaymentRepository persists payment records in Firestore.
type PaymentRepository struct {
	client *firestore.Client
}

func NewPaymentRepository(client *firestore.Client) *PaymentRepository {
	return &PaymentRepository{client: client}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.StatusPending
	}

	if _, err := r.client.Collection(paymentsCollection).Doc(p.ID).Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	snap, err := r.client.Collection(paymentsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}
	return decode(snap)
}

func (r *PaymentRepository) GetByGatewayID(ctx context.Context, gatewayID string) (*domain.Payment, error) {
	if gatewayID == "" {
		return nil, domain.ErrNotFound
	}
	iter := r.client.Collection(paymentsCollection).
		Where("gatewayId", "==", gatewayID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("query payment by gateway id %s: %w", gatewayID, err)
	}
	if len(snaps) == 0 {
		return nil, domain.ErrNotFound
	}
	return decode(snaps[0])
}

// GetByExternalReference resolves the local record a checkout preference
// stamped into the gateway payment.
func (r *PaymentRepository) GetByExternalReference(ctx context.Context, ref string) (*domain.Payment, error) {
	return r.GetByID(ctx, ref)
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Payment, error) {
	q := r.client.Collection(paymentsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list payments for %s: %w", userID, err)
	}

	out := make([]domain.Payment, 0, len(snaps))
	for _, snap := range snaps {
		p, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// SetStatus applies a webhook-driven transition. A completed payment is
// never downgraded.
func (r *PaymentRepository) SetStatus(ctx context.Context, id, newStatus, gatewayID string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == domain.StatusCompleted && newStatus != domain.StatusCompleted {
		return nil
	}

	updates := []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now().UTC()},
	}
	if gatewayID != "" {
		updates = append(updates, firestore.Update{Path: "gatewayId", Value: gatewayID})
	}
	if _, err := r.client.Collection(paymentsCollection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("set payment %s status: %w", id, err)
	}
	return nil
}

// SetPreferenceID stamps the checkout preference that produced the record.
func (r *PaymentRepository) SetPreferenceID(ctx context.Context, id, preferenceID string) error {
	updates := []firestore.Update{
		{Path: "preferenceId", Value: preferenceID},
		{Path: "updatedAt", Value: time.Now().UTC()},
	}
	if _, err := r.client.Collection(paymentsCollection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("set payment %s preference: %w", id, err)
	}
	return nil
}

// ListStalePending returns pending payments older than the cutoff, for the
// reconciliation job.
func (r *PaymentRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Payment, error) {
	iter := r.client.Collection(paymentsCollection).
		Where("status", "==", domain.StatusPending).
		Where("createdAt", "<", olderThan).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list stale pending payments: %w", err)
	}

	out := make([]domain.Payment, 0, len(snaps))
	for _, snap := range snaps {
		p, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func decode(snap *firestore.DocumentSnapshot) (*domain.Payment, error) {
	var p domain.Payment
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode payment %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}
