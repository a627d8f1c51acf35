package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tuwebai/tuweb-backend/internal/tickets/domain"
)

const ticketsCollection = "tickets"

// TicketRepository persists support tickets in Firestore.
type TicketRepository struct {
	client *firestore.Client
}

func NewTicketRepository(client *firestore.Client) *TicketRepository {
	return &TicketRepository{client: client}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.StatusOpen
	}
	if t.Priority == "" {
		t.Priority = "normal"
	}
	if t.Responses == nil {
		t.Responses = []domain.TicketResponse{}
	}

	if _, err := r.client.Collection(ticketsCollection).Doc(t.ID).Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	snap, err := r.client.Collection(ticketsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get ticket %s: %w", id, err)
	}

	var t domain.SupportTicket
	if err := snap.DataTo(&t); err != nil {
		return nil, fmt.Errorf("decode ticket %s: %w", id, err)
	}
	t.ID = snap.Ref.ID
	return &t, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]domain.SupportTicket, error) {
	iter := r.client.Collection(ticketsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list tickets for %s: %w", userID, err)
	}

	out := make([]domain.SupportTicket, 0, len(snaps))
	for _, snap := range snaps {
		var t domain.SupportTicket
		if err := snap.DataTo(&t); err != nil {
			return nil, fmt.Errorf("decode ticket %s: %w", snap.Ref.ID, err)
		}
		t.ID = snap.Ref.ID
		out = append(out, t)
	}
	return out, nil
}

func (r *TicketRepository) SetStatus(ctx context.Context, id, newStatus string) error {
	_, err := r.client.Collection(ticketsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set ticket %s status: %w", id, err)
	}
	return nil
}

// AppendResponse adds one response to the ordered list.
func (r *TicketRepository) AppendResponse(ctx context.Context, id string, resp domain.TicketResponse) error {
	resp.CreatedAt = time.Now().UTC()
	_, err := r.client.Collection(ticketsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "responses", Value: firestore.ArrayUnion(resp)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("append response to ticket %s: %w", id, err)
	}
	return nil
}
