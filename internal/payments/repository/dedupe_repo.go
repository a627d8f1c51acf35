package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	eventKeyPrefix = "mp:event:" // Dedupe marker per gateway payment id: mp:event:{payment_id}
	eventTTL       = 7 * 24 * time.Hour
)

// DedupeRepository keeps durable idempotency markers for webhook deliveries
// in Redis. The marker is written before the side effect it guards; SETNX
// makes the acquire atomic under concurrent duplicate deliveries.
type DedupeRepository struct {
	client *redis.Client
}

func NewDedupeRepository(client *redis.Client) *DedupeRepository {
	return &DedupeRepository{client: client}
}

// Acquire claims the marker for a payment id. It returns false when another
// delivery already holds it.
func (r *DedupeRepository) Acquire(ctx context.Context, paymentID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(paymentID), time.Now().UTC().Format(time.RFC3339), eventTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire dedupe marker for %s: %w", paymentID, err)
	}
	return ok, nil
}

// Release drops the marker so the gateway's retry can reprocess the event.
// Called only when processing failed after a successful Acquire.
func (r *DedupeRepository) Release(ctx context.Context, paymentID string) error {
	if err := r.client.Del(ctx, r.key(paymentID)).Err(); err != nil {
		return fmt.Errorf("release dedupe marker for %s: %w", paymentID, err)
	}
	return nil
}

func (r *DedupeRepository) key(paymentID string) string {
	return eventKeyPrefix + paymentID
}
