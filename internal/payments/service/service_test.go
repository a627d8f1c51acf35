package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
)

type fakeStore struct {
	payments    map[string]*domain.Payment
	setStatuses []string
	failSet     bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{payments: map[string]*domain.Payment{}}
}

func (f *fakeStore) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	cp := *p
	cp.ID = fmt.Sprintf("pay-%d", len(f.payments)+1)
	f.payments[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeStore) GetByGatewayID(_ context.Context, gatewayID string) (*domain.Payment, error) {
	for _, p := range f.payments {
		if p.GatewayID == gatewayID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) GetByExternalReference(_ context.Context, ref string) (*domain.Payment, error) {
	if p, ok := f.payments[ref]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) ListByUser(_ context.Context, userID string, _ int) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) SetStatus(_ context.Context, id, newStatus, gatewayID string) error {
	if f.failSet {
		return fmt.Errorf("firestore unavailable")
	}
	p, ok := f.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Status != domain.StatusCompleted {
		p.Status = newStatus
	}
	if gatewayID != "" {
		p.GatewayID = gatewayID
	}
	f.setStatuses = append(f.setStatuses, id+":"+newStatus)
	return nil
}

func (f *fakeStore) SetPreferenceID(_ context.Context, id, preferenceID string) error {
	p, ok := f.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PreferenceID = preferenceID
	return nil
}

func (f *fakeStore) ListStalePending(_ context.Context, olderThan time.Time, _ int) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		if p.Status == domain.StatusPending && p.CreatedAt.Before(olderThan) {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeDeduper struct {
	seen     map[string]bool
	released []string
}

func newFakeDeduper() *fakeDeduper { return &fakeDeduper{seen: map[string]bool{}} }

func (f *fakeDeduper) Acquire(_ context.Context, paymentID string) (bool, error) {
	if f.seen[paymentID] {
		return false, nil
	}
	f.seen[paymentID] = true
	return true, nil
}

func (f *fakeDeduper) Release(_ context.Context, paymentID string) error {
	delete(f.seen, paymentID)
	f.released = append(f.released, paymentID)
	return nil
}

type fakeGateway struct {
	payments    map[string]*domain.GatewayPayment
	prefErr     error
	fetchCalls  int
	createCalls int
}

func (f *fakeGateway) CreatePreference(_ context.Context, req *domain.CheckoutRequest, externalReference, _ string) (*domain.Preference, error) {
	f.createCalls++
	if f.prefErr != nil {
		return nil, f.prefErr
	}
	return &domain.Preference{ID: "pref-" + externalReference, InitPoint: "https://mp.example/init"}, nil
}

func (f *fakeGateway) GetPayment(_ context.Context, paymentID string) (*domain.GatewayPayment, error) {
	f.fetchCalls++
	gp, ok := f.payments[paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return gp, nil
}

func webhookEvent(id string) *domain.WebhookEvent {
	ev := &domain.WebhookEvent{Type: "payment"}
	ev.Data.ID = id
	return ev
}

func TestHandleWebhookEvent_Idempotent(t *testing.T) {
	store := newFakeStore()
	dedupe := newFakeDeduper()
	gateway := &fakeGateway{payments: map[string]*domain.GatewayPayment{}}
	svc := New(store, dedupe, gateway, "https://tuweb-ai.com")

	p, err := store.Create(context.Background(), &domain.Payment{
		UserID: "u1", Amount: 100, Currency: "ARS", Status: domain.StatusPending,
	})
	require.NoError(t, err)

	gateway.payments["777"] = &domain.GatewayPayment{
		ID: 777, Status: "approved", ExternalReference: p.ID,
	}

	require.NoError(t, svc.HandleWebhookEvent(context.Background(), webhookEvent("777")))
	assert.Equal(t, domain.StatusCompleted, store.payments[p.ID].Status)
	assert.Len(t, store.setStatuses, 1)

	// Replay: acknowledged as duplicate, no second transition.
	err = svc.HandleWebhookEvent(context.Background(), webhookEvent("777"))
	assert.ErrorIs(t, err, domain.ErrDuplicateEvent)
	assert.Len(t, store.setStatuses, 1)
	assert.Equal(t, 1, gateway.fetchCalls)
}

func TestHandleWebhookEvent_ReleasesMarkerOnFailure(t *testing.T) {
	store := newFakeStore()
	dedupe := newFakeDeduper()
	gateway := &fakeGateway{payments: map[string]*domain.GatewayPayment{}}
	svc := New(store, dedupe, gateway, "https://tuweb-ai.com")

	p, err := store.Create(context.Background(), &domain.Payment{
		UserID: "u1", Amount: 100, Currency: "ARS", Status: domain.StatusPending,
	})
	require.NoError(t, err)
	gateway.payments["888"] = &domain.GatewayPayment{ID: 888, Status: "approved", ExternalReference: p.ID}

	store.failSet = true
	err = svc.HandleWebhookEvent(context.Background(), webhookEvent("888"))
	require.Error(t, err)
	assert.Contains(t, dedupe.released, "888")

	// The gateway retry now succeeds.
	store.failSet = false
	require.NoError(t, svc.HandleWebhookEvent(context.Background(), webhookEvent("888")))
	assert.Equal(t, domain.StatusCompleted, store.payments[p.ID].Status)
}

func TestHandleWebhookEvent_IgnoresOtherTopics(t *testing.T) {
	store := newFakeStore()
	dedupe := newFakeDeduper()
	gateway := &fakeGateway{payments: map[string]*domain.GatewayPayment{}}
	svc := New(store, dedupe, gateway, "https://tuweb-ai.com")

	ev := &domain.WebhookEvent{Type: "merchant_order"}
	ev.Data.ID = "999"
	require.NoError(t, svc.HandleWebhookEvent(context.Background(), ev))
	assert.Empty(t, dedupe.seen)
	assert.Zero(t, gateway.fetchCalls)
}

func TestHandleWebhookEvent_MissingDataID(t *testing.T) {
	svc := New(newFakeStore(), newFakeDeduper(), &fakeGateway{}, "")
	err := svc.HandleWebhookEvent(context.Background(), webhookEvent(""))
	assert.Error(t, err)
}

func TestHandleWebhookEvent_UnknownPaymentAcknowledged(t *testing.T) {
	store := newFakeStore()
	dedupe := newFakeDeduper()
	gateway := &fakeGateway{payments: map[string]*domain.GatewayPayment{
		"555": {ID: 555, Status: "approved", ExternalReference: "never-created"},
	}}
	svc := New(store, dedupe, gateway, "")

	// A payment we never initiated is logged and acknowledged, and the
	// marker stays so replays stay cheap.
	require.NoError(t, svc.HandleWebhookEvent(context.Background(), webhookEvent("555")))
	assert.Empty(t, store.setStatuses)
	assert.True(t, dedupe.seen["555"])
}

func TestCreateCheckout(t *testing.T) {
	t.Run("creates pending payment then preference", func(t *testing.T) {
		store := newFakeStore()
		gateway := &fakeGateway{payments: map[string]*domain.GatewayPayment{}}
		svc := New(store, newFakeDeduper(), gateway, "https://tuweb-ai.com")

		pref, p, err := svc.CreateCheckout(context.Background(), &domain.CheckoutRequest{
			Title: "Plan Pro", Amount: 49999, UserID: "u1",
		})
		require.NoError(t, err)
		assert.Equal(t, "pref-"+p.ID, pref.ID)
		assert.Equal(t, domain.StatusPending, store.payments[p.ID].Status)
		assert.Equal(t, pref.ID, store.payments[p.ID].PreferenceID, "preference id persisted")
		assert.Equal(t, "ARS", p.Currency)
	})

	t.Run("rejects invalid request before any side effect", func(t *testing.T) {
		store := newFakeStore()
		gateway := &fakeGateway{}
		svc := New(store, newFakeDeduper(), gateway, "")

		_, _, err := svc.CreateCheckout(context.Background(), &domain.CheckoutRequest{Amount: -1})
		require.Error(t, err)
		assert.Empty(t, store.payments)
		assert.Zero(t, gateway.createCalls)
	})
}

func TestReconcilePending(t *testing.T) {
	store := newFakeStore()
	gateway := &fakeGateway{payments: map[string]*domain.GatewayPayment{}}
	svc := New(store, newFakeDeduper(), gateway, "")

	stale, err := store.Create(context.Background(), &domain.Payment{
		UserID: "u1", Amount: 10, Currency: "ARS", Status: domain.StatusPending,
	})
	require.NoError(t, err)
	store.payments[stale.ID].GatewayID = "321"
	store.payments[stale.ID].CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	gateway.payments["321"] = &domain.GatewayPayment{ID: 321, Status: "rejected"}

	require.NoError(t, svc.ReconcilePending(context.Background(), time.Hour, 50))
	assert.Equal(t, domain.StatusFailed, store.payments[stale.ID].Status)
}

func TestParseGatewayID(t *testing.T) {
	got, err := ParseGatewayID("123456789")
	require.NoError(t, err)
	assert.Equal(t, "123456789", got)

	for _, raw := range []string{"", "abc", "12.5", "12abc"} {
		_, err := ParseGatewayID(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}
