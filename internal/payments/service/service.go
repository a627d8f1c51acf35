package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
)

// PaymentStore is the Firestore-backed payment ledger.
type PaymentStore interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByGatewayID(ctx context.Context, gatewayID string) (*domain.Payment, error)
	GetByExternalReference(ctx context.Context, ref string) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Payment, error)
	SetStatus(ctx context.Context, id, newStatus, gatewayID string) error
	SetPreferenceID(ctx context.Context, id, preferenceID string) error
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]domain.Payment, error)
}

// Deduper holds the durable idempotency markers.
type Deduper interface {
	Acquire(ctx context.Context, paymentID string) (bool, error)
	Release(ctx context.Context, paymentID string) error
}

// Gateway is the Mercado Pago API surface the service consumes.
type Gateway interface {
	CreatePreference(ctx context.Context, req *domain.CheckoutRequest, externalReference, domainURL string) (*domain.Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.GatewayPayment, error)
}

type Service struct {
	store     PaymentStore
	deduper   Deduper
	gateway   Gateway
	domainURL string
}

func New(store PaymentStore, deduper Deduper, gateway Gateway, domainURL string) *Service {
	return &Service{store: store, deduper: deduper, gateway: gateway, domainURL: domainURL}
}

// CreateCheckout records a pending payment and creates the gateway
// preference that the frontend redirects the buyer to.
func (s *Service) CreateCheckout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Preference, *domain.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	p, err := s.store.Create(ctx, &domain.Payment{
		UserID:      req.UserID,
		ProjectID:   req.ProjectID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      domain.StatusPending,
		Description: req.Title,
	})
	if err != nil {
		return nil, nil, err
	}

	pref, err := s.gateway.CreatePreference(ctx, req, p.ID, s.domainURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create preference: %w", err)
	}

	// Best effort: remember which preference this record belongs to.
	p.PreferenceID = pref.ID
	if err := s.store.SetPreferenceID(ctx, p.ID, pref.ID); err != nil {
		log.Printf("[payments] failed to stamp preference on %s: %v", p.ID, err)
	}

	return pref, p, nil
}

// Status resolves a gateway payment id for the return page.
func (s *Service) Status(ctx context.Context, gatewayPaymentID string) (*domain.GatewayPayment, error) {
	return s.gateway.GetPayment(ctx, gatewayPaymentID)
}

func (s *Service) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Payment, error) {
	return s.store.ListByUser(ctx, userID, limit)
}

// HandleWebhookEvent processes one webhook delivery. The dedupe marker is
// claimed before any side effect; a duplicate delivery returns
// ErrDuplicateEvent so the handler can acknowledge it without reprocessing.
// On processing failure the marker is released so the gateway's retry works.
func (s *Service) HandleWebhookEvent(ctx context.Context, event *domain.WebhookEvent) error {
	if event.Type != "payment" {
		// Other topics (merchant_order etc.) are acknowledged and ignored.
		return nil
	}
	if event.Data.ID == "" {
		return fmt.Errorf("event missing data.id")
	}

	acquired, err := s.deduper.Acquire(ctx, event.Data.ID)
	if err != nil {
		return fmt.Errorf("idempotency check: %w", err)
	}
	if !acquired {
		return domain.ErrDuplicateEvent
	}

	if err := s.applyGatewayStatus(ctx, event.Data.ID); err != nil {
		if relErr := s.deduper.Release(ctx, event.Data.ID); relErr != nil {
			log.Printf("[payments] failed to release dedupe marker for %s: %v", event.Data.ID, relErr)
		}
		return err
	}
	return nil
}

func (s *Service) applyGatewayStatus(ctx context.Context, gatewayPaymentID string) error {
	gp, err := s.gateway.GetPayment(ctx, gatewayPaymentID)
	if err != nil {
		return fmt.Errorf("fetch gateway payment %s: %w", gatewayPaymentID, err)
	}

	local, err := s.findLocal(ctx, gatewayPaymentID, gp.ExternalReference)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A payment we never initiated. Log and acknowledge.
			log.Printf("[payments] no local record for gateway payment %s", gatewayPaymentID)
			return nil
		}
		return err
	}

	newStatus := domain.StatusFromGateway(gp.Status)
	if err := s.store.SetStatus(ctx, local.ID, newStatus, gatewayPaymentID); err != nil {
		return fmt.Errorf("transition payment %s to %s: %w", local.ID, newStatus, err)
	}
	log.Printf("[payments] payment %s -> %s (gateway %s)", local.ID, newStatus, gatewayPaymentID)
	return nil
}

func (s *Service) findLocal(ctx context.Context, gatewayID, externalRef string) (*domain.Payment, error) {
	p, err := s.store.GetByGatewayID(ctx, gatewayID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if externalRef == "" {
		return nil, domain.ErrNotFound
	}
	return s.store.GetByExternalReference(ctx, externalRef)
}

// ReconcilePending re-polls the gateway for payments stuck pending longer
// than maxAge. Covers webhook deliveries that never arrived.
func (s *Service) ReconcilePending(ctx context.Context, maxAge time.Duration, limit int) error {
	stale, err := s.store.ListStalePending(ctx, time.Now().UTC().Add(-maxAge), limit)
	if err != nil {
		return err
	}

	for _, p := range stale {
		if p.GatewayID == "" {
			continue
		}
		gp, err := s.gateway.GetPayment(ctx, p.GatewayID)
		if err != nil {
			log.Printf("[payments] reconcile: fetch %s failed: %v", p.GatewayID, err)
			continue
		}
		newStatus := domain.StatusFromGateway(gp.Status)
		if newStatus == p.Status {
			continue
		}
		if err := s.store.SetStatus(ctx, p.ID, newStatus, p.GatewayID); err != nil {
			log.Printf("[payments] reconcile: transition %s failed: %v", p.ID, err)
			continue
		}
		log.Printf("[payments] reconcile: payment %s -> %s", p.ID, newStatus)
	}
	return nil
}

// ParseGatewayID normalizes numeric gateway ids arriving as strings.
func ParseGatewayID(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("payment id required")
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return "", fmt.Errorf("payment id must be numeric")
	}
	return raw, nil
}
