package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Reconciler is the payment-service slice the scheduler drives.
type Reconciler interface {
	ReconcilePending(ctx context.Context, maxAge time.Duration, limit int) error
}

const (
	staleAfter = time.Hour
	batchSize  = 50
)

type Scheduler struct {
	payments Reconciler
	cron     *cron.Cron
}

func NewScheduler(payments Reconciler) *Scheduler {
	return &Scheduler{payments: payments}
}

// Start schedules the pending-payment sweep every 15 minutes. The sweep
// covers webhook deliveries the gateway never managed to land.
func (s *Scheduler) Start() {
	c := cron.New()

	_, err := c.AddFunc("*/15 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.payments.ReconcilePending(ctx, staleAfter, batchSize); err != nil {
			log.Printf("[reconcile] sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (payment reconciliation every 15m)")
	c.Start()
	s.cron = c
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
