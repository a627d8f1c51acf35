package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuwebai/tuweb-backend/config"
	"github.com/tuwebai/tuweb-backend/internal/api/http/routes"
	"github.com/tuwebai/tuweb-backend/internal/auth"
	"github.com/tuwebai/tuweb-backend/internal/bootstrap"
	"github.com/tuwebai/tuweb-backend/internal/mailer"
	"github.com/tuwebai/tuweb-backend/internal/payments/mercadopago"
	"github.com/tuwebai/tuweb-backend/internal/payments/reconcile"
	paymentsrepo "github.com/tuwebai/tuweb-backend/internal/payments/repository"
	paymentssvc "github.com/tuwebai/tuweb-backend/internal/payments/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authClient, fsClient, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fsClient.Close()

	var pool *pgxpool.Pool
	if cfg.Database.URL != "" {
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.URL})
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
	} else {
		log.Println("DATABASE_URL not set; lead endpoints will report unavailable")
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		log.Println("SMTP_HOST not set; mail notifications disabled")
	}

	gateway := mercadopago.NewClient(cfg.MercadoPago.BaseURL, cfg.MercadoPago.AccessToken)
	payments := paymentssvc.New(
		paymentsrepo.NewPaymentRepository(fsClient),
		paymentsrepo.NewDedupeRepository(rdb),
		gateway,
		cfg.App.Domain,
	)

	scheduler := reconcile.NewScheduler(payments)
	scheduler.Start()
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(routes.Deps{
		Cfg:       cfg,
		DB:        pool,
		Firestore: fsClient,
		Redis:     rdb,
		Verifier:  authClient,
		Payments:  payments,
		Mailer:    mail,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s (env=%s)", cfg.Server.Port, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
