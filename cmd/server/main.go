package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appbilling "github.com/ruralsoc/backend/internal/application/billing"
	appcommerce "github.com/ruralsoc/backend/internal/application/commerce"
	appengagement "github.com/ruralsoc/backend/internal/application/engagement"
	appmembership "github.com/ruralsoc/backend/internal/application/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
	"github.com/ruralsoc/backend/internal/infrastructure/auth"
	"github.com/ruralsoc/backend/internal/infrastructure/cache"
	"github.com/ruralsoc/backend/internal/infrastructure/config"
	"github.com/ruralsoc/backend/internal/infrastructure/identity"
	"github.com/ruralsoc/backend/internal/infrastructure/logger"
	"github.com/ruralsoc/backend/internal/infrastructure/payment"
	"github.com/ruralsoc/backend/internal/infrastructure/persistence"
	"github.com/ruralsoc/backend/internal/interfaces/http/handler"
	"github.com/ruralsoc/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Repositories
	chapterRepo := persistence.NewGormChapterRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	duesRepo := persistence.NewGormDuesRepository(db.DB)
	promotionRepo := persistence.NewGormPromotionRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)

	// Webhook dedup store. Redis shares state across instances; the
	// in-memory fallback is fine for a single instance because the
	// conditional settlement update stays correct without dedup.
	var dedup shared.IdempotencyStore
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
			dedup = cache.NewInMemoryIdempotencyStore()
		} else {
			dedup = store
		}
	} else {
		dedup = cache.NewInMemoryIdempotencyStore()
	}
	defer func() { _ = dedup.Close() }()

	// External services
	identityClient := identity.NewGoTrueClient(cfg.Identity)
	gateway, err := payment.NewMercadoPagoAdapter(payment.NewMercadoPagoConfig(cfg.Payment))
	if err != nil {
		return fmt.Errorf("init payment gateway: %w", err)
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	defaultChapterID := uuid.Nil
	if cfg.Quota.DefaultChapterID != "" {
		defaultChapterID, err = uuid.Parse(cfg.Quota.DefaultChapterID)
		if err != nil {
			return fmt.Errorf("quota.default_chapter_id is not a valid UUID: %w", err)
		}
	}

	// Application services
	authService := appmembership.NewAuthService(identityClient, profileRepo,
		chapterRepo, jwtService, defaultChapterID, log)
	memberService := appmembership.NewMemberService(identityClient, profileRepo, chapterRepo, log)
	accessService := appmembership.NewAccessService(profileRepo, log)
	chapterService := appmembership.NewChapterService(chapterRepo, log)
	shopService := appcommerce.NewShopService(shopRepo, chapterRepo, auditRepo,
		defaultChapterID, log)
	duesService := appbilling.NewDuesService(duesRepo, profileRepo, gateway,
		appbilling.DuesConfig{
			Amount:          decimal.NewFromFloat(cfg.Billing.DuesAmount),
			Currency:        cfg.Billing.Currency,
			DueDay:          cfg.Billing.DueDay,
			NotificationURL: cfg.Payment.NotificationURL,
			SuccessURL:      cfg.Payment.SuccessURL,
			FailureURL:      cfg.Payment.FailureURL,
			PendingURL:      cfg.Payment.PendingURL,
			Sandbox:         cfg.Payment.Sandbox,
		}, log)
	reconciler := appbilling.NewReconcilerService(duesRepo, profileRepo, gateway,
		dedup, cfg.Billing.IdempotencyTTL, log)
	engagementService := appengagement.NewEngagementService(promotionRepo, eventRepo, log)

	engine := router.New(
		router.Dependencies{
			Config:     cfg,
			Logger:     log,
			JWTService: jwtService,
			Profiles:   profileRepo,
		},
		router.Handlers{
			Auth:       handler.NewAuthHandler(authService, log),
			Member:     handler.NewMemberHandler(memberService, log),
			Chapter:    handler.NewChapterHandler(chapterService, shopService, log),
			Shop:       handler.NewShopHandler(shopService, log),
			Access:     handler.NewAccessHandler(accessService, log),
			Dues:       handler.NewDuesHandler(duesService, log),
			Webhook:    handler.NewWebhookHandler(reconciler, log),
			Engagement: handler.NewEngagementHandler(engagementService, log),
		},
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
