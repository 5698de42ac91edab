package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/lushka-backend/api/controllers"
	"github.com/angelmondragon/lushka-backend/api/middleware"
	"github.com/angelmondragon/lushka-backend/api/routes"
	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/internal/checkout"
	"github.com/angelmondragon/lushka-backend/internal/recommendation"
	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/angelmondragon/lushka-backend/pkg/db"
	"github.com/angelmondragon/lushka-backend/pkg/gemini"
	"github.com/angelmondragon/lushka-backend/pkg/instance"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/metrics"
	"github.com/angelmondragon/lushka-backend/pkg/migrate"
	"github.com/angelmondragon/lushka-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Environment: cfg.App.Env,
		Format:      cfg.App.LogFormat,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	readiness := map[string]controllers.Pinger{}

	var dbClient *db.Client
	if cfg.DB.Enabled() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		readiness["database"] = dbClient

		if err := migrate.MaybeAutoMigrate(ctx, cfg, logg, dbClient, migrate.DefaultDir); err != nil {
			logg.Error(ctx, "migrate.auto_failed", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "database not configured, recommendation history kept in memory")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		readiness["redis"] = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, cart snapshots and rate limits kept in memory")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefront(registry)

	products := catalog.Default()

	var snapshots cart.SnapshotStore = cart.NewMemoryStore(cfg.Cart.KeyPrefix, cfg.Cart.FreshnessWindow)
	var limiter middleware.RateLimiter = middleware.NewMemoryLimiter(nil)
	if redisClient != nil {
		redisStore, err := cart.NewRedisStore(redisClient, cfg.Cart.KeyPrefix, cfg.Cart.FreshnessWindow)
		if err != nil {
			logg.Error(ctx, "failed to create cart snapshot store", err)
			os.Exit(1)
		}
		snapshots = redisStore
		limiter = redisClient
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Catalog:         products,
		Snapshots:       snapshots,
		FreshnessWindow: cfg.Cart.FreshnessWindow,
		MaxSessions:     cfg.Cart.MaxSessions,
		Logger:          logg,
		Metrics:         storefrontMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	var advisor *recommendation.Advisor
	if cfg.Advisor.Enabled {
		gen, err := gemini.New(ctx, cfg.Advisor)
		if err != nil {
			logg.Error(ctx, "failed to create advisor client", err)
			os.Exit(1)
		}
		advisor = recommendation.NewAdvisor(gen, products)
		logg.Info(logg.WithField(ctx, "model", gen.Model()), "recommendation advisor enabled")
	}

	var history recommendation.History = recommendation.NewMemoryHistory()
	if dbClient != nil {
		history = recommendation.NewRepository(dbClient.DB())
	}

	recommendationService, err := recommendation.NewService(recommendation.ServiceParams{
		Catalog:     products,
		Recommender: recommendation.NewEngine(recommendation.NewRules(products), advisor, logg, storefrontMetrics),
		History:     history,
		Cart:        cartService,
		Delay:       cfg.Quiz.ProcessingDelay,
		IdleTTL:     cfg.Quiz.IdleTTL,
		MaxSessions: cfg.Quiz.MaxSessions,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create recommendation service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Config:  cfg.WhatsApp,
		Carts:   cartService,
		Logger:  logg,
		Metrics: storefrontMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, registry, storefrontMetrics, limiter, readiness, routes.Services{
			Catalog:         products,
			Cart:            cartService,
			Recommendations: recommendationService,
			Checkout:        checkoutService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logg.Info(serverCtx, "shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	for i := len(closers) - 1; i >= 0; i-- {
		shutdownErr = multierr.Append(shutdownErr, closers[i]())
	}
	if shutdownErr != nil {
		logg.Error(serverCtx, "shutdown completed with errors", shutdownErr)
		exitCode = 1
	} else {
		logg.Info(serverCtx, "api server stopped")
	}

	cancel()
	stop()
	os.Exit(exitCode)
}
