// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reclutahq/recluta-backend/internal/admin"
	"github.com/reclutahq/recluta-backend/internal/application"
	"github.com/reclutahq/recluta-backend/internal/assignment"
	"github.com/reclutahq/recluta-backend/internal/auth"
	"github.com/reclutahq/recluta-backend/internal/catalog"
	"github.com/reclutahq/recluta-backend/internal/config"
	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/health"
	"github.com/reclutahq/recluta-backend/internal/job"
	"github.com/reclutahq/recluta-backend/internal/ledger"
	"github.com/reclutahq/recluta-backend/internal/middleware"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/server"
	"github.com/reclutahq/recluta-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	var dispatcher notify.Dispatcher
	var amqpDispatcher *notify.AMQPDispatcher
	if cfg.AMQP.Enabled {
		amqpDispatcher, err = notify.NewAMQPDispatcher(cfg.AMQP, logger)
		if err != nil {
			return err
		}
		dispatcher = amqpDispatcher
		logger.Info("AMQP dispatcher connected", "exchange", cfg.AMQP.Exchange)
	} else {
		dispatcher = notify.NewLogDispatcher(logger)
	}

	pol := policy.New()

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	catalogRepo := catalog.NewRepository(db.DB)
	catalogSvc := catalog.NewService(catalogRepo, cfg.Pricing.DefaultCredits)
	catalogHandler := catalog.NewHandler(catalogSvc)

	ledgerRepo := ledger.NewRepository(db.DB)
	ledgerSvc := ledger.NewService(ledgerRepo, pol, dispatcher)
	ledgerHandler := ledger.NewHandler(ledgerSvc)

	jobSvc := job.NewService(
		job.NewRepository(db.DB, ledgerRepo),
		catalogSvc,
		pol,
		dispatcher,
		cfg.Jobs.EditWindow,
	)
	jobHandler := job.NewHandler(jobSvc)

	assignmentSvc := assignment.NewService(
		assignment.NewRepository(db.DB),
		jobSvc,
		pol,
		dispatcher,
		db.DB,
		cfg.Jobs.FollowUpDays,
	)
	assignmentHandler := assignment.NewHandler(assignmentSvc)

	applicationSvc := application.NewService(
		application.NewRepository(db.DB),
		jobSvc,
		assignmentSvc,
		pol,
		dispatcher,
		cfg.Jobs.FollowUpDays,
	)
	applicationHandler := application.NewHandler(applicationSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	optionalAuth := middleware.OptionalAuth(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		jobHandler.RegisterRoutes(r, authenticator, optionalAuth)
		applicationHandler.RegisterRoutes(r, authenticator, optionalAuth)
		assignmentHandler.RegisterRoutes(r, authenticator)
		assignmentHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		ledgerHandler.RegisterRoutes(r, authenticator)
		ledgerHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		catalogHandler.RegisterRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if amqpDispatcher != nil {
		if err := amqpDispatcher.Close(); err != nil {
			logger.Error("amqp close error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
