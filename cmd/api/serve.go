// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/rgrams-coder/aicmmlr/internal/admin"
	"github.com/rgrams-coder/aicmmlr/internal/auth"
	"github.com/rgrams-coder/aicmmlr/internal/billing"
	"github.com/rgrams-coder/aicmmlr/internal/blob"
	"github.com/rgrams-coder/aicmmlr/internal/config"
	"github.com/rgrams-coder/aicmmlr/internal/consultancy"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/events"
	"github.com/rgrams-coder/aicmmlr/internal/feedback"
	"github.com/rgrams-coder/aicmmlr/internal/health"
	"github.com/rgrams-coder/aicmmlr/internal/library"
	"github.com/rgrams-coder/aicmmlr/internal/minerals"
	"github.com/rgrams-coder/aicmmlr/internal/notes"
	"github.com/rgrams-coder/aicmmlr/internal/server"
	"github.com/rgrams-coder/aicmmlr/internal/user"
	"github.com/rgrams-coder/aicmmlr/internal/visitor"
)

const drainDelay = 5 * time.Second

// resources closes what serve opened, newest first, whether startup finished
// or not.
type resources struct {
	logger  *slog.Logger
	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

func (r *resources) add(name string, fn func() error) {
	r.closers = append(r.closers, namedCloser{name, fn})
}

func (r *resources) closeAll() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		c := r.closers[i]
		if err := c.close(); err != nil {
			r.logger.Error("close failed", "resource", c.name, "error", err)
		}
	}
}

// services is everything the routes need.
type services struct {
	jwt         *auth.JWTManager
	auth        *auth.Service
	users       *user.Service
	library     *library.Service
	consultancy *consultancy.Service
	billing     *billing.Service
	feedback    *feedback.Service
	notes       *notes.Service
	minerals    *minerals.Service
	visitors    *visitor.Counter
	admin       *admin.Handler
	health      *health.Handler
	store       blob.Store
}

func serve(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	res := &resources{logger: logger}
	defer res.closeAll()

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App, "api")
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		//nolint:errcheck // a disabled exporter cannot fail
		telemetry, _ = core.NewTelemetry(ctx, config.OtelConfig{}, cfg.App, "api")
	}
	res.add("telemetry", func() error { return telemetry.Shutdown(context.Background()) })

	svc, redis, err := wire(ctx, cfg, logger, res)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: svc.health,
		Logger:        logger,
	})
	mountRoutes(srv.Router(), cfg, svc, redis, telemetry.Tracer, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout+drainDelay+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// wire connects the backing stores and builds the services on top of them.
func wire(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	res *resources,
) (*services, *core.Redis, error) {
	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	res.add("database", db.Close)
	logger.Info("database connected", "max_open_conns", cfg.Database.MaxOpenConns)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(cfg.Database.URL); err != nil {
			return nil, nil, err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	res.add("redis", redis.Close)

	jwt, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("signing key loaded", "algorithm", "ES256", "key_id", jwt.GetKeyID())

	store, err := blob.New(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("blob storage ready", "driver", cfg.Storage.Driver)

	publisher, err := events.New(cfg.Events, logger)
	if err != nil {
		return nil, nil, err
	}
	res.add("event publisher", publisher.Close)

	users := user.NewService(user.NewRepository(db.DB), cfg.Library.TrialPeriod)
	cases := consultancy.NewService(consultancy.NewRepository(db.DB), users, store, publisher, logger)
	visitors := visitor.NewCounter(redis.Client)

	deps := []health.Dependency{
		{Name: "database", Checker: db},
		{Name: "redis", Checker: redis},
	}
	if broker, ok := publisher.(health.Checker); ok {
		deps = append(deps, health.Dependency{Name: "broker", Checker: broker, Optional: true})
	}

	return &services{
		jwt:         jwt,
		auth:        auth.NewService(jwt, users, publisher),
		users:       users,
		library:     library.NewService(library.NewRepository(db.DB), users, store, logger),
		consultancy: cases,
		billing: billing.NewService(billing.ServiceConfig{
			Repository:         billing.NewRepository(db.DB),
			Orders:             billing.NewOrderStore(redis.Client, cfg.Payment.OrderTTL),
			Accounts:           users,
			Cases:              cases,
			Publisher:          publisher,
			Logger:             logger,
			Payment:            cfg.Payment,
			SubscriptionPeriod: cfg.Library.SubscriptionPeriod,
		}),
		feedback: feedback.NewService(feedback.NewRepository(db.DB), users, publisher, logger),
		notes:    notes.NewService(notes.NewRepository(db.DB)),
		minerals: minerals.NewService(minerals.NewRepository(db.DB), redis.Client, logger),
		visitors: visitors,
		admin: admin.NewHandler(admin.HandlerConfig{
			DBStats:    db.Stats,
			RedisStats: redis.PoolStats,
			DBPing:     db.Ping,
			RedisPing:  redis.Ping,
			Overview:   admin.NewRepository(db.DB),
			Visitors:   visitors,
		}),
		health: health.NewHandler(deps...),
		store:  store,
	}, redis, nil
}
