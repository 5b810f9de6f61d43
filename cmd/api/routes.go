// AngelaMos | 2026
// routes.go

package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	redis_rate "github.com/go-redis/redis_rate/v10"
	"go.opentelemetry.io/otel/trace"

	"github.com/rgrams-coder/aicmmlr/internal/auth"
	"github.com/rgrams-coder/aicmmlr/internal/billing"
	"github.com/rgrams-coder/aicmmlr/internal/blob"
	"github.com/rgrams-coder/aicmmlr/internal/config"
	"github.com/rgrams-coder/aicmmlr/internal/consultancy"
	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/feedback"
	"github.com/rgrams-coder/aicmmlr/internal/library"
	"github.com/rgrams-coder/aicmmlr/internal/middleware"
	"github.com/rgrams-coder/aicmmlr/internal/minerals"
	"github.com/rgrams-coder/aicmmlr/internal/notes"
	"github.com/rgrams-coder/aicmmlr/internal/user"
	"github.com/rgrams-coder/aicmmlr/internal/visitor"
)

func mountRoutes(
	router chi.Router,
	cfg *config.Config,
	svc *services,
	redis *core.Redis,
	tracer trace.Tracer,
	logger *slog.Logger,
) {
	router.Use(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Tracing(tracer),
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit:      windowLimit(cfg.RateLimit),
			BypassFunc: isProbe,
			FailOpen:   true,
		}).Handler,
		middleware.SecurityHeaders(cfg.IsProduction()),
		middleware.CORS(cfg.CORS),
	)

	svc.health.RegisterRoutes(router)
	router.Get("/.well-known/jwks.json", svc.jwt.GetJWKSHandler())
	if local, ok := svc.store.(*blob.LocalStore); ok {
		mountFiles(router, cfg.Storage.PublicURL, local.Root())
	}

	// Credential and anonymous form endpoints share a tight per-endpoint limit.
	strict := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:   middleware.PerMinute(10, 5),
		KeyFunc: middleware.KeyByUserAndEndpoint,
	}).Handler

	authenticate := middleware.Authenticator(svc.jwt)
	tiered := middleware.TieredRateLimiter(redis.Client, middleware.DefaultTiers)
	authed := func(next http.Handler) http.Handler { return authenticate(tiered(next)) }
	adminOnly := middleware.RequireAdmin
	maxUpload := cfg.Server.MaxUploadBytes

	auth.NewHandler(svc.auth).RegisterRoutes(router, strict)

	users := user.NewHandler(svc.users)
	users.RegisterRoutes(router, authed)
	users.RegisterAdminRoutes(router, authed, adminOnly)

	library.NewHandler(svc.library, maxUpload).RegisterRoutes(router, authed, adminOnly)
	consultancy.NewHandler(svc.consultancy, maxUpload).RegisterRoutes(router, authed, adminOnly)
	billing.NewHandler(svc.billing).RegisterRoutes(router, authed)
	feedback.NewHandler(svc.feedback).RegisterRoutes(router, authed, adminOnly, strict)
	notes.NewHandler(svc.notes).RegisterRoutes(router, authed)
	minerals.NewHandler(svc.minerals).RegisterRoutes(router, authed)
	visitor.NewHandler(svc.visitors).RegisterRoutes(router, strict)
	svc.admin.RegisterRoutes(router, authenticate, adminOnly)
}

func isProbe(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/livez", "/readyz":
		return true
	}
	return false
}

func windowLimit(cfg config.RateLimitConfig) redis_rate.Limit {
	period := cfg.Window
	if period <= 0 {
		period = time.Minute
	}
	return redis_rate.Limit{Rate: cfg.Requests, Burst: cfg.Burst, Period: period}
}

// mountFiles serves the local blob directory under the path of publicURL so
// stored document links resolve against this server.
func mountFiles(r chi.Router, publicURL, root string) {
	prefix := "/files"
	if u, err := url.Parse(publicURL); err == nil && u.Path != "" && u.Path != "/" {
		prefix = strings.TrimSuffix(u.Path, "/")
	}
	r.Get(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(root))).ServeHTTP)
}
