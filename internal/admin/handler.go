// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type VisitorStats interface {
	Stats(ctx context.Context) (model.VisitorStats, error)
}

// HandlerConfig wires the admin endpoints. Any field may be nil; the matching
// section of the response is then left empty.
type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
	Overview   Repository
	Visitors   VisitorStats
}

type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator, adminOnly)

		r.Get("/overview", h.GetOverview)
		r.Route("/stats", func(r chi.Router) {
			r.Get("/", h.GetSystemStats)
			r.Get("/db", h.GetDatabaseStats)
			r.Get("/redis", h.GetRedisStats)
			r.Get("/runtime", h.GetRuntimeStats)
		})
	})
}

type OverviewResponse struct {
	Overview
	Visitors model.VisitorStats `json:"visitors"`
}

// GetOverview combines the platform counters with the landing page visitor
// numbers.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	var resp OverviewResponse

	g, ctx := errgroup.WithContext(r.Context())
	if h.cfg.Overview != nil {
		g.Go(func() (err error) {
			resp.Overview, err = h.cfg.Overview.Overview(ctx)
			return err
		})
	}
	if h.cfg.Visitors != nil {
		g.Go(func() (err error) {
			resp.Visitors, err = h.cfg.Visitors.Stats(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	var dbUp, redisUp bool

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		dbUp = probe(ctx, h.cfg.DBPing)
		return nil
	})
	g.Go(func() error {
		redisUp = probe(ctx, h.cfg.RedisPing)
		return nil
	})
	_ = g.Wait() //nolint:errcheck // probes never fail the request

	core.OK(w, SystemStatsResponse{
		Database: DatabaseStatus{Healthy: dbUp, Stats: h.dbPool()},
		Redis:    RedisStatus{Healthy: redisUp, Stats: h.redisPool()},
		Runtime:  readRuntime(),
	})
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.dbPool())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.redisPool())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntime())
}

// probe treats a missing ping as healthy.
func probe(ctx context.Context, ping func(context.Context) error) bool {
	return ping == nil || ping(ctx) == nil
}
