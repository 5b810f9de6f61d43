// AngelaMos | 2026
// minerals.go

package minerals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

const cacheTTL = 10 * time.Minute

type Mineral struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Quality     string  `db:"quality"`
	RoyaltyRate float64 `db:"royalty_rate"`
}

func (m *Mineral) ToModel() model.Mineral {
	return model.Mineral{
		ID:          m.ID,
		Name:        m.Name,
		Quality:     m.Quality,
		RoyaltyRate: m.RoyaltyRate,
	}
}

type Repository interface {
	List(ctx context.Context) ([]Mineral, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Mineral, error) {
	query := `
		SELECT id, name, quality, royalty_rate::float8 AS royalty_rate
		FROM minerals ORDER BY name, quality`

	var out []Mineral
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list minerals: %w", err)
	}
	return out, nil
}

// Service serves the royalty table through a read-through Redis cache. The
// table only changes with a migration, so a stale entry ages out on its own.
type Service struct {
	repo   Repository
	rdb    *redis.Client
	logger *slog.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, rdb: rdb, logger: logger}
}

func cacheKey() string {
	return core.Key("minerals", "all")
}

func (s *Service) List(ctx context.Context) ([]model.Mineral, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, cacheKey()).Bytes()
		switch {
		case err == nil:
			var cached []model.Mineral
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.WarnContext(ctx, "mineral cache read failed", "error", err)
		}
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Mineral, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToModel())
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, cacheKey(), raw, cacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "mineral cache write failed", "error", err)
			}
		}
	}

	return out, nil
}
