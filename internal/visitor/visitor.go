// AngelaMos | 2026
// visitor.go

package visitor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rgrams-coder/aicmmlr/internal/core"
	"github.com/rgrams-coder/aicmmlr/internal/model"
)

var ErrMissingVisitor = errors.New("visitor id is required")

// Counter keeps the landing page counters in Redis: a plain counter for
// visits and a HyperLogLog for distinct visitor ids.
type Counter struct {
	rdb *redis.Client
}

func NewCounter(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

func totalKey() string  { return core.Key("visitors", "total") }
func uniqueKey() string { return core.Key("visitors", "unique") }

func (c *Counter) Track(ctx context.Context, visitorID string) (model.VisitorStats, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return model.VisitorStats{}, fmt.Errorf("track visitor: %w", ErrMissingVisitor)
	}

	pipe := c.rdb.TxPipeline()
	total := pipe.Incr(ctx, totalKey())
	pipe.PFAdd(ctx, uniqueKey(), visitorID)
	unique := pipe.PFCount(ctx, uniqueKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return model.VisitorStats{}, fmt.Errorf("track visitor: %w", err)
	}

	return model.VisitorStats{
		TotalVisits:    total.Val(),
		UniqueVisitors: unique.Val(),
	}, nil
}

func (c *Counter) Stats(ctx context.Context) (model.VisitorStats, error) {
	total, err := c.rdb.Get(ctx, totalKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return model.VisitorStats{}, fmt.Errorf("visitor stats: %w", err)
	}

	unique, err := c.rdb.PFCount(ctx, uniqueKey()).Result()
	if err != nil {
		return model.VisitorStats{}, fmt.Errorf("visitor stats: %w", err)
	}

	return model.VisitorStats{TotalVisits: total, UniqueVisitors: unique}, nil
}
