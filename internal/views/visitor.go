// AngelaMos | 2026
// visitor.go

package views

import (
	"context"
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/rgrams-coder/aicmmlr/internal/model"
)

type VisitorAPI interface {
	TrackVisitor(ctx context.Context, visitorID string) (model.VisitorStats, error)
	VisitorStats(ctx context.Context) (model.VisitorStats, error)
}

// Visitors records one visit per process and exposes the site counters.
// Failures never reach the user.
type Visitors struct {
	api VisitorAPI
	id  string

	once  sync.Once
	mu    sync.RWMutex
	stats model.VisitorStats
}

// NewVisitors uses visitorID as the stable visitor identity; an empty id
// gets a random one for this process.
func NewVisitors(api VisitorAPI, visitorID string) *Visitors {
	if visitorID == "" {
		visitorID = gonanoid.Must()
	}
	return &Visitors{api: api, id: visitorID}
}

func (v *Visitors) ID() string {
	return v.id
}

// Track counts this visit once; later calls only refresh the counters.
func (v *Visitors) Track(ctx context.Context) (model.VisitorStats, error) {
	var (
		stats model.VisitorStats
		err   error
		did   bool
	)
	v.once.Do(func() {
		did = true
		stats, err = v.api.TrackVisitor(ctx, v.id)
	})
	if !did {
		stats, err = v.api.VisitorStats(ctx)
	}
	if err != nil {
		return model.VisitorStats{}, fmt.Errorf("track visitor: %w", err)
	}

	v.mu.Lock()
	v.stats = stats
	v.mu.Unlock()
	return stats, nil
}

func (v *Visitors) Stats() model.VisitorStats {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.stats
}
