// AngelaMos | 2026
// calculator.go

package views

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

const (
	deadRentPerHectare = 30000.0
	deadRentPeriods    = 4
	dmftRate           = 0.30
	annualInterestRate = 0.24
	cessRate           = 0.02
	managementFeeRate  = 1.0
)

type MineralsAPI interface {
	GetMinerals(ctx context.Context) ([]model.Mineral, error)
}

// DemandInput is one calculator run. Quantity is in tonnes and Area in
// hectares.
type DemandInput struct {
	Mineral  string
	Quality  string
	Quantity float64
	Area     float64
}

// Demand is the itemised government demand for one quarter.
type Demand struct {
	RoyaltyRate     float64
	Royalty         float64
	DeadRent        float64
	DMFT            float64
	Interest        float64
	NMET            float64
	ITCess          float64
	ManagementFee   float64
	EnvironmentCess float64
	Total           float64
}

// ComputeDemand applies the statutory rates to a royalty rate. Dead rent is
// the quarterly share of the annual per-hectare rent and interest is one
// month at the annual rate.
func ComputeDemand(royaltyRate, quantity, area float64) Demand {
	d := Demand{RoyaltyRate: royaltyRate}
	d.Royalty = royaltyRate * quantity
	d.DeadRent = area * deadRentPerHectare / deadRentPeriods
	d.DMFT = d.Royalty * dmftRate
	d.Interest = d.Royalty * annualInterestRate / 12
	d.NMET = d.Royalty * cessRate
	d.ITCess = d.Royalty * cessRate
	d.ManagementFee = quantity * managementFeeRate
	d.EnvironmentCess = d.Royalty * cessRate
	d.Total = d.Royalty + d.DeadRent + d.DMFT + d.Interest + d.NMET +
		d.ITCess + d.ManagementFee + d.EnvironmentCess
	return d
}

type Calculator struct {
	api      MineralsAPI
	notifier notify.Notifier

	mu       sync.RWMutex
	minerals []model.Mineral
}

func NewCalculator(api MineralsAPI, notifier notify.Notifier) *Calculator {
	return &Calculator{api: api, notifier: orDiscard(notifier)}
}

func (c *Calculator) Mount(ctx context.Context) error {
	minerals, err := c.api.GetMinerals(ctx)
	if err != nil {
		report(c.notifier, err, "Failed to load minerals.")
		return fmt.Errorf("load minerals: %w", err)
	}
	c.mu.Lock()
	c.minerals = minerals
	c.mu.Unlock()
	return nil
}

// Minerals returns the distinct mineral names in load order.
func (c *Calculator) Minerals() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	for _, m := range c.minerals {
		if !slices.Contains(names, m.Name) {
			names = append(names, m.Name)
		}
	}
	return names
}

func (c *Calculator) Qualities(mineral string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	for _, m := range c.minerals {
		if m.Name == mineral {
			out = append(out, m.Quality)
		}
	}
	return out
}

// RoyaltyRate returns the rate for a mineral and quality, or false when the
// pair is not in the loaded table.
func (c *Calculator) RoyaltyRate(mineral, quality string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.minerals {
		if m.Name == mineral && m.Quality == quality {
			return m.RoyaltyRate, true
		}
	}
	return 0, false
}

func (c *Calculator) Calculate(in DemandInput) (Demand, error) {
	rate, ok := c.RoyaltyRate(in.Mineral, in.Quality)
	if !ok || rate <= 0 {
		return Demand{}, invalid(c.notifier, "Please select mineral and quality to get royalty rate.")
	}
	if in.Quantity < 0 || in.Area < 0 {
		return Demand{}, invalid(c.notifier, "Quantity and area cannot be negative.")
	}
	return ComputeDemand(rate, in.Quantity, in.Area), nil
}
