// Package series generates the synthetic intraday price/volume series shown
// in the dashboard charts. The data is a random walk seeded from the latest
// quote; it is not market history and is always flagged as synthetic.
package series

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tradevision/internal/domain"
)

const (
	// Points is the number of hourly samples per series.
	Points = 24
	// MaxStep bounds the per-hour perturbation to [-MaxStep, +MaxStep).
	MaxStep = 2.5
	// MaxVolume is the exclusive upper bound of generated volumes.
	MaxVolume = 1_000_000
)

// Generator produces synthetic series. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a Generator drawing from src. A nil src yields an
// unseeded generator whose output is not reproducible across runs.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rng: rand.New(src), now: time.Now}
}

// Generate builds a 24-point series starting from seed. Each hour adds a
// uniform step to the running price before it is recorded, so the walk
// itself stays unrounded while every emitted price has two decimals.
func (g *Generator) Generate(seed float64) domain.Series {
	g.mu.Lock()
	defer g.mu.Unlock()

	pts := make([]domain.SyntheticPoint, Points)
	price := seed
	for i := range pts {
		price += (g.rng.Float64() - 0.5) * 2 * MaxStep
		pts[i] = domain.SyntheticPoint{
			Time:   HourLabel(i),
			Price:  Round2(price),
			Volume: g.rng.Int64N(MaxVolume),
		}
	}

	return domain.Series{
		Points:      pts,
		Seed:        seed,
		Synthetic:   true,
		GeneratedAt: g.now(),
	}
}

// HourLabel formats hour h as "H:00".
func HourLabel(h int) string {
	return fmt.Sprintf("%d:00", h)
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
