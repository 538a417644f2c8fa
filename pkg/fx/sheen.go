package fx

import (
	"math"
	"math/rand"

	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
)

// SheenAnimator drives the single light sweep of an instance.
type SheenAnimator struct {
	cfg    config.SheenConfig
	rng    *rand.Rand
	sweep  components.Sweep
	active bool
}

// NewSheenAnimator creates an idle animator.
func NewSheenAnimator(cfg config.SheenConfig, rng *rand.Rand) *SheenAnimator {
	return &SheenAnimator{cfg: cfg, rng: rng}
}

// Trigger replaces any current sweep with a fresh one starting at (x, y).
// The duration is resampled on every trigger.
func (a *SheenAnimator) Trigger(x, y float64) {
	a.sweep = components.Sweep{
		CX:       x,
		CY:       y,
		Progress: 0,
		Duration: a.cfg.Duration.Sample(a.rng),
	}
	a.active = true
}

// Update advances progress by dt seconds and clears the sweep once it passes 1.
func (a *SheenAnimator) Update(dt float64) {
	if !a.active || dt <= 0 {
		return
	}
	a.sweep.Progress += dt * (1000 / a.sweep.Duration)
	if a.sweep.Progress > 1 {
		a.active = false
	}
}

// Active reports whether a sweep is in flight.
func (a *SheenAnimator) Active() bool {
	return a.active
}

// Current returns the sweep in flight.
func (a *SheenAnimator) Current() (components.Sweep, bool) {
	return a.sweep, a.active
}

// Clear drops the current sweep.
func (a *SheenAnimator) Clear() {
	a.active = false
}

// SampleJitter draws the per-frame center jitter multiplier.
func (a *SheenAnimator) SampleJitter() float64 {
	return a.cfg.Jitter.Sample(a.rng)
}

// Band returns the sweep band center and width for a surface of the given width.
func (a *SheenAnimator) Band(width, jitter float64) (center, bandWidth float64) {
	return sweepBand(a.cfg, a.sweep, width, jitter)
}

// sweepBand eases the progress (pos = min(1, progress)^exponent) and derives the
// band: the center travels across width*travelFactor around the origin while the
// band narrows from maxWidth down to minWidth.
func sweepBand(cfg config.SheenConfig, s components.Sweep, width, jitter float64) (center, bandWidth float64) {
	pos := math.Pow(math.Min(1, math.Max(0, s.Progress)), cfg.Exponent)
	center = s.CX + (pos-0.5)*(width*cfg.TravelFactor)*jitter
	bandWidth = math.Max(cfg.MinWidth, (1-pos)*cfg.MaxWidth)
	return center, bandWidth
}
