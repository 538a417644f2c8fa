package fx

import (
	"time"

	"github.com/decker502/glassfx/pkg/utils"
)

// Tween is a time-based eased progress from 0 to 1.
type Tween struct {
	Start    time.Time
	Duration time.Duration
	Ease     utils.EasingFunc
}

// NewTween starts a tween at start. A nil ease means linear.
func NewTween(start time.Time, d time.Duration, ease utils.EasingFunc) *Tween {
	if ease == nil {
		ease = utils.EaseLinear
	}
	return &Tween{Start: start, Duration: d, Ease: ease}
}

// Raw returns the linear progress at now, clamped to [0, 1].
// A non-positive duration is complete immediately.
func (t *Tween) Raw(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	return utils.Clamp(float64(now.Sub(t.Start))/float64(t.Duration), 0, 1)
}

// Progress returns the eased progress at now.
func (t *Tween) Progress(now time.Time) float64 {
	return t.Ease(t.Raw(now))
}

// Done reports whether the tween has reached its end.
func (t *Tween) Done(now time.Time) bool {
	return t.Raw(now) >= 1
}
