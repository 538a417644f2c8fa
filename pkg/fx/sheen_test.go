package fx

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
)

func newTestSheen(seed int64) *SheenAnimator {
	return NewSheenAnimator(config.Default().Sheen, rand.New(rand.NewSource(seed)))
}

// TestSheenAnimator_SecondTriggerReplaces verifies only one sweep exists and the
// second trigger wins with a fresh duration.
func TestSheenAnimator_SecondTriggerReplaces(t *testing.T) {
	a := newTestSheen(1)
	a.Trigger(10, 5)
	first, _ := a.Current()
	a.Update(0.2)

	a.Trigger(150, 30)
	s, ok := a.Current()
	if !ok {
		t.Fatal("sweep should be active")
	}
	if s.CX != 150 || s.CY != 30 {
		t.Errorf("origin = (%v,%v), want (150,30)", s.CX, s.CY)
	}
	if s.Progress != 0 {
		t.Errorf("progress = %v, want 0 after retrigger", s.Progress)
	}
	if s.Duration < 520 || s.Duration >= 640 {
		t.Errorf("duration = %v, want [520, 640)", s.Duration)
	}
	if s.Duration == first.Duration {
		t.Error("duration should be resampled on retrigger")
	}
}

// TestSheenAnimator_ProgressAndExpiry verifies progress is non-decreasing and the
// sweep becomes inactive exactly once progress passes 1.
func TestSheenAnimator_ProgressAndExpiry(t *testing.T) {
	a := newTestSheen(2)
	a.Trigger(0, 0)
	s, _ := a.Current()
	duration := s.Duration

	prev := 0.0
	for i := 0; i < 100 && a.Active(); i++ {
		a.Update(0.016)
		cur, active := a.Current()
		if cur.Progress < prev {
			t.Fatalf("progress decreased: %v -> %v", prev, cur.Progress)
		}
		if active != (cur.Progress <= 1) {
			t.Fatalf("active=%v with progress %v", active, cur.Progress)
		}
		prev = cur.Progress
	}
	if a.Active() {
		t.Fatal("sweep never finished")
	}
	// 0.016s steps cover duration ms in ceil(duration/16) updates.
	wantSteps := math.Ceil(duration / 16)
	if math.Abs(prev-wantSteps*16/duration) > 1e-9 {
		t.Errorf("final progress = %v, want %v", prev, wantSteps*16/duration)
	}

	a.Update(0.5)
	if a.Active() {
		t.Error("inactive sweep should stay inactive")
	}
}

// TestSweepBand verifies the eased band position and width.
func TestSweepBand(t *testing.T) {
	cfg := config.Default().Sheen
	tests := []struct {
		name       string
		progress   float64
		jitter     float64
		wantCenter float64
		wantWidth  float64
	}{
		{"start", 0, 1, 100 - 0.5*320, 360},
		{"end", 1, 1, 100 + 0.5*320, 60},
		{"past end clamps", 1.3, 1, 100 + 0.5*320, 60},
		{"jitter scales travel", 0, 1.1, 100 - 0.5*320*1.1, 360},
		{"middle", 0.5, 1, 100 + (math.Pow(0.5, 0.8)-0.5)*320, math.Max(60, (1-math.Pow(0.5, 0.8))*360)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := components.Sweep{CX: 100, Progress: tt.progress, Duration: 600}
			c, w := sweepBand(cfg, s, 200, tt.jitter)
			if math.Abs(c-tt.wantCenter) > 1e-9 || math.Abs(w-tt.wantWidth) > 1e-9 {
				t.Errorf("band = (%v, %v), want (%v, %v)", c, w, tt.wantCenter, tt.wantWidth)
			}
		})
	}
}

// TestSheenAnimator_Jitter verifies jitter samples stay in [0.9, 1.1).
func TestSheenAnimator_Jitter(t *testing.T) {
	a := newTestSheen(3)
	for i := 0; i < 200; i++ {
		if j := a.SampleJitter(); j < 0.9 || j >= 1.1 {
			t.Fatalf("jitter = %v", j)
		}
	}
	a.Trigger(1, 1)
	a.Clear()
	if a.Active() {
		t.Error("Clear should end the sweep")
	}
}
