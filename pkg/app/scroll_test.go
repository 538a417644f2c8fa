package app

import (
	"math"
	"testing"
	"time"
)

func TestScroller_Tween(t *testing.T) {
	s := NewScroller()
	s.SetBounds(1000, 400)
	if s.Max() != 600 {
		t.Fatalf("Max = %v, want 600", s.Max())
	}

	s.ScrollBy(200, testEpoch)
	if s.Target() != 200 {
		t.Errorf("Target = %v, want 200", s.Target())
	}
	if got := s.Offset(testEpoch); got != 0 {
		t.Errorf("offset at start = %v, want 0", got)
	}
	mid := s.Offset(testEpoch.Add(scrollDuration / 2))
	// EaseOutCubic(0.5) = 0.875
	if math.Abs(mid-175) > 1e-9 {
		t.Errorf("offset at half = %v, want 175", mid)
	}
	if got := s.Offset(testEpoch.Add(scrollDuration)); got != 200 {
		t.Errorf("offset at end = %v, want 200", got)
	}
}

func TestScroller_Accumulates(t *testing.T) {
	s := NewScroller()
	s.SetBounds(1000, 400)

	s.ScrollBy(200, testEpoch)
	s.ScrollBy(200, testEpoch.Add(10*time.Millisecond))
	s.ScrollBy(500, testEpoch.Add(20*time.Millisecond))
	if s.Target() != 600 {
		t.Errorf("Target = %v, want clamped 600", s.Target())
	}

	s.ScrollTo(-50, testEpoch.Add(time.Second))
	if s.Target() != 0 {
		t.Errorf("Target = %v, want 0", s.Target())
	}
}

func TestScroller_SetBoundsClamps(t *testing.T) {
	s := NewScroller()
	s.SetBounds(1000, 400)
	s.ScrollTo(600, testEpoch)

	s.SetBounds(500, 400)
	if s.Target() != 100 {
		t.Errorf("Target = %v, want 100", s.Target())
	}
	if got := s.Offset(testEpoch); got != 100 {
		t.Errorf("Offset = %v, want 100 immediately", got)
	}

	s.SetBounds(300, 400)
	if s.Max() != 0 || s.Target() != 0 {
		t.Errorf("content shorter than view: max %v target %v", s.Max(), s.Target())
	}
}

func TestScroller_Reveal(t *testing.T) {
	s := NewScroller()
	s.SetBounds(2000, 400)

	s.Reveal(100, 200, 400, testEpoch)
	if s.Target() != 0 {
		t.Errorf("visible rect should not scroll, target %v", s.Target())
	}
	s.Reveal(500, 580, 400, testEpoch)
	if s.Target() != 180 {
		t.Errorf("Target = %v, want 180", s.Target())
	}
	s.Reveal(50, 120, 400, testEpoch)
	if s.Target() != 50 {
		t.Errorf("Target = %v, want 50", s.Target())
	}
}
