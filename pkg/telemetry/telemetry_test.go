package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/decker502/glassfx/pkg/fx"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{5, 1, 4, 2, 3})
	if s.Count != 5 {
		t.Fatalf("Count = %d, want 5", s.Count)
	}
	if s.Mean != 3 || s.Min != 1 || s.Max != 5 {
		t.Errorf("mean/min/max = %v/%v/%v, want 3/1/5", s.Mean, s.Min, s.Max)
	}
	if s.P50 != 3 {
		t.Errorf("P50 = %v, want 3", s.P50)
	}
	if s.P95 != 5 {
		t.Errorf("P95 = %v, want 5", s.P95)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, math.Sqrt(2.5))
	}
}

func TestSummarize_Edges(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", s)
	}
	one := Summarize([]float64{7})
	if one.Count != 1 || one.Mean != 7 || one.StdDev != 0 || one.P95 != 7 {
		t.Errorf("single sample summary = %+v", one)
	}

	in := []float64{3, 1, 2}
	Summarize(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input was modified: %v", in)
	}
}

func stats(id string, render time.Duration, particles int) fx.FrameStats {
	return fx.FrameStats{
		ID:        id,
		DT:        16 * time.Millisecond,
		RawDT:     16 * time.Millisecond,
		Drain:     time.Microsecond,
		Update:    2 * time.Microsecond,
		Render:    render,
		Cull:      time.Microsecond,
		Particles: particles,
	}
}

func TestPerfCollector_Window(t *testing.T) {
	p := NewPerfCollector(3, nil)
	for i := 0; i < 5; i++ {
		p.ObserveFrame(stats("a", time.Duration(i+1)*time.Microsecond, i))
	}
	if p.Total() != 5 {
		t.Errorf("Total = %d, want 5", p.Total())
	}

	recent := p.Recent()
	if len(recent) != 3 {
		t.Fatalf("Recent len = %d, want 3", len(recent))
	}
	for i, s := range recent {
		if s.Frame != i+2 {
			t.Errorf("recent[%d].Frame = %d, want %d", i, s.Frame, i+2)
		}
	}

	st := p.Stats()
	if st.Ticks != 3 {
		t.Errorf("Ticks = %d, want 3", st.Ticks)
	}
	if st.PhaseUs[PhaseRender].Mean != 4 {
		t.Errorf("render mean = %v, want 4", st.PhaseUs[PhaseRender].Mean)
	}
	if st.Particles.Max != 4 {
		t.Errorf("particles max = %v, want 4", st.Particles.Max)
	}
	// drain 1 + update 2 + render 5 + cull 1
	if st.TickUs.Max != 9 {
		t.Errorf("tick max = %v, want 9", st.TickUs.Max)
	}
}

func TestPerfCollector_Counts(t *testing.T) {
	p := NewPerfCollector(0, nil)
	s := stats("a", time.Microsecond, 1)
	s.RenderError = true
	s.SweepActive = true
	p.ObserveFrame(s)
	p.ObserveFrame(stats("a", time.Microsecond, 1))

	st := p.Stats()
	if st.RenderErrors != 1 || st.SweepTicks != 1 {
		t.Errorf("RenderErrors/SweepTicks = %d/%d, want 1/1", st.RenderErrors, st.SweepTicks)
	}
	if len(st.Rows()) != 6 {
		t.Errorf("Rows len = %d, want 6", len(st.Rows()))
	}
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteFrame(FrameSample{}); err != nil {
		t.Errorf("nil WriteFrame error: %v", err)
	}
	if err := om.WriteSummary(PerfStats{}); err != nil {
		t.Errorf("nil WriteSummary error: %v", err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should be inert")
	}
}

func TestOutputManager_Frames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "perf")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	p := NewPerfCollector(10, om)
	p.ObserveFrame(stats("plum", 3*time.Microsecond, 12))
	p.ObserveFrame(stats("gold", 5*time.Microsecond, 30))
	if err := p.Err(); err != nil {
		t.Fatalf("collector output error: %v", err)
	}
	if err := om.WriteSummary(p.Stats()); err != nil {
		t.Fatalf("WriteSummary error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(raw), "instance"); n != 1 {
		t.Errorf("header written %d times, want 1", n)
	}

	frames, err := ReadFrames(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("ReadFrames error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("read %d frames, want 2", len(frames))
	}
	if frames[1].Instance != "gold" || frames[1].Particles != 30 || frames[1].RenderUs != 5 {
		t.Errorf("frames[1] = %+v", frames[1])
	}

	summary, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(summary), "metric,") || !strings.Contains(string(summary), "tick_us") {
		t.Errorf("unexpected summary.csv:\n%s", summary)
	}
}
