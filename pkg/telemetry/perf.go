package telemetry

import (
	"time"

	"github.com/decker502/glassfx/pkg/fx"
)

// Phase names of one instance tick.
const (
	PhaseDrain  = "drain"
	PhaseUpdate = "update"
	PhaseRender = "render"
	PhaseCull   = "cull"
)

// FrameSample is one instance tick, flattened for CSV output.
type FrameSample struct {
	Frame       int     `csv:"frame"`
	Instance    string  `csv:"instance"`
	DTMs        float64 `csv:"dt_ms"`
	RawDTMs     float64 `csv:"raw_dt_ms"`
	DrainUs     float64 `csv:"drain_us"`
	UpdateUs    float64 `csv:"update_us"`
	RenderUs    float64 `csv:"render_us"`
	CullUs      float64 `csv:"cull_us"`
	Particles   int     `csv:"particles"`
	Drained     int     `csv:"drained"`
	Culled      int     `csv:"culled"`
	SweepActive bool    `csv:"sweep_active"`
	RenderError bool    `csv:"render_error"`
}

// TickUs returns the total measured tick time in microseconds.
func (s FrameSample) TickUs() float64 {
	return s.DrainUs + s.UpdateUs + s.RenderUs + s.CullUs
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// PerfCollector tracks instance ticks over a rolling window. It implements
// fx.FrameObserver and optionally forwards every sample to an OutputManager.
type PerfCollector struct {
	windowSize  int
	samples     []FrameSample
	writeIndex  int
	sampleCount int
	total       int

	out    *OutputManager
	outErr error
}

var _ fx.FrameObserver = (*PerfCollector)(nil)

// NewPerfCollector creates a collector.
// windowSize: number of ticks kept (e.g. 600 for 10 seconds of 60 instances at 1 fps).
// out may be nil.
func NewPerfCollector(windowSize int, out *OutputManager) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]FrameSample, windowSize),
		out:        out,
	}
}

// ObserveFrame records one tick.
func (p *PerfCollector) ObserveFrame(s fx.FrameStats) {
	sample := FrameSample{
		Frame:       p.total,
		Instance:    s.ID,
		DTMs:        millis(s.DT),
		RawDTMs:     millis(s.RawDT),
		DrainUs:     micros(s.Drain),
		UpdateUs:    micros(s.Update),
		RenderUs:    micros(s.Render),
		CullUs:      micros(s.Cull),
		Particles:   s.Particles,
		Drained:     s.Drained,
		Culled:      s.Culled,
		SweepActive: s.SweepActive,
		RenderError: s.RenderError,
	}
	p.total++

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}

	if p.out != nil && p.outErr == nil {
		p.outErr = p.out.WriteFrame(sample)
	}
}

// Err returns the first output error, if any.
func (p *PerfCollector) Err() error {
	return p.outErr
}

// Total returns the number of ticks observed.
func (p *PerfCollector) Total() int {
	return p.total
}

// Recent returns the samples in the window, oldest first.
func (p *PerfCollector) Recent() []FrameSample {
	out := make([]FrameSample, 0, p.sampleCount)
	start := (p.writeIndex - p.sampleCount + p.windowSize) % p.windowSize
	for i := 0; i < p.sampleCount; i++ {
		out = append(out, p.samples[(start+i)%p.windowSize])
	}
	return out
}

// PerfStats aggregates the current window.
type PerfStats struct {
	Ticks        int
	TickUs       Summary
	PhaseUs      map[string]Summary
	Particles    Summary
	RenderErrors int
	SweepTicks   int
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	recent := p.Recent()
	n := len(recent)
	tick := make([]float64, n)
	particles := make([]float64, n)
	phases := map[string][]float64{
		PhaseDrain:  make([]float64, n),
		PhaseUpdate: make([]float64, n),
		PhaseRender: make([]float64, n),
		PhaseCull:   make([]float64, n),
	}

	st := PerfStats{Ticks: n, PhaseUs: make(map[string]Summary, len(phases))}
	for i, s := range recent {
		tick[i] = s.TickUs()
		particles[i] = float64(s.Particles)
		phases[PhaseDrain][i] = s.DrainUs
		phases[PhaseUpdate][i] = s.UpdateUs
		phases[PhaseRender][i] = s.RenderUs
		phases[PhaseCull][i] = s.CullUs
		if s.RenderError {
			st.RenderErrors++
		}
		if s.SweepActive {
			st.SweepTicks++
		}
	}
	st.TickUs = Summarize(tick)
	st.Particles = Summarize(particles)
	for name, xs := range phases {
		st.PhaseUs[name] = Summarize(xs)
	}
	return st
}

// SummaryRow is one metric of PerfStats in CSV form.
type SummaryRow struct {
	Metric string `csv:"metric"`
	Summary
}

// Rows flattens the stats into CSV rows in a stable order.
func (s PerfStats) Rows() []SummaryRow {
	return []SummaryRow{
		{Metric: "tick_us", Summary: s.TickUs},
		{Metric: PhaseDrain + "_us", Summary: s.PhaseUs[PhaseDrain]},
		{Metric: PhaseUpdate + "_us", Summary: s.PhaseUs[PhaseUpdate]},
		{Metric: PhaseRender + "_us", Summary: s.PhaseUs[PhaseRender]},
		{Metric: PhaseCull + "_us", Summary: s.PhaseUs[PhaseCull]},
		{Metric: "particles", Summary: s.Particles},
	}
}
