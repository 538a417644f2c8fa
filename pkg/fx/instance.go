// Package fx implements the per-instance glass button effects engine: hover
// particles, click bursts, the light sweep, the magnet tilt and the compositor that
// draws them onto a DPR-sized surface.
//
// Every Instance owns its state exclusively. Input handlers only enqueue commands
// (or update the magnet synchronously); all simulation happens in Tick, which a
// Scheduler calls once per display frame. Nothing here is safe for concurrent use.
package fx

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/glassfx/internal/logging"
	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/render"
)

type commandKind int

const (
	cmdEmit commandKind = iota
	cmdSheen
)

// command is an input-side request executed at the start of the next tick.
type command struct {
	kind     commandKind
	x, y     float64
	baseSize float64
	burst    bool
}

// instanceSeq numbers instances created without an explicit ID.
var instanceSeq atomic.Int64

// Resizer is implemented by canvases that keep a DPR-sized backing store.
type Resizer interface {
	Resize(w, h, dpr float64) bool
}

// FrameStats describes one tick of one instance.
type FrameStats struct {
	ID     string
	Time   time.Time
	DT     time.Duration // clamped delta used for integration
	RawDT  time.Duration // unclamped delta since the previous tick
	Drain  time.Duration
	Update time.Duration
	Render time.Duration
	Cull   time.Duration

	Drained     int
	Particles   int // live particles after cull
	Culled      int
	SweepActive bool
	RenderError bool
}

// FrameObserver receives per-tick statistics.
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// Options configures a new Instance. Zero values select defaults.
type Options struct {
	ID      string
	Palette config.Palette
	Variant config.Variant
	Config  *config.FXConfig

	// Transitions enables eased leave/pop animations. When false the final
	// transform and opacity apply immediately.
	Transitions bool

	// Canvas overrides the Ebitengine surface the instance would otherwise own.
	Canvas render.Canvas

	Scheduler *Scheduler
	Clock     Clock
	Rand      *rand.Rand
	Logger    *zap.SugaredLogger
	Observer  FrameObserver
}

// Instance is the FX engine of one interactive element.
type Instance struct {
	id      string
	cfg     *config.FXConfig
	palette config.Palette
	color   config.RGB
	variant config.Variant

	particles  *ParticleSimulator
	sheen      *SheenAnimator
	magnet     *MagnetController
	compositor *Compositor

	canvas  render.Canvas
	surface *render.Surface // non-nil when the instance owns its canvas

	sched    *Scheduler
	clock    Clock
	rng      *rand.Rand
	log      *zap.SugaredLogger
	observer FrameObserver

	width, height, dpr float64
	pointer            Point
	hasPointer         bool
	active             bool

	pending []command
	last    time.Time
	hasLast bool

	renderFailures int
	activations    int
	ticks          int
	closed         bool
}

// New creates an instance and registers it with opts.Scheduler when set.
func New(opts Options) *Instance {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	id := opts.ID
	if id == "" {
		id = fmt.Sprintf("fx-%d", instanceSeq.Add(1))
	}

	in := &Instance{
		id:         id,
		cfg:        cfg,
		palette:    opts.Palette,
		color:      opts.Palette.RGB(),
		variant:    opts.Variant,
		sheen:      NewSheenAnimator(cfg.Sheen, rng),
		magnet:     NewMagnetController(cfg.Magnet, cfg.Pop, opts.Transitions),
		compositor: NewCompositor(cfg.Render, cfg.Sheen),
		canvas:     opts.Canvas,
		clock:      clock,
		rng:        rng,
		log:        logging.OrNop(opts.Logger).Named("fx"),
		observer:   opts.Observer,
		dpr:        1,
	}
	in.magnet.SetMaxStep(cfg.MaxDelta)
	in.particles = NewParticleSimulator(cfg, in.color, rng)
	if in.canvas == nil {
		in.surface = render.NewSurface()
		in.canvas = in.surface
	}
	if opts.Scheduler != nil {
		in.sched = opts.Scheduler
		in.sched.Add(in)
	}
	in.log.Debugf("[Instance] created %s palette=%s variant=%s", id, in.palette, in.variant)
	return in
}

// Resize synchronizes the displayed size and device pixel ratio. The backing
// store is replaced immediately so the next draw already uses the new size.
func (in *Instance) Resize(w, h, dpr float64) {
	if in.closed {
		return
	}
	dpr = render.NormalizeDPR(dpr)
	in.width, in.height, in.dpr = w, h, dpr
	in.magnet.SetSize(w, h)
	if r, ok := in.canvas.(Resizer); ok {
		if r.Resize(w, h, dpr) {
			bw, bh := render.BackingSize(w, h, dpr)
			in.log.Debugf("[Instance] %s backing resized to %dx%d (dpr %.2f)", in.id, bw, bh, dpr)
		}
	}
}

// Tick advances the instance to now: drain pending commands, integrate
// particles and the sweep, draw, then cull. The integration step is
// clamp(now-last, 0, MaxDelta); the first tick integrates nothing.
func (in *Instance) Tick(now time.Time) {
	if in.closed {
		return
	}
	stats := FrameStats{ID: in.id, Time: now}

	var dt time.Duration
	if in.hasLast {
		stats.RawDT = now.Sub(in.last)
		dt = stats.RawDT
		if dt < 0 {
			dt = 0
		}
		if dt > in.cfg.MaxDelta {
			dt = in.cfg.MaxDelta
		}
	}
	in.last, in.hasLast = now, true
	stats.DT = dt
	secs := dt.Seconds()

	t0 := time.Now()
	stats.Drained = in.drain()
	t1 := time.Now()
	in.particles.Update(secs)
	in.sheen.Update(secs)
	t2 := time.Now()
	stats.RenderError = !in.draw()
	t3 := time.Now()
	stats.Culled = in.particles.Cull()
	t4 := time.Now()

	in.ticks++
	if in.observer != nil {
		stats.Drain, stats.Update, stats.Render, stats.Cull = t1.Sub(t0), t2.Sub(t1), t3.Sub(t2), t4.Sub(t3)
		stats.Particles = in.particles.Len()
		stats.SweepActive = in.sheen.Active()
		in.observer.ObserveFrame(stats)
	}
}

// drain executes pending commands in arrival order.
func (in *Instance) drain() int {
	n := len(in.pending)
	for _, c := range in.pending {
		switch c.kind {
		case cmdEmit:
			in.particles.Emit(c.x, c.y, c.baseSize, c.burst)
		case cmdSheen:
			in.sheen.Trigger(c.x, c.y)
		}
	}
	in.pending = in.pending[:0]
	return n
}

// enqueueEmit queues one particle. Pending emits beyond capacity would be evicted
// on drain anyway, so the oldest queued ones are dropped here.
func (in *Instance) enqueueEmit(x, y, baseSize float64, burst bool) {
	in.pending = append(in.pending, command{kind: cmdEmit, x: x, y: y, baseSize: baseSize, burst: burst})
	if emits := in.pendingEmits(); emits > in.particles.Cap() {
		in.dropOldestEmit()
	}
}

func (in *Instance) pendingEmits() int {
	n := 0
	for _, c := range in.pending {
		if c.kind == cmdEmit {
			n++
		}
	}
	return n
}

func (in *Instance) dropOldestEmit() {
	for i, c := range in.pending {
		if c.kind == cmdEmit {
			in.pending = append(in.pending[:i], in.pending[i+1:]...)
			return
		}
	}
}

// draw renders one frame, recovering from any panic in the canvas. It reports
// whether drawing completed.
func (in *Instance) draw() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			in.renderFailures++
			in.log.Warnf("[Instance] %s render failed: %v", in.id, r)
			ok = false
		}
	}()
	sweep, active := in.sheen.Current()
	frame := Frame{
		Width:       in.width,
		Height:      in.height,
		Pointer:     in.pointer,
		HasPointer:  in.hasPointer,
		Palette:     in.color,
		Sweep:       sweep,
		SweepActive: active,
		Particles:   in.particles,
	}
	if active {
		frame.SweepJitter = in.sheen.SampleJitter()
	}
	in.compositor.Draw(in.canvas, frame)
	return true
}

// Settle continues the magnet spring toward its target. Hosts call it once per
// frame; it is independent of Tick and integrates the time since the last
// spring step, so pointer moves in the same frame do not speed it up.
func (in *Instance) Settle(now time.Time) {
	if in.closed {
		return
	}
	in.magnet.Settle(now)
}

// SetTransitions switches eased transitions on or off.
func (in *Instance) SetTransitions(on bool) {
	in.magnet.SetTransitions(on)
}

// Close unregisters the instance and releases its surface. Further calls on the
// instance are no-ops.
func (in *Instance) Close() {
	if in.closed {
		return
	}
	in.closed = true
	if in.sched != nil {
		in.sched.Remove(in)
	}
	if in.surface != nil {
		in.surface.Dispose()
	}
	in.pending = nil
	in.log.Debugf("[Instance] closed %s", in.id)
}

// ID returns the instance identifier.
func (in *Instance) ID() string { return in.id }

// Palette returns the palette fixed at construction.
func (in *Instance) Palette() config.Palette { return in.palette }

// Variant returns the variant fixed at construction.
func (in *Instance) Variant() config.Variant { return in.variant }

// Active reports whether the pointer is over the element.
func (in *Instance) Active() bool { return in.active }

// Closed reports whether Close was called.
func (in *Instance) Closed() bool { return in.closed }

// Size returns the displayed size and device pixel ratio.
func (in *Instance) Size() (w, h, dpr float64) { return in.width, in.height, in.dpr }

// Particles exposes the particle simulator for inspection.
func (in *Instance) Particles() *ParticleSimulator { return in.particles }

// Sheen exposes the sweep animator for inspection.
func (in *Instance) Sheen() *SheenAnimator { return in.sheen }

// Magnet exposes the magnet controller for inspection.
func (in *Instance) Magnet() *MagnetController { return in.magnet }

// Surface returns the owned Ebitengine surface, or nil when a canvas was injected.
func (in *Instance) Surface() *render.Surface { return in.surface }

// PendingParticles returns the number of particles queued for the next tick.
func (in *Instance) PendingParticles() int { return in.pendingEmits() }

// PendingSheen reports whether a sweep trigger is queued for the next tick.
func (in *Instance) PendingSheen() (Point, bool) {
	for i := len(in.pending) - 1; i >= 0; i-- {
		if c := in.pending[i]; c.kind == cmdSheen {
			return Point{X: c.x, Y: c.y}, true
		}
	}
	return Point{}, false
}

// RenderFailures returns how many frames failed to draw.
func (in *Instance) RenderFailures() int { return in.renderFailures }

// Activations returns how many times the element was activated.
func (in *Instance) Activations() int { return in.activations }

// Ticks returns how many ticks ran.
func (in *Instance) Ticks() int { return in.ticks }

// ElementTransform returns the element transform at now.
func (in *Instance) ElementTransform(now time.Time) components.Transform {
	return in.magnet.Transform(now)
}

// Glow returns the companion glow layer at now.
func (in *Instance) Glow(now time.Time) components.Glow {
	return in.magnet.Glow(now)
}
