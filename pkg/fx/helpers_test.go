package fx

import (
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/render"
)

// canvasOp is one recorded Canvas call.
type canvasOp struct {
	name          string
	x0, x1        float64
	cx, cy, r, gr float64
	stops         []render.ColorStop
	blend         render.Blend
	alpha         float64
	blendAtCall   render.Blend
	alphaAtCall   float64
}

// recordingCanvas records every call and tracks blend/alpha state.
type recordingCanvas struct {
	w, h    float64
	dpr     float64
	resizes int
	blend   render.Blend
	alpha   float64
	ops     []canvasOp
	panicOn string
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{alpha: 1, dpr: 1}
}

func (c *recordingCanvas) record(op canvasOp) {
	if op.name == c.panicOn {
		panic("canvas failure: " + op.name)
	}
	op.blendAtCall, op.alphaAtCall = c.blend, c.alpha
	c.ops = append(c.ops, op)
}

func (c *recordingCanvas) Size() (float64, float64) { return c.w, c.h }
func (c *recordingCanvas) Clear()                   { c.record(canvasOp{name: "clear"}) }

func (c *recordingCanvas) FillLinearX(x0, x1 float64, stops []render.ColorStop) {
	c.record(canvasOp{name: "linear", x0: x0, x1: x1, stops: append([]render.ColorStop(nil), stops...)})
}

func (c *recordingCanvas) FillRadial(cx, cy, shapeR, gradR float64, stops []render.ColorStop) {
	c.record(canvasOp{name: "radial", cx: cx, cy: cy, r: shapeR, gr: gradR, stops: append([]render.ColorStop(nil), stops...)})
}

func (c *recordingCanvas) SetBlend(b render.Blend) {
	c.blend = b
	c.record(canvasOp{name: "blend", blend: b})
}

func (c *recordingCanvas) SetAlpha(a float64) {
	c.alpha = a
	c.record(canvasOp{name: "alpha", alpha: a})
}

func (c *recordingCanvas) Resize(w, h, dpr float64) bool {
	changed := w != c.w || h != c.h || dpr != c.dpr
	c.w, c.h, c.dpr = w, h, dpr
	if changed {
		c.resizes++
	}
	return changed
}

func (c *recordingCanvas) reset() { c.ops = c.ops[:0] }

func (c *recordingCanvas) count(name string) int {
	n := 0
	for _, op := range c.ops {
		if op.name == name {
			n++
		}
	}
	return n
}

func (c *recordingCanvas) filter(name string) []canvasOp {
	var out []canvasOp
	for _, op := range c.ops {
		if op.name == name {
			out = append(out, op)
		}
	}
	return out
}

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestInstance builds an instance with a recording canvas, manual clock and
// seeded random source, sized 200x60 at DPR 1.
func newTestInstance(t *testing.T, variant config.Variant, transitions bool) (*Instance, *recordingCanvas, *ManualClock) {
	t.Helper()
	canvas := newRecordingCanvas()
	clock := NewManualClock(testEpoch)
	in := New(Options{
		ID:          t.Name(),
		Palette:     config.PalettePlum,
		Variant:     variant,
		Transitions: transitions,
		Canvas:      canvas,
		Clock:       clock,
		Rand:        rand.New(rand.NewSource(42)),
	})
	in.Resize(200, 60, 1)
	return in, canvas, clock
}

func newTestSimulator(seed int64) *ParticleSimulator {
	return NewParticleSimulator(config.Default(), config.PaletteAmber.RGB(), rand.New(rand.NewSource(seed)))
}
