package fx

import (
	"math"
	"testing"

	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/render"
)

type particleSlice []components.Particle

func (ps particleSlice) Each(fn func(p *components.Particle)) {
	for i := range ps {
		fn(&ps[i])
	}
}

func newTestCompositor() *Compositor {
	cfg := config.Default()
	return NewCompositor(cfg.Render, cfg.Sheen)
}

// TestCompositor_NilCanvas verifies drawing without a canvas is a no-op.
func TestCompositor_NilCanvas(t *testing.T) {
	c := newTestCompositor()
	c.Draw(nil, Frame{Width: 100, Height: 40, SweepActive: true, SweepJitter: 1})
}

// TestCompositor_DrawOrder verifies clear, aura, sweep and particles are drawn in
// that order with the blend switched around the sweep only.
func TestCompositor_DrawOrder(t *testing.T) {
	c := newTestCompositor()
	cv := newRecordingCanvas()
	plum := config.PalettePlum.RGB()

	c.Draw(cv, Frame{
		Width: 200, Height: 60,
		Palette:     plum,
		Sweep:       components.Sweep{CX: 100, Progress: 0.3, Duration: 600},
		SweepActive: true,
		SweepJitter: 1,
		Particles: particleSlice{
			{X: 10, Y: 10, Life: 1, MaxLife: 1, Size: 2, Color: plum},
			{X: 20, Y: 15, Life: 0.5, MaxLife: 1, Size: 4, Color: plum},
		},
	})

	var names []string
	for _, op := range cv.ops {
		names = append(names, op.name)
	}
	want := []string{
		"clear", "blend", "alpha",
		"linear",
		"blend", "linear", "blend",
		"alpha", "radial", "alpha",
		"alpha", "radial", "alpha",
	}
	if len(names) != len(want) {
		t.Fatalf("ops = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("op %d = %s, want %s (ops %v)", i, names[i], want[i], names)
		}
	}

	linears := cv.filter("linear")
	if linears[0].blendAtCall != render.BlendSourceOver {
		t.Error("aura should use source-over")
	}
	if linears[1].blendAtCall != render.BlendLighter {
		t.Error("sweep should use lighter blend")
	}
	if cv.blend != render.BlendSourceOver || cv.alpha != 1 {
		t.Errorf("final state blend=%v alpha=%v, want source-over and 1", cv.blend, cv.alpha)
	}
}

// TestCompositor_Aura verifies the aura gradient position and stops.
func TestCompositor_Aura(t *testing.T) {
	c := newTestCompositor()
	plum := config.PalettePlum.RGB()

	tests := []struct {
		name   string
		frame  Frame
		wantX0 float64
		wantX1 float64
	}{
		{"centered without pointer", Frame{Width: 200, Height: 60, Palette: plum}, -20, 220},
		{"follows pointer", Frame{Width: 200, Height: 60, Palette: plum, HasPointer: true, Pointer: Point{X: 30, Y: 5}}, -90, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := newRecordingCanvas()
			c.Draw(cv, tt.frame)
			aura := cv.filter("linear")
			if len(aura) != 1 {
				t.Fatalf("got %d linear fills, want 1 (no sweep)", len(aura))
			}
			if aura[0].x0 != tt.wantX0 || aura[0].x1 != tt.wantX1 {
				t.Errorf("aura span = [%v, %v], want [%v, %v]", aura[0].x0, aura[0].x1, tt.wantX0, tt.wantX1)
			}
			stops := aura[0].stops
			wantAlpha := []float64{0, 0.04, 0.18, 0.03, 0}
			wantOffset := []float64{0, 0.35, 0.5, 0.65, 1}
			for i, s := range stops {
				if s.Alpha != wantAlpha[i] || s.Offset != wantOffset[i] {
					t.Errorf("stop %d = %+v", i, s)
				}
			}
			if stops[2].Color != plum || stops[0].Color != render.White {
				t.Errorf("stop colors = %v / %v", stops[0].Color, stops[2].Color)
			}
		})
	}
}

// TestCompositor_Sweep verifies the sweep band geometry and stops.
func TestCompositor_Sweep(t *testing.T) {
	c := newTestCompositor()
	cv := newRecordingCanvas()
	sweep := components.Sweep{CX: 80, Progress: 0.4, Duration: 600}

	c.Draw(cv, Frame{Width: 200, Height: 60, Sweep: sweep, SweepActive: true, SweepJitter: 0.95})

	linears := cv.filter("linear")
	if len(linears) != 2 {
		t.Fatalf("got %d linear fills, want 2", len(linears))
	}
	center, width := sweepBand(config.Default().Sheen, sweep, 200, 0.95)
	s := linears[1]
	if math.Abs(s.x0-(center-width/2)) > 1e-9 || math.Abs(s.x1-(center+width/2)) > 1e-9 {
		t.Errorf("sweep span = [%v, %v], want center %v width %v", s.x0, s.x1, center, width)
	}
	wantAlpha := []float64{0, 0.45, 0.85, 0.45, 0}
	for i, st := range s.stops {
		if st.Alpha != wantAlpha[i] || st.Color != render.White {
			t.Errorf("sweep stop %d = %+v", i, st)
		}
	}
}

// TestCompositor_Particles verifies per-particle opacity, growth and the alpha
// reset between particles.
func TestCompositor_Particles(t *testing.T) {
	c := newTestCompositor()
	cv := newRecordingCanvas()
	amber := config.PaletteAmber.RGB()

	c.Draw(cv, Frame{
		Width: 200, Height: 60,
		Particles: particleSlice{
			{X: 5, Y: 6, Life: 0.5, MaxLife: 1, Size: 4, Color: amber},
			{X: 7, Y: 8, Life: 2, MaxLife: 1, Size: 3, Color: amber},
			{X: 9, Y: 1, Life: -1, MaxLife: 1, Size: 1, Color: amber},
		},
	})

	radials := cv.filter("radial")
	if len(radials) != 3 {
		t.Fatalf("got %d radial fills, want 3", len(radials))
	}

	tests := []struct {
		alpha float64
		r     float64
	}{
		{math.Pow(0.5, 1.6), 4 * 1.3},
		{1, 3},   // life ratio clamps to 1
		{0, 1.6}, // life ratio clamps to 0
	}
	for i, tt := range tests {
		op := radials[i]
		if math.Abs(op.alphaAtCall-tt.alpha) > 1e-9 {
			t.Errorf("particle %d alpha = %v, want %v", i, op.alphaAtCall, tt.alpha)
		}
		if math.Abs(op.r-tt.r) > 1e-9 || math.Abs(op.gr-2*tt.r) > 1e-9 {
			t.Errorf("particle %d radius = %v/%v, want %v/%v", i, op.r, op.gr, tt.r, 2*tt.r)
		}
		if op.stops[0].Color != amber || op.stops[0].Alpha != 0.98 || op.stops[2].Color != render.White {
			t.Errorf("particle %d stops = %+v", i, op.stops)
		}
	}
	if radials[0].cx != 5 || radials[0].cy != 6 {
		t.Errorf("particle position = (%v,%v)", radials[0].cx, radials[0].cy)
	}

	// Every radial fill is followed by an alpha reset to 1.
	for i, op := range cv.ops {
		if op.name != "radial" {
			continue
		}
		next := cv.ops[i+1]
		if next.name != "alpha" || next.alpha != 1 {
			t.Errorf("op after radial %d = %+v, want alpha reset", i, next)
		}
	}
}
