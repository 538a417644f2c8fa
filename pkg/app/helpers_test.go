package app

import (
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/fx"
	"github.com/decker502/glassfx/pkg/render"
)

// nopCanvas 不做任何绘制的画布
type nopCanvas struct{}

func (nopCanvas) Size() (float64, float64)                             { return 0, 0 }
func (nopCanvas) Clear()                                               {}
func (nopCanvas) FillLinearX(x0, x1 float64, stops []render.ColorStop) {}
func (nopCanvas) FillRadial(cx, cy, shapeR, gradR float64, stops []render.ColorStop) {
}
func (nopCanvas) SetBlend(b render.Blend) {}
func (nopCanvas) SetAlpha(a float64)      {}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testGallery 两个默认尺寸的按钮，960 宽时位于同一行
func testGallery() *config.GalleryConfig {
	g, err := config.ParseGallery([]byte(`
buttons:
  - id: a
    palette: plum
  - id: b
    palette: gold
    variant: ripple
`))
	if err != nil {
		panic(err)
	}
	return g
}

func testFactory(clock fx.Clock) InstanceFactory {
	seed := int64(0)
	return func(bc config.ButtonConfig) *fx.Instance {
		seed++
		return fx.New(fx.Options{
			ID:          bc.ID,
			Palette:     config.ParsePalette(bc.Palette),
			Variant:     config.ParseVariant(bc.Variant),
			Transitions: true,
			Canvas:      nopCanvas{},
			Clock:       clock,
			Rand:        rand.New(rand.NewSource(seed)),
		})
	}
}

// newTestRouter 960x600 视图，内容高度 2000
func newTestRouter(t *testing.T) (*Router, *Registry, *Scroller, *fx.ManualClock) {
	t.Helper()
	clock := fx.NewManualClock(testEpoch)
	reg := NewRegistry()
	g := testGallery()
	mk := testFactory(clock)
	for _, bc := range g.Buttons {
		reg.Ensure(bc, mk)
	}
	LayoutGallery(g, reg.Buttons(), 960)
	for _, b := range reg.Buttons() {
		b.FX.Resize(b.Rect.W, b.Rect.H, 1)
	}

	scroll := NewScroller()
	scroll.SetBounds(2000, 600)
	r := NewRouter(reg, scroll, clock, nil)
	r.SetViewHeight(600)
	t.Cleanup(reg.Close)
	return r, reg, scroll, clock
}
