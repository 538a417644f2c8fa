package app

import (
	"math"
	"testing"

	"github.com/decker502/glassfx/pkg/components"
)

func TestElementGeoM_Neutral(t *testing.T) {
	r := Rect{X: 100, Y: 200, W: 240, H: 72}
	for _, dpr := range []float64{1, 2, 1.5} {
		g := elementGeoM(r, components.NeutralTransform(), 50, dpr)
		x, y := g.Apply(0, 0)
		if math.Abs(x-100*dpr) > 1e-9 || math.Abs(y-150*dpr) > 1e-9 {
			t.Errorf("dpr %v: origin maps to (%v,%v), want (%v,%v)", dpr, x, y, 100*dpr, 150*dpr)
		}

		// 后备图像像素 (W*dpr, H*dpr) 对应元素右下角
		bg := backingGeoM(g, dpr)
		x, y = bg.Apply(r.W*dpr, r.H*dpr)
		if math.Abs(x-340*dpr) > 1e-9 || math.Abs(y-222*dpr) > 1e-9 {
			t.Errorf("dpr %v: backing corner maps to (%v,%v)", dpr, x, y)
		}
	}
}

func TestElementGeoM_ScaleKeepsCenter(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 200, H: 60}
	tr := components.NeutralTransform()
	tr.Scale = 1.06
	tr.TranslateY = -10

	g := elementGeoM(r, tr, 0, 1)
	x, y := g.Apply(100, 30)
	if math.Abs(x-100) > 1e-9 || math.Abs(y-20) > 1e-9 {
		t.Errorf("center maps to (%v,%v), want (100,20)", x, y)
	}
	x, _ = g.Apply(0, 30)
	if math.Abs(x-(100-106)) > 1e-9 {
		t.Errorf("left edge maps to %v, want -6", x)
	}
}

func TestElementGeoM_RotationForeshortens(t *testing.T) {
	r := Rect{W: 200, H: 60}
	tr := components.NeutralTransform()
	tr.RotateY = 60

	g := elementGeoM(r, tr, 0, 1)
	x0, _ := g.Apply(0, 0)
	x1, _ := g.Apply(200, 0)
	if math.Abs((x1-x0)-100) > 1e-9 {
		t.Errorf("width at 60deg = %v, want 100", x1-x0)
	}
}
