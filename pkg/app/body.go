package app

import (
	"bytes"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/render"
	"github.com/decker502/glassfx/pkg/utils"
)

// 玻璃按钮外观参数
const (
	bodyCornerRadius = 18.0
	bodyAlpha        = 0.82
	glowAlpha        = 0.35
	labelSize        = 16.0
	labelLineHeight  = 20.0
	labelPadding     = 12.0
	focusRingWidth   = 2.0
	focusRingInset   = -4.0
)

var (
	glassDark   = colorful.Color{R: 0.11, G: 0.11, B: 0.14}
	rimColor    = color.RGBA{R: 255, G: 255, B: 255, A: 110}
	focusColor  = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	labelColor  = color.RGBA{R: 245, G: 245, B: 250, A: 255}
	bodyTintMix = 0.35
)

// glassBody 按钮静态外观的缓存图像（后备像素尺寸）
//
// shape 为不透明的圆角矩形遮罩，绘制发光层时通过 ColorScale 着色；
// img 是按主题着色后的玻璃主体。
type glassBody struct {
	img   *ebiten.Image
	shape *ebiten.Image
	bw    int
	bh    int
	label string // 按宽度换行后的标签
}

// ensure 按后备尺寸重建缓存，返回是否发生重建
func (g *glassBody) ensure(w, h, dpr float64, tint config.RGB) bool {
	bw, bh := render.BackingSize(w, h, dpr)
	if g.img != nil && g.bw == bw && g.bh == bh {
		return false
	}
	g.dispose()
	g.bw, g.bh = bw, bh
	if bw <= 0 || bh <= 0 {
		return true
	}

	g.shape = ebiten.NewImage(bw, bh)
	fillRoundedRect(g.shape, float32(bw), float32(bh), float32(bodyCornerRadius*dpr), color.White)

	base := glassDark.BlendLab(tint.Colorful(), bodyTintMix).Clamped()
	r, gg, b := base.RGB255()
	g.img = ebiten.NewImage(bw, bh)
	fillRoundedRect(g.img, float32(bw), float32(bh), float32(bodyCornerRadius*dpr), color.RGBA{R: r, G: gg, B: b, A: 255})

	// 顶部高光线
	rad := float32(bodyCornerRadius * dpr)
	vector.StrokeLine(g.img, rad, float32(dpr), float32(bw)-rad, float32(dpr), float32(dpr), rimColor, true)
	return true
}

func (g *glassBody) dispose() {
	if g == nil {
		return
	}
	if g.img != nil {
		g.img.Deallocate()
		g.img = nil
	}
	if g.shape != nil {
		g.shape.Deallocate()
		g.shape = nil
	}
}

// fillRoundedRect 不重叠地拼出圆角矩形，半透明颜色也不会出现叠加接缝
func fillRoundedRect(dst *ebiten.Image, w, h, r float32, clr color.Color) {
	r = float32(math.Min(float64(r), math.Min(float64(w), float64(h))/2))
	if r <= 0 {
		vector.DrawFilledRect(dst, 0, 0, w, h, clr, true)
		return
	}
	vector.DrawFilledRect(dst, r, 0, w-2*r, h, clr, true)
	vector.DrawFilledRect(dst, 0, r, r, h-2*r, clr, true)
	vector.DrawFilledRect(dst, w-r, r, r, h-2*r, clr, true)

	var corners vector.Path
	for _, c := range [4][3]float32{
		{r, r, math.Pi},
		{w - r, r, -math.Pi / 2},
		{w - r, h - r, 0},
		{r, h - r, math.Pi / 2},
	} {
		corners.MoveTo(c[0], c[1])
		corners.Arc(c[0], c[1], r, c[2], c[2]+math.Pi/2, vector.Clockwise)
		corners.Close()
	}
	vs, is := corners.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(cr) / 0xffff
		vs[i].ColorG = float32(cg) / 0xffff
		vs[i].ColorB = float32(cb) / 0xffff
		vs[i].ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whitePixel(), op)
}

var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixelImage = img
	}
	return whitePixelImage
}

// elementGeoM 元素局部逻辑坐标 → 屏幕物理像素
//
// 先绕元素中心缩放（rotateX/rotateY 以余弦近似透视收缩），再平移到
// 视图位置并叠加变换位移，最后乘以 DPR。
func elementGeoM(r Rect, t components.Transform, scrollY, dpr float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-r.W/2, -r.H/2)
	sx := t.Scale * math.Cos(t.RotateY*math.Pi/180)
	sy := t.Scale * math.Cos(t.RotateX*math.Pi/180)
	g.Scale(sx, sy)
	cx, cy := r.Center()
	g.Translate(cx+t.TranslateX, cy-scrollY+t.TranslateY)
	g.Scale(dpr, dpr)
	return g
}

// backingGeoM 后备图像像素 → 屏幕物理像素
func backingGeoM(elem ebiten.GeoM, dpr float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(1/dpr, 1/dpr)
	g.Concat(elem)
	return g
}

// newLabelFace 加载 Go Regular 字体
func newLabelFace() (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: src, Size: labelSize}, nil
}

// drawButton 依次绘制发光层、玻璃主体、特效表面与标签
func drawButton(screen *ebiten.Image, b *Button, elem components.Transform, glow components.Glow, scrollY, dpr float64, face *text.GoTextFace) {
	if b.body == nil {
		b.body = &glassBody{}
	}
	tint := b.FX.Palette().RGB()
	if b.body.ensure(b.Rect.W, b.Rect.H, dpr, tint) && face != nil {
		lines := utils.WrapText(b.Config.Label, b.Rect.W-2*labelPadding, utils.FaceMeasure(face))
		b.body.label = strings.Join(lines, "\n")
	}
	if b.body.img == nil {
		return
	}

	if glow.Opacity > 0 {
		gg := backingGeoM(elementGeoM(b.Rect, glow.Transform, scrollY, dpr), dpr)
		op := &ebiten.DrawImageOptions{GeoM: gg, Filter: ebiten.FilterLinear}
		op.ColorScale.ScaleWithColor(color.RGBA{R: tint.R, G: tint.G, B: tint.B, A: 255})
		op.ColorScale.ScaleAlpha(float32(glowAlpha * glow.Opacity))
		op.Blend = render.EbitenBlend(render.BlendLighter)
		screen.DrawImage(b.body.shape, op)
	}

	elemGeo := elementGeoM(b.Rect, elem, scrollY, dpr)
	geo := backingGeoM(elemGeo, dpr)
	op := &ebiten.DrawImageOptions{GeoM: geo, Filter: ebiten.FilterLinear}
	op.ColorScale.ScaleAlpha(bodyAlpha)
	screen.DrawImage(b.body.img, op)

	if s := b.FX.Surface(); s != nil {
		s.DrawTo(screen, geo, 1)
	}

	if face != nil {
		top := &text.DrawOptions{}
		top.GeoM.Translate(b.Rect.W/2, b.Rect.H/2)
		top.GeoM.Concat(elemGeo)
		top.PrimaryAlign = text.AlignCenter
		top.SecondaryAlign = text.AlignCenter
		top.LineSpacing = labelLineHeight
		top.ColorScale.ScaleWithColor(labelColor)
		top.Filter = ebiten.FilterLinear
		text.Draw(screen, b.body.label, face, top)
	}
}

// drawFocusRing 在按钮静止位置外侧绘制焦点框
func drawFocusRing(screen *ebiten.Image, r Rect, scrollY, dpr float64) {
	d := float32(dpr)
	vector.StrokeRect(screen,
		float32(r.X+focusRingInset)*d, float32(r.Y-scrollY+focusRingInset)*d,
		float32(r.W-2*focusRingInset)*d, float32(r.H-2*focusRingInset)*d,
		focusRingWidth*d, focusColor, true)
}
