package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// whiteSource 返回用于 DrawTriangles 的 1x1 白色子图像
// 取 3x3 图像的中心像素，避免采样到边缘
func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// additiveBlend 加法混合模式（用于发光效果）
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// EbitenBlend 将合成模式映射为 Ebitengine 混合参数
func EbitenBlend(b Blend) ebiten.Blend {
	if b == BlendLighter {
		return additiveBlend
	}
	return ebiten.BlendSourceOver
}

// BackingSize 返回逻辑尺寸在给定 DPR 下的后备像素尺寸
// dpr 小于 1 时按 1 处理
func BackingSize(w, h, dpr float64) (int, int) {
	dpr = NormalizeDPR(dpr)
	bw := int(math.Round(w * dpr))
	bh := int(math.Round(h * dpr))
	if bw < 0 {
		bw = 0
	}
	if bh < 0 {
		bh = 0
	}
	return bw, bh
}

// NormalizeDPR 返回 max(1, dpr)，非法值按 1 处理
func NormalizeDPR(dpr float64) float64 {
	if math.IsNaN(dpr) || dpr < 1 {
		return 1
	}
	return dpr
}

// Surface 基于 Ebitengine 图像的 Canvas 实现
//
// 后备图像尺寸始终为 round(逻辑尺寸 × DPR)。所有绘制调用使用逻辑像素，
// 顶点在生成时乘以 DPR。尺寸为 0 时不持有图像，绘制调用为空操作。
type Surface struct {
	img   *ebiten.Image
	w, h  float64
	dpr   float64
	bw    int
	bh    int
	blend Blend
	alpha float64
	mesh  Mesh

	// Generation 每次替换后备图像时递增
	Generation int
}

// NewSurface 创建空表面；调用 Resize 后才可绘制
func NewSurface() *Surface {
	return &Surface{dpr: 1, alpha: 1}
}

// Resize 同步逻辑尺寸与 DPR
// 后备像素尺寸变化时立即替换图像，返回是否发生替换
func (s *Surface) Resize(w, h, dpr float64) bool {
	dpr = NormalizeDPR(dpr)
	s.w, s.h, s.dpr = math.Max(0, w), math.Max(0, h), dpr

	bw, bh := BackingSize(s.w, s.h, dpr)
	if bw == s.bw && bh == s.bh && (s.img != nil) == (bw > 0 && bh > 0) {
		return false
	}

	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.bw, s.bh = bw, bh
	if bw > 0 && bh > 0 {
		s.img = ebiten.NewImage(bw, bh)
	}
	s.Generation++
	// 绘制状态随后备图像一起重置
	s.blend = BlendSourceOver
	s.alpha = 1
	return true
}

// BackingSize 返回后备图像像素尺寸
func (s *Surface) BackingSize() (int, int) {
	return s.bw, s.bh
}

// DPR 返回当前设备像素比
func (s *Surface) DPR() float64 {
	return s.dpr
}

// Image 返回后备图像，尺寸为 0 时返回 nil
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

// Dispose 释放后备图像
func (s *Surface) Dispose() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h, s.bw, s.bh = 0, 0, 0, 0
}

// DrawTo 将表面绘制到 dst
// geo 把后备图像像素映射到 dst 像素，调用方负责元素变换
func (s *Surface) DrawTo(dst *ebiten.Image, geo ebiten.GeoM, opacity float32) {
	if s.img == nil || dst == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geo
	op.ColorScale.ScaleAlpha(opacity)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.img, op)
}

// Size 实现 Canvas
func (s *Surface) Size() (float64, float64) {
	return s.w, s.h
}

// Clear 实现 Canvas
func (s *Surface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

// SetBlend 实现 Canvas
func (s *Surface) SetBlend(b Blend) {
	s.blend = b
}

// SetAlpha 实现 Canvas
func (s *Surface) SetAlpha(a float64) {
	s.alpha = math.Max(0, math.Min(1, a))
}

// FillLinearX 实现 Canvas
func (s *Surface) FillLinearX(x0, x1 float64, stops []ColorStop) {
	if s.img == nil {
		return
	}
	s.mesh.Reset()
	s.mesh.AppendLinearX(s.w, s.h, x0, x1, s.dpr, s.alpha, stops)
	s.flush()
}

// FillRadial 实现 Canvas
func (s *Surface) FillRadial(cx, cy, shapeR, gradR float64, stops []ColorStop) {
	if s.img == nil {
		return
	}
	s.mesh.Reset()
	s.mesh.AppendRadial(cx, cy, shapeR, gradR, s.dpr, s.alpha, stops)
	s.flush()
}

func (s *Surface) flush() {
	if len(s.mesh.Indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	op.Blend = EbitenBlend(s.blend)
	s.img.DrawTriangles(s.mesh.Vertices, s.mesh.Indices, whiteSource(), op)
}
