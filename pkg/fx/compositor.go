package fx

import (
	"math"

	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/render"
)

// ParticleSource 合成器读取粒子的方式（按发射顺序遍历）
type ParticleSource interface {
	Each(fn func(p *components.Particle))
}

// Frame 一帧合成所需的只读快照
type Frame struct {
	Width, Height float64

	// Pointer 最后一次指针位置（元素局部坐标）
	Pointer    Point
	HasPointer bool

	Palette config.RGB

	Sweep       components.Sweep
	SweepActive bool
	// SweepJitter 本帧扫光中心抖动倍数
	SweepJitter float64

	Particles ParticleSource
}

// Compositor 将光晕、扫光和粒子按固定顺序绘制到 Canvas
type Compositor struct {
	render config.RenderConfig
	sheen  config.SheenConfig

	auraStops     []render.ColorStop
	sweepStops    []render.ColorStop
	particleStops []render.ColorStop
}

// NewCompositor 创建合成器
func NewCompositor(rc config.RenderConfig, sc config.SheenConfig) *Compositor {
	return &Compositor{
		render: rc,
		sheen:  sc,
		auraStops: []render.ColorStop{
			{Offset: 0, Color: render.White, Alpha: 0},
			{Offset: 0.35, Color: render.White, Alpha: 0.04},
			{Offset: 0.5, Alpha: rc.AuraPaletteAlpha}, // 颜色每帧填入主题色
			{Offset: 0.65, Color: render.White, Alpha: 0.03},
			{Offset: 1, Color: render.White, Alpha: 0},
		},
		sweepStops: []render.ColorStop{
			{Offset: 0, Color: render.White, Alpha: 0},
			{Offset: 0.45, Color: render.White, Alpha: 0.45},
			{Offset: 0.5, Color: render.White, Alpha: 0.85},
			{Offset: 0.55, Color: render.White, Alpha: 0.45},
			{Offset: 1, Color: render.White, Alpha: 0},
		},
		particleStops: []render.ColorStop{
			{Offset: 0, Alpha: 0.98},
			{Offset: 0.3, Alpha: 0.6},
			{Offset: 1, Color: render.White, Alpha: 0.02},
		},
	}
}

// Draw 合成一帧；c 为 nil 时不做任何事
//
// 顺序：清空 → 光晕 → 扫光（加法混合）→ 粒子（按发射顺序）。
func (c *Compositor) Draw(cv render.Canvas, f Frame) {
	if cv == nil {
		return
	}
	cv.Clear()
	cv.SetBlend(render.BlendSourceOver)
	cv.SetAlpha(1)

	// 光晕：以指针 X 为中心的水平渐变，无指针时居中
	baseX := f.Width / 2
	if f.HasPointer {
		baseX = f.Pointer.X
	}
	c.auraStops[2].Color = f.Palette
	cv.FillLinearX(baseX-c.render.AuraHalfWidth, baseX+c.render.AuraHalfWidth, c.auraStops)

	if f.SweepActive {
		center, bw := sweepBand(c.sheen, f.Sweep, f.Width, f.SweepJitter)
		cv.SetBlend(render.BlendLighter)
		cv.FillLinearX(center-bw/2, center+bw/2, c.sweepStops)
		cv.SetBlend(render.BlendSourceOver)
	}

	if f.Particles == nil {
		return
	}
	f.Particles.Each(func(p *components.Particle) {
		lr := p.LifeRatio()
		cv.SetAlpha(math.Pow(lr, c.render.ParticleFadeExponent))
		r := p.Size * (1 + (1-lr)*c.render.ParticleGrowth)
		c.particleStops[0].Color = p.Color
		c.particleStops[1].Color = p.Color
		cv.FillRadial(p.X, p.Y, r, r*c.render.ParticleGradient, c.particleStops)
		cv.SetAlpha(1)
	})
}
