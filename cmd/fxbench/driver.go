package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/fx"
	"github.com/decker502/glassfx/pkg/render"
	"github.com/decker502/glassfx/pkg/telemetry"
)

// benchOptions 基准驱动参数
type benchOptions struct {
	Instances  int
	Frames     int
	FPS        float64
	Width      float64
	Height     float64
	DPR        float64
	ClickEvery int // 每隔多少帧点击一次，0 为不点击
	LeaveEvery int // 每隔多少帧离开并重新进入，0 为一直悬停
	HitchEvery int // 每隔多少帧插入一次 500ms 卡顿，0 为不插入
	Seed       int64
	Config     *config.FXConfig
}

func defaultBenchOptions() benchOptions {
	return benchOptions{
		Instances:  8,
		Frames:     600,
		FPS:        60,
		Width:      240,
		Height:     72,
		DPR:        2,
		ClickEvery: 20,
		LeaveEvery: 180,
		Seed:       1,
	}
}

// meshCanvas 只构建网格不提交 GPU 的画布，用于统计几何开销
type meshCanvas struct {
	w, h, dpr float64
	alpha     float64
	mesh      render.Mesh

	fills    int
	vertices int
	lighter  int
}

func (c *meshCanvas) Resize(w, h, dpr float64) bool {
	changed := c.w != w || c.h != h || c.dpr != dpr
	c.w, c.h, c.dpr = w, h, dpr
	return changed
}

func (c *meshCanvas) Size() (float64, float64) { return c.w, c.h }
func (c *meshCanvas) Clear()                   {}
func (c *meshCanvas) SetAlpha(a float64)       { c.alpha = a }

func (c *meshCanvas) SetBlend(b render.Blend) {
	if b == render.BlendLighter {
		c.lighter++
	}
}

func (c *meshCanvas) FillLinearX(x0, x1 float64, stops []render.ColorStop) {
	c.mesh.Reset()
	c.mesh.AppendLinearX(c.w, c.h, x0, x1, c.dpr, c.alpha, stops)
	c.fills++
	c.vertices += len(c.mesh.Vertices)
}

func (c *meshCanvas) FillRadial(cx, cy, shapeR, gradR float64, stops []render.ColorStop) {
	c.mesh.Reset()
	c.mesh.AppendRadial(cx, cy, shapeR, gradR, c.dpr, c.alpha, stops)
	c.fills++
	c.vertices += len(c.mesh.Vertices)
}

// benchResult 一次运行的汇总
type benchResult struct {
	Stats       telemetry.PerfStats
	Activations int
	Fills       int
	Vertices    int
	SweepDraws  int
	Peak        int // 单个实例的最大粒子数
	Elapsed     time.Duration
}

// runBench 用手动时钟驱动实例，合成悬停、移动与点击输入
func runBench(opts benchOptions, perf *telemetry.PerfCollector, log *zap.SugaredLogger) (benchResult, error) {
	if opts.Instances <= 0 || opts.Frames <= 0 || opts.FPS <= 0 {
		return benchResult{}, fmt.Errorf("instances, frames and fps must be positive")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	clock := fx.NewManualClock(time.Unix(0, 0))
	sched := fx.NewScheduler(clock, log)
	palettes := config.Palettes()
	variants := []config.Variant{config.VariantDefault, config.VariantRipple, config.VariantPulse}

	instances := make([]*fx.Instance, opts.Instances)
	canvases := make([]*meshCanvas, opts.Instances)
	for i := range instances {
		canvases[i] = &meshCanvas{alpha: 1}
		instances[i] = fx.New(fx.Options{
			ID:          fmt.Sprintf("bench-%d", i),
			Palette:     palettes[i%len(palettes)],
			Variant:     variants[i%len(variants)],
			Config:      cfg,
			Transitions: true,
			Canvas:      canvases[i],
			Scheduler:   sched,
			Clock:       clock,
			Rand:        rand.New(rand.NewSource(opts.Seed + int64(i))),
			Logger:      log,
			Observer:    perf,
		})
		instances[i].Resize(opts.Width, opts.Height, opts.DPR)
	}
	defer func() {
		for _, in := range instances {
			in.Close()
		}
	}()

	step := time.Duration(float64(time.Second) / opts.FPS)
	res := benchResult{}
	start := time.Now()
	sched.Start()
	for f := 0; f < opts.Frames; f++ {
		for i, in := range instances {
			p := pointerAt(f, i, opts)
			switch {
			case f == 0 || (opts.LeaveEvery > 0 && f%opts.LeaveEvery == 1):
				in.OnEnter(p)
			case opts.LeaveEvery > 0 && f%opts.LeaveEvery == 0:
				in.OnLeave()
			}
			if in.Active() {
				in.OnMove(p)
				if opts.ClickEvery > 0 && (f+i)%opts.ClickEvery == 0 {
					in.OnClick(p)
				}
			}
			in.Settle(clock.Now())
		}
		sched.Frame()
		for _, in := range instances {
			res.Peak = max(res.Peak, in.Particles().Len())
		}

		if opts.HitchEvery > 0 && f > 0 && f%opts.HitchEvery == 0 {
			clock.Advance(500 * time.Millisecond)
		} else {
			clock.Advance(step)
		}
	}
	sched.Stop()
	res.Elapsed = time.Since(start)

	for i, in := range instances {
		res.Activations += in.Activations()
		res.Fills += canvases[i].fills
		res.Vertices += canvases[i].vertices
		res.SweepDraws += canvases[i].lighter
	}
	res.Stats = perf.Stats()
	return res, nil
}

// pointerAt 每个实例沿各自相位的李萨如曲线移动
func pointerAt(frame, instance int, opts benchOptions) fx.Point {
	t := float64(frame) / opts.FPS
	phase := float64(instance) * 0.7
	return fx.Point{
		X: opts.Width * (0.5 + 0.45*math.Sin(2.1*t+phase)),
		Y: opts.Height * (0.5 + 0.45*math.Sin(3.3*t+phase)),
	}
}
