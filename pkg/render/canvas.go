// Package render 提供按钮特效使用的绘制表面抽象
//
// 所有几何参数使用逻辑像素（CSS px），由具体实现按 DPR 换算到后备图像。
package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/glassfx/pkg/config"
)

// Blend 合成模式
type Blend int

const (
	// BlendSourceOver 普通 alpha 混合
	BlendSourceOver Blend = iota
	// BlendLighter 加法混合（扫光高光）
	BlendLighter
)

// String 返回模式名称
func (b Blend) String() string {
	if b == BlendLighter {
		return "lighter"
	}
	return "source-over"
}

// ColorStop 渐变色标
type ColorStop struct {
	Offset float64    // 0-1
	Color  config.RGB // 颜色
	Alpha  float64    // 0-1，直通 alpha
}

// White 白色
var White = config.RGB{R: 255, G: 255, B: 255}

// Canvas 特效合成器使用的 2D 绘制表面
type Canvas interface {
	// Size 返回逻辑尺寸
	Size() (w, h float64)
	// Clear 清空为全透明
	Clear()
	// FillLinearX 用水平渐变填充整个表面
	// 渐变从 x0 延伸到 x1，区间外保持端点颜色
	FillLinearX(x0, x1 float64, stops []ColorStop)
	// FillRadial 以 (cx, cy) 为圆心填充半径 shapeR 的圆盘
	// 颜色按到圆心的距离在半径 gradR 的径向渐变上取样
	FillRadial(cx, cy, shapeR, gradR float64, stops []ColorStop)
	// SetBlend 设置之后绘制使用的合成模式
	SetBlend(b Blend)
	// SetAlpha 设置全局不透明度，乘到所有色标 alpha 上
	SetAlpha(a float64)
}

// SampleStops 在色标序列上取样 offset 处的颜色与 alpha
// 色标需按 Offset 升序排列；offset 超出范围时返回端点色标
func SampleStops(stops []ColorStop, offset float64) (colorful.Color, float64) {
	if len(stops) == 0 {
		return colorful.Color{}, 0
	}
	first := stops[0]
	if offset <= first.Offset {
		return first.Color.Colorful(), first.Alpha
	}
	for i := 1; i < len(stops); i++ {
		b := stops[i]
		if offset > b.Offset {
			continue
		}
		a := stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color.Colorful(), b.Alpha
		}
		t := (offset - a.Offset) / span
		c := a.Color.Colorful().BlendRgb(b.Color.Colorful(), t)
		return c, a.Alpha + (b.Alpha-a.Alpha)*t
	}
	last := stops[len(stops)-1]
	return last.Color.Colorful(), last.Alpha
}
