// Package utils 提供通用工具函数
package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受进度 t ∈ [0, 1]，返回缓动后的值。
// CubicBezier 与 CSS transition-timing-function 的 cubic-bezier() 语义一致。

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（画廊滚动使用）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// bezierEpsilon 求解 x(t) = x 的精度
const bezierEpsilon = 1e-7

// CubicBezier 返回 cubic-bezier(x1, y1, x2, y2) 缓动函数
//
// 端点固定为 (0,0) 与 (1,1)。x1、x2 被钳制到 [0,1] 以保证 x(t) 单调。
// 先用牛顿迭代求参数 t，不收敛时退回二分法。
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	x1 = Clamp(x1, 0, 1)
	x2 = Clamp(x2, 0, 1)

	// 多项式系数：B(t) = ((a*t + b)*t + c)*t
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solveT := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < bezierEpsilon {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < bezierEpsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			next := (lo + hi) / 2
			if next == t {
				break
			}
			t = next
		}
		return t
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return sampleY(solveT(x))
	}
}

// CubicBezierPoints 以 [4]float64 控制点构造缓动函数（配置文件使用此形式）
func CubicBezierPoints(p [4]float64) EasingFunc {
	return CubicBezier(p[0], p[1], p[2], p[3])
}
