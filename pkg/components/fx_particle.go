package components

import "github.com/decker502/glassfx/pkg/config"

// Particle 单个按钮粒子的运行时状态
//
// 坐标为画布局部的逻辑像素（CSS px），由 fx.ParticleSimulator 独占修改。
// 纯数据记录，不包含行为。
type Particle struct {
	// Position (画布局部坐标)
	X, Y float64

	// Velocity (每 1/60 秒的位移，乘以 UnitScale 得到像素/秒)
	VX, VY float64

	// Lifecycle (秒)
	Life    float64 // 剩余寿命，创建后单调递减
	MaxLife float64 // 创建时独立采样，仅用于计算淡出比例

	// Size 基础半径（像素）
	Size float64

	// Color 实例主题色
	Color config.RGB
}

// LifeRatio 返回 clamp(Life/MaxLife, 0, 1)
func (p *Particle) LifeRatio() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	r := p.Life / p.MaxLife
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
