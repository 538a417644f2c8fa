package components

// Sweep 扫光状态（每个实例至多一个）
type Sweep struct {
	// CX, CY 触发位置（扫光中心的起点）
	CX, CY float64

	// Progress 归一化进度，超过 1 后由动画器清除
	Progress float64

	// Duration 本次扫光时长（毫秒），每次触发随机采样
	Duration float64
}
