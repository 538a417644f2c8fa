package fx

import "time"

// Clock 时间源
// 调度器与实例通过它读取当前时间，测试与基准驱动注入 ManualClock
type Clock interface {
	Now() time.Time
}

// SystemClock 返回真实系统时间（带单调时钟读数）
type SystemClock struct{}

// Now 实现 Clock
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时钟
type ManualClock struct {
	now time.Time
}

// NewManualClock 创建从 start 开始的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 实现 Clock
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance 向前推进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set 设置为指定时间（允许回拨，用于测试负 dt）
func (c *ManualClock) Set(t time.Time) {
	c.now = t
}
