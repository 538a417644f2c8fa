package app

import (
	"math"
	"time"

	"github.com/decker502/glassfx/pkg/fx"
	"github.com/decker502/glassfx/pkg/utils"
)

// 滚动参数
const (
	scrollDuration = 240 * time.Millisecond
	scrollLine     = 40.0  // 方向键与滚轮单步距离
	scrollPage     = 0.875 // 翻页距离占视图高度的比例
)

// Scroller 画廊的纵向滚动位置，目标变化时以 EaseOutCubic 过渡
type Scroller struct {
	from, to float64
	max      float64
	tween    *fx.Tween
}

// NewScroller 创建位于顶部的滚动器
func NewScroller() *Scroller {
	return &Scroller{}
}

// SetBounds 更新内容与视图高度，目标位置超出范围时立即收回
func (s *Scroller) SetBounds(content, view float64) {
	s.max = math.Max(0, content-view)
	if s.to > s.max {
		s.from, s.to, s.tween = s.max, s.max, nil
	}
	if s.from > s.max {
		s.from = s.max
	}
}

// Max 返回最大偏移
func (s *Scroller) Max() float64 {
	return s.max
}

// Target 返回过渡结束后的偏移
func (s *Scroller) Target() float64 {
	return s.to
}

// Offset 返回 now 时刻的偏移
func (s *Scroller) Offset(now time.Time) float64 {
	if s.tween == nil {
		return s.to
	}
	if s.tween.Done(now) {
		s.from, s.tween = s.to, nil
		return s.to
	}
	return utils.Lerp(s.from, s.to, s.tween.Progress(now))
}

// ScrollTo 从当前位置过渡到 target（会被限制在 [0, Max]）
func (s *Scroller) ScrollTo(target float64, now time.Time) {
	target = utils.Clamp(target, 0, s.max)
	if target == s.to {
		return
	}
	s.from = s.Offset(now)
	s.to = target
	s.tween = fx.NewTween(now, scrollDuration, utils.EaseOutCubic)
}

// ScrollBy 在当前目标的基础上滚动 delta，连续调用会累积
func (s *Scroller) ScrollBy(delta float64, now time.Time) {
	s.ScrollTo(s.to+delta, now)
}

// Reveal 滚动到使 [top, bottom) 完整可见的最近位置
func (s *Scroller) Reveal(top, bottom, view float64, now time.Time) {
	switch {
	case top < s.to:
		s.ScrollTo(top, now)
	case bottom > s.to+view:
		s.ScrollTo(bottom-view, now)
	}
}
