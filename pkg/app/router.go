package app

import (
	"go.uber.org/zap"

	"github.com/decker502/glassfx/internal/logging"
	"github.com/decker502/glassfx/pkg/fx"
	"github.com/decker502/glassfx/pkg/utils"
)

// 非激活按键（与 DOM KeyboardEvent.key 取值一致）
const (
	KeyTab       = "Tab"
	KeyPageDown  = "PageDown"
	KeyPageUp    = "PageUp"
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyHome      = "Home"
	KeyEnd       = "End"
)

// Router 把指针与键盘输入分发给按钮的特效实例
//
// 悬停：指针在按钮间移动时依次触发 OnLeave / OnEnter，停留时触发 OnMove。
// 点击：按下与释放落在同一按钮内才算一次点击。
// 键盘：Tab 切换焦点，其余按键先交给焦点按钮，未被 PreventDefault 的再执行默认滚动。
type Router struct {
	reg    *Registry
	scroll *Scroller
	clock  fx.Clock
	log    *zap.SugaredLogger

	hovered *Button
	pressed *Button
	focus   int
	viewH   float64

	lastX, lastY float64
	hasLast      bool
}

// NewRouter 创建路由器
func NewRouter(reg *Registry, scroll *Scroller, clock fx.Clock, log *zap.SugaredLogger) *Router {
	if clock == nil {
		clock = fx.SystemClock{}
	}
	return &Router{
		reg:    reg,
		scroll: scroll,
		clock:  clock,
		log:    logging.OrNop(log).Named("router"),
		focus:  -1,
	}
}

// SetViewHeight 设置视图高度（翻页距离与焦点滚动使用）
func (r *Router) SetViewHeight(h float64) {
	r.viewH = h
}

// Hovered 返回当前悬停的按钮
func (r *Router) Hovered() *Button { return r.hovered }

// Pressed 返回按下尚未释放的按钮
func (r *Router) Pressed() *Button { return r.pressed }

// Focused 返回键盘焦点所在按钮
func (r *Router) Focused() *Button {
	if r.focus < 0 || r.focus >= r.reg.Len() {
		return nil
	}
	return r.reg.Buttons()[r.focus]
}

// Forget 清除对按钮的引用（按钮从注册表移除前调用）
// 焦点停留在其后的按钮上时序号随之前移
func (r *Router) Forget(b *Button) {
	if r.hovered == b {
		r.hovered = nil
	}
	if r.pressed == b {
		r.pressed = nil
	}
	switch idx := r.reg.Index(b); {
	case idx < 0:
	case r.focus == idx:
		r.focus = -1
	case r.focus > idx:
		r.focus--
	}
}

// Pointer 处理一帧指针状态，坐标为视图逻辑像素
func (r *Router) Pointer(f utils.PointerFrame) {
	now := r.clock.Now()
	off := r.scroll.Offset(now)
	x, y := f.X, f.Y+off

	if f.Present {
		r.hover(r.reg.HitTest(x, y), x, y)
	}

	if f.JustPressed {
		r.pressed = r.reg.HitTest(f.PressX, f.PressY+off)
		if r.pressed != nil {
			r.focus = r.reg.Index(r.pressed)
		}
	}
	if f.JustReleased {
		if b := r.reg.HitTest(x, y); b != nil && b == r.pressed {
			b.FX.OnClick(b.Local(x, y))
			r.log.Debugf("[Router] click %s", b.Config.ID)
		}
		r.pressed = nil
	}

	if !f.Present {
		// 触摸抬起或鼠标离开窗口
		r.hover(nil, x, y)
		r.hasLast = false
	}
}

func (r *Router) hover(hit *Button, x, y float64) {
	if hit != r.hovered {
		if r.hovered != nil {
			r.hovered.FX.OnLeave()
		}
		r.hovered = hit
		if hit != nil {
			p := hit.Local(x, y)
			hit.FX.OnEnter(p)
			hit.FX.OnMove(p)
		}
	} else if hit != nil && (!r.hasLast || x != r.lastX || y != r.lastY) {
		hit.FX.OnMove(hit.Local(x, y))
	}
	r.lastX, r.lastY, r.hasLast = x, y, true
}

// Key 处理一次按键
// 返回按键是否触发了默认动作（焦点切换或滚动）
func (r *Router) Key(key string, shift bool) bool {
	if key == KeyTab {
		r.moveFocus(shift)
		return true
	}

	ev := &fx.KeyEvent{Key: key}
	if b := r.Focused(); b != nil {
		b.FX.OnKeyDown(ev)
	}
	if ev.DefaultPrevented() {
		return false
	}
	return r.defaultAction(key, shift)
}

func (r *Router) moveFocus(back bool) {
	n := r.reg.Len()
	if n == 0 {
		return
	}
	switch {
	case r.focus < 0 && back:
		r.focus = n - 1
	case r.focus < 0:
		r.focus = 0
	case back:
		r.focus = (r.focus - 1 + n) % n
	default:
		r.focus = (r.focus + 1) % n
	}
	b := r.reg.Buttons()[r.focus]
	r.scroll.Reveal(b.Rect.Y, b.Rect.Y+b.Rect.H, r.viewH, r.clock.Now())
	r.log.Debugf("[Router] focus %s", b.Config.ID)
}

// defaultAction 页面的默认滚动行为
func (r *Router) defaultAction(key string, shift bool) bool {
	now := r.clock.Now()
	page := r.viewH * scrollPage
	switch key {
	case fx.KeySpace:
		if shift {
			page = -page
		}
		r.scroll.ScrollBy(page, now)
	case KeyPageDown:
		r.scroll.ScrollBy(page, now)
	case KeyPageUp:
		r.scroll.ScrollBy(-page, now)
	case KeyArrowDown:
		r.scroll.ScrollBy(scrollLine, now)
	case KeyArrowUp:
		r.scroll.ScrollBy(-scrollLine, now)
	case KeyHome:
		r.scroll.ScrollTo(0, now)
	case KeyEnd:
		r.scroll.ScrollTo(r.scroll.Max(), now)
	default:
		return false
	}
	return true
}

// Wheel 处理滚轮，dy 为 Ebitengine 的纵向滚轮值（向上为正）
func (r *Router) Wheel(dy float64) {
	if dy == 0 {
		return
	}
	r.scroll.ScrollBy(-dy*scrollLine, r.clock.Now())
}
