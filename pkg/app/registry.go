package app

import (
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/fx"
)

// Rect 画廊内容坐标系中的矩形（逻辑像素，未减去滚动偏移）
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否落在矩形内（右下边界不包含）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Button 画廊中的一个玻璃按钮及其特效实例
type Button struct {
	Config config.ButtonConfig
	Rect   Rect
	FX     *fx.Instance

	body *glassBody
}

// Local 将内容坐标转换为元素局部坐标
func (b *Button) Local(x, y float64) fx.Point {
	return fx.Point{X: x - b.Rect.X, Y: y - b.Rect.Y}
}

// InstanceFactory 为按钮创建特效实例
type InstanceFactory func(cfg config.ButtonConfig) *fx.Instance

// Registry 按元素 ID 管理特效实例
//
// 同一 ID 只会创建一次实例，重复的初始化调用返回已有按钮。
// 注册顺序即绘制顺序与 Tab 焦点顺序。
type Registry struct {
	order []*Button
	byID  map[string]*Button
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Button)}
}

// Ensure 返回 cfg.ID 对应的按钮，不存在时用 mk 创建实例
func (r *Registry) Ensure(cfg config.ButtonConfig, mk InstanceFactory) (*Button, bool) {
	if b, ok := r.byID[cfg.ID]; ok {
		return b, false
	}
	b := &Button{Config: cfg, FX: mk(cfg)}
	r.byID[cfg.ID] = b
	r.order = append(r.order, b)
	return b, true
}

// Get 按 ID 查找按钮
func (r *Registry) Get(id string) (*Button, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// Buttons 返回按注册顺序排列的按钮（调用方不得修改切片）
func (r *Registry) Buttons() []*Button {
	return r.order
}

// Len 返回按钮数量
func (r *Registry) Len() int {
	return len(r.order)
}

// Index 返回按钮的注册序号，未注册时返回 -1
func (r *Registry) Index(b *Button) int {
	for i, x := range r.order {
		if x == b {
			return i
		}
	}
	return -1
}

// HitTest 返回包含内容坐标 (x, y) 的按钮，后注册的在上层
func (r *Registry) HitTest(x, y float64) *Button {
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.order[i].Rect.Contains(x, y) {
			return r.order[i]
		}
	}
	return nil
}

// Remove 注销按钮并关闭其实例
func (r *Registry) Remove(id string) bool {
	b, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	for i, x := range r.order {
		if x == b {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	b.FX.Close()
	b.body.dispose()
	return true
}

// Prune 移除不在 keep 中的按钮，以及主题或变体已改变的按钮（随后由 Ensure 重建）
// forget 在每个按钮注销前调用，返回移除数量
func (r *Registry) Prune(keep []config.ButtonConfig, forget func(*Button)) int {
	want := make(map[string]config.ButtonConfig, len(keep))
	for _, bc := range keep {
		want[bc.ID] = bc
	}
	var stale []*Button
	for _, b := range r.order {
		bc, ok := want[b.Config.ID]
		if !ok || bc.Palette != b.Config.Palette || bc.Variant != b.Config.Variant {
			stale = append(stale, b)
		}
	}
	for _, b := range stale {
		if forget != nil {
			forget(b)
		}
		r.Remove(b.Config.ID)
	}
	return len(stale)
}

// Close 关闭全部实例
func (r *Registry) Close() {
	for _, b := range r.order {
		b.FX.Close()
		b.body.dispose()
	}
	r.order = nil
	r.byID = make(map[string]*Button)
}
