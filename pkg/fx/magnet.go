package fx

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/decker502/glassfx/internal/particle"
	"github.com/decker502/glassfx/pkg/components"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/utils"
)

// MagnetController 管理按钮的磁吸倾斜、发光层与点击弹跳
//
// 悬停时变换跟随指针（弹簧或直接跳转），离开时经缓动回到静止，
// 弹跳按配置的权重曲线叠加在元素当前变换之上，离开时随回弹一起回到静止。
// 所有更新都发生在指针事件或宿主调用 Settle 时，不依赖帧调度；
// 弹簧按两次步进之间的真实时间积分。
type MagnetController struct {
	cfg         config.MagnetConfig
	pop         config.PopConfig
	ease        utils.EasingFunc
	transitions bool

	width, height float64
	hovering      bool

	current  components.Transform
	target   components.Transform
	vel      [5]float64
	glow     components.Glow
	lastStep time.Time
	maxStep  time.Duration

	// 离开时的回弹
	ret         *Tween
	retFrom     components.Transform
	retGlowFrom components.Glow

	// 点击弹跳
	popTween *Tween
	pops     int
}

// NewMagnetController 创建静止状态的控制器
// transitions 为 false 时离开与弹跳直接跳到终态
func NewMagnetController(magnet config.MagnetConfig, pop config.PopConfig, transitions bool) *MagnetController {
	return &MagnetController{
		cfg:         magnet,
		pop:         pop,
		ease:        utils.CubicBezierPoints(magnet.Easing),
		transitions: transitions,
		current:     components.NeutralTransform(),
		target:      components.NeutralTransform(),
		glow:        components.Glow{Transform: components.NeutralTransform()},
	}
}

// SetSize 更新元素尺寸（计算倾斜角使用）
func (m *MagnetController) SetSize(w, h float64) {
	m.width, m.height = w, h
}

// SetMaxStep 设置单次弹簧步进的时间上限
func (m *MagnetController) SetMaxStep(d time.Duration) {
	m.maxStep = d
}

// SetTransitions 切换过渡动画
func (m *MagnetController) SetTransitions(on bool) {
	m.transitions = on
	if !on {
		m.ret = nil
		m.popTween = nil
		if !m.hovering {
			m.settleNeutral()
		}
	}
}

// Target 计算指针相对元素中心偏移 (dx, dy) 对应的目标变换
func (m *MagnetController) Target(dx, dy float64) components.Transform {
	t := components.Transform{
		TranslateX: dx * m.cfg.TranslateX,
		TranslateY: dy * m.cfg.TranslateY,
		Scale:      m.cfg.HoverScale,
	}
	if m.height > 0 {
		t.RotateX = (-dy / m.height) * m.cfg.RotateDeg
	}
	if m.width > 0 {
		t.RotateY = (dx / m.width) * m.cfg.RotateDeg
	}
	return t
}

// Follow 指针移动：更新目标并同步应用一步跟随，取消正在进行的回弹
//
// 进入时步进一帧；之后按距上次步进的时间积分，同一时刻的多次移动只更新目标。
func (m *MagnetController) Follow(dx, dy float64, now time.Time) {
	entering := !m.hovering
	if m.ret != nil {
		// 从回弹的当前位置继续
		m.current = m.elementAt(now)
		m.ret = nil
	}
	m.hovering = true
	m.target = m.Target(dx, dy)

	dt := harmonica.FPS(60)
	if !entering {
		dt = m.elapsed(now)
	}
	m.lastStep = now
	if dt > 0 {
		m.step(dt)
	}
}

// Settle 悬停期间继续向目标收敛（宿主每帧调用）
func (m *MagnetController) Settle(now time.Time) {
	if !m.hovering {
		return
	}
	dt := m.elapsed(now)
	m.lastStep = now
	if dt > 0 {
		m.step(dt)
	}
}

// elapsed 返回距上次步进的秒数，不超过 maxStep
func (m *MagnetController) elapsed(now time.Time) float64 {
	if m.lastStep.IsZero() {
		return 0
	}
	d := now.Sub(m.lastStep)
	if d <= 0 {
		return 0
	}
	if m.maxStep > 0 && d > m.maxStep {
		d = m.maxStep
	}
	return d.Seconds()
}

// step 弹簧步进；未配置弹簧时直接跳到目标
func (m *MagnetController) step(dt float64) {
	if m.cfg.SpringFrequency <= 0 {
		m.current = m.target
		m.vel = [5]float64{}
	} else {
		spring := harmonica.NewSpring(dt, m.cfg.SpringFrequency, m.cfg.SpringDamping)
		cur := fields(&m.current)
		tgt := fields(&m.target)
		for i := range cur {
			*cur[i], m.vel[i] = spring.Update(*cur[i], m.vel[i], *tgt[i])
		}
	}
	m.glow = m.glowFor(m.current)
}

// glowFor 发光层跟随元素：按比例平移，固定缩放，完全不透明
func (m *MagnetController) glowFor(t components.Transform) components.Glow {
	return components.Glow{
		Transform: components.Transform{
			TranslateX: t.TranslateX * m.cfg.GlowFollow,
			TranslateY: t.TranslateY * m.cfg.GlowFollow,
			Scale:      m.cfg.GlowScale,
		},
		Opacity: 1,
	}
}

// Release 指针离开：目标回到静止，启动回弹；发光层同步淡出
func (m *MagnetController) Release(now time.Time) {
	m.hovering = false
	m.target = components.NeutralTransform()
	m.vel = [5]float64{}

	if !m.transitions || m.cfg.ReturnDuration <= 0 {
		m.ret = nil
		m.settleNeutral()
		return
	}
	m.retFrom = m.elementAt(now)
	m.retGlowFrom = m.glowAt(now)
	m.ret = NewTween(now, m.cfg.ReturnDuration, m.ease)
}

func (m *MagnetController) settleNeutral() {
	m.current = components.NeutralTransform()
	m.glow = components.Glow{Transform: components.NeutralTransform(), Opacity: 0}
}

// Pop 启动点击弹跳
// 返回弹跳是否以动画形式进行
func (m *MagnetController) Pop(now time.Time) bool {
	m.pops++
	if !m.transitions || m.pop.Duration <= 0 {
		m.popTween = nil
		return false
	}
	m.popTween = NewTween(now, m.pop.Duration, m.ease)
	return true
}

// PopActive 返回弹跳是否仍在进行
func (m *MagnetController) PopActive(now time.Time) bool {
	return m.popTween != nil && !m.popTween.Done(now)
}

// Pops 返回累计弹跳次数
func (m *MagnetController) Pops() int {
	return m.pops
}

// Hovering 返回是否处于悬停跟随状态
func (m *MagnetController) Hovering() bool {
	return m.hovering
}

// Transform 返回 now 时刻元素应显示的变换
// 弹跳期间在元素当前变换（悬停跟随或离开回弹）与峰值之间插值
func (m *MagnetController) Transform(now time.Time) components.Transform {
	base := m.elementAt(now)
	if !m.PopActive(now) {
		return base
	}
	w := particle.EvaluateKeyframes(m.pop.Keyframes(), m.popTween.Progress(now))
	peak := components.Transform{TranslateY: -m.pop.Lift, Scale: m.pop.Scale}
	return components.LerpTransform(base, peak, w)
}

// Glow 返回 now 时刻发光层状态
func (m *MagnetController) Glow(now time.Time) components.Glow {
	return m.glowAt(now)
}

func (m *MagnetController) elementAt(now time.Time) components.Transform {
	if m.ret != nil {
		return components.LerpTransform(m.retFrom, components.NeutralTransform(), m.ret.Progress(now))
	}
	return m.current
}

func (m *MagnetController) glowAt(now time.Time) components.Glow {
	if m.ret != nil {
		end := components.Glow{Transform: components.NeutralTransform(), Opacity: 0}
		return components.LerpGlow(m.retGlowFrom, end, m.ret.Progress(now))
	}
	return m.glow
}

// fields 以固定顺序暴露变换的五个分量，供弹簧逐分量步进
func fields(t *components.Transform) [5]*float64 {
	return [5]*float64{&t.TranslateX, &t.TranslateY, &t.RotateX, &t.RotateY, &t.Scale}
}
