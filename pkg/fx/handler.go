package fx

// Point 元素局部坐标（逻辑像素，原点为元素左上角）
type Point struct {
	X, Y float64
}

// 激活按键（与 DOM KeyboardEvent.key 取值一致）
const (
	KeyEnter = "Enter"
	KeySpace = " "
)

// KeyEvent 键盘事件
// 处理器消费事件时调用 PreventDefault，宿主据此跳过默认动作（如空格滚动）
type KeyEvent struct {
	Key       string
	prevented bool
}

// PreventDefault 标记默认动作已被取消
func (e *KeyEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented 返回默认动作是否已被取消
func (e *KeyEvent) DefaultPrevented() bool {
	return e.prevented
}

// isActivationKey Enter 或空格（兼容旧的 "Spacebar" 写法）
func isActivationKey(key string) bool {
	switch key {
	case KeyEnter, KeySpace, "Space", "Spacebar":
		return true
	}
	return false
}

// OnEnter 指针进入：标记悬停并排入一组低能量悬停粒子
func (in *Instance) OnEnter(p Point) {
	if in.closed {
		return
	}
	in.active = true
	in.pointer, in.hasPointer = p, true

	prof := in.cfg.HoverProfile()
	count := int(prof.Count.Sample(in.rng))
	for i := 0; i < count; i++ {
		in.enqueueEmit(
			p.X+(in.rng.Float64()-0.5)*prof.Jitter.Sample(in.rng),
			p.Y+(in.rng.Float64()-0.5)*prof.Jitter.Sample(in.rng),
			prof.BaseSize.Sample(in.rng),
			false,
		)
	}
	in.log.Debugf("[Handler] enter %s at (%.1f,%.1f)", in.id, p.X, p.Y)
}

// OnMove 指针移动：记录位置并同步更新磁吸目标
func (in *Instance) OnMove(p Point) {
	if in.closed {
		return
	}
	in.pointer, in.hasPointer = p, true
	in.magnet.Follow(p.X-in.width/2, p.Y-in.height/2, in.clock.Now())
}

// OnLeave 指针离开：变换回到静止，已有粒子与扫光继续播放
func (in *Instance) OnLeave() {
	if in.closed {
		return
	}
	in.active = false
	in.magnet.Release(in.clock.Now())
	in.log.Debugf("[Handler] leave %s", in.id)
}

// OnActivate 激活：排入扫光与按变体数量的爆发粒子，并启动弹跳
func (in *Instance) OnActivate(p Point) {
	if in.closed {
		return
	}
	in.pending = append(in.pending, command{kind: cmdSheen, x: p.X, y: p.Y})

	prof := in.cfg.BurstProfile()
	count := in.variant.BurstCount()
	if prof.HasCount {
		count = int(prof.Count.Sample(in.rng))
	}
	for i := 0; i < count; i++ {
		in.enqueueEmit(
			p.X+(in.rng.Float64()-0.5)*prof.Jitter.Sample(in.rng),
			p.Y+(in.rng.Float64()-0.5)*prof.Jitter.Sample(in.rng),
			prof.BaseSize.Sample(in.rng),
			true,
		)
	}

	in.magnet.Pop(in.clock.Now())
	in.activations++
	in.log.Debugf("[Handler] activate %s (%s, %d particles) at (%.1f,%.1f)", in.id, in.variant, count, p.X, p.Y)
}

// OnClick 点击即激活
func (in *Instance) OnClick(p Point) {
	in.OnActivate(p)
}

// OnKeyDown Enter 或空格在元素中心激活并取消默认动作，其他按键不处理
func (in *Instance) OnKeyDown(ev *KeyEvent) {
	if in.closed || ev == nil || !isActivationKey(ev.Key) {
		return
	}
	ev.PreventDefault()
	in.OnActivate(Point{X: in.width / 2, Y: in.height / 2})
}
