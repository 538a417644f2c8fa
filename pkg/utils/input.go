package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 单帧原始指针采样
// 统一鼠标和触摸输入，触摸优先
type PointerSample struct {
	// X, Y 指针位置（逻辑像素）
	X, Y float64
	// Present 指针是否可用于悬停检测（鼠标始终可用，触摸仅在按住时）
	Present bool
	// Pressed 鼠标左键或触摸是否按下
	Pressed bool
	// Touch 是否为触摸输入
	Touch bool
}

// PointerFrame 经过帧间比较后的指针状态
type PointerFrame struct {
	PointerSample
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚释放；释放位置为最后一次有效位置
	JustReleased bool
	// PressX, PressY 最近一次按下的位置
	PressX, PressY float64
}

// PointerTracker 跟踪指针的按下/释放边沿
//
// 触摸释放的那一帧没有位置，沿用最后一次触摸位置。
type PointerTracker struct {
	last           PointerSample
	pressX, pressY float64
}

// Advance 输入本帧采样，返回带边沿信息的帧状态
func (t *PointerTracker) Advance(s PointerSample) PointerFrame {
	f := PointerFrame{PointerSample: s}

	if s.Pressed && !t.last.Pressed {
		f.JustPressed = true
		t.pressX, t.pressY = s.X, s.Y
	}
	if !s.Pressed && t.last.Pressed {
		f.JustReleased = true
		if s.Touch || t.last.Touch {
			// 触摸已抬起，使用保存的最后触摸位置
			f.X, f.Y = t.last.X, t.last.Y
			f.Touch = true
		}
	}
	f.PressX, f.PressY = t.pressX, t.pressY

	if s.Present {
		t.last = s
	} else {
		t.last.Pressed = s.Pressed
		t.last.Present = false
	}
	return f
}

// Reset 清除跟踪状态
func (t *PointerTracker) Reset() {
	*t = PointerTracker{}
}

// PollPointer 读取 Ebitengine 当前的指针状态
// scale 为屏幕坐标到逻辑像素的换算（Layout 返回物理像素时传入 1/DPR）
func PollPointer(scale float64) PointerSample {
	if scale <= 0 {
		scale = 1
	}

	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerSample{
			X: float64(x) * scale, Y: float64(y) * scale,
			Present: true, Pressed: true, Touch: true,
		}
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerSample{Touch: true}
	}

	// 其次检查鼠标输入（桌面设备）
	if IsMobile() {
		return PointerSample{}
	}
	x, y := ebiten.CursorPosition()
	return PointerSample{
		X:       float64(x) * scale,
		Y:       float64(y) * scale,
		Present: true,
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}
