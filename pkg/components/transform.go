package components

import "fmt"

// Transform 按钮元素的视觉变换
//
// 替代序列化的 CSS transform 字符串，宿主按字段自行解释。
type Transform struct {
	TranslateX float64 // 像素
	TranslateY float64 // 像素
	RotateX    float64 // 角度
	RotateY    float64 // 角度
	Scale      float64 // 1.0 = 原始大小
}

// NeutralTransform 返回静止状态（无位移、无旋转、缩放 1）
func NeutralTransform() Transform {
	return Transform{Scale: 1}
}

// LerpTransform 按 t 在 a、b 之间逐字段插值，t 不做钳制（允许缓动曲线越界）
func LerpTransform(a, b Transform, t float64) Transform {
	return Transform{
		TranslateX: a.TranslateX + (b.TranslateX-a.TranslateX)*t,
		TranslateY: a.TranslateY + (b.TranslateY-a.TranslateY)*t,
		RotateX:    a.RotateX + (b.RotateX-a.RotateX)*t,
		RotateY:    a.RotateY + (b.RotateY-a.RotateY)*t,
		Scale:      a.Scale + (b.Scale-a.Scale)*t,
	}
}

// String 调试输出，格式接近 CSS transform
func (t Transform) String() string {
	return fmt.Sprintf("translate(%.2fpx,%.2fpx) rotateX(%.2fdeg) rotateY(%.2fdeg) scale(%.3f)",
		t.TranslateX, t.TranslateY, t.RotateX, t.RotateY, t.Scale)
}

// Glow 跟随按钮的发光层
type Glow struct {
	Transform Transform
	Opacity   float64 // 0-1
}

// LerpGlow 插值发光层的变换与不透明度
func LerpGlow(a, b Glow, t float64) Glow {
	return Glow{
		Transform: LerpTransform(a.Transform, b.Transform, t),
		Opacity:   a.Opacity + (b.Opacity-a.Opacity)*t,
	}
}
