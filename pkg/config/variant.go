package config

import "strings"

// Variant 按钮变体，决定点击爆发的粒子数量
type Variant int

const (
	// VariantDefault 默认变体
	VariantDefault Variant = iota
	// VariantRipple 涟漪变体（粒子最多）
	VariantRipple
	// VariantPulse 脉冲变体
	VariantPulse
)

// 各变体的爆发粒子数量
const (
	BurstCountDefault = 24
	BurstCountRipple  = 36
	BurstCountPulse   = 30
)

// ParseVariant 解析变体名称，未识别时返回 VariantDefault
func ParseVariant(name string) Variant {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ripple":
		return VariantRipple
	case "pulse":
		return VariantPulse
	default:
		return VariantDefault
	}
}

// BurstCount 返回点击爆发的粒子数量
func (v Variant) BurstCount() int {
	switch v {
	case VariantRipple:
		return BurstCountRipple
	case VariantPulse:
		return BurstCountPulse
	default:
		return BurstCountDefault
	}
}

// String 返回变体名称
func (v Variant) String() string {
	switch v {
	case VariantRipple:
		return "ripple"
	case VariantPulse:
		return "pulse"
	default:
		return "default"
	}
}
