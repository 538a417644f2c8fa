package config

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB 调色板颜色（8 位通道）
type RGB struct {
	R, G, B uint8
}

// Colorful 转换为 go-colorful 颜色，用于渐变插值
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Hex 返回 "#rrggbb" 形式
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Palette 按钮主题（封闭集合）
// 每个实例在构造时选定一次，之后不再改变
type Palette int

const (
	// PaletteNeutral 默认中性灰（未识别或未设置主题时使用）
	PaletteNeutral Palette = iota
	// PalettePlum 紫色主题
	PalettePlum
	// PaletteAmber 琥珀色主题
	PaletteAmber
	// PaletteGold 金色主题
	PaletteGold
)

// paletteHex 主题 → 颜色
var paletteHex = map[Palette]string{
	PaletteNeutral: "#c8c8c8", // 200,200,200
	PalettePlum:    "#8e58d6", // 142,88,214
	PaletteAmber:   "#e9b266", // 233,178,102
	PaletteGold:    "#ebc872", // 235,200,114
}

var paletteNames = map[Palette]string{
	PaletteNeutral: "neutral",
	PalettePlum:    "plum",
	PaletteAmber:   "amber",
	PaletteGold:    "gold",
}

// paletteRGB 在包初始化时由 paletteHex 解码
var paletteRGB = func() map[Palette]RGB {
	out := make(map[Palette]RGB, len(paletteHex))
	for p, hex := range paletteHex {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic("config: invalid palette color " + hex)
		}
		r, g, b := c.RGB255()
		out[p] = RGB{R: r, G: g, B: b}
	}
	return out
}()

// ParsePalette 根据主题名称返回调色板
//
// 接受 "plum" 以及旧的 class 写法 "voice-plum"，大小写不敏感。
// 未识别或为空时返回 PaletteNeutral。
func ParsePalette(name string) Palette {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "voice-")
	for p, n := range paletteNames {
		if n == name {
			return p
		}
	}
	return PaletteNeutral
}

// RGB 返回主题颜色；越界值按中性灰处理
func (p Palette) RGB() RGB {
	if c, ok := paletteRGB[p]; ok {
		return c
	}
	return paletteRGB[PaletteNeutral]
}

// String 返回主题名称
func (p Palette) String() string {
	if n, ok := paletteNames[p]; ok {
		return n
	}
	return paletteNames[PaletteNeutral]
}

// Palettes 返回所有主题（按枚举顺序）
func Palettes() []Palette {
	return []Palette{PaletteNeutral, PalettePlum, PaletteAmber, PaletteGold}
}
