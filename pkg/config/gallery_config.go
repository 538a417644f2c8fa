package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// 画廊窗口与布局默认值（逻辑像素）
const (
	GalleryWindowWidth  = 960
	GalleryWindowHeight = 640

	DefaultButtonWidth  = 240.0
	DefaultButtonHeight = 72.0
	DefaultButtonGap    = 40.0
	DefaultGalleryPad   = 48.0
)

// ButtonConfig 画廊中的单个玻璃按钮
type ButtonConfig struct {
	ID      string  `yaml:"id"`
	Label   string  `yaml:"label"`
	Palette string  `yaml:"palette"` // plum / amber / gold，其他值为中性灰
	Variant string  `yaml:"variant"` // default / ripple / pulse
	Width   float64 `yaml:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty"`
}

// GalleryConfig 画廊布局配置
type GalleryConfig struct {
	Title       string         `yaml:"title"`
	ButtonGap   float64        `yaml:"buttonGap"`
	Padding     float64        `yaml:"padding"`
	Transitions *bool          `yaml:"transitions,omitempty"` // nil 表示启用过渡动画
	Buttons     []ButtonConfig `yaml:"buttons"`
}

// DefaultGallery 内置画廊：每种主题与变体各一个按钮
func DefaultGallery() *GalleryConfig {
	g := &GalleryConfig{
		Title:     "Glass Buttons",
		ButtonGap: DefaultButtonGap,
		Padding:   DefaultGalleryPad,
		Buttons: []ButtonConfig{
			{ID: "plum", Label: "Plum", Palette: "plum", Variant: "default"},
			{ID: "amber", Label: "Amber Ripple", Palette: "amber", Variant: "ripple"},
			{ID: "gold", Label: "Gold Pulse", Palette: "gold", Variant: "pulse"},
			{ID: "neutral", Label: "Neutral", Palette: "", Variant: "default"},
		},
	}
	g.applyDefaults()
	return g
}

// ParseGallery 解析画廊 YAML 并补全默认尺寸
func ParseGallery(data []byte) (*GalleryConfig, error) {
	g := &GalleryConfig{}
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("failed to parse gallery YAML: %w", err)
	}
	g.applyDefaults()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadGallery 从嵌入资源或本地文件加载画廊配置
func LoadGallery(path string) (*GalleryConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery config %s: %w", path, err)
	}
	g, err := ParseGallery(data)
	if err != nil {
		return nil, fmt.Errorf("gallery config %s: %w", path, err)
	}
	return g, nil
}

// TransitionsEnabled 返回是否启用过渡动画
func (g *GalleryConfig) TransitionsEnabled() bool {
	return g.Transitions == nil || *g.Transitions
}

// Validate 校验按钮 ID 唯一且非空
func (g *GalleryConfig) Validate() error {
	if len(g.Buttons) == 0 {
		return fmt.Errorf("%w: gallery has no buttons", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(g.Buttons))
	for i, b := range g.Buttons {
		if b.ID == "" {
			return fmt.Errorf("%w: button %d has no id", ErrInvalidConfig, i)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate button id %q", ErrInvalidConfig, b.ID)
		}
		seen[b.ID] = true
		if b.Width < 0 || b.Height < 0 {
			return fmt.Errorf("%w: button %q has negative size", ErrInvalidConfig, b.ID)
		}
	}
	return nil
}

func (g *GalleryConfig) applyDefaults() {
	if g.ButtonGap <= 0 {
		g.ButtonGap = DefaultButtonGap
	}
	if g.Padding <= 0 {
		g.Padding = DefaultGalleryPad
	}
	for i := range g.Buttons {
		b := &g.Buttons[i]
		if b.Width == 0 {
			b.Width = DefaultButtonWidth
		}
		if b.Height == 0 {
			b.Height = DefaultButtonHeight
		}
		if b.Label == "" {
			b.Label = b.ID
		}
	}
}
