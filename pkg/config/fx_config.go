package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/glassfx/internal/particle"
	"github.com/decker502/glassfx/pkg/embedded"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid fx config")

// 粒子模拟默认参数
const (
	// DefaultCapacity 每个实例的粒子容量上限（超出时淘汰最早的粒子）
	DefaultCapacity = 300
	// DefaultEpsilon 粒子剩余寿命低于此值时在 cull 中移除
	DefaultEpsilon = 0.02
	// DefaultMaxDelta 单帧 dt 上限，避免后台恢复后物理跳变
	DefaultMaxDelta = 32 * time.Millisecond

	DefaultDrag          = 0.05       // 水平速度指数阻尼（每秒）
	DefaultGravity       = 9.8 * 0.02 // 向下加速度（每秒）
	DefaultUnitScale     = 60.0       // 速度 → 像素/秒 的换算
	DefaultDecayRate     = 0.9        // 寿命衰减速率（相对墙钟秒）
	DefaultVelocityScale = 0.01       // 发射速度缩放
	DefaultHoverCount    = 6          // 悬停粒子数量
)

// 扫光默认参数
const (
	DefaultSheenExponent     = 0.8 // progress^0.8，运动逐渐减速
	DefaultSheenTravelFactor = 1.6 // 扫光中心移动距离 = 宽度 × 1.6
	DefaultSheenMaxWidth     = 360.0
	DefaultSheenMinWidth     = 60.0
)

// 渲染默认参数
const (
	DefaultAuraHalfWidth        = 120.0
	DefaultAuraPaletteAlpha     = 0.18
	DefaultParticleFadeExponent = 1.6 // 不透明度 = lifeRatio^1.6
	DefaultParticleGrowth       = 0.6 // 半径随衰减放大的比例
	DefaultParticleGradient     = 2.0 // 径向渐变半径 = 粒子半径 × 2
)

// 磁吸与点击弹跳默认参数
const (
	DefaultMagnetTranslateX = 0.06
	DefaultMagnetTranslateY = 0.04
	DefaultMagnetRotateDeg  = 6.0
	DefaultMagnetHoverScale = 1.03
	DefaultGlowFollow       = 0.2
	DefaultGlowScale        = 1.02
	DefaultReturnDuration   = 360 * time.Millisecond
	DefaultSpringFrequency  = 18.0
	DefaultSpringDamping    = 1.0
	DefaultPopDuration      = 420 * time.Millisecond
	DefaultPopLift          = 10.0
	DefaultPopScale         = 1.06
	// DefaultPopCurve 弹跳权重关键帧：base → 峰值 → base
	DefaultPopCurve = "0,0 0.5,1 1,0"
)

// DefaultEasing cubic-bezier(.2,.9,.3,1) 控制点
var DefaultEasing = [4]float64{0.2, 0.9, 0.3, 1}

// PhysicsConfig 粒子物理参数
type PhysicsConfig struct {
	Drag          float64        `yaml:"drag"`
	Gravity       float64        `yaml:"gravity"`
	UnitScale     float64        `yaml:"unitScale"`
	DecayRate     float64        `yaml:"decayRate"`
	VelocityScale float64        `yaml:"velocityScale"`
	Life          particle.Range `yaml:"life"` // life 与 maxLife 分别独立采样
}

// SheenConfig 扫光参数
type SheenConfig struct {
	Duration     particle.Range `yaml:"durationMs"` // 毫秒
	Exponent     float64        `yaml:"exponent"`
	TravelFactor float64        `yaml:"travelFactor"`
	Jitter       particle.Range `yaml:"jitter"` // 每帧中心抖动倍数
	MaxWidth     float64        `yaml:"maxWidth"`
	MinWidth     float64        `yaml:"minWidth"`
}

// RenderConfig 合成参数
type RenderConfig struct {
	AuraHalfWidth        float64 `yaml:"auraHalfWidth"`
	AuraPaletteAlpha     float64 `yaml:"auraPaletteAlpha"`
	ParticleFadeExponent float64 `yaml:"particleFadeExponent"`
	ParticleGrowth       float64 `yaml:"particleGrowth"`
	ParticleGradient     float64 `yaml:"particleGradient"`
}

// MagnetConfig 磁吸倾斜与发光层参数
type MagnetConfig struct {
	TranslateX      float64       `yaml:"translateX"`
	TranslateY      float64       `yaml:"translateY"`
	RotateDeg       float64       `yaml:"rotateDeg"`
	HoverScale      float64       `yaml:"hoverScale"`
	GlowFollow      float64       `yaml:"glowFollow"`
	GlowScale       float64       `yaml:"glowScale"`
	ReturnDuration  time.Duration `yaml:"returnDuration"`
	SpringFrequency float64       `yaml:"springFrequency"` // <= 0 表示直接跟随（无弹簧）
	SpringDamping   float64       `yaml:"springDamping"`
	Easing          [4]float64    `yaml:"easing,flow"`
}

// PopConfig 点击弹跳参数
type PopConfig struct {
	Duration time.Duration `yaml:"duration"`
	Lift     float64       `yaml:"lift"`
	Scale    float64       `yaml:"scale"`
	Curve    string        `yaml:"curve"` // 关键帧 "time,value ..."，首尾权重必须为 0

	keyframes []particle.Keyframe
}

// Keyframes 返回已解析的弹跳权重曲线
func (p PopConfig) Keyframes() []particle.Keyframe {
	return p.keyframes
}

// FXConfig 单个按钮特效实例的全部调参
type FXConfig struct {
	Capacity int           `yaml:"capacity"`
	Epsilon  float64       `yaml:"epsilon"`
	MaxDelta time.Duration `yaml:"maxDelta"`

	Physics PhysicsConfig           `yaml:"physics"`
	Hover   particle.EmitterProfile `yaml:"hover"`
	Burst   particle.EmitterProfile `yaml:"burst"`
	Sheen   SheenConfig             `yaml:"sheen"`
	Render  RenderConfig            `yaml:"render"`
	Magnet  MagnetConfig            `yaml:"magnet"`
	Pop     PopConfig               `yaml:"pop"`

	hover particle.Profile
	burst particle.Profile
}

// Default 返回默认配置（已校验）
func Default() *FXConfig {
	cfg := &FXConfig{
		Capacity: DefaultCapacity,
		Epsilon:  DefaultEpsilon,
		MaxDelta: DefaultMaxDelta,
		Physics: PhysicsConfig{
			Drag:          DefaultDrag,
			Gravity:       DefaultGravity,
			UnitScale:     DefaultUnitScale,
			DecayRate:     DefaultDecayRate,
			VelocityScale: DefaultVelocityScale,
			Life:          particle.MustParseRange("[0.85 1.45]"),
		},
		Hover: particle.EmitterProfile{
			Count:     "6",
			Jitter:    "8",
			BaseSize:  "[0.6 2.0]",
			Speed:     "[30 90]",
			SizeScale: "[0.6 2.0]",
			Lift:      "0.1",
		},
		Burst: particle.EmitterProfile{
			Jitter:    "20",
			BaseSize:  "[1 3]",
			Speed:     "[120 300]",
			SizeScale: "[1.6 3.8]",
			Lift:      "0.5",
		},
		Sheen: SheenConfig{
			Duration:     particle.MustParseRange("[520 640]"),
			Exponent:     DefaultSheenExponent,
			TravelFactor: DefaultSheenTravelFactor,
			Jitter:       particle.MustParseRange("[0.9 1.1]"),
			MaxWidth:     DefaultSheenMaxWidth,
			MinWidth:     DefaultSheenMinWidth,
		},
		Render: RenderConfig{
			AuraHalfWidth:        DefaultAuraHalfWidth,
			AuraPaletteAlpha:     DefaultAuraPaletteAlpha,
			ParticleFadeExponent: DefaultParticleFadeExponent,
			ParticleGrowth:       DefaultParticleGrowth,
			ParticleGradient:     DefaultParticleGradient,
		},
		Magnet: MagnetConfig{
			TranslateX:      DefaultMagnetTranslateX,
			TranslateY:      DefaultMagnetTranslateY,
			RotateDeg:       DefaultMagnetRotateDeg,
			HoverScale:      DefaultMagnetHoverScale,
			GlowFollow:      DefaultGlowFollow,
			GlowScale:       DefaultGlowScale,
			ReturnDuration:  DefaultReturnDuration,
			SpringFrequency: DefaultSpringFrequency,
			SpringDamping:   DefaultSpringDamping,
			Easing:          DefaultEasing,
		},
		Pop: PopConfig{
			Duration: DefaultPopDuration,
			Lift:     DefaultPopLift,
			Scale:    DefaultPopScale,
			Curve:    DefaultPopCurve,
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: default fx config is invalid: %v", err))
	}
	return cfg
}

// Parse 在默认配置之上应用 YAML 覆盖项
// 文件中未出现的字段保留默认值
func Parse(data []byte) (*FXConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fx config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 从文件加载配置
// 优先读取本地文件（便于调参后重新加载），不存在时读取嵌入资源
func Load(path string) (*FXConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fx config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fx config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 校验配置并解析粒子发射描述
func (c *FXConfig) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must not be negative, got %v", ErrInvalidConfig, c.Epsilon)
	}
	if c.MaxDelta <= 0 {
		return fmt.Errorf("%w: maxDelta must be positive, got %v", ErrInvalidConfig, c.MaxDelta)
	}
	if c.Physics.UnitScale <= 0 || c.Physics.DecayRate <= 0 {
		return fmt.Errorf("%w: unitScale and decayRate must be positive", ErrInvalidConfig)
	}
	if c.Physics.Life.Min <= 0 {
		return fmt.Errorf("%w: physics.life must be positive, got %s", ErrInvalidConfig, c.Physics.Life)
	}
	if c.Sheen.Duration.Min <= 0 {
		return fmt.Errorf("%w: sheen.durationMs must be positive, got %s", ErrInvalidConfig, c.Sheen.Duration)
	}
	if c.Sheen.Exponent <= 0 || c.Sheen.Exponent >= 1 {
		return fmt.Errorf("%w: sheen.exponent must be in (0,1), got %v", ErrInvalidConfig, c.Sheen.Exponent)
	}
	if c.Sheen.MinWidth <= 0 || c.Sheen.MaxWidth < c.Sheen.MinWidth {
		return fmt.Errorf("%w: sheen widths must satisfy 0 < minWidth <= maxWidth", ErrInvalidConfig)
	}
	if c.Render.ParticleFadeExponent <= 1 {
		return fmt.Errorf("%w: render.particleFadeExponent must be > 1, got %v", ErrInvalidConfig, c.Render.ParticleFadeExponent)
	}
	if c.Magnet.ReturnDuration < 0 || c.Pop.Duration < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}

	if c.Pop.Curve == "" {
		c.Pop.Curve = DefaultPopCurve
	}
	curve, err := particle.ParseKeyframes(c.Pop.Curve)
	if err != nil {
		return fmt.Errorf("%w: pop.curve: %v", ErrInvalidConfig, err)
	}
	first, last := curve[0], curve[len(curve)-1]
	if first.Time != 0 || last.Time != 1 || first.Value != 0 || last.Value != 0 {
		return fmt.Errorf("%w: pop.curve must run from 0,0 to 1,0, got %q", ErrInvalidConfig, c.Pop.Curve)
	}
	c.Pop.keyframes = curve

	hover, err := particle.ParseProfile(c.Hover)
	if err != nil {
		return fmt.Errorf("%w: hover: %v", ErrInvalidConfig, err)
	}
	if !hover.HasCount {
		return fmt.Errorf("%w: hover.count is required", ErrInvalidConfig)
	}
	burst, err := particle.ParseProfile(c.Burst)
	if err != nil {
		return fmt.Errorf("%w: burst: %v", ErrInvalidConfig, err)
	}
	c.hover = hover
	c.burst = burst
	return nil
}

// HoverProfile 返回已解析的悬停发射描述
func (c *FXConfig) HoverProfile() particle.Profile {
	return c.hover
}

// BurstProfile 返回已解析的点击爆发描述
func (c *FXConfig) BurstProfile() particle.Profile {
	return c.burst
}

// readConfigFile 读取配置文件：本地文件系统优先，其次嵌入资源
func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return data, err
}
