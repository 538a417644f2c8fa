package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/glassfx/internal/logging"
)

// DemoSettings 画廊演示的全局偏好
// 只保存宿主偏好，不保存任何特效的视觉状态
type DemoSettings struct {
	// 显示设置
	Fullscreen  bool `yaml:"fullscreen"`  // 启动时是否全屏
	ShowOverlay bool `yaml:"showOverlay"` // 是否显示帧统计叠加层

	// ReducedMotion 减少动态效果：关闭过渡动画，离开与点击弹跳直接跳到终态
	ReducedMotion bool `yaml:"reducedMotion"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DemoSettings {
	return &DemoSettings{
		Fullscreen:    false,
		ShowOverlay:   true,
		ReducedMotion: false,
	}
}

// SettingsManager 设置管理器
// 负责演示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DemoSettings  // 当前设置
	log          *zap.SugaredLogger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "demo"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - log: 日志，可为 nil
//
// 加载失败不是致命错误，记录警告后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager, log *zap.SugaredLogger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		log:          logging.OrNop(log).Named("settings"),
	}

	if err := sm.Load(); err != nil {
		sm.log.Warnf("[SettingsManager] Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，缺失字段保留默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	sm.log.Debugf("[SettingsManager] Settings loaded: %+v", *loaded)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.log.Debugf("[SettingsManager] Settings saved")
	return nil
}

// Persistent 返回设置是否可以持久化
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DemoSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleOverlay 切换统计叠加层，返回新状态
func (sm *SettingsManager) ToggleOverlay() bool {
	sm.settings.ShowOverlay = !sm.settings.ShowOverlay
	return sm.settings.ShowOverlay
}

// SetReducedMotion 设置减少动态效果
func (sm *SettingsManager) SetReducedMotion(enabled bool) {
	sm.settings.ReducedMotion = enabled
}

// OpenStore 打开 gdata 存储
// 失败时返回 nil 与错误，调用方可继续以降级模式运行
func OpenStore(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata store %q: %w", appName, err)
	}
	return m, nil
}
