package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStore 在临时 HOME 下打开 gdata 存储
func openTestStore(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !s.ShowOverlay {
		t.Error("ShowOverlay: got false, want true")
	}
	if s.ReducedMotion {
		t.Error("ReducedMotion: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, nil)
	if sm.Persistent() {
		t.Error("nil store should not be persistent")
	}

	sm.SetReducedMotion(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not error, got %v", err)
	}
	if !sm.GetSettings().ReducedMotion {
		t.Error("in-memory setting lost")
	}

	// Load 在降级模式下重置为默认值
	if err := sm.Load(); err != nil {
		t.Errorf("Load() error: %v", err)
	}
	if sm.GetSettings().ReducedMotion {
		t.Error("degraded Load should reset to defaults")
	}
}

// TestSettingsManager_SaveLoadRoundTrip 测试保存后重新加载
func TestSettingsManager_SaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t, "glassfx_settings_roundtrip")

	sm := NewSettingsManager(store, nil)
	sm.SetFullscreen(true)
	sm.SetReducedMotion(true)
	if on := sm.ToggleOverlay(); on {
		t.Fatal("ToggleOverlay should turn the default overlay off")
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(store, nil)
	got := reloaded.GetSettings()
	if !got.Fullscreen || !got.ReducedMotion || got.ShowOverlay {
		t.Errorf("reloaded settings = %+v", *got)
	}
}

// TestSettingsManager_CorruptData 测试损坏数据回退到默认值
func TestSettingsManager_CorruptData(t *testing.T) {
	store := openTestStore(t, "glassfx_settings_corrupt")
	if err := store.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: [")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm := NewSettingsManager(store, nil)
	if sm.GetSettings().Fullscreen {
		t.Error("corrupt data should fall back to defaults")
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestSettingsManager_PartialData 测试缺失字段保留默认值
func TestSettingsManager_PartialData(t *testing.T) {
	store := openTestStore(t, "glassfx_settings_partial")
	if err := store.SaveObjectProp(settingsObject, settingsProperty, []byte("reducedMotion: true\n")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	got := NewSettingsManager(store, nil).GetSettings()
	if !got.ReducedMotion {
		t.Error("ReducedMotion not loaded")
	}
	if !got.ShowOverlay {
		t.Error("ShowOverlay should keep its default")
	}
}
