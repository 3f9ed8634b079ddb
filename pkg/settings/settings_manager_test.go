package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager
// 无法创建时跳过测试
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("spawncycler_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("gdata storage unavailable: %v", err)
	}

	// 测试结束后删除测试目录
	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})
	return manager
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Difficulty != "hoe" || s.WaveSizeFakes != 12 || s.MaxMonsters != 32 || !s.ScaleByWSF {
		t.Errorf("unexpected defaults %+v", s)
	}
	if s.DefaultPreset != "default" {
		t.Errorf("DefaultPreset: got %q, want default", s.DefaultPreset)
	}
	if err := s.AnalyzerConfig().Validate(); err != nil {
		t.Errorf("default settings produce invalid analyzer config: %v", err)
	}
}

// TestSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, nil)
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil")
	}

	sm.AddRecentFile("a.txt")
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if len(sm.RecentFiles()) != 0 {
		t.Errorf("degraded Load() should reset to defaults, got %v", sm.RecentFiles())
	}
}

func TestSettingsManagerCustomDefaults(t *testing.T) {
	cfg := config.DefaultAnalyzerConfig()
	cfg.Difficulty = "hard"
	cfg.MaxMonsters = 64

	sm := NewSettingsManager(nil, cfg)
	if sm.GetSettings().Difficulty != "hard" || sm.GetSettings().MaxMonsters != 64 {
		t.Errorf("custom defaults not applied: %+v", sm.GetSettings())
	}
}

func TestSetAnalyzerDefaults(t *testing.T) {
	sm := NewSettingsManager(nil, nil)

	scale := false
	err := sm.SetAnalyzerDefaults(&config.AnalyzerConfig{Difficulty: "normal", WaveSizeFakes: 1, MaxMonsters: 8, ScaleByWSF: &scale})
	if err != nil {
		t.Fatalf("SetAnalyzerDefaults failed: %v", err)
	}
	s := sm.GetSettings()
	if s.Difficulty != "normal" || s.WaveSizeFakes != 1 || s.MaxMonsters != 8 || s.ScaleByWSF {
		t.Errorf("unexpected settings %+v", s)
	}

	if err := sm.SetAnalyzerDefaults(&config.AnalyzerConfig{Difficulty: "normal", WaveSizeFakes: 200, MaxMonsters: 8}); err == nil {
		t.Error("expected validation error for wsf 200")
	}
	if sm.GetSettings().WaveSizeFakes != 1 {
		t.Error("invalid update must not change settings")
	}
}

func TestAddRecentFile(t *testing.T) {
	sm := NewSettingsManager(nil, nil)
	dir := t.TempDir()

	for i := 0; i < MaxRecentFiles+3; i++ {
		sm.AddRecentFile(filepath.Join(dir, fmt.Sprintf("cycle_%d.txt", i)))
	}
	recent := sm.RecentFiles()
	if len(recent) != MaxRecentFiles {
		t.Fatalf("expected %d recent files, got %d", MaxRecentFiles, len(recent))
	}
	if recent[0] != filepath.Join(dir, fmt.Sprintf("cycle_%d.txt", MaxRecentFiles+2)) {
		t.Errorf("newest file should be first, got %s", recent[0])
	}

	// 重复打开的文件移到最前且不重复
	again := filepath.Join(dir, "cycle_5.txt")
	sm.AddRecentFile(again)
	recent = sm.RecentFiles()
	if recent[0] != again {
		t.Errorf("expected %s first, got %s", again, recent[0])
	}
	count := 0
	for _, p := range recent {
		if p == again {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected %s once, got %d times", again, count)
	}
}

func TestSettingsLoadSave(t *testing.T) {
	manager := createTestGdataManager(t, "load_save")

	sm1 := NewSettingsManager(manager, nil)
	scale := false
	if err := sm1.SetAnalyzerDefaults(&config.AnalyzerConfig{Difficulty: "suicidal", WaveSizeFakes: 5, MaxMonsters: 40, ScaleByWSF: &scale}); err != nil {
		t.Fatalf("SetAnalyzerDefaults failed: %v", err)
	}
	sm1.SetDefaultPreset("big_zed")
	sm1.AddRecentFile("/tmp/cycle.txt")
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(manager, nil)
	s := sm2.GetSettings()
	if s.Difficulty != "suicidal" || s.WaveSizeFakes != 5 || s.MaxMonsters != 40 || s.ScaleByWSF {
		t.Errorf("analyzer defaults not restored: %+v", s)
	}
	if s.DefaultPreset != "big_zed" {
		t.Errorf("DefaultPreset: got %q, want big_zed", s.DefaultPreset)
	}
	if len(s.RecentFiles) != 1 || s.RecentFiles[0] != "/tmp/cycle.txt" {
		t.Errorf("recent files not restored: %v", s.RecentFiles)
	}
}

func TestSettingsLoadCorrupted(t *testing.T) {
	manager := createTestGdataManager(t, "corrupted")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("maxMonsters: [oops")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm := NewSettingsManager(manager, nil)
	if err := sm.Load(); err == nil {
		t.Error("expected error loading corrupted settings")
	}
	if sm.GetSettings().MaxMonsters != 32 {
		t.Errorf("corrupted settings should fall back to defaults, got %+v", sm.GetSettings())
	}
}
