// Package settings 使用 gdata 持久化用户级状态：分析默认参数、最近打开的文件与自定义生成预设
package settings

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName gdata 使用的应用名
const AppName = "spawncycler"

// MaxRecentFiles 最近打开文件列表的长度上限
const MaxRecentFiles = 10

// Settings 用户设置
type Settings struct {
	// 分析默认参数，命令行与 HTTP 请求未指定时使用
	Difficulty    string `yaml:"difficulty"`
	WaveSizeFakes int    `yaml:"waveSizeFakes"`
	MaxMonsters   int    `yaml:"maxMonsters"`
	ScaleByWSF    bool   `yaml:"scaleByWSF"`

	// 生成器默认预设名称
	DefaultPreset string `yaml:"defaultPreset"`

	// 最近打开的文件，最新的在前
	RecentFiles []string `yaml:"recentFiles"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return FromAnalyzerConfig(config.DefaultAnalyzerConfig())
}

// FromAnalyzerConfig 以分析配置为基础创建设置
func FromAnalyzerConfig(cfg *config.AnalyzerConfig) *Settings {
	return &Settings{
		Difficulty:    cfg.Difficulty,
		WaveSizeFakes: cfg.WaveSizeFakes,
		MaxMonsters:   cfg.MaxMonsters,
		ScaleByWSF:    cfg.ScaleByWSFEnabled(),
		DefaultPreset: "default",
	}
}

// AnalyzerConfig 将设置中的分析参数转换为 AnalyzerConfig
func (s *Settings) AnalyzerConfig() *config.AnalyzerConfig {
	scale := s.ScaleByWSF
	return &config.AnalyzerConfig{
		Difficulty:    s.Difficulty,
		WaveSizeFakes: s.WaveSizeFakes,
		MaxMonsters:   s.MaxMonsters,
		ScaleByWSF:    &scale,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *Settings
	defaults     *config.AnalyzerConfig
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Open 打开默认的 gdata 存储
// 失败时返回 nil，调用方以降级模式继续运行
func Open() *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[Settings] Warning: Failed to open data storage: %v (settings will not persist)", err)
		return nil
	}
	return manager
}

// NewSettingsManager 创建设置管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - defaults: 没有已保存设置时使用的分析参数，可为 nil（使用内置默认值）
func NewSettingsManager(gdataManager *gdata.Manager, defaults *config.AnalyzerConfig) *SettingsManager {
	if defaults == nil {
		defaults = config.DefaultAnalyzerConfig()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     defaults,
		settings:     FromAnalyzerConfig(defaults),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或尚未保存过设置时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = FromAnalyzerConfig(sm.defaults)
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := FromAnalyzerConfig(sm.defaults)
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := loaded.AnalyzerConfig().Validate(); err != nil {
		return fmt.Errorf("invalid saved settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时不做任何事
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

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetAnalyzerDefaults 更新分析默认参数
// 参数先经过校验；仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetAnalyzerDefaults(cfg *config.AnalyzerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sm.settings.Difficulty = cfg.Difficulty
	sm.settings.WaveSizeFakes = cfg.WaveSizeFakes
	sm.settings.MaxMonsters = cfg.MaxMonsters
	sm.settings.ScaleByWSF = cfg.ScaleByWSFEnabled()
	return nil
}

// SetDefaultPreset 设置生成器默认预设
func (sm *SettingsManager) SetDefaultPreset(name string) {
	sm.settings.DefaultPreset = name
}

// AddRecentFile 记录最近打开的文件
// 已存在的路径移动到最前面，超出 MaxRecentFiles 的旧记录被丢弃
func (sm *SettingsManager) AddRecentFile(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	recent := make([]string, 0, MaxRecentFiles)
	recent = append(recent, path)
	for _, p := range sm.settings.RecentFiles {
		if p != path && len(recent) < MaxRecentFiles {
			recent = append(recent, p)
		}
	}
	sm.settings.RecentFiles = recent
}

// RecentFiles 返回最近打开的文件，最新的在前
func (sm *SettingsManager) RecentFiles() []string {
	return sm.settings.RecentFiles
}
