package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/spawncycler/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// EmbeddedAnalyzerConfig 内置难度分析默认配置路径
const EmbeddedAnalyzerConfig = "data/analyzer.yaml"

// difficultyNames 难度名称，下标即难度索引
var difficultyNames = []string{"normal", "hard", "suicidal", "hoe"}

// AnalyzerConfig 难度分析默认参数
type AnalyzerConfig struct {
	Difficulty    string `yaml:"difficulty"`    // normal / hard / suicidal / hoe
	WaveSizeFakes int    `yaml:"waveSizeFakes"` // WSF，0 ~ 128
	MaxMonsters   int    `yaml:"maxMonsters"`   // 同时存活上限，>= 1
	ScaleByWSF    *bool  `yaml:"scaleByWSF"`    // 分数是否乘以 WSF 修正（新版算法），默认 true
}

// DefaultAnalyzerConfig 返回内置默认值
func DefaultAnalyzerConfig() *AnalyzerConfig {
	scale := true
	return &AnalyzerConfig{
		Difficulty:    "hoe",
		WaveSizeFakes: 12,
		MaxMonsters:   32,
		ScaleByWSF:    &scale,
	}
}

// LoadAnalyzerConfig 从 YAML 文件加载分析配置
func LoadAnalyzerConfig(filePath string) (*AnalyzerConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyzer config file %s: %w", filePath, err)
	}
	cfg, err := ParseAnalyzerConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid analyzer config in %s: %w", filePath, err)
	}
	return cfg, nil
}

// LoadEmbeddedAnalyzerConfig 加载内置分析配置
// embedded 未初始化时退回到 DefaultAnalyzerConfig
func LoadEmbeddedAnalyzerConfig() (*AnalyzerConfig, error) {
	if !embedded.IsInitialized() {
		return DefaultAnalyzerConfig(), nil
	}
	data, err := embedded.ReadFile(EmbeddedAnalyzerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded analyzer config: %w", err)
	}
	return ParseAnalyzerConfig(data)
}

// ParseAnalyzerConfig 解析 YAML 数据，未配置的字段取默认值
func ParseAnalyzerConfig(data []byte) (*AnalyzerConfig, error) {
	cfg := DefaultAnalyzerConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse analyzer config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置合法性
func (c *AnalyzerConfig) Validate() error {
	if _, err := DifficultyIndex(c.Difficulty); err != nil {
		return err
	}
	if c.WaveSizeFakes < 0 || c.WaveSizeFakes > 128 {
		return fmt.Errorf("waveSizeFakes must be between 0 and 128, got %d", c.WaveSizeFakes)
	}
	if c.MaxMonsters < 1 {
		return fmt.Errorf("maxMonsters must be >= 1, got %d", c.MaxMonsters)
	}
	return nil
}

// DifficultyIndex 将难度名称转换为索引（0=Normal 1=Hard 2=Suicidal 3=HoE）
// 忽略大小写与空格，同时接受数字索引和 "Hell on Earth" 的写法
func DifficultyIndex(name string) (int, error) {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if key == "hellonearth" {
		return 3, nil
	}
	for i, n := range difficultyNames {
		if key == n || key == strconv.Itoa(i) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("difficulty must be one of normal, hard, suicidal, hoe, got %q", name)
}

// DifficultyName 返回难度索引对应的名称
func DifficultyName(index int) string {
	if index < 0 || index >= len(difficultyNames) {
		return "unknown"
	}
	return difficultyNames[index]
}

// ScaleByWSFEnabled 返回是否启用 WSF 修正
func (c *AnalyzerConfig) ScaleByWSFEnabled() bool {
	return c.ScaleByWSF == nil || *c.ScaleByWSF
}
