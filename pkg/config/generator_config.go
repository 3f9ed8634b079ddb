package config

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/gonewx/spawncycler/pkg/embedded"
	"github.com/gonewx/spawncycler/pkg/types"
	"gopkg.in/yaml.v3"
)

// EmbeddedPresetDir 内置生成器预设所在目录
const EmbeddedPresetDir = "data/presets"

// GeneratorPreset 生成器预设配置
// 以 YAML 描述生成一个 SpawnCycle 所需的全部数值参数
type GeneratorPreset struct {
	Name          string   `yaml:"name"`          // 预设名称
	Description   string   `yaml:"description"`   // 描述（可选）
	GameLength    int      `yaml:"gameLength"`    // 波数：4、7 或 10
	SquadsPerWave IntRange `yaml:"squadsPerWave"` // 每波小队数范围
	ZedsPerSquad  IntRange `yaml:"zedsPerSquad"`  // 每个小队 ZED 数范围（上限不超过 10）

	CategoryWeights map[string]int `yaml:"categoryWeights"` // 类别 -> 权重（trash/medium/large/boss）
	MemberWeights   map[string]int `yaml:"memberWeights"`   // ZED 名称 -> 类别内权重
	AlbinoChances   map[string]int `yaml:"albinoChances"`   // 基础 ZED 名称 -> 白化概率（百分比）
	RageChances     RageChances    `yaml:"rageChances"`     // 狂暴概率
	Gates           WaveGates      `yaml:"gates"`           // 各项开放的最早波次
}

// IntRange 闭区间
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// RageChances 狂暴概率（百分比）
// Fleshpound 与 Alpha Fleshpound 共用一个概率
type RageChances struct {
	QuarterPound int `yaml:"quarterPound"`
	Fleshpound   int `yaml:"fleshpound"`
}

// WaveGates 各项开放的最早波次（从 1 开始）
type WaveGates struct {
	Albino int `yaml:"albino"` // 白化判定开放波次
	Rage   int `yaml:"rage"`   // 狂暴判定开放波次
	Large  int `yaml:"large"`  // 大型类别开放波次
	Boss   int `yaml:"boss"`   // Boss 类别开放波次
}

// LoadGeneratorPreset 从 YAML 文件加载生成器预设
func LoadGeneratorPreset(filePath string) (*GeneratorPreset, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read generator preset file %s: %w", filePath, err)
	}
	preset, err := ParseGeneratorPreset(data)
	if err != nil {
		return nil, fmt.Errorf("invalid generator preset in %s: %w", filePath, err)
	}
	return preset, nil
}

// LoadEmbeddedPreset 加载内置预设，name 不含扩展名
func LoadEmbeddedPreset(name string) (*GeneratorPreset, error) {
	filePath := path.Join(EmbeddedPresetDir, name+".yaml")
	data, err := embedded.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded preset %s: %w", name, err)
	}
	preset, err := ParseGeneratorPreset(data)
	if err != nil {
		return nil, fmt.Errorf("invalid embedded preset %s: %w", name, err)
	}
	return preset, nil
}

// ListEmbeddedPresets 列出内置预设名称（已排序）
func ListEmbeddedPresets() ([]string, error) {
	files, err := embedded.Glob(EmbeddedPresetDir + "/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded presets: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// ParseGeneratorPreset 解析 YAML 数据，应用默认值并校验
func ParseGeneratorPreset(data []byte) (*GeneratorPreset, error) {
	var preset GeneratorPreset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse generator preset YAML: %w", err)
	}

	applyPresetDefaults(&preset)

	if err := validateGeneratorPreset(&preset); err != nil {
		return nil, err
	}
	return &preset, nil
}

// MarshalGeneratorPreset 将预设编码为 YAML
func MarshalGeneratorPreset(preset *GeneratorPreset) ([]byte, error) {
	data, err := yaml.Marshal(preset)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generator preset: %w", err)
	}
	return data, nil
}

// applyPresetDefaults 为缺省字段设置默认值
func applyPresetDefaults(p *GeneratorPreset) {
	if p.GameLength == 0 {
		p.GameLength = 10
	}
	if p.SquadsPerWave.Min == 0 && p.SquadsPerWave.Max == 0 {
		p.SquadsPerWave = IntRange{Min: 5, Max: 10}
	}
	if p.ZedsPerSquad.Min == 0 && p.ZedsPerSquad.Max == 0 {
		p.ZedsPerSquad = IntRange{Min: 2, Max: 6}
	}

	// 未配置的开放波次默认从第 1 波开始
	if p.Gates.Albino == 0 {
		p.Gates.Albino = 1
	}
	if p.Gates.Rage == 0 {
		p.Gates.Rage = 1
	}
	if p.Gates.Large == 0 {
		p.Gates.Large = 1
	}
	if p.Gates.Boss == 0 {
		p.Gates.Boss = 1
	}
}

// validateGeneratorPreset 验证预设的完整性和合法性
func validateGeneratorPreset(p *GeneratorPreset) error {
	if p.GameLength != 4 && p.GameLength != 7 && p.GameLength != 10 {
		return fmt.Errorf("gameLength must be 4, 7 or 10, got %d", p.GameLength)
	}
	if p.SquadsPerWave.Min < 1 || p.SquadsPerWave.Max < p.SquadsPerWave.Min {
		return fmt.Errorf("squadsPerWave must satisfy 1 <= min <= max, got [%d, %d]", p.SquadsPerWave.Min, p.SquadsPerWave.Max)
	}
	if p.ZedsPerSquad.Min < 1 || p.ZedsPerSquad.Max < p.ZedsPerSquad.Min {
		return fmt.Errorf("zedsPerSquad must satisfy 1 <= min <= max, got [%d, %d]", p.ZedsPerSquad.Min, p.ZedsPerSquad.Max)
	}

	if len(p.CategoryWeights) == 0 {
		return fmt.Errorf("categoryWeights cannot be empty")
	}
	for name, w := range p.CategoryWeights {
		if _, ok := types.CategoryFromString(name); !ok {
			return fmt.Errorf("categoryWeights: unknown category %q", name)
		}
		if w < 0 {
			return fmt.Errorf("categoryWeights: weight for %s cannot be negative, got %d", name, w)
		}
	}

	for name, w := range p.MemberWeights {
		if types.ZedKindFromName(name) == types.ZedUnknown {
			return fmt.Errorf("memberWeights: unknown zed %q", name)
		}
		if w < 0 {
			return fmt.Errorf("memberWeights: weight for %s cannot be negative, got %d", name, w)
		}
	}

	for name, chance := range p.AlbinoChances {
		kind := types.ZedKindFromName(name)
		if kind == types.ZedUnknown {
			return fmt.Errorf("albinoChances: unknown zed %q", name)
		}
		if !kind.CanTakeAlbino() {
			return fmt.Errorf("albinoChances: %s has no albino variant", kind)
		}
		if chance < 0 || chance > 100 {
			return fmt.Errorf("albinoChances: chance for %s must be between 0 and 100, got %d", kind, chance)
		}
	}

	if p.RageChances.QuarterPound < 0 || p.RageChances.QuarterPound > 100 {
		return fmt.Errorf("rageChances.quarterPound must be between 0 and 100, got %d", p.RageChances.QuarterPound)
	}
	if p.RageChances.Fleshpound < 0 || p.RageChances.Fleshpound > 100 {
		return fmt.Errorf("rageChances.fleshpound must be between 0 and 100, got %d", p.RageChances.Fleshpound)
	}

	gates := map[string]int{
		"albino": p.Gates.Albino, "rage": p.Gates.Rage, "large": p.Gates.Large, "boss": p.Gates.Boss,
	}
	for name, wave := range gates {
		if wave < 1 {
			return fmt.Errorf("gates.%s must be >= 1, got %d", name, wave)
		}
	}

	return nil
}
