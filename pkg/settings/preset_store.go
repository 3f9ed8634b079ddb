package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"sort"

	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrPresetNotFound 预设不存在
var ErrPresetNotFound = errors.New("preset not found")

// 存储路径常量
const (
	presetsObject = "presets"
	indexProperty = "_index"
)

var presetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// PresetStore 用户自定义生成器预设
//
// 每个预设以 YAML 存为 presets 对象下的一个属性，另有一个索引属性记录全部名称。
// gdataManager 为 nil 时预设仅保存在内存中。
type PresetStore struct {
	gdataManager *gdata.Manager
	memory       map[string][]byte
}

// NewPresetStore 创建预设存储，gdataManager 可为 nil
func NewPresetStore(gdataManager *gdata.Manager) *PresetStore {
	return &PresetStore{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
}

// ValidatePresetName 校验预设名称
//
// 规则：
//   - 长度 1-32
//   - 只能包含字母、数字、下划线和连字符，且以字母或数字开头
func ValidatePresetName(name string) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if len(name) > 32 {
		return fmt.Errorf("preset name cannot exceed 32 characters")
	}
	if !presetNamePattern.MatchString(name) {
		return fmt.Errorf("preset name %q must start with a letter or digit and contain only letters, digits, '_' and '-'", name)
	}
	return nil
}

// List 返回全部用户预设名称（已排序）
func (ps *PresetStore) List() ([]string, error) {
	if ps.gdataManager == nil {
		names := make([]string, 0, len(ps.memory))
		for name := range ps.memory {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
	return ps.loadIndex()
}

// Has 判断用户预设是否存在
func (ps *PresetStore) Has(name string) bool {
	names, err := ps.List()
	if err != nil {
		return false
	}
	i := sort.SearchStrings(names, name)
	return i < len(names) && names[i] == name
}

// Save 保存预设，同名预设被覆盖
// 预设先经过完整校验，保存的 Name 字段与 name 一致
func (ps *PresetStore) Save(name string, preset *config.GeneratorPreset) error {
	if err := ValidatePresetName(name); err != nil {
		return err
	}

	copied := *preset
	copied.Name = name
	data, err := config.MarshalGeneratorPreset(&copied)
	if err != nil {
		return err
	}
	// 序列化结果必须能重新通过校验
	if _, err := config.ParseGeneratorPreset(data); err != nil {
		return fmt.Errorf("invalid preset %s: %w", name, err)
	}

	if ps.gdataManager == nil {
		ps.memory[name] = data
		return nil
	}

	if err := ps.gdataManager.SaveObjectProp(presetsObject, name, data); err != nil {
		return fmt.Errorf("failed to save preset %s: %w", name, err)
	}
	names, err := ps.loadIndex()
	if err != nil {
		return err
	}
	if !contains(names, name) {
		names = append(names, name)
		if err := ps.saveIndex(names); err != nil {
			return err
		}
	}

	log.Printf("[PresetStore] Saved preset %s", name)
	return nil
}

// Load 加载用户预设
func (ps *PresetStore) Load(name string) (*config.GeneratorPreset, error) {
	if !ps.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}

	var data []byte
	if ps.gdataManager == nil {
		data = ps.memory[name]
	} else {
		var err error
		data, err = ps.gdataManager.LoadObjectProp(presetsObject, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load preset %s: %w", name, err)
		}
	}

	preset, err := config.ParseGeneratorPreset(data)
	if err != nil {
		return nil, fmt.Errorf("invalid preset %s: %w", name, err)
	}
	return preset, nil
}

// Delete 删除用户预设
// 预设内容被清空，名称从索引中移除
func (ps *PresetStore) Delete(name string) error {
	if !ps.Has(name) {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}

	if ps.gdataManager == nil {
		delete(ps.memory, name)
		return nil
	}

	if err := ps.gdataManager.SaveObjectProp(presetsObject, name, []byte{}); err != nil {
		return fmt.Errorf("failed to clear preset %s: %w", name, err)
	}
	names, err := ps.loadIndex()
	if err != nil {
		return err
	}
	kept := names[:0]
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	if err := ps.saveIndex(kept); err != nil {
		return err
	}

	log.Printf("[PresetStore] Deleted preset %s", name)
	return nil
}

// Resolve 按名称查找预设：先查用户预设，再查内置预设
// 只有两处都不存在时才返回 ErrPresetNotFound；内置预设内容非法时返回解析错误
func (ps *PresetStore) Resolve(name string) (*config.GeneratorPreset, error) {
	if ps.Has(name) {
		return ps.Load(name)
	}
	preset, err := config.LoadEmbeddedPreset(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve preset %s: %w", name, err)
	}
	return preset, nil
}

func (ps *PresetStore) loadIndex() ([]string, error) {
	if !ps.gdataManager.ObjectPropExists(presetsObject, indexProperty) {
		return nil, nil
	}
	data, err := ps.gdataManager.LoadObjectProp(presetsObject, indexProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset index: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (ps *PresetStore) saveIndex(names []string) error {
	sort.Strings(names)
	data, err := yaml.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal preset index: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(presetsObject, indexProperty, data); err != nil {
		return fmt.Errorf("failed to save preset index: %w", err)
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
