package cycle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BundleDateLayout Bundle.Date 的日期格式
const BundleDateLayout = "2006-01-02"

// Bundle 将短/中/长三种长度的 SpawnCycle 打包为一个 JSON 文件
//
// 每个内嵌周期以 "行号 -> 去掉前缀的小队文本" 的字符串映射存储，
// 字段名与社区既有的打包格式保持一致。
type Bundle struct {
	Name             string            `json:"Name"`
	Author           string            `json:"Author"`
	Date             string            `json:"Date"`
	ShortSpawnCycle  map[string]string `json:"ShortSpawnCycle"`
	NormalSpawnCycle map[string]string `json:"NormalSpawnCycle"`
	LongSpawnCycle   map[string]string `json:"LongSpawnCycle"`
}

// NewBundle 由三个 SpawnCycle 构造 Bundle
// 传入 nil 的槽位保留为空映射；非 nil 的周期必须与槽位长度（4/7/10）一致且可导出
func NewBundle(name, author string, date time.Time, short, normal, long *SpawnCycle) (*Bundle, error) {
	b := &Bundle{
		Name:   name,
		Author: author,
		Date:   date.Format(BundleDateLayout),
	}

	slots := []struct {
		cycle  *SpawnCycle
		length int
		dst    *map[string]string
	}{
		{short, 4, &b.ShortSpawnCycle},
		{normal, 7, &b.NormalSpawnCycle},
		{long, 10, &b.LongSpawnCycle},
	}
	for _, slot := range slots {
		*slot.dst = map[string]string{}
		if slot.cycle == nil {
			continue
		}
		if slot.cycle.Len() != slot.length {
			return nil, fmt.Errorf("%d-wave slot got a cycle with %d waves", slot.length, slot.cycle.Len())
		}
		if errs := ValidateForExport(slot.cycle); len(errs) > 0 {
			return nil, fmt.Errorf("%d-wave cycle: %w", slot.length, &ValidationError{Messages: errs})
		}
		for i, line := range Serialize(slot.cycle) {
			(*slot.dst)[strconv.Itoa(i)] = strings.TrimPrefix(line, LinePrefix)
		}
	}
	return b, nil
}

// slot 返回指定长度对应的映射
func (b *Bundle) slot(length int) (map[string]string, error) {
	switch length {
	case 4:
		return b.ShortSpawnCycle, nil
	case 7:
		return b.NormalSpawnCycle, nil
	case 10:
		return b.LongSpawnCycle, nil
	default:
		return nil, fmt.Errorf("game length must be 4, 7 or 10, got %d", length)
	}
}

// Has 判断 Bundle 是否包含指定长度的周期
func (b *Bundle) Has(length int) bool {
	m, err := b.slot(length)
	return err == nil && len(m) > 0
}

// Lines 按行号顺序重建带前缀的行格式文本
// 行号必须恰好为 0..length-1
func (b *Bundle) Lines(length int) ([]string, error) {
	m, err := b.slot(length)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("bundle has no %d-wave cycle", length)
	}

	indices := make([]int, 0, len(m))
	for key := range m {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%d-wave cycle: invalid line index %q", length, key)
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	if len(indices) != length {
		return nil, fmt.Errorf("%d-wave cycle has %d lines", length, len(indices))
	}

	lines := make([]string, 0, length)
	for i, idx := range indices {
		if idx != i {
			return nil, fmt.Errorf("%d-wave cycle: missing line index %d", length, i)
		}
		lines = append(lines, LinePrefix+m[strconv.Itoa(idx)])
	}
	return lines, nil
}

// Cycle 重建、校验并构造指定长度的 SpawnCycle
func (b *Bundle) Cycle(length int) (*SpawnCycle, error) {
	lines, err := b.Lines(length)
	if err != nil {
		return nil, err
	}
	c, errs := ParseAndBuild(lines)
	if len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}
	return c, nil
}

// ReadBundle 从 JSON 解码 Bundle
func ReadBundle(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return &b, nil
}

// WriteBundle 将 Bundle 编码为缩进的 JSON
func WriteBundle(w io.Writer, b *Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return nil
}

// LoadBundle 从文件读取 Bundle
func LoadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle %s: %w", path, err)
	}
	defer f.Close()
	return ReadBundle(f)
}

// SaveBundle 将 Bundle 写入文件
func SaveBundle(path string, b *Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle %s: %w", path, err)
	}
	if err := WriteBundle(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
