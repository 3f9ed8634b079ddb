// Package cycle 定义 SpawnCycle 数据模型及其行格式解析、序列化
//
// 行格式示例（每行对应一波）：
//
//	SpawnCycleDefs=4CY_2AL,1FP!
//
// 一行由若干小队（逗号分隔）组成，小队由若干词元（下划线分隔）组成，
// 词元形如 <数量><别名><量词>*，量词 '*' 表示白化变种，'!' 表示狂暴。
package cycle

import (
	"fmt"

	"github.com/gonewx/spawncycler/pkg/types"
)

const (
	// LinePrefix 每一行必须带有的前缀
	LinePrefix = "SpawnCycleDefs="

	// MaxSquadSize 单个小队的 ZED 数量上限
	MaxSquadSize = 10
)

// ValidWaveCounts 合法的波数（短/中/长三种游戏长度）
var ValidWaveCounts = []int{4, 7, 10}

// IsValidWaveCount 判断波数是否为 4、7 或 10
func IsValidWaveCount(n int) bool {
	for _, v := range ValidWaveCounts {
		if n == v {
			return true
		}
	}
	return false
}

// ZedSpec 一个 ZED 种类加狂暴标记
// Raged 只能对 Fleshpound、Quarter Pound、Alpha Fleshpound 为 true
type ZedSpec struct {
	Kind  types.ZedKind `json:"kind" yaml:"kind"`
	Raged bool          `json:"raged,omitempty" yaml:"raged,omitempty"`
}

// String 返回可读名称，如 "Alpha Fleshpound (Enraged)"
func (s ZedSpec) String() string {
	if s.Raged {
		return s.Kind.String() + " (Enraged)"
	}
	return s.Kind.String()
}

// ShortCode 返回序列化使用的短码
func (s ZedSpec) ShortCode() string {
	code, ok := types.ShortCode(s.Kind, s.Raged)
	if !ok {
		// 非法组合（例如狂暴的 Scrake）退回到不带狂暴标记的短码
		code, _ = types.ShortCode(s.Kind, false)
	}
	return code
}

// SquadEntry 小队中某个 ZedSpec 的数量
type SquadEntry struct {
	ZedSpec
	Count int `json:"count" yaml:"count"`
}

// Squad 一个小队：按首次插入顺序排列、以 ZedSpec 为键的条目集合
type Squad struct {
	Entries []SquadEntry `json:"entries" yaml:"entries"`
}

// Add 向小队加入 count 个 spec，已存在的条目累加数量
func (s *Squad) Add(spec ZedSpec, count int) {
	for i := range s.Entries {
		if s.Entries[i].ZedSpec == spec {
			s.Entries[i].Count += count
			return
		}
	}
	s.Entries = append(s.Entries, SquadEntry{ZedSpec: spec, Count: count})
}

// Count 返回小队中指定 spec 的数量
func (s Squad) Count(spec ZedSpec) int {
	for _, e := range s.Entries {
		if e.ZedSpec == spec {
			return e.Count
		}
	}
	return 0
}

// Total 返回小队的 ZED 总数
func (s Squad) Total() int {
	total := 0
	for _, e := range s.Entries {
		total += e.Count
	}
	return total
}

// Wave 一波：有序的小队列表
type Wave struct {
	Squads []Squad `json:"squads" yaml:"squads"`
}

// Total 返回本波所有小队的 ZED 总数
func (w Wave) Total() int {
	total := 0
	for _, sq := range w.Squads {
		total += sq.Total()
	}
	return total
}

// SpawnCycle 有序的波列表
type SpawnCycle struct {
	Waves []Wave `json:"waves" yaml:"waves"`
}

// Len 返回波数
func (c *SpawnCycle) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Waves)
}

// Wave 返回第 index 波（从 0 开始）
func (c *SpawnCycle) Wave(index int) (Wave, error) {
	if index < 0 || index >= c.Len() {
		return Wave{}, fmt.Errorf("wave index %d out of range [0, %d)", index, c.Len())
	}
	return c.Waves[index], nil
}
