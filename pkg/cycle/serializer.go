package cycle

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateForExport 检查 SpawnCycle 是否可以导出
//
// 只检查结构：波数必须为 4、7 或 10，且每一波至少有一个小队。
// 不修改输入，也不检查小队容量。
func ValidateForExport(c *SpawnCycle) []string {
	var errs []string
	if !IsValidWaveCount(c.Len()) {
		errs = append(errs, fmt.Sprintf("wave count must be 4, 7 or 10, got %d", c.Len()))
	}
	if c == nil {
		return errs
	}
	for i, w := range c.Waves {
		if len(w.Squads) == 0 {
			errs = append(errs, fmt.Sprintf("wave %d has no squads", i+1))
		}
	}
	return errs
}

// Serialize 将 SpawnCycle 转换为行格式，每波一行
// 调用方应先通过 ValidateForExport
func Serialize(c *SpawnCycle) []string {
	lines := make([]string, 0, c.Len())
	if c == nil {
		return lines
	}
	for _, w := range c.Waves {
		lines = append(lines, SerializeWave(w))
	}
	return lines
}

// SerializeWave 将一波转换为一行
func SerializeWave(w Wave) string {
	squads := make([]string, 0, len(w.Squads))
	for _, sq := range w.Squads {
		squads = append(squads, SerializeSquad(sq))
	}
	return LinePrefix + strings.Join(squads, ",")
}

// SerializeSquad 将小队转换为 "<数量><短码>" 以 '_' 连接的形式
func SerializeSquad(sq Squad) string {
	var b strings.Builder
	for i, e := range sq.Entries {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(strconv.Itoa(e.Count))
		b.WriteString(e.ShortCode())
	}
	return b.String()
}
