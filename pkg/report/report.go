// Package report 将分析结果与解析错误渲染为终端表格
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gonewx/spawncycler/pkg/analyzer"
	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	numberStyle = cellStyle.Align(lipgloss.Right)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// newTable 创建统一风格的表格，第一列左对齐，其余列右对齐
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
}

// histogramTable 按给定顺序输出非零项
func histogramTable(title string, h analyzer.Histogram, labels []string) string {
	t := newTable(title, "Count", "%")
	for _, label := range labels {
		count := h.Get(label)
		if count == 0 {
			continue
		}
		t.Row(label, strconv.Itoa(count), fmt.Sprintf("%.1f", h.Percent(label)))
	}
	t.Row("Total", strconv.Itoa(h.Total), "")
	return t.String()
}

// Histograms 渲染单个波次的三组统计
func Histograms(h *analyzer.Histograms) string {
	categories := make([]string, 0, len(types.Categories))
	for _, c := range types.Categories {
		categories = append(categories, c.String())
	}
	kinds := make([]string, 0)
	for _, k := range types.AllZedKinds() {
		kinds = append(kinds, k.String())
	}
	groups := make([]string, 0, len(types.Groups))
	for _, g := range types.Groups {
		groups = append(groups, g.String())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		histogramTable("Category", h.Category, categories), " ",
		histogramTable("Zed", h.Kind, kinds), " ",
		histogramTable("Group", h.Group, groups),
	)
}

// Wave 渲染单个波次的完整分析结果
func Wave(w analyzer.WaveReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Wave %d", w.Wave)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d zeds, peak %.0f, average %.0f", w.TotalZeds, w.Peak, w.Average)))
	b.WriteString("\n")
	b.WriteString(Histograms(w.Histograms))
	b.WriteString("\n")
	return b.String()
}

// Summary 渲染整个 SpawnCycle 的分析摘要
func Summary(r *analyzer.CycleReport) string {
	t := newTable("Wave", "Zeds", "Peak", "Average")
	for _, w := range r.Waves {
		t.Row(strconv.Itoa(w.Wave), strconv.Itoa(w.TotalZeds), fmt.Sprintf("%.0f", w.Peak), fmt.Sprintf("%.0f", w.Average))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Difficulty"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d waves, %s, WSF %d, max monsters %d",
		len(r.Waves), config.DifficultyName(r.Params.Difficulty), r.Params.WaveSizeFakes, r.Params.MaxMonsters)))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("peak %.0f, average %.0f\n", r.Peak, r.Average))
	return b.String()
}

// Cycle 渲染 SpawnCycle 概览：每一波的小队数、ZED 数与导出文本
func Cycle(c *cycle.SpawnCycle) string {
	t := newTable("Wave", "Squads", "Zeds", "Definition")
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 1 || col == 2:
			return numberStyle
		default:
			return cellStyle
		}
	})
	for i, w := range c.Waves {
		t.Row(strconv.Itoa(i+1), strconv.Itoa(len(w.Squads)), strconv.Itoa(w.Total()), cycle.SerializeWave(w))
	}
	return t.String()
}

// Errors 渲染解析或导出校验的错误列表，为空时输出成功信息
func Errors(errs []string) string {
	if len(errs) == 0 {
		return okStyle.Render("OK") + "\n"
	}
	var b strings.Builder
	b.WriteString(errorStyle.Render(fmt.Sprintf("%d error(s)", len(errs))))
	b.WriteString("\n")
	for _, e := range errs {
		b.WriteString("  - ")
		b.WriteString(e)
		b.WriteString("\n")
	}
	return b.String()
}
