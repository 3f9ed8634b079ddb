package analyzer

import (
	"sort"

	"github.com/gonewx/spawncycler/pkg/types"
)

// Histogram 按名称计数，Total 为所有计数之和
type Histogram struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

func newHistogram() Histogram {
	return Histogram{Counts: make(map[string]int)}
}

func (h *Histogram) inc(label string) {
	h.Counts[label]++
	h.Total++
}

// Get 返回名称对应的计数
func (h Histogram) Get(label string) int {
	return h.Counts[label]
}

// Percent 返回名称占总数的百分比
func (h Histogram) Percent(label string) float64 {
	if h.Total == 0 {
		return 0
	}
	return 100 * float64(h.Counts[label]) / float64(h.Total)
}

// Bin 直方图中的一项
type Bin struct {
	Label string
	Count int
}

// Sorted 按计数降序返回非零项，计数相同时按名称排序
func (h Histogram) Sorted() []Bin {
	bins := make([]Bin, 0, len(h.Counts))
	for label, count := range h.Counts {
		if count > 0 {
			bins = append(bins, Bin{Label: label, Count: count})
		}
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Count != bins[j].Count {
			return bins[i].Count > bins[j].Count
		}
		return bins[i].Label < bins[j].Label
	})
	return bins
}

// Histograms 单个波次的三组统计
// 狂暴的大型 ZED 仍计入其基础类别，同时计入 SpawnRage 分组
type Histograms struct {
	Category Histogram `json:"category"`
	Kind     Histogram `json:"kind"`
	Group    Histogram `json:"group"`
}

func newHistograms() *Histograms {
	return &Histograms{
		Category: newHistogram(),
		Kind:     newHistogram(),
		Group:    newHistogram(),
	}
}

func (h *Histograms) add(e event) {
	h.Category.inc(e.kind.Category().String())
	h.Kind.inc(e.kind.String())
	for _, g := range types.GroupsOf(e.kind, e.raged) {
		h.Group.inc(g.String())
	}
}
