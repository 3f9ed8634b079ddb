// Package analyzer 对 SpawnCycle 的单个波次做统计与难度曲线模拟
package analyzer

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/types"
)

// ErrEmptySimulationWindow 本波计算出的 ZED 总数不大于 0，无法进行模拟
var ErrEmptySimulationWindow = errors.New("empty simulation window")

// Params 分析参数
type Params struct {
	GameLengthIndex int  `json:"gameLengthIndex"` // 0=4 波 1=7 波 2=10 波
	Difficulty      int  `json:"difficulty"`      // 0-3
	WaveSizeFakes   int  `json:"waveSizeFakes"`   // 0-128
	MaxMonsters     int  `json:"maxMonsters"`     // >= 1
	ScaleByWSF      bool `json:"scaleByWSF"`      // 得分是否乘以 1 + WSF/128
}

// DefaultParams 返回默认分析参数（10 波、HoE、WSF 12、同屏 32）
func DefaultParams() Params {
	return Params{
		GameLengthIndex: 2,
		Difficulty:      3,
		WaveSizeFakes:   12,
		MaxMonsters:     32,
		ScaleByWSF:      true,
	}
}

// ParamsFromConfig 将 YAML 配置转换为分析参数
func ParamsFromConfig(cfg *config.AnalyzerConfig, gameLengthIndex int) (Params, error) {
	difficulty, err := config.DifficultyIndex(cfg.Difficulty)
	if err != nil {
		return Params{}, err
	}
	p := Params{
		GameLengthIndex: gameLengthIndex,
		Difficulty:      difficulty,
		WaveSizeFakes:   cfg.WaveSizeFakes,
		MaxMonsters:     cfg.MaxMonsters,
		ScaleByWSF:      cfg.ScaleByWSFEnabled(),
	}
	return p, p.Validate()
}

// Validate 校验参数范围
func (p Params) Validate() error {
	if p.GameLengthIndex < 0 || p.GameLengthIndex >= len(GameLengths) {
		return fmt.Errorf("game length index must be between 0 and %d, got %d", len(GameLengths)-1, p.GameLengthIndex)
	}
	if p.Difficulty < 0 || p.Difficulty >= len(DifficultyMultiplier) {
		return fmt.Errorf("difficulty must be between 0 and %d, got %d", len(DifficultyMultiplier)-1, p.Difficulty)
	}
	if p.WaveSizeFakes < 0 || p.WaveSizeFakes > MaxWaveSizeFakes {
		return fmt.Errorf("wave size fakes must be between 0 and %d, got %d", MaxWaveSizeFakes, p.WaveSizeFakes)
	}
	if p.MaxMonsters < 1 {
		return fmt.Errorf("max monsters must be >= 1, got %d", p.MaxMonsters)
	}
	return nil
}

// TotalZeds 计算第 waveIndex 波（从 0 开始）实际生成的 ZED 总数
func TotalZeds(waveIndex int, p Params) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	table := BaseZedTable[p.GameLengthIndex]
	if waveIndex < 0 || waveIndex >= len(table) {
		return 0, fmt.Errorf("wave index %d out of range for a %d-wave game", waveIndex, GameLengths[p.GameLengthIndex])
	}
	base := float64(table[waveIndex])
	return int(math.Floor(base * DifficultyMultiplier[p.Difficulty] * WaveSizeMultiplier(p.WaveSizeFakes))), nil
}

// Point 难度曲线上的一个点
// X 为波次进度百分比，Y 为得分
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve 难度曲线，第一个点固定为原点
type Curve []Point

// Peak 返回曲线最高得分
func (c Curve) Peak() float64 {
	peak := 0.0
	for _, p := range c {
		peak = math.Max(peak, p.Y)
	}
	return peak
}

// Average 返回除原点外各点得分的平均值
func (c Curve) Average() float64 {
	if len(c) <= 1 {
		return 0
	}
	sum := 0.0
	for _, p := range c[1:] {
		sum += p.Y
	}
	return sum / float64(len(c)-1)
}

// event 展开后的单个生成事件
type event struct {
	kind  types.ZedKind
	raged bool
}

// checkSquads 拒绝未经 Parse 校验、数量非法的小队，保证 expand 的事件数有界
func checkSquads(w cycle.Wave) error {
	for i, sq := range w.Squads {
		total := 0
		for _, e := range sq.Entries {
			if e.Count < 1 || e.Count > cycle.MaxSquadSize {
				return fmt.Errorf("squad %d: invalid count %d for %s", i+1, e.Count, e.Kind)
			}
			total += e.Count
		}
		if total > cycle.MaxSquadSize {
			return fmt.Errorf("squad %d has %d zeds, maximum is %d", i+1, total, cycle.MaxSquadSize)
		}
	}
	return nil
}

// expand 按小队与条目的插入顺序把波次展开为事件序列
func expand(w cycle.Wave) []event {
	events := make([]event, 0, w.Total())
	for _, sq := range w.Squads {
		for _, e := range sq.Entries {
			for i := 0; i < e.Count; i++ {
				events = append(events, event{kind: e.Kind, raged: e.Raged})
			}
		}
	}
	return events
}

// SampleWave 统计第 waveIndex 波（从 0 开始）并模拟其难度曲线
//
// 事件序列按下标取模循环遍历 TotalZeds 次得到直方图；
// 曲线模拟在 TotalZeds + MaxMonsters 步内维护一个容量为 MaxMonsters 的先进先出窗口，
// 事件未耗尽时每步生成一个（窗口满时先移除最早的），耗尽后每步移除一个直到窗口为空。
func SampleWave(c *cycle.SpawnCycle, waveIndex int, p Params) (*Histograms, Curve, error) {
	wave, err := c.Wave(waveIndex)
	if err != nil {
		return nil, nil, err
	}
	totalZeds, err := TotalZeds(waveIndex, p)
	if err != nil {
		return nil, nil, err
	}
	if err := checkSquads(wave); err != nil {
		return nil, nil, fmt.Errorf("wave %d: %w", waveIndex+1, err)
	}
	events := expand(wave)
	if len(events) == 0 {
		return nil, nil, fmt.Errorf("wave %d has no spawn events", waveIndex+1)
	}

	curve, err := simulate(events, totalZeds, waveIndex, p)
	if err != nil {
		return nil, nil, fmt.Errorf("wave %d: %w", waveIndex+1, err)
	}

	hist := newHistograms()
	for i := 0; i < totalZeds; i++ {
		hist.add(events[i%len(events)])
	}
	return hist, curve, nil
}

// simulate 先进先出窗口模拟
func simulate(events []event, totalZeds, waveIndex int, p Params) (Curve, error) {
	if totalZeds <= 0 {
		return nil, fmt.Errorf("%w: total zeds is %d", ErrEmptySimulationWindow, totalZeds)
	}

	waveScoreMod := 1.5 * DoshMultiplier[p.Difficulty] *
		(float64(waveIndex+1) / float64(MaxWaveForGameLength[p.GameLengthIndex]))
	wsfMod := 1.0
	if p.ScaleByWSF {
		wsfMod = 1.0 + float64(p.WaveSizeFakes)/float64(MaxWaveSizeFakes)
	}

	steps := totalZeds + p.MaxMonsters
	curve := make(Curve, 0, steps+1)
	curve = append(curve, Point{X: 0, Y: 0})

	window := make([]event, 0, p.MaxMonsters)
	spawned := 0
	for step := 1; step <= steps; step++ {
		if spawned < totalZeds {
			if len(window) == p.MaxMonsters {
				window = window[1:]
			}
			window = append(window, events[spawned%len(events)])
			spawned++
		} else {
			if len(window) == 0 {
				break
			}
			window = window[1:]
		}

		zedCountMod := 0.0
		for _, e := range window {
			zedCountMod += categoryScore[scoreCategory(e.kind)]
		}
		zedScoreMod := float64(p.Difficulty+1) * zedCountMod
		score := math.Min(waveScoreMod*zedScoreMod*wsfMod, MaxScore)

		curve = append(curve, Point{X: 100 * float64(step) / float64(totalZeds), Y: score})
	}
	return curve, nil
}

// WaveReport 单个波次的分析结果
type WaveReport struct {
	Wave       int         `json:"wave"` // 从 1 开始
	TotalZeds  int         `json:"totalZeds"`
	Histograms *Histograms `json:"histograms"`
	Curve      Curve       `json:"curve"`
	Peak       float64     `json:"peak"`
	Average    float64     `json:"average"`
}

// CycleReport 整个 SpawnCycle 的分析结果
type CycleReport struct {
	Params  Params       `json:"params"`
	Waves   []WaveReport `json:"waves"`
	Peak    float64      `json:"peak"`
	Average float64      `json:"average"`
}

// ReportWave 分析第 waveIndex 波（从 0 开始）并汇总为 WaveReport
func ReportWave(c *cycle.SpawnCycle, waveIndex int, p Params) (WaveReport, error) {
	hist, curve, err := SampleWave(c, waveIndex, p)
	if err != nil {
		return WaveReport{}, err
	}
	return WaveReport{
		Wave:       waveIndex + 1,
		TotalZeds:  hist.Category.Total,
		Histograms: hist,
		Curve:      curve,
		Peak:       curve.Peak(),
		Average:    curve.Average(),
	}, nil
}

// SampleCycle 对每一波调用 SampleWave
// 游戏长度下标由 SpawnCycle 的波数决定，覆盖 p.GameLengthIndex
func SampleCycle(c *cycle.SpawnCycle, p Params) (*CycleReport, error) {
	idx, ok := GameLengthIndex(c.Len())
	if !ok {
		return nil, fmt.Errorf("wave count must be 4, 7 or 10, got %d", c.Len())
	}
	p.GameLengthIndex = idx

	report := &CycleReport{Params: p, Waves: make([]WaveReport, 0, c.Len())}
	sum := 0.0
	for i := 0; i < c.Len(); i++ {
		wr, err := ReportWave(c, i, p)
		if err != nil {
			return nil, fmt.Errorf("failed to sample wave %d: %w", i+1, err)
		}
		report.Peak = math.Max(report.Peak, wr.Peak)
		sum += wr.Average
		report.Waves = append(report.Waves, wr)
	}
	report.Average = sum / float64(len(report.Waves))
	return report, nil
}
