package generator

import (
	"errors"
	"fmt"

	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/types"
)

// ErrInfeasible 参数无法生成任何 ZED（所有非零权重类别在第 1 波都未开放，或类别内权重全为 0）
var ErrInfeasible = errors.New("infeasible generator parameters")

// MaxWeight 单个类别或成员权重的上限，保证权重之和不会溢出
const MaxWeight = 1000000

// 每个类别参与随机的成员（顺序固定，保证同一种子下结果可复现）
var (
	TrashMembers  = []types.ZedKind{types.ZedCyst, types.ZedAlphaClot, types.ZedSlasher, types.ZedCrawler, types.ZedGorefast, types.ZedStalker}
	MediumMembers = []types.ZedKind{types.ZedBloat, types.ZedHusk, types.ZedSiren, types.ZedEDARTrapper, types.ZedEDARBlaster, types.ZedEDARBomber}
	LargeMembers  = []types.ZedKind{types.ZedQuarterPound, types.ZedFleshpound, types.ZedScrake}
	BossMembers   = []types.ZedKind{types.ZedHans, types.ZedPatriarch, types.ZedKingFleshpound, types.ZedAbomination, types.ZedMatriarch, types.ZedAbominationSpawn}
)

// Members 返回类别的成员列表
func Members(c types.Category) []types.ZedKind {
	switch c {
	case types.CategoryTrash:
		return TrashMembers
	case types.CategoryMedium:
		return MediumMembers
	case types.CategoryLarge:
		return LargeMembers
	case types.CategoryBoss:
		return BossMembers
	default:
		return nil
	}
}

// Gates 各项开放的最早波次（从 1 开始），第 i 波（从 0 开始）满足 i+1 >= 阈值时开放
type Gates struct {
	Albino int
	Rage   int
	Large  int
	Boss   int
}

// Params 生成参数
type Params struct {
	GameLength int // 4、7 或 10

	MinSquads, MaxSquads       int // 每波小队数
	MinSquadSize, MaxSquadSize int // 每个小队的 ZED 数

	CategoryWeights [4]int                // 以 types.Category 为下标
	MemberWeights   map[types.ZedKind]int // 类别内成员权重

	AlbinoChances map[types.ZedKind]int // 基础种类 -> 白化概率（1-100，0 表示不判定）

	RageChanceQuarterPound int // Quarter Pound 狂暴概率
	RageChanceFleshpound   int // Fleshpound / Alpha Fleshpound 共用的狂暴概率

	Gates Gates
}

// ParamsFromPreset 将 YAML 预设转换为生成参数
func ParamsFromPreset(p *config.GeneratorPreset) (Params, error) {
	params := Params{
		GameLength:             p.GameLength,
		MinSquads:              p.SquadsPerWave.Min,
		MaxSquads:              p.SquadsPerWave.Max,
		MinSquadSize:           p.ZedsPerSquad.Min,
		MaxSquadSize:           p.ZedsPerSquad.Max,
		MemberWeights:          make(map[types.ZedKind]int, len(p.MemberWeights)),
		AlbinoChances:          make(map[types.ZedKind]int, len(p.AlbinoChances)),
		RageChanceQuarterPound: p.RageChances.QuarterPound,
		RageChanceFleshpound:   p.RageChances.Fleshpound,
		Gates: Gates{
			Albino: p.Gates.Albino,
			Rage:   p.Gates.Rage,
			Large:  p.Gates.Large,
			Boss:   p.Gates.Boss,
		},
	}

	for name, w := range p.CategoryWeights {
		c, ok := types.CategoryFromString(name)
		if !ok {
			return Params{}, fmt.Errorf("unknown category %q", name)
		}
		params.CategoryWeights[c] = w
	}
	for name, w := range p.MemberWeights {
		kind := types.ZedKindFromName(name)
		if kind == types.ZedUnknown {
			return Params{}, fmt.Errorf("unknown zed %q", name)
		}
		params.MemberWeights[kind] = w
	}
	for name, chance := range p.AlbinoChances {
		kind := types.ZedKindFromName(name)
		if kind == types.ZedUnknown {
			return Params{}, fmt.Errorf("unknown zed %q", name)
		}
		params.AlbinoChances[kind] = chance
	}

	return params, params.Validate()
}

// gateOpen 判断第 waveIndex 波（从 0 开始）是否达到开放阈值
func gateOpen(waveIndex, threshold int) bool {
	return waveIndex+1 >= threshold
}

// categoryOpen 判断类别在第 waveIndex 波是否开放
func (p Params) categoryOpen(c types.Category, waveIndex int) bool {
	switch c {
	case types.CategoryLarge:
		return gateOpen(waveIndex, p.Gates.Large)
	case types.CategoryBoss:
		return gateOpen(waveIndex, p.Gates.Boss)
	default:
		return true
	}
}

// Validate 校验参数
//
// 除范围检查外还包含可行性检查：类别的开放阈值随波次单调开放，
// 只要第 1 波存在一个权重非零且已开放的类别，之后每一波的拒绝采样都能终止。
// 小队上限不得超过 10，因为生成的小队总数恰好等于抽到的长度。
func (p Params) Validate() error {
	if !cycle.IsValidWaveCount(p.GameLength) {
		return fmt.Errorf("game length must be 4, 7 or 10, got %d", p.GameLength)
	}
	if p.MinSquads < 1 || p.MaxSquads < p.MinSquads {
		return fmt.Errorf("squads per wave must satisfy 1 <= min <= max, got [%d, %d]", p.MinSquads, p.MaxSquads)
	}
	if p.MinSquadSize < 1 || p.MaxSquadSize < p.MinSquadSize {
		return fmt.Errorf("zeds per squad must satisfy 1 <= min <= max, got [%d, %d]", p.MinSquadSize, p.MaxSquadSize)
	}
	if p.MaxSquadSize > cycle.MaxSquadSize {
		return fmt.Errorf("zeds per squad cannot exceed %d, got %d", cycle.MaxSquadSize, p.MaxSquadSize)
	}

	for _, c := range types.Categories {
		if p.CategoryWeights[c] < 0 {
			return fmt.Errorf("%s weight cannot be negative, got %d", c, p.CategoryWeights[c])
		}
		if p.CategoryWeights[c] > MaxWeight {
			return fmt.Errorf("%s weight cannot exceed %d, got %d", c, MaxWeight, p.CategoryWeights[c])
		}
	}
	for kind, w := range p.MemberWeights {
		if w < 0 {
			return fmt.Errorf("%s weight cannot be negative, got %d", kind, w)
		}
		if w > MaxWeight {
			return fmt.Errorf("%s weight cannot exceed %d, got %d", kind, MaxWeight, w)
		}
	}
	for kind, chance := range p.AlbinoChances {
		if !kind.CanTakeAlbino() {
			return fmt.Errorf("%s has no albino variant", kind)
		}
		if chance < 0 || chance > 100 {
			return fmt.Errorf("albino chance for %s must be between 0 and 100, got %d", kind, chance)
		}
	}
	if p.RageChanceQuarterPound < 0 || p.RageChanceQuarterPound > 100 {
		return fmt.Errorf("quarter pound rage chance must be between 0 and 100, got %d", p.RageChanceQuarterPound)
	}
	if p.RageChanceFleshpound < 0 || p.RageChanceFleshpound > 100 {
		return fmt.Errorf("fleshpound rage chance must be between 0 and 100, got %d", p.RageChanceFleshpound)
	}

	// 权重非零的类别必须有可选成员
	for _, c := range types.Categories {
		if p.CategoryWeights[c] == 0 {
			continue
		}
		if sumWeights(p.memberWeights(c)) == 0 {
			return fmt.Errorf("%w: %s has weight %d but all of its member weights are 0", ErrInfeasible, c, p.CategoryWeights[c])
		}
	}

	feasible := false
	for _, c := range types.Categories {
		if p.CategoryWeights[c] > 0 && p.categoryOpen(c, 0) {
			feasible = true
		}
	}
	if !feasible {
		return fmt.Errorf("%w: no category with non-zero weight is open on wave 1 (large opens on wave %d, boss on wave %d)",
			ErrInfeasible, p.Gates.Large, p.Gates.Boss)
	}
	return nil
}

// memberWeights 按成员顺序返回类别内权重
func (p Params) memberWeights(c types.Category) []int {
	members := Members(c)
	weights := make([]int, len(members))
	for i, kind := range members {
		weights[i] = p.MemberWeights[kind]
	}
	return weights
}

func sumWeights(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	return total
}
