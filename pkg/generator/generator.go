// Package generator 按密度与开放阈值参数随机生成 SpawnCycle
package generator

import (
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/types"
)

// Source 随机数来源
// *rand.Rand 满足该接口；同一种子下的抽取顺序固定，生成结果可复现
type Source interface {
	// Intn 返回 [0, n) 范围内的随机整数
	Intn(n int) int
}

// NewRand 创建指定种子的随机源
// 种子为 0 时使用当前时间
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate 按参数生成一个 SpawnCycle
//
// 对第 i 波（从 0 开始），各开放阈值按 i+1 >= 阈值 判断：
//  1. 在 [MinSquads, MaxSquads] 中均匀抽取小队数
//  2. 对每个小队在 [MinSquadSize, MaxSquadSize] 中均匀抽取长度，每个位置：
//     a. 按类别权重抽取类别；抽到未开放的 Large/Boss 时重新抽取
//     b. 按类别内成员权重抽取具体种类
//     c. 白化已开放且该种类配置了白化概率时做一次判定，成功则替换为白化变种
//     d. 种类属于 Large 且狂暴已开放时按对应概率判定狂暴
//     e. 合并进当前小队
//
// 参数先经过 Validate，保证拒绝采样一定能终止。
func Generate(params Params, rng Source) (*cycle.SpawnCycle, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g := &generation{params: params, rng: rng}
	for _, c := range types.Categories {
		g.members[c] = params.memberWeights(c)
	}

	result := &cycle.SpawnCycle{Waves: make([]cycle.Wave, 0, params.GameLength)}
	totalSquads, totalZeds := 0, 0
	for i := 0; i < params.GameLength; i++ {
		wave := g.wave(i)
		totalSquads += len(wave.Squads)
		totalZeds += wave.Total()
		result.Waves = append(result.Waves, wave)
	}

	log.Printf("[Generator] Generated %d waves: %d squads, %d zeds", params.GameLength, totalSquads, totalZeds)
	return result, nil
}

// generation 单次生成过程的状态
type generation struct {
	params  Params
	rng     Source
	members [4][]int
}

func (g *generation) wave(waveIndex int) cycle.Wave {
	p := g.params
	squadCount := g.between(p.MinSquads, p.MaxSquads)

	wave := cycle.Wave{Squads: make([]cycle.Squad, 0, squadCount)}
	for s := 0; s < squadCount; s++ {
		var squad cycle.Squad
		length := g.between(p.MinSquadSize, p.MaxSquadSize)
		for slot := 0; slot < length; slot++ {
			squad.Add(g.zed(waveIndex), 1)
		}
		wave.Squads = append(wave.Squads, squad)
	}
	return wave
}

// zed 抽取一个位置上的 ZED
func (g *generation) zed(waveIndex int) cycle.ZedSpec {
	p := g.params

	category := types.Category(g.weighted(p.CategoryWeights[:]))
	for !p.categoryOpen(category, waveIndex) {
		category = types.Category(g.weighted(p.CategoryWeights[:]))
	}

	kind := Members(category)[g.weighted(g.members[category])]

	if gateOpen(waveIndex, p.Gates.Albino) {
		if chance := p.AlbinoChances[kind]; chance > 0 && g.roll(chance) {
			kind, _ = kind.AlbinoVariant()
		}
	}

	raged := false
	if kind.Category() == types.CategoryLarge && gateOpen(waveIndex, p.Gates.Rage) {
		switch kind {
		case types.ZedQuarterPound:
			raged = p.RageChanceQuarterPound > 0 && g.roll(p.RageChanceQuarterPound)
		case types.ZedFleshpound, types.ZedAlphaFleshpound:
			raged = p.RageChanceFleshpound > 0 && g.roll(p.RageChanceFleshpound)
		}
	}

	return cycle.ZedSpec{Kind: kind, Raged: raged}
}

// between 在闭区间 [min, max] 中均匀抽取
func (g *generation) between(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

// roll 百分比判定：抽取 1-100，小于等于 chance 视为成功
func (g *generation) roll(chance int) bool {
	return g.rng.Intn(100)+1 <= chance
}

// weighted 按权重抽取下标，调用方保证权重之和大于 0
func (g *generation) weighted(weights []int) int {
	total := sumWeights(weights)
	r := g.rng.Intn(total)
	upto := 0
	for i, w := range weights {
		if upto+w > r {
			return i
		}
		upto += w
	}
	return len(weights) - 1
}
