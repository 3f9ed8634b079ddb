package analyzer

import "github.com/gonewx/spawncycler/pkg/types"

// 难度下标：0=Normal 1=Hard 2=Suicidal 3=Hell on Earth
var (
	DifficultyMultiplier = [4]float64{0.85, 1.0, 1.3, 1.7}
	DoshMultiplier       = [4]float64{1.0, 1.25, 1.5, 1.75}
)

// 游戏长度下标：0=4 波 1=7 波 2=10 波
var (
	GameLengths = [3]int{4, 7, 10}

	// BaseZedTable 单人 Normal 难度下每一波的基础 ZED 数
	BaseZedTable = [3][]int{
		{25, 32, 35, 42},
		{25, 28, 32, 32, 35, 40, 42},
		{25, 28, 32, 32, 35, 35, 35, 40, 42, 42},
	}

	// MaxWaveForGameLength 计算波次得分系数时使用的分母
	// 按游戏长度下标取值，与 GameLengths 顺序相反
	MaxWaveForGameLength = [3]int{10, 7, 4}
)

// waveSizeTable WSF 1-6 对应的倍率
var waveSizeTable = [6]float64{1.0, 2.0, 2.75, 3.5, 4.0, 4.5}

const (
	// wsfSlope WSF 超过 6 后每增加 1 的倍率增量
	wsfSlope = 0.211718

	// MaxWaveSizeFakes WSF 上限
	MaxWaveSizeFakes = 128

	// MaxScore 单点得分上限
	MaxScore = 750000.0
)

// categoryScore 存活 ZED 的类别权重
var categoryScore = [4]float64{
	types.CategoryTrash:  250,
	types.CategoryMedium: 1000,
	types.CategoryLarge:  2000,
	types.CategoryBoss:   10000,
}

// GameLengthIndex 将波数转换为游戏长度下标
func GameLengthIndex(waves int) (int, bool) {
	for i, n := range GameLengths {
		if n == waves {
			return i, true
		}
	}
	return 0, false
}

// WaveSizeMultiplier 计算 WSF 对波次规模的倍率
func WaveSizeMultiplier(wsf int) float64 {
	switch {
	case wsf <= 0:
		return 1.0
	case wsf <= len(waveSizeTable):
		return waveSizeTable[wsf-1]
	default:
		return waveSizeTable[len(waveSizeTable)-1] + float64(wsf-len(waveSizeTable))*wsfSlope
	}
}

// scoreCategory 计算得分时使用的类别，Abomination Spawn 按 Trash 计
func scoreCategory(kind types.ZedKind) types.Category {
	if kind == types.ZedAbominationSpawn {
		return types.CategoryTrash
	}
	return kind.Category()
}
