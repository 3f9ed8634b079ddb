// Package types 定义 ZED 目录：僵尸种类、类别、分组、别名与短码
package types

import (
	"fmt"
	"strings"
)

// ZedKind 定义 ZED 的具体种类
// 白化（Albino）变种是独立的种类，而不是附加在基础种类上的标记
type ZedKind int

const (
	// ZedUnknown 未知种类
	ZedUnknown ZedKind = iota

	// 杂兵（Trash）
	ZedCyst
	ZedAlphaClot
	ZedSlasher
	ZedCrawler
	ZedGorefast
	ZedStalker
	ZedRioter       // Alpha Clot 的白化变种
	ZedGorefiend    // Gorefast 的白化变种
	ZedEliteCrawler // Crawler 的白化变种

	// 中型（Medium）
	ZedBloat
	ZedHusk
	ZedSiren
	ZedEDARTrapper
	ZedEDARBlaster
	ZedEDARBomber

	// 大型（Large）
	ZedScrake
	ZedAlphaScrake // Scrake 的白化变种
	ZedQuarterPound
	ZedFleshpound
	ZedAlphaFleshpound // Fleshpound 的白化变种

	// Boss
	ZedHans
	ZedPatriarch
	ZedKingFleshpound
	ZedAbomination
	ZedMatriarch
	ZedAbominationSpawn

	zedKindCount
)

// Category ZED 类别
type Category int

const (
	CategoryTrash Category = iota
	CategoryMedium
	CategoryLarge
	CategoryBoss
)

// Categories 按固定顺序列出全部类别
var Categories = []Category{CategoryTrash, CategoryMedium, CategoryLarge, CategoryBoss}

var categoryNames = [...]string{"Trash", "Medium", "Large", "Boss"}

// String 返回类别名称
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// CategoryFromString 将名称（不区分大小写）转换为类别
func CategoryFromString(s string) (Category, bool) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), true
		}
	}
	return 0, false
}

// zedInfo 单个种类的静态属性
type zedInfo struct {
	name     string
	category Category
	base     ZedKind // 白化变种对应的基础种类；非白化种类为自身
}

var zedTable = map[ZedKind]zedInfo{
	ZedCyst:         {"Cyst", CategoryTrash, ZedCyst},
	ZedAlphaClot:    {"Alpha Clot", CategoryTrash, ZedAlphaClot},
	ZedSlasher:      {"Slasher", CategoryTrash, ZedSlasher},
	ZedCrawler:      {"Crawler", CategoryTrash, ZedCrawler},
	ZedGorefast:     {"Gorefast", CategoryTrash, ZedGorefast},
	ZedStalker:      {"Stalker", CategoryTrash, ZedStalker},
	ZedRioter:       {"Rioter", CategoryTrash, ZedAlphaClot},
	ZedGorefiend:    {"Gorefiend", CategoryTrash, ZedGorefast},
	ZedEliteCrawler: {"Elite Crawler", CategoryTrash, ZedCrawler},

	ZedBloat:       {"Bloat", CategoryMedium, ZedBloat},
	ZedHusk:        {"Husk", CategoryMedium, ZedHusk},
	ZedSiren:       {"Siren", CategoryMedium, ZedSiren},
	ZedEDARTrapper: {"E.D.A.R Trapper", CategoryMedium, ZedEDARTrapper},
	ZedEDARBlaster: {"E.D.A.R Blaster", CategoryMedium, ZedEDARBlaster},
	ZedEDARBomber:  {"E.D.A.R Bomber", CategoryMedium, ZedEDARBomber},

	ZedScrake:          {"Scrake", CategoryLarge, ZedScrake},
	ZedAlphaScrake:     {"Alpha Scrake", CategoryLarge, ZedScrake},
	ZedQuarterPound:    {"Quarter Pound", CategoryLarge, ZedQuarterPound},
	ZedFleshpound:      {"Fleshpound", CategoryLarge, ZedFleshpound},
	ZedAlphaFleshpound: {"Alpha Fleshpound", CategoryLarge, ZedFleshpound},

	ZedHans:             {"Hans", CategoryBoss, ZedHans},
	ZedPatriarch:        {"Patriarch", CategoryBoss, ZedPatriarch},
	ZedKingFleshpound:   {"King Fleshpound", CategoryBoss, ZedKingFleshpound},
	ZedAbomination:      {"Abomination", CategoryBoss, ZedAbomination},
	ZedMatriarch:        {"Matriarch", CategoryBoss, ZedMatriarch},
	ZedAbominationSpawn: {"Abomination Spawn", CategoryBoss, ZedAbominationSpawn},
}

// albinoVariants 基础种类 -> 白化变种（即 '*' 量词的替换表）
var albinoVariants = map[ZedKind]ZedKind{
	ZedAlphaClot:  ZedRioter,
	ZedGorefast:   ZedGorefiend,
	ZedCrawler:    ZedEliteCrawler,
	ZedScrake:     ZedAlphaScrake,
	ZedFleshpound: ZedAlphaFleshpound,
}

// nameToKind 显示名称（小写、去空白）到种类的反向映射
var nameToKind map[string]ZedKind

func init() {
	nameToKind = make(map[string]ZedKind, len(zedTable))
	for kind, info := range zedTable {
		nameToKind[normalizeName(info.name)] = kind
	}
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", ".", "", "_", "", "-", "").Replace(s)
}

// AllZedKinds 按枚举顺序返回全部已知种类
func AllZedKinds() []ZedKind {
	kinds := make([]ZedKind, 0, int(zedKindCount)-1)
	for k := ZedCyst; k < zedKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid 判断是否为已知种类
func (z ZedKind) Valid() bool {
	_, ok := zedTable[z]
	return ok
}

// String 返回种类的显示名称
func (z ZedKind) String() string {
	if info, ok := zedTable[z]; ok {
		return info.name
	}
	return "Unknown"
}

// Category 返回种类所属类别
func (z ZedKind) Category() Category {
	return zedTable[z].category
}

// IsAlbino 判断是否为白化变种
func (z ZedKind) IsAlbino() bool {
	info, ok := zedTable[z]
	return ok && info.base != z
}

// Base 返回白化变种对应的基础种类，非白化种类返回自身
func (z ZedKind) Base() ZedKind {
	if info, ok := zedTable[z]; ok {
		return info.base
	}
	return ZedUnknown
}

// AlbinoVariant 返回基础种类的白化变种
// 只有 Alpha Clot、Gorefast、Crawler、Scrake、Fleshpound 拥有白化变种
func (z ZedKind) AlbinoVariant() (ZedKind, bool) {
	v, ok := albinoVariants[z]
	return v, ok
}

// CanTakeAlbino 判断 '*' 量词是否可以作用于该（基础）种类
func (z ZedKind) CanTakeAlbino() bool {
	_, ok := albinoVariants[z]
	return ok
}

// CanRage 判断该种类是否可以处于狂暴（SpawnRage）状态
func (z ZedKind) CanRage() bool {
	switch z {
	case ZedFleshpound, ZedQuarterPound, ZedAlphaFleshpound:
		return true
	default:
		return false
	}
}

// ZedKindFromName 将显示名称转换为种类
// 忽略大小写、空格、点号、下划线和连字符，例如 "alpha_fleshpound"、"E.D.A.R Trapper"
func ZedKindFromName(name string) ZedKind {
	if kind, ok := nameToKind[normalizeName(name)]; ok {
		return kind
	}
	return ZedUnknown
}

// MarshalText 以显示名称编码种类（YAML/JSON 共用）
func (z ZedKind) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText 从显示名称解码种类
func (z *ZedKind) UnmarshalText(text []byte) error {
	kind := ZedKindFromName(string(text))
	if kind == ZedUnknown {
		return &UnknownZedError{Name: string(text)}
	}
	*z = kind
	return nil
}

// UnknownZedError 未知 ZED 名称
type UnknownZedError struct {
	Name string
}

func (e *UnknownZedError) Error() string {
	return fmt.Sprintf("unknown zed kind %q", e.Name)
}
