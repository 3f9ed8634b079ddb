package types

import "strings"

// 量词符号
const (
	QuantifierAlbino = '*' // 替换为白化变种
	QuantifierRage   = '!' // 狂暴生成
)

// zedAliases 每个种类在行格式中可用的别名（大写，精确匹配）
// 该表需与 Controlled Difficulty 社区的既有写法保持一致，
// 包括历史遗留的重复拼写（如 Quarter Pound 的 QUARTERPOUND / QUATERPOUND），不要"修正"。
var zedAliases = map[ZedKind][]string{
	ZedCyst:         {"CY", "CYST", "CLOTC"},
	ZedAlphaClot:    {"AL", "ALPHA", "ALPHACLOT", "CLOTA"},
	ZedSlasher:      {"SL", "SLASHER", "CLOTS"},
	ZedCrawler:      {"CR", "CRAWLER"},
	ZedGorefast:     {"GF", "GOREFAST"},
	ZedStalker:      {"ST", "STALKER"},
	ZedRioter:       {"RI", "RIOTER"},
	ZedGorefiend:    {"GFD", "GOREFIEND"},
	ZedEliteCrawler: {"ECR", "ELITECRAWLER"},

	ZedBloat:       {"BL", "BLOAT"},
	ZedHusk:        {"HU", "HUSK"},
	ZedSiren:       {"SI", "SIREN"},
	ZedEDARTrapper: {"DE", "DAREMP", "EDARTRAPPER", "TRAPPER"},
	ZedEDARBlaster: {"DL", "DARLASER", "EDARBLASTER", "BLASTER"},
	ZedEDARBomber:  {"DR", "DARROCKET", "EDARBOMBER", "BOMBER"},

	ZedScrake:          {"SC", "SCRAKE"},
	ZedAlphaScrake:     {"ASC", "ALPHASCRAKE"},
	ZedQuarterPound:    {"MF", "QP", "MINIFP", "QUARTERPOUND", "QUATERPOUND"},
	ZedFleshpound:      {"FP", "FLESHPOUND"},
	ZedAlphaFleshpound: {"AFP", "ALPHAFP", "ALPHAFLESHPOUND"},

	ZedHans:             {"HV", "HANS", "VOLTER"},
	ZedPatriarch:        {"PAT", "PATTY", "PATRIARCH"},
	ZedKingFleshpound:   {"KFP", "KINGFP", "KINGFLESHPOUND"},
	ZedAbomination:      {"ABM", "ABOM", "ABOMINATION"},
	ZedMatriarch:        {"MAT", "MATRIARCH"},
	ZedAbominationSpawn: {"AS", "ABOMSPAWN", "ABOMINATIONSPAWN"},
}

// aliasIndex 别名 -> 种类
var aliasIndex map[string]ZedKind

func init() {
	aliasIndex = make(map[string]ZedKind)
	for kind, aliases := range zedAliases {
		for _, alias := range aliases {
			aliasIndex[alias] = kind
		}
	}
}

// ResolveAlias 将别名（不区分大小写）解析为种类
// 只做精确匹配，不做前缀或模糊匹配
func ResolveAlias(alias string) (ZedKind, bool) {
	kind, ok := aliasIndex[strings.ToUpper(alias)]
	return kind, ok
}

// Aliases 返回种类的全部别名
func (z ZedKind) Aliases() []string {
	aliases := zedAliases[z]
	out := make([]string, len(aliases))
	copy(out, aliases)
	return out
}

// shortCodeKey 短码表的键：种类 + 是否狂暴
type shortCodeKey struct {
	kind  ZedKind
	raged bool
}

// shortCodes 序列化使用的短码，每个 (种类, 狂暴) 组合一一对应
var shortCodes = map[shortCodeKey]string{
	{ZedCyst, false}:         "CY",
	{ZedAlphaClot, false}:    "AL",
	{ZedSlasher, false}:      "SL",
	{ZedCrawler, false}:      "CR",
	{ZedGorefast, false}:     "GF",
	{ZedStalker, false}:      "ST",
	{ZedRioter, false}:       "AL*",
	{ZedGorefiend, false}:    "GF*",
	{ZedEliteCrawler, false}: "CR*",

	{ZedBloat, false}:       "BL",
	{ZedHusk, false}:        "HU",
	{ZedSiren, false}:       "SI",
	{ZedEDARTrapper, false}: "DE",
	{ZedEDARBlaster, false}: "DL",
	{ZedEDARBomber, false}:  "DR",

	{ZedScrake, false}:          "SC",
	{ZedAlphaScrake, false}:     "SC*",
	{ZedQuarterPound, false}:    "MF",
	{ZedQuarterPound, true}:     "MF!",
	{ZedFleshpound, false}:      "FP",
	{ZedFleshpound, true}:       "FP!",
	{ZedAlphaFleshpound, false}: "FP*",
	{ZedAlphaFleshpound, true}:  "FP*!",

	{ZedHans, false}:             "HV",
	{ZedPatriarch, false}:        "PAT",
	{ZedKingFleshpound, false}:   "KFP",
	{ZedAbomination, false}:      "ABM",
	{ZedMatriarch, false}:        "MAT",
	{ZedAbominationSpawn, false}: "AS",
}

// ShortCode 返回 (种类, 狂暴) 组合的序列化短码
func ShortCode(kind ZedKind, raged bool) (string, bool) {
	code, ok := shortCodes[shortCodeKey{kind, raged}]
	return code, ok
}
