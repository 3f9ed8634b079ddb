package types

// Group 难度分析使用的粗粒度分组
// 分组之间允许重叠：白化变种同时计入其基础分组和 GroupAlbino
type Group int

const (
	GroupClots Group = iota
	GroupGorefasts
	GroupCrawlersStalkers
	GroupRobots
	GroupScrakes
	GroupFleshpounds
	GroupAlbino
	GroupSpawnRage
)

// Groups 按固定顺序列出全部分组
var Groups = []Group{
	GroupClots, GroupGorefasts, GroupCrawlersStalkers, GroupRobots,
	GroupScrakes, GroupFleshpounds, GroupAlbino, GroupSpawnRage,
}

var groupNames = [...]string{
	"Clots", "Gorefasts", "Crawlers/Stalkers", "Robots",
	"Scrakes", "Fleshpounds", "Albino", "SpawnRage",
}

// String 返回分组名称
func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return "Unknown"
	}
	return groupNames[g]
}

var kindGroup = map[ZedKind]Group{
	ZedCyst:            GroupClots,
	ZedAlphaClot:       GroupClots,
	ZedSlasher:         GroupClots,
	ZedRioter:          GroupClots,
	ZedGorefast:        GroupGorefasts,
	ZedGorefiend:       GroupGorefasts,
	ZedCrawler:         GroupCrawlersStalkers,
	ZedEliteCrawler:    GroupCrawlersStalkers,
	ZedStalker:         GroupCrawlersStalkers,
	ZedEDARTrapper:     GroupRobots,
	ZedEDARBlaster:     GroupRobots,
	ZedEDARBomber:      GroupRobots,
	ZedScrake:          GroupScrakes,
	ZedAlphaScrake:     GroupScrakes,
	ZedQuarterPound:    GroupFleshpounds,
	ZedFleshpound:      GroupFleshpounds,
	ZedAlphaFleshpound: GroupFleshpounds,
}

// GroupsOf 返回一个生成事件应计入的全部分组
// Bloat/Husk/Siren 与 Boss 不属于任何种类分组
func GroupsOf(kind ZedKind, raged bool) []Group {
	var groups []Group
	if g, ok := kindGroup[kind]; ok {
		groups = append(groups, g)
	}
	if kind.IsAlbino() {
		groups = append(groups, GroupAlbino)
	}
	if raged {
		groups = append(groups, GroupSpawnRage)
	}
	return groups
}
