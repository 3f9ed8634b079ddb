package cycle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gonewx/spawncycler/pkg/types"
)

// token 解析后的单个词元
type token struct {
	spec  ZedSpec
	count int
}

// Parse 校验行格式的 SpawnCycle
//
// 返回错误信息列表，空列表表示合法。除行数检查外，错误会累积而不会提前终止：
//   - 行数必须为 4、7 或 10，否则只返回这一条错误
//   - 每行必须以 "SpawnCycleDefs=" 开头（缺失时仍继续检查该行其余部分）
//   - 小队不能为空
//   - 词元必须形如 <数量><别名><量词>*
//   - 量词合法性：'!' 只能用于 Fleshpound / Quarter Pound / Alpha Fleshpound，
//     '*' 只能用于 Alpha Clot / Gorefast / Crawler / Scrake / Fleshpound
//   - 每个小队的合法词元数量之和不超过 10
func Parse(lines []string) []string {
	if !IsValidWaveCount(len(lines)) {
		return []string{fmt.Sprintf("line count must be 4, 7 or 10, got %d", len(lines))}
	}

	var errs []string
	for i, line := range lines {
		lineNo := i + 1
		body, ok := strings.CutPrefix(line, LinePrefix)
		if !ok {
			errs = append(errs, fmt.Sprintf("line %d: must start with %q", lineNo, LinePrefix))
			body = stripAnyPrefix(line)
		}

		for j, squadText := range strings.Split(body, ",") {
			where := fmt.Sprintf("line %d, squad %d", lineNo, j+1)
			if squadText == "" {
				errs = append(errs, where+": squad is empty")
				continue
			}

			total, overflow := 0, false
			for _, text := range strings.Split(squadText, "_") {
				tok, tokErrs := parseToken(text)
				if len(tokErrs) > 0 {
					for _, e := range tokErrs {
						errs = append(errs, fmt.Sprintf("%s: token %q: %s", where, text, e))
					}
					continue
				}
				if tok.count > math.MaxInt-total {
					overflow = true
					continue
				}
				total += tok.count
			}
			switch {
			case overflow:
				errs = append(errs, fmt.Sprintf("%s: squad has more zeds than can be counted, maximum is %d", where, MaxSquadSize))
			case total > MaxSquadSize:
				errs = append(errs, fmt.Sprintf("%s: squad has %d zeds, maximum is %d", where, total, MaxSquadSize))
			}
		}
	}
	return errs
}

// Build 将已通过 Parse 校验的行构造成 SpawnCycle
//
// 不重复校验；同一小队内解析为相同 (种类, 狂暴) 的词元按首次出现顺序合并数量。
// 非法词元会被跳过，因此对未校验的输入也不会 panic。
func Build(lines []string) *SpawnCycle {
	c := &SpawnCycle{Waves: make([]Wave, 0, len(lines))}
	for _, line := range lines {
		body, ok := strings.CutPrefix(line, LinePrefix)
		if !ok {
			body = stripAnyPrefix(line)
		}

		var wave Wave
		for _, squadText := range strings.Split(body, ",") {
			if squadText == "" {
				continue
			}
			var squad Squad
			for _, text := range strings.Split(squadText, "_") {
				tok, tokErrs := parseToken(text)
				if len(tokErrs) > 0 {
					continue
				}
				squad.Add(tok.spec, tok.count)
			}
			if len(squad.Entries) > 0 {
				wave.Squads = append(wave.Squads, squad)
			}
		}
		c.Waves = append(c.Waves, wave)
	}
	return c
}

// ParseAndBuild 校验并构造；校验失败时返回 nil 和错误列表
func ParseAndBuild(lines []string) (*SpawnCycle, []string) {
	if errs := Parse(lines); len(errs) > 0 {
		return nil, errs
	}
	return Build(lines), nil
}

// stripAnyPrefix 对缺少正确前缀的行，去掉第一个 '=' 及之前的内容（如拼错的 "SpawnCycleDef="）
func stripAnyPrefix(line string) string {
	if idx := strings.IndexByte(line, '='); idx >= 0 {
		return line[idx+1:]
	}
	return line
}

// parseToken 解析 <数量><别名><量词>* 形式的词元
func parseToken(text string) (token, []string) {
	if text == "" {
		return token{}, []string{"token is empty"}
	}

	digits := 0
	for digits < len(text) && text[digits] >= '0' && text[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return token{}, []string{"missing zed count"}
	}
	count, err := strconv.Atoi(text[:digits])
	if err != nil {
		return token{}, []string{fmt.Sprintf("invalid zed count %q", text[:digits])}
	}
	if count < 1 {
		return token{}, []string{"zed count must be at least 1"}
	}

	// 量词取自词元末尾连续的 '*' / '!'
	rest := text[digits:]
	end := len(rest)
	for end > 0 && (rest[end-1] == types.QuantifierAlbino || rest[end-1] == types.QuantifierRage) {
		end--
	}
	alias, quantifiers := rest[:end], rest[end:]
	if alias == "" {
		return token{}, []string{"missing zed alias"}
	}

	base, ok := types.ResolveAlias(alias)
	if !ok {
		return token{}, []string{fmt.Sprintf("unknown zed alias %q", alias)}
	}

	var errs []string
	albino, raged := false, false
	for _, q := range quantifiers {
		switch q {
		case types.QuantifierAlbino:
			if albino {
				errs = append(errs, "duplicate '*' quantifier")
			}
			albino = true
		case types.QuantifierRage:
			if raged {
				errs = append(errs, "duplicate '!' quantifier")
			}
			raged = true
		}
	}
	if albino && !base.CanTakeAlbino() {
		errs = append(errs, fmt.Sprintf("%s has no albino variant ('*')", base))
	}
	if raged && !base.CanRage() {
		errs = append(errs, fmt.Sprintf("%s cannot be enraged ('!')", base))
	}
	if len(errs) > 0 {
		return token{}, errs
	}

	kind := base
	if albino {
		kind, _ = base.AlbinoVariant()
	}
	return token{spec: ZedSpec{Kind: kind, Raged: raged}, count: count}, nil
}
