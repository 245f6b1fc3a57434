package internal

import (
	"fmt"
	"strconv"
	"strings"
)

const groupDuality = "duality"

type rollGroup struct {
	key   string
	rolls []DieRoll
}

// FormatBreakdown renders a human-readable audit line for an outcome, e.g.
//
//	3d6 (5, 3, 6) drop(1) = 14
//	2d12: Hope(7) + Fear(7) = 14 [Critical]
//	1d20 (10) = 15 vs >=15 → PASS
func FormatBreakdown(out *Outcome) string {
	if out == nil {
		return ""
	}

	var sb strings.Builder
	parts := make([]string, 0, 4)
	for _, g := range groupRolls(out.Rolls) {
		parts = append(parts, formatGroup(g))
	}

	if len(parts) == 0 {
		sb.WriteString(fmt.Sprintf(FmtBreakdownTotal, out.Total))
	} else {
		sb.WriteString(strings.Join(parts, BreakdownPartSep))
		if out.Successes != nil {
			sb.WriteString(fmt.Sprintf(FmtBreakdownSuccess, *out.Successes))
		} else {
			sb.WriteString(fmt.Sprintf(FmtBreakdownEquals, out.Total))
		}
	}

	if out.Tag != "" {
		sb.WriteString(fmt.Sprintf(FmtBreakdownTag, out.Tag))
	}
	if out.Target != nil {
		verdict := BreakdownFail
		if out.Target.Pass {
			verdict = BreakdownPass
		}
		sb.WriteString(fmt.Sprintf(FmtBreakdownTarget, out.Target.Op, out.Target.Value, verdict))
	}
	return sb.String()
}

// groupRolls buckets rolls by label in first-seen order; hope and fear share
// one bucket
func groupRolls(rolls []DieRoll) []*rollGroup {
	var groups []*rollGroup
	index := make(map[string]*rollGroup)
	for _, r := range rolls {
		key := r.Group
		if key == GroupHope || key == GroupFear {
			key = groupDuality
		}
		g, ok := index[key]
		if !ok {
			g = &rollGroup{key: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.rolls = append(g.rolls, r)
	}
	return groups
}

func formatGroup(g *rollGroup) string {
	switch g.key {
	case groupDuality:
		return formatDuality(g.rolls)
	case GroupAdvantage, GroupDisadvantage:
		return formatPool(g)
	default:
		return formatDice(g)
	}
}

func formatDuality(rolls []DieRoll) string {
	var hopes, fears []int
	for _, r := range rolls {
		if r.Group == GroupHope {
			hopes = append(hopes, r.Result)
		} else {
			fears = append(fears, r.Result)
		}
	}
	pairs := make([]string, 0, len(hopes))
	for i := range min(len(hopes), len(fears)) {
		pairs = append(pairs, fmt.Sprintf(FmtBreakdownDuality, hopes[i], fears[i]))
	}
	return strings.Join(pairs, BreakdownPartSep)
}

func formatPool(g *rollGroup) string {
	values := make([]string, 0, len(g.rolls))
	best := 0
	for _, r := range g.rolls {
		values = append(values, strconv.Itoa(r.Result))
		best = max(best, r.Result)
	}
	return fmt.Sprintf(FmtBreakdownPool,
		len(g.rolls), GroupDicePrefix, PoolSides, g.key,
		strings.Join(values, BreakdownPoolSep), best)
}

// formatDice lists active dice, then dropped and rerolled ones. Exploded dice
// carry a trailing marker, successful dice a check mark.
func formatDice(g *rollGroup) string {
	var active, dropped, rerolled []string
	for _, r := range g.rolls {
		switch {
		case r.Rerolled:
			rerolled = append(rerolled, strconv.Itoa(r.Result))
		case r.Dropped:
			dropped = append(dropped, strconv.Itoa(r.Result))
		default:
			active = append(active, annotate(r))
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(FmtBreakdownGroup, len(active), g.key))
	if len(active) > 0 {
		sb.WriteString(fmt.Sprintf(FmtBreakdownRolls, strings.Join(active, BreakdownRollSep)))
	}
	if len(dropped) > 0 {
		sb.WriteString(fmt.Sprintf(FmtBreakdownDropped, strings.Join(dropped, BreakdownRollSep)))
	}
	if len(rerolled) > 0 {
		sb.WriteString(fmt.Sprintf(FmtBreakdownReroll, strings.Join(rerolled, BreakdownRollSep)))
	}
	return sb.String()
}

func annotate(r DieRoll) string {
	s := strconv.Itoa(r.Result)
	if r.Exploded {
		s += BreakdownExploded
	}
	if r.Success {
		s += BreakdownSuccess
	}
	return s
}
