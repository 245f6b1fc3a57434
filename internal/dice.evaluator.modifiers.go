package internal

import (
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// evaluateDice rolls a dice term and applies its modifiers in the fixed order
// reroll, explode, keep/drop, success count regardless of how they were written.
func (e *Evaluator) evaluateDice(n *DiceNode, out *Outcome) (int, error) {
	count, err := e.resolve(n.Count)
	if err != nil {
		return 0, err
	}
	if count <= 0 {
		return 0, hazard(ErrMsgNonPositiveCount, count)
	}
	if count > e.config.MaxDice {
		return 0, hazard(ErrMsgTooManyDice, count)
	}

	d := fateDie()
	if !n.Fate {
		sides, err := e.resolve(n.Sides)
		if err != nil {
			return 0, err
		}
		if sides <= 0 {
			return 0, hazard(ErrMsgNonPositiveSides, sides)
		}
		d = numericDie(sides, GroupDicePrefix+strconv.Itoa(sides))
	}

	rolls := make([]DieRoll, 0, count)
	for i := 0; i < count; i++ {
		r, err := e.roll(d)
		if err != nil {
			return 0, err
		}
		rolls = append(rolls, r)
	}

	if rolls, err = e.applyRerolls(rolls, d, n.Modifiers); err != nil {
		return 0, err
	}
	if rolls, err = e.applyExplosions(rolls, d, n.Modifiers); err != nil {
		return 0, err
	}
	if err = e.applyKeepDrop(rolls, n.Modifiers); err != nil {
		return 0, err
	}

	value, counted, err := e.tally(rolls, n.Modifiers)
	if err != nil {
		return 0, err
	}

	out.Rolls = append(out.Rolls, rolls...)
	if counted {
		out.addSuccesses(value)
	}
	return value, nil
}

// applyRerolls only visits dice present when each modifier starts, so a
// replacement is never itself rerolled by the same modifier in once mode.
func (e *Evaluator) applyRerolls(rolls []DieRoll, d die, mods []Modifier) ([]DieRoll, error) {
	for _, mod := range mods {
		m, ok := mod.(*RerollModifier)
		if !ok {
			continue
		}
		threshold, err := e.resolve(m.Threshold)
		if err != nil {
			return nil, err
		}
		if !m.Once && matchesEveryFace(d, m.Op, threshold) {
			return nil, NewEvalError(ErrorKindArithmetic, ErrMsgRerollEveryFace, m.String())
		}

		n := len(rolls)
		for i := 0; i < n; i++ {
			if !rolls[i].Active() || !m.Op.Apply(rolls[i].Result, threshold) {
				continue
			}
			rolls[i].Rerolled = true

			next, err := e.roll(d)
			if err != nil {
				return nil, err
			}
			if !m.Once {
				chain := 0
				for m.Op.Apply(next.Result, threshold) {
					if chain >= e.config.ExplodeLimit {
						e.logger.Debug(LogMsgRerollChainCapped, zap.Int(LogFieldLimit, e.config.ExplodeLimit))
						break
					}
					next.Rerolled = true
					rolls = append(rolls, next)
					chain++
					if next, err = e.roll(d); err != nil {
						return nil, err
					}
				}
			}
			rolls = append(rolls, next)
		}
	}
	return rolls, nil
}

// applyExplosions scans dice appended during the scan as well, so chains
// explode until the per-term limit is spent.
func (e *Evaluator) applyExplosions(rolls []DieRoll, d die, mods []Modifier) ([]DieRoll, error) {
	exploded := 0
	for _, mod := range mods {
		m, ok := mod.(*ExplodeModifier)
		if !ok {
			continue
		}
		threshold := d.maxFace()
		if m.Threshold != nil {
			t, err := e.resolve(*m.Threshold)
			if err != nil {
				return nil, err
			}
			threshold = t
		}

		for i := 0; i < len(rolls); i++ {
			if exploded >= e.config.ExplodeLimit {
				e.logger.Debug(LogMsgExplodeLimitHit, zap.Int(LogFieldLimit, e.config.ExplodeLimit))
				break
			}
			if !rolls[i].Active() || rolls[i].Exploded || !m.Op.Apply(rolls[i].Result, threshold) {
				continue
			}
			rolls[i].Exploded = true
			next, err := e.roll(d)
			if err != nil {
				return nil, err
			}
			rolls = append(rolls, next)
			exploded++
		}
	}
	return rolls, nil
}

// applyKeepDrop ranks active dice by (result, original index) so that
// khN and dl(total-N) always select the same dice.
func (e *Evaluator) applyKeepDrop(rolls []DieRoll, mods []Modifier) error {
	for _, mod := range mods {
		var (
			high, keep bool
			operand    Operand
		)
		switch m := mod.(type) {
		case *KeepModifier:
			high, keep, operand = m.High, true, m.Count
		case *DropModifier:
			high, keep, operand = m.High, false, m.Count
		default:
			continue
		}

		count, err := e.resolve(operand)
		if err != nil {
			return err
		}
		if count < 0 {
			return hazard(ErrMsgNegativeKeepCount, count)
		}

		active := activeIndices(rolls)
		rank(rolls, active, high)

		var excluded []int
		if keep {
			if count < len(active) {
				excluded = active[count:]
			}
		} else {
			excluded = active[:min(count, len(active))]
		}
		for _, idx := range excluded {
			rolls[idx].Dropped = true
		}
	}
	return nil
}

// tally sums active dice, or counts those meeting every success condition
// when the term carries any.
func (e *Evaluator) tally(rolls []DieRoll, mods []Modifier) (int, bool, error) {
	type condition struct {
		op        Comparison
		threshold int
	}
	var conditions []condition
	for _, mod := range mods {
		m, ok := mod.(*SuccessModifier)
		if !ok {
			continue
		}
		threshold, err := e.resolve(m.Threshold)
		if err != nil {
			return 0, false, err
		}
		conditions = append(conditions, condition{op: m.Op, threshold: threshold})
	}

	value := 0
	for i := range rolls {
		if !rolls[i].Active() {
			continue
		}
		if len(conditions) == 0 {
			value += rolls[i].Result
			continue
		}
		success := true
		for _, c := range conditions {
			if !c.op.Apply(rolls[i].Result, c.threshold) {
				success = false
				break
			}
		}
		if success {
			rolls[i].Success = true
			value++
		}
	}
	return value, len(conditions) > 0, nil
}

func activeIndices(rolls []DieRoll) []int {
	idx := make([]int, 0, len(rolls))
	for i := range rolls {
		if rolls[i].Active() {
			idx = append(idx, i)
		}
	}
	return idx
}

// rank orders indices best-first for high and worst-first for low. Ties go
// to the earlier die in high order, so low order is the exact reverse.
func rank(rolls []DieRoll, idx []int, high bool) {
	sort.Slice(idx, func(a, b int) bool {
		x, y := idx[a], idx[b]
		rx, ry := rolls[x].Result, rolls[y].Result
		if high {
			if rx != ry {
				return rx > ry
			}
			return x < y
		}
		if rx != ry {
			return rx < ry
		}
		return x > y
	})
}

// matchesEveryFace reports whether a continuous reroll could never stop.
// Every comparison is monotone over the face range, so the endpoints decide.
func matchesEveryFace(d die, op Comparison, threshold int) bool {
	return op.Apply(d.minFace(), threshold) && op.Apply(d.maxFace(), threshold)
}
