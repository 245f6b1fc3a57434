package internal

// evaluateSpecial rolls the Hope/Fear duality: one d12 each for hope and
// fear, plus the best of the advantage pool minus the best of the
// disadvantage pool. Modifiers attached to the term are not applied.
func (e *Evaluator) evaluateSpecial(n *SpecialNode, out *Outcome) (int, error) {
	adv, err := e.resolve(n.Advantage)
	if err != nil {
		return 0, err
	}
	dis, err := e.resolve(n.Disadvantage)
	if err != nil {
		return 0, err
	}
	if adv < 0 {
		return 0, hazard(ErrMsgNegativePool, adv)
	}
	if dis < 0 {
		return 0, hazard(ErrMsgNegativePool, dis)
	}
	if adv+dis > e.config.MaxDice {
		return 0, hazard(ErrMsgTooManyDice, adv+dis)
	}

	hope, err := e.roll(numericDie(DualitySides, GroupHope))
	if err != nil {
		return 0, err
	}
	fear, err := e.roll(numericDie(DualitySides, GroupFear))
	if err != nil {
		return 0, err
	}
	out.Rolls = append(out.Rolls, hope, fear)

	bestAdv, err := e.rollPool(adv, GroupAdvantage, out)
	if err != nil {
		return 0, err
	}
	bestDis, err := e.rollPool(dis, GroupDisadvantage, out)
	if err != nil {
		return 0, err
	}

	hopeValue, fearValue := hope.Result, fear.Result
	out.Hope = &hopeValue
	out.Fear = &fearValue
	out.Tag = DualityTag(hopeValue, fearValue)

	return hopeValue + fearValue + bestAdv - bestDis, nil
}

// rollPool rolls count d6 into the outcome and returns the highest, or 0
// for an empty pool
func (e *Evaluator) rollPool(count int, group string, out *Outcome) (int, error) {
	best := 0
	for i := 0; i < count; i++ {
		r, err := e.roll(numericDie(PoolSides, group))
		if err != nil {
			return 0, err
		}
		out.Rolls = append(out.Rolls, r)
		best = max(best, r.Result)
	}
	return best, nil
}

// DualityTag classifies a hope/fear pair
func DualityTag(hope, fear int) string {
	switch {
	case hope == fear:
		return TagCritical
	case hope > fear:
		return TagHope
	default:
		return TagFear
	}
}
