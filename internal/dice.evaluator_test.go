package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errScriptExhausted = errors.New("script exhausted")

// scriptedSource replays 1-based faces; a Fate face of 1, 2, 3 maps to -1, 0, +1
type scriptedSource struct {
	faces []int
	next  int
}

func script(faces ...int) *scriptedSource {
	return &scriptedSource{faces: faces}
}

func (s *scriptedSource) IntN(n int) (int, error) {
	if s.next >= len(s.faces) {
		return 0, errScriptExhausted
	}
	face := s.faces[s.next]
	s.next++
	if face < 1 || face > n {
		return 0, fmt.Errorf("face %d out of range 1..%d", face, n)
	}
	return face - 1, nil
}

func evaluate(t *testing.T, input string, source RandomSource, vars map[string]int) (*Outcome, error) {
	t.Helper()
	node, err := ParseExpression(input)
	require.NoError(t, err)
	return NewEvaluator(EvaluatorConfig{Source: source, Variables: vars}, nil).Evaluate(node)
}

func results(rolls []DieRoll) []int {
	out := make([]int, len(rolls))
	for i, r := range rolls {
		out[i] = r.Result
	}
	return out
}

func TestEvaluator_Evaluate_ArithmeticOnDice(t *testing.T) {
	out, err := evaluate(t, "2d6+3", script(3, 4), nil)

	require.NoError(t, err)
	assert.Equal(t, 10, out.Total)
	assert.Equal(t, []int{3, 4}, results(out.Rolls))
	assert.Equal(t, "d6", out.Rolls[0].Group)
	assert.Nil(t, out.Successes)
	assert.Nil(t, out.Target)
}

func TestEvaluator_Evaluate_KeepHighest(t *testing.T) {
	out, err := evaluate(t, "4d6kh3", script(1, 5, 3, 6), nil)

	require.NoError(t, err)
	assert.Equal(t, 14, out.Total)
	require.Len(t, out.Rolls, 4)
	assert.True(t, out.Rolls[0].Dropped)
	for _, r := range out.Rolls[1:] {
		assert.False(t, r.Dropped)
	}
}

func TestEvaluator_Evaluate_Explode(t *testing.T) {
	out, err := evaluate(t, "3d6!", script(6, 2, 4, 3), nil)

	require.NoError(t, err)
	require.Len(t, out.Rolls, 4)
	assert.True(t, out.Rolls[0].Exploded)
	assert.False(t, out.Rolls[3].Exploded)
	assert.Equal(t, 15, out.Total)
}

func TestEvaluator_Evaluate_ExplodeChain(t *testing.T) {
	out, err := evaluate(t, "1d6!", script(6, 6, 2), nil)

	require.NoError(t, err)
	assert.Equal(t, []int{6, 6, 2}, results(out.Rolls))
	assert.Equal(t, 14, out.Total)
}

func TestEvaluator_Evaluate_ExplodeLimit(t *testing.T) {
	node, err := ParseExpression("1d6!")
	require.NoError(t, err)

	evaluator := NewEvaluator(EvaluatorConfig{Source: script(6, 6, 6, 3), ExplodeLimit: 2}, nil)
	out, err := evaluator.Evaluate(node)

	require.NoError(t, err)
	assert.Equal(t, []int{6, 6, 6}, results(out.Rolls))
	assert.True(t, out.Rolls[0].Exploded)
	assert.True(t, out.Rolls[1].Exploded)
	assert.False(t, out.Rolls[2].Exploded)
	assert.Equal(t, 18, out.Total)
}

func TestEvaluator_Evaluate_ExplodeThreshold(t *testing.T) {
	out, err := evaluate(t, "2d6!>=5", script(5, 1, 2), nil)

	require.NoError(t, err)
	assert.Equal(t, []int{5, 1, 2}, results(out.Rolls))
	assert.Equal(t, 8, out.Total)
}

func TestEvaluator_Evaluate_DualityCritical(t *testing.T) {
	out, err := evaluate(t, "dh", script(7, 7), nil)

	require.NoError(t, err)
	assert.Equal(t, 14, out.Total)
	assert.Equal(t, TagCritical, out.Tag)
	require.NotNil(t, out.Hope)
	require.NotNil(t, out.Fear)
	assert.Equal(t, 7, *out.Hope)
	assert.Equal(t, 7, *out.Fear)
	assert.Equal(t, GroupHope, out.Rolls[0].Group)
	assert.Equal(t, GroupFear, out.Rolls[1].Group)
}

func TestEvaluator_Evaluate_DualityPools(t *testing.T) {
	out, err := evaluate(t, "dh a2 d1", script(5, 9, 3, 6, 4), nil)

	require.NoError(t, err)
	assert.Equal(t, 16, out.Total)
	assert.Equal(t, TagFear, out.Tag)
	require.Len(t, out.Rolls, 5)
	assert.Equal(t, GroupAdvantage, out.Rolls[2].Group)
	assert.Equal(t, GroupDisadvantage, out.Rolls[4].Group)
}

func TestEvaluator_Evaluate_TargetPass(t *testing.T) {
	out, err := evaluate(t, "1d20+5 t>=15", script(10), nil)

	require.NoError(t, err)
	assert.Equal(t, 15, out.Total)
	require.NotNil(t, out.Target)
	assert.Equal(t, ">=", out.Target.Op)
	assert.Equal(t, 15, out.Target.Value)
	assert.True(t, out.Target.Pass)
}

func TestEvaluator_Evaluate_TargetFailWithVariable(t *testing.T) {
	out, err := evaluate(t, "1d20 t>@tn", script(12), map[string]int{"TN": 12})

	require.NoError(t, err)
	require.NotNil(t, out.Target)
	assert.False(t, out.Target.Pass)
	assert.Equal(t, map[string]int{"TN": 12}, out.Variables)
}

func TestEvaluator_Evaluate_Variables(t *testing.T) {
	out, err := evaluate(t, "@STR+1d4", script(2), map[string]int{"STR": 3, "DEX": 1})

	require.NoError(t, err)
	assert.Equal(t, 5, out.Total)
	assert.Equal(t, map[string]int{"STR": 3}, out.Variables)
}

func TestEvaluator_Evaluate_UndefinedVariable(t *testing.T) {
	out, err := evaluate(t, "@STR+1d4", script(2), nil)

	require.Error(t, err)
	assert.Nil(t, out)

	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ErrorKindVariable, evalErr.Kind())
	assert.Equal(t, "STR", evalErr.Variable)
	assert.Equal(t, "variable @STR is not defined", err.Error())
}

func TestEvaluator_Evaluate_FloorDivision(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"7/2", 3},
		{"(0-7)/2", -4},
		{"7/(0-2)", -4},
		{"(0-7)/(0-2)", 3},
		{"6/3", 2},
		{"(0-6)/2", -3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, err := evaluate(t, tt.input, script(), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Total)
		})
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 3, FloorDiv(7, 2))
	assert.Equal(t, -4, FloorDiv(-7, 2))
	assert.Equal(t, -4, FloorDiv(7, -2))
	assert.Equal(t, 3, FloorDiv(-7, -2))
	assert.Equal(t, -3, FloorDiv(-6, 2))
}

func TestEvaluator_Evaluate_ArithmeticHazards(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		vars    map[string]int
		message string
	}{
		{"division by zero", "1/0", nil, ErrMsgDivisionByZero},
		{"zero count", "0d6", nil, ErrMsgNonPositiveCount},
		{"zero sides", "2d@s", map[string]int{"S": 0}, ErrMsgNonPositiveSides},
		{"negative keep", "4d6kh@k", map[string]int{"K": -1}, ErrMsgNegativeKeepCount},
		{"too many dice", "10001d6", nil, ErrMsgTooManyDice},
		{"negative pool", "dh a@n", map[string]int{"N": -2}, ErrMsgNegativePool},
		{"endless reroll", "2d6ro<=6", nil, ErrMsgRerollEveryFace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := evaluate(t, tt.input, script(1, 1, 1, 1, 1, 1), tt.vars)

			require.Error(t, err)
			assert.Nil(t, out)

			var evalErr *EvalError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, ErrorKindArithmetic, evalErr.Kind())
			assert.Equal(t, tt.message, evalErr.Message)
		})
	}
}

func TestEvaluator_Evaluate_RerollOnce(t *testing.T) {
	out, err := evaluate(t, "2d6r<=2", script(1, 5, 2), nil)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 2}, results(out.Rolls))
	assert.True(t, out.Rolls[0].Rerolled)
	assert.False(t, out.Rolls[2].Rerolled)
	assert.Equal(t, 7, out.Total)
}

func TestEvaluator_Evaluate_RerollContinuous(t *testing.T) {
	out, err := evaluate(t, "2d6ro<=2", script(1, 5, 2, 4), nil)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 2, 4}, results(out.Rolls))
	assert.True(t, out.Rolls[0].Rerolled)
	assert.False(t, out.Rolls[1].Rerolled)
	assert.True(t, out.Rolls[2].Rerolled)
	assert.False(t, out.Rolls[3].Rerolled)
	assert.Equal(t, 9, out.Total)
}

func TestEvaluator_Evaluate_RerollOnceMatchingEveryFace(t *testing.T) {
	out, err := evaluate(t, "1d6r<=6", script(3, 4), nil)

	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
}

func TestEvaluator_Evaluate_ModifierOrderIsFixed(t *testing.T) {
	// keep is written first but still runs after the explosion
	out, err := evaluate(t, "2d6kh1!", script(6, 2, 5), nil)

	require.NoError(t, err)
	assert.Equal(t, []int{6, 2, 5}, results(out.Rolls))
	assert.True(t, out.Rolls[0].Exploded)
	assert.True(t, out.Rolls[1].Dropped)
	assert.True(t, out.Rolls[2].Dropped)
	assert.Equal(t, 6, out.Total)
}

func TestEvaluator_Evaluate_KeepDropEquivalence(t *testing.T) {
	faces := []int{4, 4, 2, 6, 4}
	pairs := [][2]string{
		{"5d6kh3", "5d6dl2"},
		{"5d6kl2", "5d6dh3"},
		{"5d6kh0", "5d6dl5"},
		{"5d6kh5", "5d6dl0"},
	}

	for _, pair := range pairs {
		t.Run(pair[0], func(t *testing.T) {
			keep, err := evaluate(t, pair[0], script(faces...), nil)
			require.NoError(t, err)
			drop, err := evaluate(t, pair[1], script(faces...), nil)
			require.NoError(t, err)

			assert.Equal(t, keep.Total, drop.Total)
			for i := range keep.Rolls {
				assert.Equal(t, keep.Rolls[i].Dropped, drop.Rolls[i].Dropped, "die %d", i)
			}
		})
	}
}

func TestEvaluator_Evaluate_KeepMoreThanRolled(t *testing.T) {
	out, err := evaluate(t, "2d6kh5", script(3, 4), nil)

	require.NoError(t, err)
	assert.Equal(t, 7, out.Total)
}

func TestEvaluator_Evaluate_SuccessCount(t *testing.T) {
	out, err := evaluate(t, "5d10>=7", script(7, 3, 10, 6, 8), nil)

	require.NoError(t, err)
	require.NotNil(t, out.Successes)
	assert.Equal(t, 3, *out.Successes)
	assert.Equal(t, 3, out.Total)
	assert.True(t, out.Rolls[0].Success)
	assert.False(t, out.Rolls[1].Success)
}

func TestEvaluator_Evaluate_SuccessRange(t *testing.T) {
	out, err := evaluate(t, "4d10>=3<=5", script(2, 3, 5, 6), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, *out.Successes)
}

func TestEvaluator_Evaluate_SuccessesSumAcrossTerms(t *testing.T) {
	out, err := evaluate(t, "2d6>=5+2d6>=5", script(5, 1, 6, 6), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, *out.Successes)
	assert.Equal(t, 3, out.Total)
}

func TestEvaluator_Evaluate_FateDice(t *testing.T) {
	out, err := evaluate(t, "4dF", script(1, 2, 3, 3), nil)

	require.NoError(t, err)
	assert.Equal(t, []int{-1, 0, 1, 1}, results(out.Rolls))
	assert.Equal(t, 1, out.Total)
	for _, r := range out.Rolls {
		assert.True(t, r.Fate)
		assert.Equal(t, FateSides, r.Sides)
		assert.Equal(t, GroupFate, r.Group)
	}
}

func TestEvaluator_Evaluate_RandomFailure(t *testing.T) {
	out, err := evaluate(t, "3d6", script(1), nil)

	require.Error(t, err)
	assert.Nil(t, out)

	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ErrorKindRandom, evalErr.Kind())
	assert.ErrorIs(t, err, errScriptExhausted)
}

func TestEvaluator_Evaluate_NoRandomSource(t *testing.T) {
	out, err := evaluate(t, "1d6", nil, nil)

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), ErrMsgNoRandomSource)
}

func TestEvaluator_Evaluate_NilNode(t *testing.T) {
	_, err := NewEvaluator(EvaluatorConfig{}, nil).Evaluate(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgNilNode)
}

func TestEvaluator_Evaluate_PureArithmeticDrawsNothing(t *testing.T) {
	out, err := evaluate(t, "(2+3)*4-@b", script(), map[string]int{"B": 5})

	require.NoError(t, err)
	assert.Equal(t, 15, out.Total)
	assert.Empty(t, out.Rolls)
}

func TestEvaluator_Evaluate_DroppedDiceStayListed(t *testing.T) {
	out, err := evaluate(t, "4d6dl1r<=1", script(1, 3, 4, 5, 2), nil)

	require.NoError(t, err)
	require.Len(t, out.Rolls, 5)
	active := 0
	sum := 0
	for _, r := range out.Rolls {
		if r.Active() {
			active++
			sum += r.Result
		}
	}
	assert.Equal(t, 3, active)
	assert.Equal(t, sum, out.Total)
	assert.Equal(t, 12, out.Total)
}

func TestDualityTag(t *testing.T) {
	assert.Equal(t, TagCritical, DualityTag(4, 4))
	assert.Equal(t, TagHope, DualityTag(9, 4))
	assert.Equal(t, TagFear, DualityTag(2, 11))
}

func TestEvaluateExpression(t *testing.T) {
	out, err := EvaluateExpression("1d8+1", EvaluatorConfig{Source: script(8)})

	require.NoError(t, err)
	assert.Equal(t, 9, out.Total)

	_, err = EvaluateExpression("1d", EvaluatorConfig{Source: script(8)})
	require.Error(t, err)
}
