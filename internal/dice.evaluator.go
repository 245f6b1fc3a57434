package internal

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// RandomSource supplies uniform draws in [0, n)
type RandomSource interface {
	IntN(n int) (int, error)
}

// DieRoll is a single die in a result. Dropped and rerolled dice stay in the
// roll list for auditing but are excluded from sums and success counts.
type DieRoll struct {
	Sides    int    `json:"sides"`
	Result   int    `json:"result"`
	Fate     bool   `json:"fate,omitempty"`
	Group    string `json:"group"`
	Exploded bool   `json:"exploded,omitempty"`
	Dropped  bool   `json:"dropped,omitempty"`
	Rerolled bool   `json:"rerolled,omitempty"`
	Success  bool   `json:"success,omitempty"`
}

// Active reports whether the die still counts toward the term value
func (d DieRoll) Active() bool {
	return !d.Dropped && !d.Rerolled
}

// TargetOutcome is the result of a target-number check
type TargetOutcome struct {
	Op    string `json:"op"`
	Value int    `json:"value"`
	Pass  bool   `json:"pass"`
}

// Outcome is everything produced by evaluating one AST
type Outcome struct {
	Total     int
	Rolls     []DieRoll
	Successes *int
	Target    *TargetOutcome
	Hope      *int
	Fear      *int
	Tag       string
	Variables map[string]int
}

func (o *Outcome) addSuccesses(n int) {
	if o.Successes == nil {
		o.Successes = new(int)
	}
	*o.Successes += n
}

// EvaluatorConfig holds evaluator configuration
type EvaluatorConfig struct {
	Source RandomSource
	// Variables maps uppercase names to values. It is only read.
	Variables map[string]int
	// ExplodeLimit caps explosions per dice term. Zero means DefaultExplodeLimit.
	ExplodeLimit int
	// MaxDice caps the dice drawn up front by one term. Zero means DefaultMaxDice.
	MaxDice int
}

// Evaluator walks an AST, performing the random draws
type Evaluator struct {
	config EvaluatorConfig
	used   map[string]int
	logger *zap.Logger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(config EvaluatorConfig, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ExplodeLimit <= 0 {
		config.ExplodeLimit = DefaultExplodeLimit
	}
	if config.MaxDice <= 0 {
		config.MaxDice = DefaultMaxDice
	}
	logger.Debug(LogMsgEvaluatorCreated, zap.Int(LogFieldLimit, config.ExplodeLimit))
	return &Evaluator{
		config: config,
		logger: logger,
	}
}

// Evaluate evaluates the AST and returns the outcome
func (e *Evaluator) Evaluate(node Node) (*Outcome, error) {
	if node == nil {
		return nil, NewEvalError(ErrorKindParse, ErrMsgNilNode, "")
	}
	e.logger.Debug(LogMsgEvaluatorStart, zap.String(LogFieldExpression, node.String()))

	e.used = make(map[string]int)
	out := &Outcome{Variables: e.used}

	total, err := e.eval(node, out)
	if err != nil {
		return nil, err
	}
	out.Total = total

	e.logger.Debug(LogMsgEvaluatorEnd,
		zap.Int(LogFieldTotal, total),
		zap.Int(LogFieldRolls, len(out.Rolls)),
	)
	return out, nil
}

func (e *Evaluator) eval(node Node, out *Outcome) (int, error) {
	switch n := node.(type) {
	case *NumberNode:
		return n.Value, nil

	case *VariableNode:
		return e.lookup(n.Name)

	case *DiceNode:
		return e.evaluateDice(n, out)

	case *SpecialNode:
		return e.evaluateSpecial(n, out)

	case *BinaryNode:
		return e.evaluateBinary(n, out)

	case *TargetNode:
		return e.evaluateTarget(n, out)

	default:
		return 0, NewEvalError(ErrorKindParse, ErrMsgUnknownNodeType, fmt.Sprintf("%T", node))
	}
}

// evaluateBinary combines both sides; division floors toward negative infinity
func (e *Evaluator) evaluateBinary(n *BinaryNode, out *Outcome) (int, error) {
	left, err := e.eval(n.Left, out)
	if err != nil {
		return 0, err
	}
	right, err := e.eval(n.Right, out)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case string(CharPlus):
		return left + right, nil
	case string(CharMinus):
		return left - right, nil
	case string(CharStar):
		return left * right, nil
	case string(CharSlash):
		if right == 0 {
			return 0, NewEvalError(ErrorKindArithmetic, ErrMsgDivisionByZero, n.String())
		}
		return FloorDiv(left, right), nil
	default:
		return 0, NewEvalError(ErrorKindParse, ErrMsgUnknownOperator, n.Op)
	}
}

// evaluateTarget compares the already computed total against the threshold
func (e *Evaluator) evaluateTarget(n *TargetNode, out *Outcome) (int, error) {
	total, err := e.eval(n.Expr, out)
	if err != nil {
		return 0, err
	}
	threshold, err := e.resolve(n.Threshold)
	if err != nil {
		return 0, err
	}
	out.Target = &TargetOutcome{
		Op:    string(n.Op),
		Value: threshold,
		Pass:  n.Op.Apply(total, threshold),
	}
	return total, nil
}

// resolve turns an operand into an integer, recording consulted variables
func (e *Evaluator) resolve(o Operand) (int, error) {
	if o.Var == nil {
		return o.Value, nil
	}
	return e.lookup(o.Var.Name)
}

func (e *Evaluator) lookup(name string) (int, error) {
	value, ok := e.config.Variables[name]
	if !ok {
		err := NewUndefinedVariableError(name)
		err.Hint = suggestVariables(name, e.config.Variables)
		return 0, err
	}
	e.used[name] = value
	return value, nil
}

// draw requests one uniform value in [0, n) from the source
func (e *Evaluator) draw(n int) (int, error) {
	if e.config.Source == nil {
		return 0, NewEvalError(ErrorKindRandom, ErrMsgNoRandomSource, "")
	}
	v, err := e.config.Source.IntN(n)
	if err != nil {
		return 0, NewRandomError(err)
	}
	return v, nil
}

// die describes the kind of die a term rolls
type die struct {
	sides int
	fate  bool
	group string
}

func numericDie(sides int, group string) die {
	return die{sides: sides, group: group}
}

func fateDie() die {
	return die{sides: FateSides, fate: true, group: GroupFate}
}

func (d die) minFace() int {
	if d.fate {
		return FateMinFace
	}
	return 1
}

func (d die) maxFace() int {
	if d.fate {
		return FateMaxFace
	}
	return d.sides
}

// roll draws one die. A Fate die is a single three-way draw mapped to -1, 0, +1.
func (e *Evaluator) roll(d die) (DieRoll, error) {
	if d.fate {
		v, err := e.draw(FateFaces)
		if err != nil {
			return DieRoll{}, err
		}
		return DieRoll{Sides: FateSides, Fate: true, Group: d.group, Result: v + FateMinFace}, nil
	}
	v, err := e.draw(d.sides)
	if err != nil {
		return DieRoll{}, err
	}
	return DieRoll{Sides: d.sides, Group: d.group, Result: v + 1}, nil
}

// FloorDiv divides rounding toward negative infinity
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func hazard(message string, value int) error {
	return NewEvalError(ErrorKindArithmetic, message, strconv.Itoa(value))
}

// EvaluateExpression is a convenience function that parses and evaluates notation
func EvaluateExpression(input string, config EvaluatorConfig) (*Outcome, error) {
	node, err := ParseExpression(input)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(config, nil).Evaluate(node)
}
