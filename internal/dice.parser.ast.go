package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType identifies the type of AST node
type NodeType int

// Node type constants
const (
	NodeTypeNumber NodeType = iota
	NodeTypeVariable
	NodeTypeDice
	NodeTypeSpecial
	NodeTypeBinary
	NodeTypeTarget
)

// Node type names for debugging
const (
	NodeTypeNameNumber   = "NUMBER"
	NodeTypeNameVariable = "VARIABLE"
	NodeTypeNameDice     = "DICE"
	NodeTypeNameSpecial  = "SPECIAL"
	NodeTypeNameBinary   = "BINARY"
	NodeTypeNameTarget   = "TARGET"
)

// String returns the string representation of the node type
func (t NodeType) String() string {
	switch t {
	case NodeTypeNumber:
		return NodeTypeNameNumber
	case NodeTypeVariable:
		return NodeTypeNameVariable
	case NodeTypeDice:
		return NodeTypeNameDice
	case NodeTypeSpecial:
		return NodeTypeNameSpecial
	case NodeTypeBinary:
		return NodeTypeNameBinary
	case NodeTypeTarget:
		return NodeTypeNameTarget
	default:
		return NodeTypeNameNumber
	}
}

// Node is the interface for all AST nodes
type Node interface {
	// Type returns the node type
	Type() NodeType
	// String returns a canonical notation for debugging
	String() string
	node()
}

// Comparison is a relational operator used by modifiers and targets
type Comparison string

// Comparison operators
const (
	CompareGte Comparison = ">="
	CompareGt  Comparison = ">"
	CompareEq  Comparison = "="
	CompareLte Comparison = "<="
	CompareLt  Comparison = "<"
)

// ParseComparison validates a comparison token value
func ParseComparison(s string) (Comparison, bool) {
	switch c := Comparison(s); c {
	case CompareGte, CompareGt, CompareEq, CompareLte, CompareLt:
		return c, true
	default:
		return "", false
	}
}

// Apply evaluates value <op> threshold
func (c Comparison) Apply(value, threshold int) bool {
	switch c {
	case CompareGte:
		return value >= threshold
	case CompareGt:
		return value > threshold
	case CompareEq:
		return value == threshold
	case CompareLte:
		return value <= threshold
	case CompareLt:
		return value < threshold
	default:
		return false
	}
}

// Operand is an integer that is either a literal or a variable reference
type Operand struct {
	Value int
	Var   *VariableNode
}

// Literal creates a literal operand
func Literal(v int) Operand {
	return Operand{Value: v}
}

// VarOperand creates a variable operand
func VarOperand(name string) Operand {
	return Operand{Var: NewVariable(name)}
}

// IsVariable reports whether the operand references a variable
func (o Operand) IsVariable() bool {
	return o.Var != nil
}

// String renders the operand in notation form
func (o Operand) String() string {
	if o.Var != nil {
		return o.Var.String()
	}
	return strconv.Itoa(o.Value)
}

// NumberNode is an integer literal
type NumberNode struct {
	Value int
}

func (n *NumberNode) Type() NodeType { return NodeTypeNumber }
func (n *NumberNode) node()          {}
func (n *NumberNode) String() string { return strconv.Itoa(n.Value) }

// VariableNode references a caller-supplied variable; Name is uppercase
type VariableNode struct {
	Name string
}

func (n *VariableNode) Type() NodeType { return NodeTypeVariable }
func (n *VariableNode) node()          {}
func (n *VariableNode) String() string { return string(CharVariable) + n.Name }

// DiceNode is an NdS or NdF term with its modifier tail in source order
type DiceNode struct {
	Count     Operand
	Sides     Operand
	Fate      bool
	Modifiers []Modifier
}

func (n *DiceNode) Type() NodeType { return NodeTypeDice }
func (n *DiceNode) node()          {}

func (n *DiceNode) String() string {
	var sb strings.Builder
	sb.WriteString(n.Count.String())
	if n.Fate {
		sb.WriteString("dF")
	} else {
		sb.WriteString(MarkerDice)
		sb.WriteString(n.Sides.String())
	}
	writeModifiers(&sb, n.Modifiers)
	return sb.String()
}

// SpecialNode is the Hope/Fear duality roll with advantage and disadvantage pools
type SpecialNode struct {
	Advantage    Operand
	Disadvantage Operand
	Modifiers    []Modifier
}

func (n *SpecialNode) Type() NodeType { return NodeTypeSpecial }
func (n *SpecialNode) node()          {}

func (n *SpecialNode) String() string {
	var sb strings.Builder
	sb.WriteString(MarkerSpecial)
	if n.Advantage.IsVariable() || n.Advantage.Value != 0 {
		sb.WriteString(" a")
		sb.WriteString(n.Advantage.String())
	}
	if n.Disadvantage.IsVariable() || n.Disadvantage.Value != 0 {
		sb.WriteString(" d")
		sb.WriteString(n.Disadvantage.String())
	}
	writeModifiers(&sb, n.Modifiers)
	return sb.String()
}

// BinaryNode is an arithmetic operation
type BinaryNode struct {
	Left  Node
	Op    string
	Right Node
}

func (n *BinaryNode) Type() NodeType { return NodeTypeBinary }
func (n *BinaryNode) node()          {}

func (n *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op, n.Right.String())
}

// TargetNode compares the total of Expr against a threshold
type TargetNode struct {
	Expr      Node
	Op        Comparison
	Threshold Operand
}

func (n *TargetNode) Type() NodeType { return NodeTypeTarget }
func (n *TargetNode) node()          {}

func (n *TargetNode) String() string {
	return fmt.Sprintf("%s t%s%s", n.Expr.String(), n.Op, n.Threshold.String())
}

// NewNumber creates a number node
func NewNumber(value int) *NumberNode {
	return &NumberNode{Value: value}
}

// NewVariable creates a variable node, normalizing the name to uppercase
func NewVariable(name string) *VariableNode {
	return &VariableNode{Name: strings.ToUpper(strings.TrimPrefix(name, string(CharVariable)))}
}

// NewBinary creates a binary operation node
func NewBinary(left Node, op string, right Node) *BinaryNode {
	return &BinaryNode{Left: left, Op: op, Right: right}
}

func writeModifiers(sb *strings.Builder, mods []Modifier) {
	for _, m := range mods {
		sb.WriteString(m.String())
	}
}

// Modifier is the tagged union of dice-set modifiers
type Modifier interface {
	String() string
	modifier()
}

// KeepModifier keeps the highest or lowest Count dice
type KeepModifier struct {
	High  bool
	Count Operand
}

func (m *KeepModifier) modifier() {}
func (m *KeepModifier) String() string {
	if m.High {
		return ModKeepHigh + m.Count.String()
	}
	return ModKeepLow + m.Count.String()
}

// DropModifier drops the highest or lowest Count dice
type DropModifier struct {
	High  bool
	Count Operand
}

func (m *DropModifier) modifier() {}
func (m *DropModifier) String() string {
	if m.High {
		return ModDropHigh + m.Count.String()
	}
	return ModDropLow + m.Count.String()
}

// ExplodeModifier adds a die for every die meeting the condition. A nil
// Threshold means the maximum face.
type ExplodeModifier struct {
	Op        Comparison
	Threshold *Operand
}

func (m *ExplodeModifier) modifier() {}
func (m *ExplodeModifier) String() string {
	if m.Threshold == nil {
		return ModExplode
	}
	return ModExplode + string(m.Op) + m.Threshold.String()
}

// RerollModifier replaces dice meeting the condition, once or until they stop matching
type RerollModifier struct {
	Once      bool
	Op        Comparison
	Threshold Operand
}

func (m *RerollModifier) modifier() {}
func (m *RerollModifier) String() string {
	mod := ModRerollContinue
	if m.Once {
		mod = ModReroll
	}
	return mod + string(m.Op) + m.Threshold.String()
}

// SuccessModifier counts dice meeting the condition instead of summing them
type SuccessModifier struct {
	Op        Comparison
	Threshold Operand
}

func (m *SuccessModifier) modifier() {}
func (m *SuccessModifier) String() string {
	return string(m.Op) + m.Threshold.String()
}
