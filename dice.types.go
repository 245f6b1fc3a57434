package dice

import (
	"github.com/itsatony/go-dice/internal"
)

// DieRoll is one die in a result. Dropped and rerolled dice stay listed but
// do not count toward the total.
type DieRoll = internal.DieRoll

// TargetOutcome is the result of a target-number check
type TargetOutcome = internal.TargetOutcome

// Result is the fully resolved outcome of one roll
type Result struct {
	// Expression is the input as given by the caller, before alias expansion.
	Expression string         `json:"expression"`
	Total      int            `json:"total"`
	Breakdown  string         `json:"breakdown"`
	Rolls      []DieRoll      `json:"rolls"`
	Successes  *int           `json:"successes,omitempty"`
	Target     *TargetOutcome `json:"target,omitempty"`
	Hope       *int           `json:"hope,omitempty"`
	Fear       *int           `json:"fear,omitempty"`
	Tag        string         `json:"tag,omitempty"`
	// Variables holds every variable the roll consulted. A failed roll
	// carries the whole normalized table it was given.
	Variables map[string]int `json:"variables,omitempty"`
	// Error is empty on success.
	Error string `json:"error,omitempty"`
}

// IsError reports whether the roll failed
func (r *Result) IsError() bool {
	return r.Error != ""
}

// Passed reports whether the roll carried a target check that passed
func (r *Result) Passed() bool {
	return r.Target != nil && r.Target.Pass
}

// newResult converts an evaluator outcome into a public result
func newResult(expression string, out *internal.Outcome) *Result {
	rolls := out.Rolls
	if rolls == nil {
		rolls = []DieRoll{}
	}
	return &Result{
		Expression: expression,
		Total:      out.Total,
		Breakdown:  internal.FormatBreakdown(out),
		Rolls:      rolls,
		Successes:  out.Successes,
		Target:     out.Target,
		Hope:       out.Hope,
		Fear:       out.Fear,
		Tag:        out.Tag,
		Variables:  out.Variables,
	}
}

// newErrorResult builds the result returned for a failed roll. It echoes the
// caller's variable table so a failed roll still shows what it was given.
func newErrorResult(expression string, variables map[string]int, err error) *Result {
	msg := pipelineMessage(err)
	return &Result{
		Expression: expression,
		Total:      0,
		Breakdown:  ErrorBreakdownPrefix + msg,
		Rolls:      []DieRoll{},
		Variables:  variables,
		Error:      msg,
	}
}
