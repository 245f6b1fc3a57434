package main

import (
	"context"
	"fmt"

	"github.com/itsatony/go-dice"
	"go.uber.org/zap"
)

// RollCmd rolls one or more expressions
type RollCmd struct {
	Expression []string `arg:"" optional:"" help:"Dice expression, or - to read one expression per line from stdin"`
	VariableFlags
	Seed   string `name:"seed" help:"Seed for a reproducible random source"`
	JSON   bool   `name:"json" help:"Print results as JSON"`
	Actor  string `name:"actor" help:"Actor ID recorded in the audit trail"`
	Room   string `name:"room" help:"Room ID recorded in the audit trail"`
	Repeat int    `name:"repeat" short:"n" default:"1" help:"Roll each expression this many times"`
}

// rollOutput is the JSON shape of one roll
type rollOutput struct {
	*dice.Result
	Audit *dice.AuditRecord `json:"audit,omitempty"`
}

func (c *RollCmd) Run(app *appContext) error {
	if c.Repeat < FlagDefaultRepeat {
		return newCLIError(ExitCodeUsageError, ErrMsgInvalidRepeat, nil)
	}

	expressions, err := readExpressions(c.Expression, app.stdin)
	if err != nil {
		return err
	}

	variables, err := c.load()
	if err != nil {
		return newCLIError(ExitCodeInputError, ErrMsgLoadVariables, err)
	}
	app.logger.Debug(dice.LogMsgVariablesLoaded, zap.Int(dice.LogFieldCount, len(variables)))

	engine, err := app.engine(c.Seed)
	if err != nil {
		return err
	}

	var auditor *dice.MemoryAuditor
	if c.audited() {
		auditor = dice.NewMemoryAuditor(0)
		engine.Hooks().Register(dice.HookAfterRoll, dice.AuditHook(auditor, c.Actor, c.Room))
	}

	ctx := context.Background()
	outputs := make([]rollOutput, 0, len(expressions)*c.Repeat)
	failed := false
	for _, expression := range expressions {
		for range c.Repeat {
			before := auditCount(auditor)
			result := engine.RollContext(ctx, expression, variables)
			out := rollOutput{Result: result}

			if result.IsError() {
				failed = true
			} else if auditor != nil {
				if auditor.Count() == before {
					return newCLIError(ExitCodeError, ErrMsgAuditFailed, nil)
				}
				out.Audit = auditor.Last()
				app.logger.Debug(dice.LogMsgAuditRecordBuilt, zap.String(dice.LogFieldAuditID, out.Audit.ID))
			}

			if !c.JSON {
				if err := c.printText(app, out); err != nil {
					return err
				}
			}
			outputs = append(outputs, out)
		}
	}

	if c.JSON {
		var payload any = outputs
		if len(outputs) == 1 {
			payload = outputs[0]
		}
		if err := writeJSON(app.stdout, payload); err != nil {
			return err
		}
	}

	if failed {
		return newCLIError(ExitCodeRollError, "", nil)
	}
	return nil
}

func (c *RollCmd) audited() bool {
	return c.Actor != "" || c.Room != ""
}

func auditCount(auditor *dice.MemoryAuditor) int {
	if auditor == nil {
		return 0
	}
	return auditor.Count()
}

// printText writes successful rolls to stdout and failed ones to stderr
func (c *RollCmd) printText(app *appContext, out rollOutput) error {
	if out.IsError() {
		_, err := fmt.Fprintf(app.stderr, FmtRollLine, out.Expression, out.Breakdown)
		return writeErr(err)
	}
	if _, err := fmt.Fprintf(app.stdout, FmtRollLine, out.Expression, app.painter.colorizeBreakdown(out.Breakdown)); err != nil {
		return writeErr(err)
	}
	if out.Audit != nil {
		_, err := fmt.Fprintf(app.stdout, FmtAuditLine, out.Audit.ID, out.Audit.Digest)
		return writeErr(err)
	}
	return nil
}

func writeErr(err error) error {
	if err != nil {
		return newCLIError(ExitCodeError, ErrMsgWriteOutput, err)
	}
	return nil
}
