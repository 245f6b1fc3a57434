package main

import (
	"fmt"
	"strings"

	"github.com/itsatony/go-dice"
	"go.uber.org/zap"
)

// ValidateCmd parses an expression without rolling it
type ValidateCmd struct {
	Expression []string `arg:"" optional:"" help:"Dice expression, or - to read one expression per line from stdin"`
	Strict     bool     `name:"strict" help:"Reject characters outside the notation instead of skipping them"`
}

func (c *ValidateCmd) Run(app *appContext) error {
	expressions, err := readExpressions(c.Expression, app.stdin)
	if err != nil {
		return err
	}

	if c.Strict {
		app.config.StrictLexing = true
	}
	engine, err := app.engine("")
	if err != nil {
		return err
	}

	invalid := false
	for _, expression := range expressions {
		parsed, err := engine.Parse(expression)
		if err != nil {
			invalid = true
			app.logger.Debug(dice.LogMsgRollFailed,
				zap.String(dice.LogFieldExpression, expression),
				zap.String(dice.LogFieldKind, string(dice.KindOf(err))),
				zap.String(dice.LogFieldError, err.Error()))
			fmt.Fprintf(app.stderr, FmtErrorWithCause, ErrMsgInvalidExpr, err)
			continue
		}
		if _, err := fmt.Fprintf(app.stdout, FmtValidLine, parsed.String()); err != nil {
			return writeErr(err)
		}
		if _, err := fmt.Fprintf(app.stdout, FmtVariablesLine, joinVariables(dice.ExtractVariables(expression))); err != nil {
			return writeErr(err)
		}
	}

	if invalid {
		return newCLIError(ExitCodeRollError, "", nil)
	}
	return nil
}

func joinVariables(names []string) string {
	if len(names) == 0 {
		return NoVariables
	}
	return strings.Join(names, ListSeparator)
}
