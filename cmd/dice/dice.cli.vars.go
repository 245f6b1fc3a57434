package main

import (
	"fmt"
	"strings"

	"github.com/itsatony/go-dice"
)

// VarsCmd lists the variables an expression references and their values
type VarsCmd struct {
	Expression []string `arg:"" optional:"" help:"Dice expression"`
	VariableFlags
	Require bool `name:"require" help:"Fail when a referenced variable has no value"`
}

func (c *VarsCmd) Run(app *appContext) error {
	expressions, err := readExpressions(c.Expression, app.stdin)
	if err != nil {
		return err
	}

	variables, err := c.load()
	if err != nil {
		return newCLIError(ExitCodeInputError, ErrMsgLoadVariables, err)
	}
	table := dice.NormalizeVariables(variables)

	var missing []string
	for _, expression := range expressions {
		names := dice.ExtractVariables(expression)
		if len(names) == 0 {
			if _, err := fmt.Fprintf(app.stdout, FmtVariablesLine, NoVariables); err != nil {
				return writeErr(err)
			}
			continue
		}
		for _, name := range names {
			value, ok := table[name]
			if ok {
				_, err = fmt.Fprintf(app.stdout, FmtVariableValue, name, value)
			} else {
				missing = append(missing, name)
				_, err = fmt.Fprintf(app.stdout, FmtVariableMissing, name)
			}
			if err != nil {
				return writeErr(err)
			}
		}
	}

	if c.Require && len(missing) > 0 {
		return newCLIError(ExitCodeInputError, ErrMsgMissingVariables+": "+strings.Join(missing, ListSeparator), nil)
	}
	return nil
}
