package main

import (
	"fmt"
	"slices"

	"github.com/itsatony/go-dice"
)

// HelpNotationCmd prints the notation reference
type HelpNotationCmd struct{}

func (c *HelpNotationCmd) Run(app *appContext) error {
	_, err := fmt.Fprintln(app.stdout, dice.Help())
	return writeErr(err)
}

// ExamplesCmd prints example expressions, optionally for one category
type ExamplesCmd struct {
	Category string `arg:"" optional:"" help:"Only show this category"`
}

func (c *ExamplesCmd) Run(app *appContext) error {
	categories := dice.ExampleCategories()
	if c.Category != "" {
		if !slices.Contains(categories, c.Category) {
			return newCLIError(ExitCodeUsageError, ErrMsgUnknownCategory+": "+c.Category, nil)
		}
		categories = []string{c.Category}
	}

	examples := dice.Examples()
	for i, category := range categories {
		if i > 0 {
			fmt.Fprint(app.stdout, FmtNewline)
		}
		fmt.Fprintf(app.stdout, FmtExampleHeader, category)
		for _, expression := range examples[category] {
			if _, err := fmt.Fprintf(app.stdout, FmtExampleLine, expression); err != nil {
				return writeErr(err)
			}
		}
	}
	return nil
}
