package main

import (
	"bufio"
	"io"
	"strings"
)

// readExpressions joins positional words into one expression, or reads one
// expression per non-blank line from stdin when the only argument is "-".
func readExpressions(args []string, stdin io.Reader) ([]string, error) {
	if len(args) == 1 && args[0] == InputSourceStdin {
		var expressions []string
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				expressions = append(expressions, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, newCLIError(ExitCodeInputError, ErrMsgReadStdinFailed, err)
		}
		if len(expressions) == 0 {
			return nil, newCLIError(ExitCodeUsageError, ErrMsgMissingExpr, nil)
		}
		return expressions, nil
	}

	expression := strings.TrimSpace(strings.Join(args, ExpressionSeparator))
	if expression == "" {
		return nil, newCLIError(ExitCodeUsageError, ErrMsgMissingExpr, nil)
	}
	return []string{expression}, nil
}
