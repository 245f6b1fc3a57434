package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// painter highlights roll output when stdout is a terminal
type painter struct {
	enabled  bool
	total    *color.Color
	pass     *color.Color
	fail     *color.Color
	critical *color.Color
	hope     *color.Color
	fear     *color.Color
	replacer *strings.Replacer
}

func newPainter(stdout io.Writer, noColor bool) *painter {
	p := &painter{
		total:    color.New(color.Bold),
		pass:     color.New(color.FgGreen, color.Bold),
		fail:     color.New(color.FgRed, color.Bold),
		critical: color.New(color.FgYellow, color.Bold),
		hope:     color.New(color.FgCyan),
		fear:     color.New(color.FgMagenta),
	}
	p.setEnabled(!noColor && isTerminal(stdout))
	return p
}

func (p *painter) setEnabled(enabled bool) {
	p.enabled = enabled
	for _, c := range []*color.Color{p.total, p.pass, p.fail, p.critical, p.hope, p.fear} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	p.replacer = strings.NewReplacer(
		BreakdownPass, p.pass.Sprint(BreakdownPass),
		BreakdownFail, p.fail.Sprint(BreakdownFail),
		BreakdownCritical, p.critical.Sprint(BreakdownCritical),
		BreakdownHope, p.hope.Sprint(BreakdownHope),
		BreakdownFear, p.fear.Sprint(BreakdownFear),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorizeBreakdown highlights verdicts and the final total of a breakdown
func (p *painter) colorizeBreakdown(breakdown string) string {
	if !p.enabled {
		return breakdown
	}
	out := " " + p.replacer.Replace(breakdown)
	i := strings.LastIndex(out, " = ")
	if i < 0 {
		return out[1:]
	}
	head, tail := out[1:i+3], out[i+3:]
	end := strings.IndexByte(tail, ' ')
	if end < 0 {
		end = len(tail)
	}
	return head + p.total.Sprint(tail[:end]) + tail[end:]
}

// writeJSON prints v as indented JSON followed by a newline
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return newCLIError(ExitCodeError, ErrMsgJSONMarshal, err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return newCLIError(ExitCodeError, ErrMsgWriteOutput, err)
	}
	return nil
}
