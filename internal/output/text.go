package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/donaldgifford/makelint/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgBlue, color.Bold)
)

// Text renders human-readable one-line-per-diagnostic output with a
// trailing summary:
//
//	Makefile:2:1: error: recipe must be indented with a tab [syntax/tab-in-recipe]
type Text struct{}

// Render implements Renderer.
func (t *Text) Render(w io.Writer, results []FileResult) error {
	errors, warnings, infos := 0, 0, 0

	for _, res := range results {
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case diag.Error:
				errors++
			case diag.Warning:
				warnings++
			default:
				infos++
			}

			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
				res.Path,
				d.Span.Start.Line,
				d.Span.Start.Column,
				severityLabel(d.Severity),
				d.Message,
				d.RuleID,
			); err != nil {
				return err
			}

			if d.Fix != nil && !d.Fix.Safe {
				if _, err := fmt.Fprintf(w, "  suggestion: %s\n", d.Fix.Description); err != nil {
					return err
				}
			}
		}
	}

	if errors+warnings+infos > 0 {
		if _, err := fmt.Fprintf(w, "\nFound %d errors, %d warnings, %d info\n", errors, warnings, infos); err != nil {
			return err
		}
	}
	return nil
}

func severityLabel(s diag.Severity) string {
	switch s {
	case diag.Error:
		return errorColor.Sprint("error")
	case diag.Warning:
		return warningColor.Sprint("warning")
	default:
		return infoColor.Sprint("info")
	}
}
