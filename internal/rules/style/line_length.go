// Package style contains rules enforcing consistent Makefile style.
package style

import (
	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// DefaultMaxLineLength is the line-length limit when config does not set
// the "max" option.
const DefaultMaxLineLength = 120

// LineLength reports raw source lines longer than the configured maximum.
type LineLength struct{}

func (*LineLength) ID() string                     { return "style/line-length" }
func (*LineLength) Category() diag.Category        { return diag.CategoryStyle }
func (*LineLength) DefaultSeverity() diag.Severity { return diag.Warning }

func (*LineLength) Description() string {
	return "Lines should not exceed the configured maximum length " +
		"(option \"max\", default 120)."
}

func (*LineLength) Check(doc *parser.Document, opts lint.Options) []diag.Diagnostic {
	max := opts.Int("max", DefaultMaxLineLength)
	if max <= 0 {
		max = DefaultMaxLineLength
	}

	var out []diag.Diagnostic
	offset := 0
	for i, line := range doc.SourceLines() {
		if len(line) > max {
			span := diag.Span{
				Start: diag.Position{Line: i + 1, Column: max + 1, Offset: offset + max},
				End:   diag.Position{Line: i + 1, Column: len(line) + 1, Offset: offset + len(line)},
			}
			out = append(out, diag.Newf(
				"style/line-length",
				diag.CategoryStyle,
				diag.Warning,
				span,
				"line length %d exceeds maximum of %d", len(line), max,
			))
		}
		offset += len(line) + 1
	}
	return out
}
