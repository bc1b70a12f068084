// Package diag defines the diagnostic value types shared by the parser,
// the rule engine, and the fix engine.
package diag

import "fmt"

// Position is a location in the original source text. Line and Column are
// 1-indexed; Offset is the absolute byte offset, used for slicing.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Span is a half-open [Start, End) range over the original source text.
// Spans always refer to the text the Document was parsed from, never to
// post-fix text.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Len returns the byte length covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start.Offset < other.End.Offset && other.Start.Offset < s.End.Offset
}

// Diagnostic is one reported issue. Rule ids are a public contract
// ("category/kebab-name", e.g. "syntax/tab-in-recipe"); renaming one is a
// breaking change.
type Diagnostic struct {
	RuleID   string   `json:"rule_id"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Span     Span     `json:"span"`
	Message  string   `json:"message"`

	// Related points at an earlier location the message refers to, e.g.
	// the first assignment for style/variable-shadowing. Nil otherwise.
	Related *Span `json:"related,omitempty"`

	// Fix is the proposed correction, if any. Only fixes marked Safe are
	// applied automatically.
	Fix *Fix `json:"fix,omitempty"`
}

// New constructs a diagnostic with the given identity and location.
func New(ruleID string, category Category, severity Severity, span Span, message string) Diagnostic {
	return Diagnostic{
		RuleID:   ruleID,
		Category: category,
		Severity: severity,
		Span:     span,
		Message:  message,
	}
}

// Newf is New with a formatted message.
func Newf(ruleID string, category Category, severity Severity, span Span, format string, args ...any) Diagnostic {
	return New(ruleID, category, severity, span, fmt.Sprintf(format, args...))
}

// WithFix returns a copy of the diagnostic carrying the given fix.
func (d Diagnostic) WithFix(f *Fix) Diagnostic {
	d.Fix = f
	return d
}

// WithRelated returns a copy of the diagnostic pointing at an earlier span.
func (d Diagnostic) WithRelated(span Span) Diagnostic {
	d.Related = &span
	return d
}

// Less orders diagnostics by (line, column, rule id). The rule engine sorts
// with this so the final sequence is independent of rule execution order.
func Less(a, b Diagnostic) bool {
	if a.Span.Start.Line != b.Span.Start.Line {
		return a.Span.Start.Line < b.Span.Start.Line
	}
	if a.Span.Start.Column != b.Span.Start.Column {
		return a.Span.Start.Column < b.Span.Start.Column
	}
	return a.RuleID < b.RuleID
}
