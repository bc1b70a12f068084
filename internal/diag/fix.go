package diag

import "sort"

// Edit replaces one span of the original text. Offsets are byte offsets
// into the text the Document was parsed from.
type Edit struct {
	Span        Span   `json:"span"`
	Replacement string `json:"replacement"`
}

// Fix is an atomic set of edits: the fix engine applies all of them or
// none. Edits must be non-overlapping and sorted by start offset; Normalize
// enforces that after construction.
type Fix struct {
	Description string `json:"description"`

	// Safe marks fixes that are always correct to apply automatically.
	// Unsafe fixes (e.g. adding a target to .PHONY) are surfaced as
	// suggestions only.
	Safe bool `json:"safe"`

	Edits []Edit `json:"edits"`
}

// NewFix builds a fix from one or more edits, sorted by start offset.
func NewFix(description string, safe bool, edits ...Edit) *Fix {
	f := &Fix{Description: description, Safe: safe, Edits: edits}
	f.Normalize()
	return f
}

// Replace builds a single-edit fix that rewrites span with text.
func Replace(description string, safe bool, span Span, text string) *Fix {
	return NewFix(description, safe, Edit{Span: span, Replacement: text})
}

// Insert builds a single-edit fix that inserts text at a position.
func Insert(description string, safe bool, at Position, text string) *Fix {
	return NewFix(description, safe, Edit{Span: Span{Start: at, End: at}, Replacement: text})
}

// Normalize sorts the edits by start offset.
func (f *Fix) Normalize() {
	sort.SliceStable(f.Edits, func(i, j int) bool {
		return f.Edits[i].Span.Start.Offset < f.Edits[j].Span.Start.Offset
	})
}

// Valid reports whether the edits are non-overlapping and lie within a
// text of the given length.
func (f *Fix) Valid(textLen int) bool {
	for i, e := range f.Edits {
		if e.Span.Start.Offset < 0 || e.Span.End.Offset > textLen || e.Span.Start.Offset > e.Span.End.Offset {
			return false
		}
		if i > 0 && f.Edits[i-1].Span.End.Offset > e.Span.Start.Offset {
			return false
		}
	}
	return true
}
