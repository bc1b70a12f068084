// Package fix applies the textual corrections carried by diagnostics.
// Only fixes marked safe are applied; suggested fixes are surfaced by the
// output layer but never touch the file.
package fix

import (
	"sort"
	"strings"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/parser"
)

// Skipped records a fix that was not applied and why.
type Skipped struct {
	Diagnostic diag.Diagnostic
	Reason     string
}

// Result is the outcome of one fix pass over a document.
type Result struct {
	// Text is the corrected source; equal to the input when Applied
	// is zero.
	Text string

	// Applied counts the fixes whose edits were all applied.
	Applied int

	// Skipped lists fixable diagnostics that were not applied, with
	// reasons (unsafe suggestion, conflict, invalid span).
	Skipped []Skipped
}

// Changed reports whether the pass modified the text.
func (r Result) Changed() bool { return r.Applied > 0 }

type candidate struct {
	d     diag.Diagnostic
	order int
}

// Apply selects a conflict-free subset of the safe fixes among diags and
// applies it to the document's original text. Each fix is atomic: if any
// of its edits overlaps an already-accepted edit, the whole fix is
// skipped and reported, never half-applied. Edits are applied
// back-to-front so earlier offsets stay valid as lengths change.
func Apply(doc *parser.Document, diags []diag.Diagnostic) Result {
	res := Result{Text: doc.Source}

	var cands []candidate
	for i, d := range diags {
		if d.Fix == nil {
			continue
		}
		switch {
		case !d.Fix.Safe:
			res.Skipped = append(res.Skipped, Skipped{d, "fix is a suggestion, not applied automatically"})
		case !d.Fix.Valid(len(doc.Source)):
			res.Skipped = append(res.Skipped, Skipped{d, "fix has invalid or overlapping edit spans"})
		default:
			cands = append(cands, candidate{d: d, order: i})
		}
	}
	if len(cands) == 0 {
		return res
	}

	// End-of-file first. Ties break on the input order so the result
	// is deterministic regardless of how diagnostics were produced.
	sort.SliceStable(cands, func(i, j int) bool {
		si := cands[i].d.Fix.Edits[0].Span.Start.Offset
		sj := cands[j].d.Fix.Edits[0].Span.Start.Offset
		if si != sj {
			return si > sj
		}
		return cands[i].order < cands[j].order
	})

	var accepted []diag.Edit
	for _, c := range cands {
		if conflicts(c.d.Fix.Edits, accepted) {
			res.Skipped = append(res.Skipped, Skipped{c.d, "fix skipped: conflicts with another fix"})
			continue
		}
		accepted = append(accepted, c.d.Fix.Edits...)
		res.Applied++
	}

	res.Text = applyEdits(doc.Source, accepted)
	return res
}

func conflicts(edits []diag.Edit, accepted []diag.Edit) bool {
	for _, e := range edits {
		for _, a := range accepted {
			if e.Span.Overlaps(a.Span) {
				return true
			}
			// Two pure insertions at the same offset also conflict;
			// their order would be arbitrary.
			if e.Span.Len() == 0 && a.Span.Len() == 0 && e.Span.Start.Offset == a.Span.Start.Offset {
				return true
			}
		}
	}
	return false
}

// applyEdits rewrites text with non-overlapping edits, highest offset
// first.
func applyEdits(text string, edits []diag.Edit) string {
	sorted := make([]diag.Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start.Offset > sorted[j].Span.Start.Offset
	})

	var b strings.Builder
	out := text
	for _, e := range sorted {
		b.Reset()
		b.Grow(len(out) - e.Span.Len() + len(e.Replacement))
		b.WriteString(out[:e.Span.Start.Offset])
		b.WriteString(e.Replacement)
		b.WriteString(out[e.Span.End.Offset:])
		out = b.String()
	}
	return out
}
