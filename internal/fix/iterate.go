package fix

import (
	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/parser"
)

// MaxPasses caps the fix iteration: some fixes only become visible after
// an earlier fix lands (fixing indentation can expose a line-length
// violation), so the pipeline re-runs until a pass changes nothing or
// the cap is reached. Well-formed input converges in one or two passes.
const MaxPasses = 3

// Pipeline produces a document and its diagnostics for one lint pass.
// The runner supplies parse+rules; the fix engine stays decoupled from
// the rule engine.
type Pipeline func(path, text string) (*parser.Document, []diag.Diagnostic)

// IterateResult is the outcome of an Iterate call.
type IterateResult struct {
	// Text is the final corrected source.
	Text string

	// Applied is the total number of fixes applied across passes.
	Applied int

	// Passes is how many pipeline runs were needed.
	Passes int

	// Diagnostics holds the final pass's diagnostics: what remains
	// after all safe fixes were applied.
	Diagnostics []diag.Diagnostic

	// Skipped aggregates skipped fixes from every pass.
	Skipped []Skipped
}

// Iterate runs (parse -> rules -> fix) until a pass applies nothing, up
// to MaxPasses. Every pass parses fresh text into a new Document; the
// previous Document is discarded, never mutated.
func Iterate(path, text string, run Pipeline) IterateResult {
	res := IterateResult{Text: text}
	for res.Passes < MaxPasses {
		doc, diags := run(path, res.Text)
		res.Passes++
		res.Diagnostics = diags

		pass := Apply(doc, diags)
		res.Skipped = append(res.Skipped, pass.Skipped...)
		if !pass.Changed() {
			return res
		}
		res.Applied += pass.Applied
		res.Text = pass.Text
	}

	// Cap reached with changes still flowing: report the diagnostics
	// of the text as it now stands.
	_, diags := run(path, res.Text)
	res.Diagnostics = diags
	return res
}
