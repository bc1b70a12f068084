package lint

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/parser"
)

// Engine executes a set of rules against documents. The rule list is
// fixed at construction; enabling and disabling happens per run through
// the Config.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over the given rules.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's full rule list.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Run executes the enabled subset of rules against doc and returns the
// merged diagnostics — the parser's recovery diagnostics included —
// sorted by (line, column, rule id). The order is independent of rule
// execution order, and two runs over the same inputs produce identical
// sequences.
//
// Rules run concurrently: each sees the same immutable Document and its
// own read-only options bag. A panicking rule is reported as a single
// Info diagnostic instead of taking down the run.
func (e *Engine) Run(doc *parser.Document, cfg *Config) []diag.Diagnostic {
	if cfg == nil {
		cfg = Default()
	}
	if cfg.PathIgnored(doc.Path) {
		return nil
	}

	enabled := make([]Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if cfg.RuleEnabled(r) {
			enabled = append(enabled, r)
		}
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([][]diag.Diagnostic, len(enabled))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, r := range enabled {
		g.Go(func() error {
			results[i] = checkSafely(r, doc, cfg)
			return nil
		})
	}
	// Rules never return errors; failures surface as diagnostics.
	_ = g.Wait()

	merged := make([]diag.Diagnostic, 0, len(doc.Diagnostics))
	merged = append(merged, doc.Diagnostics...)
	for _, rs := range results {
		merged = append(merged, rs...)
	}

	out := merged[:0]
	for _, d := range merged {
		if !cfg.DiagnosticIgnored(d.RuleID) {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return diag.Less(out[i], out[j]) })
	return out
}

// checkSafely runs one rule, converting a panic into an Info diagnostic
// so a single broken rule cannot suppress everything else.
func checkSafely(r Rule, doc *parser.Document, cfg *Config) (out []diag.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			out = []diag.Diagnostic{diag.Newf(
				r.ID(),
				r.Category(),
				diag.Info,
				diag.Span{},
				"rule failed and was skipped: %v", rec,
			)}
		}
	}()

	out = r.Check(doc, cfg.OptionsFor(r.ID()))
	sev := cfg.SeverityFor(r)
	if sev != r.DefaultSeverity() {
		for i := range out {
			out[i].Severity = sev
		}
	}
	return out
}

// Lookup finds a rule by id in the engine, for `explain`.
func (e *Engine) Lookup(id string) (Rule, error) {
	for _, r := range e.rules {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("unknown rule: %s", id)
}
