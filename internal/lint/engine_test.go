package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/parser"
)

// stubRule emits canned diagnostics, or panics, for engine tests.
type stubRule struct {
	id       string
	category diag.Category
	severity diag.Severity
	diags    []diag.Diagnostic
	panics   bool
}

func (r *stubRule) ID() string                     { return r.id }
func (r *stubRule) Category() diag.Category        { return r.category }
func (r *stubRule) DefaultSeverity() diag.Severity { return r.severity }
func (r *stubRule) Description() string            { return "stub rule for engine tests" }

func (r *stubRule) Check(_ *parser.Document, _ Options) []diag.Diagnostic {
	if r.panics {
		panic("boom")
	}
	return r.diags
}

func at(line, col, offset int) diag.Span {
	p := diag.Position{Line: line, Column: col, Offset: offset}
	return diag.Span{Start: p, End: p}
}

func stub(id string, cat diag.Category, sev diag.Severity, spans ...diag.Span) *stubRule {
	r := &stubRule{id: id, category: cat, severity: sev}
	for _, s := range spans {
		r.diags = append(r.diags, diag.New(id, cat, sev, s, "stub finding"))
	}
	return r
}

func TestRunSortsAcrossRules(t *testing.T) {
	eng := NewEngine([]Rule{
		stub("style/bbb", diag.CategoryStyle, diag.Warning, at(5, 1, 40), at(1, 9, 8)),
		stub("style/aaa", diag.CategoryStyle, diag.Warning, at(1, 9, 8), at(2, 1, 12)),
	})
	doc := parser.Parse("Makefile", "VAR := 1\nbuild:\n\tgo build\n")

	got := eng.Run(doc, Default())
	require.Len(t, got, 4)

	type key struct {
		line, col int
		id        string
	}
	want := []key{
		{1, 9, "style/aaa"},
		{1, 9, "style/bbb"},
		{2, 1, "style/aaa"},
		{5, 1, "style/bbb"},
	}
	for i, w := range want {
		assert.Equal(t, w.line, got[i].Span.Start.Line, "index %d", i)
		assert.Equal(t, w.col, got[i].Span.Start.Column, "index %d", i)
		assert.Equal(t, w.id, got[i].RuleID, "index %d", i)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	rules := []Rule{
		stub("style/aaa", diag.CategoryStyle, diag.Warning, at(1, 1, 0), at(3, 1, 20)),
		stub("style/bbb", diag.CategoryStyle, diag.Warning, at(2, 1, 10)),
		stub("practice/ccc", diag.CategoryPractice, diag.Info, at(1, 1, 0)),
	}
	doc := parser.Parse("Makefile", "VAR := 1\n")
	eng := NewEngine(rules)

	first := eng.Run(doc, Default())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, eng.Run(doc, Default()))
	}
}

func TestRunMergesParserDiagnostics(t *testing.T) {
	eng := NewEngine([]Rule{stub("style/aaa", diag.CategoryStyle, diag.Warning, at(3, 1, 20))})
	doc := parser.Parse("Makefile", "VAR := 1\n%%$!!\nCC := gcc\n")
	require.NotEmpty(t, doc.Diagnostics)

	got := eng.Run(doc, Default())
	require.Len(t, got, 2)
	assert.Equal(t, "syntax/malformed-line", got[0].RuleID)
	assert.Equal(t, "style/aaa", got[1].RuleID)
}

func TestRunPanickingRule(t *testing.T) {
	eng := NewEngine([]Rule{
		&stubRule{id: "style/broken", category: diag.CategoryStyle, severity: diag.Warning, panics: true},
		stub("style/fine", diag.CategoryStyle, diag.Warning, at(1, 1, 0)),
	})
	doc := parser.Parse("Makefile", "VAR := 1\n")

	got := eng.Run(doc, Default())
	require.Len(t, got, 2)

	var broken *diag.Diagnostic
	for i := range got {
		if got[i].RuleID == "style/broken" {
			broken = &got[i]
		}
	}
	require.NotNil(t, broken, "panic should surface as a diagnostic")
	assert.Equal(t, diag.Info, broken.Severity)
	assert.Contains(t, broken.Message, "rule failed")
}

func TestRunEnableDisable(t *testing.T) {
	rules := []Rule{
		stub("style/aaa", diag.CategoryStyle, diag.Warning, at(1, 1, 0)),
		stub("style/bbb", diag.CategoryStyle, diag.Warning, at(2, 1, 10)),
		stub("practice/ccc", diag.CategoryPractice, diag.Warning, at(3, 1, 20)),
	}
	doc := parser.Parse("Makefile", "VAR := 1\n")
	eng := NewEngine(rules)

	tests := []struct {
		name    string
		enable  []string
		disable []string
		wantIDs []string
	}{
		{"default all", nil, nil, []string{"style/aaa", "style/bbb", "practice/ccc"}},
		{"enable by id", []string{"style/aaa"}, nil, []string{"style/aaa"}},
		{"enable by category", []string{"style"}, nil, []string{"style/aaa", "style/bbb"}},
		{"enable by glob", []string{"style/*"}, nil, []string{"style/aaa", "style/bbb"}},
		{"disable by id", nil, []string{"style/bbb"}, []string{"style/aaa", "practice/ccc"}},
		{"disable by category", nil, []string{"style"}, []string{"practice/ccc"}},
		{"enable then disable", []string{"style"}, []string{"style/aaa"}, []string{"style/bbb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Enable = tt.enable
			cfg.Disable = tt.disable

			got := eng.Run(doc, cfg)
			var ids []string
			for _, d := range got {
				ids = append(ids, d.RuleID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestRunSeverityOverride(t *testing.T) {
	eng := NewEngine([]Rule{stub("style/aaa", diag.CategoryStyle, diag.Warning, at(1, 1, 0))})
	doc := parser.Parse("Makefile", "VAR := 1\n")

	cfg := Default()
	cfg.Severity["style/aaa"] = diag.Error

	got := eng.Run(doc, cfg)
	require.Len(t, got, 1)
	assert.Equal(t, diag.Error, got[0].Severity)
}

func TestRunIgnoredPath(t *testing.T) {
	eng := NewEngine([]Rule{stub("style/aaa", diag.CategoryStyle, diag.Warning, at(1, 1, 0))})
	doc := parser.Parse("vendor/Makefile", "VAR := 1\n")

	cfg := Default()
	cfg.IgnorePaths = []string{"vendor/*"}

	assert.Empty(t, eng.Run(doc, cfg))
}

func TestRunIgnoredRules(t *testing.T) {
	eng := NewEngine([]Rule{
		stub("style/aaa", diag.CategoryStyle, diag.Warning, at(1, 1, 0)),
		stub("practice/ccc", diag.CategoryPractice, diag.Warning, at(2, 1, 10)),
	})
	doc := parser.Parse("Makefile", "VAR := 1\n")

	cfg := Default()
	cfg.IgnoreRules = []string{"style/*"}

	got := eng.Run(doc, cfg)
	require.Len(t, got, 1)
	assert.Equal(t, "practice/ccc", got[0].RuleID)
}

func TestRunNilConfig(t *testing.T) {
	eng := NewEngine([]Rule{stub("style/aaa", diag.CategoryStyle, diag.Warning, at(1, 1, 0))})
	doc := parser.Parse("Makefile", "VAR := 1\n")
	assert.Len(t, eng.Run(doc, nil), 1)
}

func TestRunBoundedJobs(t *testing.T) {
	var rules []Rule
	for _, id := range []string{"style/a", "style/b", "style/c", "style/d", "style/e"} {
		rules = append(rules, stub(id, diag.CategoryStyle, diag.Warning, at(1, 1, 0)))
	}
	doc := parser.Parse("Makefile", "VAR := 1\n")
	eng := NewEngine(rules)

	cfg := Default()
	cfg.Jobs = 1
	assert.Len(t, eng.Run(doc, cfg), 5)
}

func TestLookup(t *testing.T) {
	eng := NewEngine([]Rule{stub("style/aaa", diag.CategoryStyle, diag.Warning)})

	r, err := eng.Lookup("style/aaa")
	require.NoError(t, err)
	assert.Equal(t, "style/aaa", r.ID())

	_, err = eng.Lookup("style/nope")
	assert.Error(t, err)
}

func TestOptionsAccessors(t *testing.T) {
	opts := Options{
		"max":    int64(100), // TOML integers decode as int64
		"style":  "lower",
		"strict": true,
		"ratio":  float64(3),
	}

	assert.Equal(t, 100, opts.Int("max", 7))
	assert.Equal(t, 3, opts.Int("ratio", 7))
	assert.Equal(t, 7, opts.Int("missing", 7))
	assert.Equal(t, "lower", opts.String("style", "upper"))
	assert.Equal(t, "upper", opts.String("missing", "upper"))
	assert.Equal(t, true, opts.Bool("strict", false))
	assert.Equal(t, false, opts.Bool("missing", false))
}
