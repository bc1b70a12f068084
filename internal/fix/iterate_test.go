package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
	"github.com/donaldgifford/makelint/internal/rules"
)

// pipeline runs the full parse+rules pass with all registered rules.
func pipeline(path, text string) (*parser.Document, []diag.Diagnostic) {
	doc := parser.Parse(path, text)
	eng := lint.NewEngine(rules.All())
	return doc, eng.Run(doc, lint.Default())
}

func TestIterateFixesIndentation(t *testing.T) {
	src := "clean:\n    rm -rf build/\n\nFOO = /usr/local/bin\n\ntest:\n\tpytest tests/\n"
	res := Iterate("Makefile", src, pipeline)

	assert.Equal(t, "clean:\n\trm -rf build/\n\nFOO = /usr/local/bin\n\ntest:\n\tpytest tests/\n", res.Text)
	assert.Equal(t, 1, res.Applied)

	// Re-linting the fixed text must not report the fixed problem.
	for _, d := range res.Diagnostics {
		assert.NotEqual(t, "syntax/tab-in-recipe", d.RuleID)
	}
}

func TestIterateIsIdempotent(t *testing.T) {
	src := "clean:\n    rm -rf build/\n\ntest:\n  go test ./...\n"

	first := Iterate("Makefile", src, pipeline)
	require.Positive(t, first.Applied)

	second := Iterate("Makefile", first.Text, pipeline)
	assert.Zero(t, second.Applied, "fixed output must need no further fixes")
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, second.Passes)
}

func TestIterateCleanInputSinglePass(t *testing.T) {
	src := ".PHONY: build\nbuild:\n\tgo build ./...\n"
	res := Iterate("Makefile", src, pipeline)

	assert.Equal(t, src, res.Text)
	assert.Zero(t, res.Applied)
	assert.Equal(t, 1, res.Passes)
	assert.Empty(t, res.Diagnostics)
}

func TestIterateConvergesWithinCap(t *testing.T) {
	// Several space-indented recipes across several rules; all tab fixes
	// land in the first pass and the second pass confirms convergence.
	src := "a:\n  one\n  two\nb:\n  three\n"
	res := Iterate("Makefile", src, pipeline)

	assert.LessOrEqual(t, res.Passes, MaxPasses)
	assert.Equal(t, "a:\n\tone\n\ttwo\nb:\n\tthree\n", res.Text)
	assert.Equal(t, 3, res.Applied)
}

func TestIterateKeepsSuggestions(t *testing.T) {
	// missing-phony carries an unsafe fix: it must survive as a skipped
	// suggestion and the text must stay unchanged.
	src := "deploy:\n\tscp app host:\n"
	res := Iterate("Makefile", src, pipeline)

	assert.Equal(t, src, res.Text)
	assert.Zero(t, res.Applied)

	found := false
	for _, sk := range res.Skipped {
		if sk.Diagnostic.RuleID == "practice/missing-phony" {
			found = true
		}
	}
	assert.True(t, found, "unsafe fix should be reported as skipped")
}

func TestIterateDiagnosticsMatchFinalText(t *testing.T) {
	src := "clean:\n    rm -rf build/\n"
	res := Iterate("Makefile", src, pipeline)

	_, want := pipeline("Makefile", res.Text)
	assert.Equal(t, want, res.Diagnostics)
}
