package style

import (
	"testing"

	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

func TestVariableShadowing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  lint.Options
		want  int
	}{
		{"distinct names", "CC := gcc\nLD := ld\n", nil, 0},
		{"case shadow", "foo = bar\nFOO = baz\n", nil, 1},
		{"mixed case shadow", "Foo = bar\nfoo = baz\n", nil, 1},
		{"plain reassignment", "CC := gcc\nCC := clang\n", nil, 0},
		{"append is not shadowing", "CFLAGS := -O2\nCFLAGS += -g\n", nil, 0},
		{"three variants", "x = 1\nX = 2\nxX = 3\n", nil, 1},
		{"exact policy disables", "foo = bar\nFOO = baz\n", lint.Options{"policy": "exact"}, 0},
	}

	rule := &VariableShadowing{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parser.Parse("Makefile", tt.input)
			got := rule.Check(doc, tt.opts)
			if len(got) != tt.want {
				t.Fatalf("expected %d diagnostics, got %d", tt.want, len(got))
			}
		})
	}
}

func TestVariableShadowingAnchorsAtLaterAssignment(t *testing.T) {
	src := "foo = bar\n\nFOO = baz\n"
	doc := parser.Parse("Makefile", src)

	got := (&VariableShadowing{}).Check(doc, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}
	d := got[0]
	if d.Span.Start.Line != 3 {
		t.Errorf("diagnostic anchors at line %d, want the later assignment on line 3", d.Span.Start.Line)
	}
	if d.Related == nil {
		t.Fatal("expected a related span pointing at the first assignment")
	}
	if d.Related.Start.Line != 1 {
		t.Errorf("related span at line %d, want 1", d.Related.Start.Line)
	}
	if got := src[d.Related.Start.Offset:d.Related.End.Offset]; got != "foo" {
		t.Errorf("related span slices %q, want %q", got, "foo")
	}
}
