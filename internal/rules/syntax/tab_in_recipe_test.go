package syntax

import (
	"testing"

	"github.com/donaldgifford/makelint/internal/parser"
)

func TestTabInRecipe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"tab indent is fine", "build:\n\tgo build\n", 0},
		{"space indent", "clean:\n    rm -rf build/\n", 1},
		{"mixed indent", "clean:\n  \trm -rf build/\n", 1},
		{"two bad lines", "clean:\n  one\n  two\n", 2},
		{"bad line among good", "clean:\n\tone\n  two\n\tthree\n", 1},
		{"no recipe", "clean: build\n", 0},
	}

	rule := &TabInRecipe{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parser.Parse("Makefile", tt.input)
			got := rule.Check(doc, nil)
			if len(got) != tt.want {
				t.Fatalf("expected %d diagnostics, got %d", tt.want, len(got))
			}
		})
	}
}

func TestTabInRecipeFix(t *testing.T) {
	src := "clean:\n    rm -rf build/\n"
	doc := parser.Parse("Makefile", src)

	got := (&TabInRecipe{}).Check(doc, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}

	d := got[0]
	if d.Span.Start.Line != 2 || d.Span.Start.Column != 1 {
		t.Errorf("span starts at %d:%d, want 2:1", d.Span.Start.Line, d.Span.Start.Column)
	}
	if d.Fix == nil {
		t.Fatal("expected a fix")
	}
	if !d.Fix.Safe {
		t.Error("the tab fix is always safe")
	}
	if len(d.Fix.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(d.Fix.Edits))
	}
	e := d.Fix.Edits[0]
	if got := src[e.Span.Start.Offset:e.Span.End.Offset]; got != "    " {
		t.Errorf("edit targets %q, want the four spaces", got)
	}
	if e.Replacement != "\t" {
		t.Errorf("replacement = %q, want a tab", e.Replacement)
	}
}
