package practice

import (
	"testing"

	"github.com/donaldgifford/makelint/internal/parser"
)

func TestHardcodedPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"relative value", "BUILD_DIR := build/\n", 0},
		{"absolute value", "PREFIX := /usr/local\n", 1},
		{"absolute in word list", "DIRS := build /opt/tool dist\n", 1},
		{"quoted absolute", `INSTALL := "/usr/local/bin"` + "\n", 1},
		{"network path skipped", "URL := //cdn.example.com/lib\n", 0},
		{"windows drive", `OUT := C:\build\out` + "\n", 1},
		{"absolute in recipe", "install:\n\tcp app /usr/local/bin/\n", 1},
		{"relative recipe", "clean:\n\trm -rf build/\n", 0},
		{"variable expansion", "install:\n\tcp app $(PREFIX)/bin/\n", 0},
		{"flag with slash", "build:\n\tgo build -ldflags a/b\n", 0},
	}

	rule := &HardcodedPath{}
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

func TestHardcodedPathSpansWholeLine(t *testing.T) {
	src := "FOO = /usr/local/bin\n"
	doc := parser.Parse("Makefile", src)

	got := (&HardcodedPath{}).Check(doc, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}
	d := got[0]
	if d.Span.Start.Line != 1 || d.Span.Start.Column != 1 {
		t.Errorf("span starts at %d:%d, want 1:1", d.Span.Start.Line, d.Span.Start.Column)
	}
}
