package style

import (
	"testing"

	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

func TestVariableNaming(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  lint.Options
		want  int
	}{
		{"upper passes default", "GO_VERSION := 1.24\n", nil, 0},
		{"lower fails default", "go_version := 1.24\n", nil, 1},
		{"mixed fails default", "GoVersion := 1.24\n", nil, 1},
		{"digits ignored", "CFLAGS_2 := -O2\n", nil, 0},
		{"lower style", "go_version := 1.24\n", lint.Options{"style": "lower"}, 0},
		{"upper fails lower style", "GO_VERSION := 1.24\n", lint.Options{"style": "lower"}, 1},
		{"computed name skipped", "$(prefix)_dir := x\n", nil, 0},
	}

	rule := &VariableNaming{}
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

func TestTargetNaming(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  lint.Options
		want  int
	}{
		{"lower passes default", "build-all:\n\tgo build\n", nil, 0},
		{"upper fails default", "BUILD:\n\tgo build\n", nil, 1},
		{"object suffix ok", "main.o: main.c\n\tcc -c main.c\n", nil, 0},
		{"special target skipped", ".DEFAULT: build\n", nil, 0},
		{"pattern skipped", "%.o: %.c\n\tcc -c $<\n", nil, 0},
		{"computed skipped", "$(BIN): main.go\n\tgo build\n", nil, 0},
		{"upper style", "BUILD:\n\tgo build\n", lint.Options{"style": "upper"}, 0},
		{"multiple targets one bad", "build BAD:\n\ttrue\n", nil, 1},
	}

	rule := &TargetNaming{}
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
