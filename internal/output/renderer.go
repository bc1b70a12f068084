// Package output renders diagnostic sequences for people and machines.
// Renderers consume diagnostics only; they never need the Document.
package output

import (
	"fmt"
	"io"

	"github.com/donaldgifford/makelint/internal/diag"
)

// FileResult pairs a file path with its ordered diagnostics.
type FileResult struct {
	Path        string
	Diagnostics []diag.Diagnostic
}

// Renderer writes a set of per-file results to w.
type Renderer interface {
	Render(w io.Writer, results []FileResult) error
}

// New returns the renderer for a --format value.
func New(format string) (Renderer, error) {
	switch format {
	case "text":
		return &Text{}, nil
	case "json":
		return &JSON{}, nil
	case "github":
		return &GitHub{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want text, json, or github)", format)
}
