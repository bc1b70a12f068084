package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/donaldgifford/makelint/internal/diag"
)

// JSON renders a flat array of diagnostics, each tagged with its file
// path, for CI pipelines and editors.
type JSON struct{}

type jsonRecord struct {
	Path string `json:"path"`
	diag.Diagnostic
}

// Render implements Renderer.
func (j *JSON) Render(w io.Writer, results []FileResult) error {
	records := make([]jsonRecord, 0)
	for _, res := range results {
		for _, d := range res.Diagnostics {
			records = append(records, jsonRecord{Path: res.Path, Diagnostic: d})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// GitHub renders workflow annotation commands, which GitHub Actions
// turns into inline review comments.
type GitHub struct{}

// Render implements Renderer.
func (g *GitHub) Render(w io.Writer, results []FileResult) error {
	for _, res := range results {
		for _, d := range res.Diagnostics {
			level := "notice"
			switch d.Severity {
			case diag.Error:
				level = "error"
			case diag.Warning:
				level = "warning"
			}
			if _, err := fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d::%s [%s]\n",
				level, res.Path, d.Span.Start.Line, d.Span.Start.Column, d.Message, d.RuleID,
			); err != nil {
				return err
			}
		}
	}
	return nil
}
