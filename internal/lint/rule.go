// Package lint defines the Rule interface and the engine that executes
// rules against a parsed Document.
package lint

import (
	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/parser"
)

// Rule is one diagnostic check. Implementations must be stateless and
// pure: identical (document, options) input produces identical output, so
// the engine is free to run rules concurrently against the same immutable
// Document.
type Rule interface {
	// ID returns the stable rule identifier, "category/kebab-name".
	// Ids are a public contract used by config files, suppression
	// lists, and `makelint explain`.
	ID() string

	// Category returns the rule's category, the first id segment.
	Category() diag.Category

	// DefaultSeverity is the severity used unless config overrides it.
	DefaultSeverity() diag.Severity

	// Description explains what the rule checks, for `explain`.
	Description() string

	// Check inspects the document and returns its diagnostics. A rule
	// that cannot reach a verdict for some entry skips that entry; it
	// never fails the run.
	Check(doc *parser.Document, opts Options) []diag.Diagnostic
}

// Options is the free-form per-rule options bag from configuration.
type Options map[string]any

// Int reads an integer option, accepting the int64 values TOML decoding
// produces.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// String reads a string option.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Bool reads a boolean option.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}
