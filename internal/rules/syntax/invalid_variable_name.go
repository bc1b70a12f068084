package syntax

import (
	"strings"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// InvalidVariableName reports assigned variable names carrying characters
// outside Make conventions (letters, digits, underscore, dash, dot).
// Computed names like $(prefix)_DIR are skipped; the linter does not
// expand variables.
type InvalidVariableName struct{}

func (*InvalidVariableName) ID() string                     { return "syntax/invalid-variable-name" }
func (*InvalidVariableName) Category() diag.Category        { return diag.CategorySyntax }
func (*InvalidVariableName) DefaultSeverity() diag.Severity { return diag.Error }

func (*InvalidVariableName) Description() string {
	return "Variable names should contain only letters, digits, underscores, " +
		"dashes, and dots. Other characters usually indicate a typo the Make " +
		"grammar will silently misread."
}

func (*InvalidVariableName) Check(doc *parser.Document, _ lint.Options) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, a := range doc.Assignments() {
		if strings.Contains(a.Name, "$") {
			continue // computed name, no verdict without expansion
		}
		if validName(a.Name) {
			continue
		}
		out = append(out, diag.Newf(
			"syntax/invalid-variable-name",
			diag.CategorySyntax,
			diag.Error,
			a.NameSpan,
			"invalid variable name %q", a.Name,
		))
	}
	return out
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
