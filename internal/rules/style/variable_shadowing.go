package style

import (
	"strings"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// VariableShadowing reports an assignment whose name differs only in
// case from an earlier assignment. Make treats foo and FOO as distinct
// variables, so the pair is almost always a typo. The diagnostic anchors
// at the later occurrence and references the earlier one.
type VariableShadowing struct{}

func (*VariableShadowing) ID() string                     { return "style/variable-shadowing" }
func (*VariableShadowing) Category() diag.Category        { return diag.CategoryStyle }
func (*VariableShadowing) DefaultSeverity() diag.Severity { return diag.Warning }

func (*VariableShadowing) Description() string {
	return "An assignment whose name matches an earlier assignment except for " +
		"case shadows it in the reader's mind while Make keeps both variables. " +
		"Option \"policy\": \"fold\" (case-insensitive compare, default) or " +
		"\"exact\" (disable folding, making the rule a no-op)."
}

func (*VariableShadowing) Check(doc *parser.Document, opts lint.Options) []diag.Diagnostic {
	if opts.String("policy", "fold") == "exact" {
		return nil
	}

	var out []diag.Diagnostic
	seen := make(map[string]*parser.VariableAssignment)
	for _, a := range doc.Assignments() {
		key := strings.ToLower(a.Name)
		earlier, ok := seen[key]
		if !ok {
			seen[key] = a
			continue
		}
		if earlier.Name == a.Name {
			continue // plain reassignment, not shadowing
		}
		out = append(out, diag.Newf(
			"style/variable-shadowing",
			diag.CategoryStyle,
			diag.Warning,
			a.NameSpan,
			"variable %q shadows %q assigned at line %d with different case",
			a.Name, earlier.Name, earlier.NameSpan.Start.Line,
		).WithRelated(earlier.NameSpan))
	}
	return out
}
