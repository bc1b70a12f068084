// Package syntax contains rules for constructs Make itself rejects or
// misinterprets.
package syntax

import (
	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// TabInRecipe reports recipe lines indented with spaces instead of a tab.
// Make requires the tab; the parser records such lines as recipes anyway
// so the whole file keeps parsing, which is exactly what lets this rule
// see and fix them.
type TabInRecipe struct{}

func (*TabInRecipe) ID() string                     { return "syntax/tab-in-recipe" }
func (*TabInRecipe) Category() diag.Category        { return diag.CategorySyntax }
func (*TabInRecipe) DefaultSeverity() diag.Severity { return diag.Error }

func (*TabInRecipe) Description() string {
	return "Recipe commands must be indented with a tab character. " +
		"Space or mixed indentation is a Make syntax error; the fix replaces " +
		"the leading whitespace run with a single tab."
}

func (*TabInRecipe) Check(doc *parser.Document, _ lint.Options) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, rule := range doc.Rules() {
		for _, rl := range rule.Recipe {
			if rl.Indent == parser.IndentTab || rl.Indent == parser.IndentNone {
				continue
			}
			fix := diag.Replace("replace leading whitespace with a tab", true, rl.IndentSpan, "\t")
			out = append(out, diag.Newf(
				"syntax/tab-in-recipe",
				diag.CategorySyntax,
				diag.Error,
				rl.IndentSpan,
				"recipe must be indented with a tab, not %s indentation", rl.Indent,
			).WithFix(fix))
		}
	}
	return out
}
