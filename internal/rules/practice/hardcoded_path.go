package practice

import (
	"strings"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// HardcodedPath reports absolute paths baked into variable values and
// recipe commands. Absolute paths tie the Makefile to one machine layout;
// prefix variables or relative paths keep it portable.
type HardcodedPath struct{}

func (*HardcodedPath) ID() string                     { return "practice/hardcoded-path" }
func (*HardcodedPath) Category() diag.Category        { return diag.CategoryPractice }
func (*HardcodedPath) DefaultSeverity() diag.Severity { return diag.Warning }

func (*HardcodedPath) Description() string {
	return "Variable values and recipe commands should not hardcode absolute " +
		"paths (/usr/local/..., C:\\...). Use a prefix variable or a relative " +
		"path so the Makefile works outside one machine."
}

func (*HardcodedPath) Check(doc *parser.Document, _ lint.Options) []diag.Diagnostic {
	var out []diag.Diagnostic

	for _, a := range doc.Assignments() {
		if hasAbsolutePath(a.Value) {
			out = append(out, diag.Newf(
				"practice/hardcoded-path",
				diag.CategoryPractice,
				diag.Warning,
				a.LineSpan,
				"variable %q contains a hardcoded absolute path", a.Name,
			))
		}
	}

	for _, rule := range doc.Rules() {
		for _, rl := range rule.Recipe {
			if hasAbsolutePath(rl.Command) {
				out = append(out, diag.New(
					"practice/hardcoded-path",
					diag.CategoryPractice,
					diag.Warning,
					rl.LineSpan,
					"recipe contains a hardcoded absolute path",
				))
			}
		}
	}
	return out
}

// hasAbsolutePath looks for whitespace-separated words that are Unix
// absolute paths or Windows drive paths. // network paths and lone
// slashes in flags (e.g. a/b) do not count.
func hasAbsolutePath(text string) bool {
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, `"'`)
		if len(word) > 1 && word[0] == '/' && word[1] != '/' {
			return true
		}
		if len(word) > 2 && word[1] == ':' && (word[2] == '\\' || word[2] == '/') {
			return true
		}
	}
	return false
}
