// Package practice contains rules about Make usage that is legal but
// error-prone.
package practice

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// commonPhonyTargets are names that conventionally never produce a file.
var commonPhonyTargets = map[string]bool{
	"all":     true,
	"clean":   true,
	"test":    true,
	"check":   true,
	"install": true,
	"build":   true,
	"help":    true,
	"lint":    true,
	"fmt":     true,
	"release": true,
}

// MissingPhony reports targets that look like commands rather than files
// but are not declared .PHONY. Detecting "file-producing" is inherently
// fuzzy; the heuristic is biased toward false negatives: a target is only
// reported when its name has no path or pattern characters and its recipe
// never mentions $@ or the target name. Targets with an empty recipe are
// reported only when the name is a conventional phony (all, clean, ...).
type MissingPhony struct{}

func (*MissingPhony) ID() string                     { return "practice/missing-phony" }
func (*MissingPhony) Category() diag.Category        { return diag.CategoryPractice }
func (*MissingPhony) DefaultSeverity() diag.Severity { return diag.Warning }

func (*MissingPhony) Description() string {
	return "Targets that do not produce a file of the same name should be " +
		"declared .PHONY so they always run, even when a file with that name " +
		"appears. The suggested fix adds the target to .PHONY but is not " +
		"applied automatically."
}

func (*MissingPhony) Check(doc *parser.Document, _ lint.Options) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, rule := range doc.Rules() {
		for _, target := range rule.Targets {
			if !looksPhony(doc, rule, target) {
				continue
			}
			out = append(out, diag.Newf(
				"practice/missing-phony",
				diag.CategoryPractice,
				diag.Warning,
				rule.HeaderSpan,
				"target %q should be declared .PHONY", target,
			).WithFix(suggestPhony(doc, rule, target)))
		}
	}
	return out
}

func looksPhony(doc *parser.Document, rule *parser.RuleEntry, target string) bool {
	if doc.IsPhony(target) || rule.DoubleColon {
		return false
	}
	if strings.HasPrefix(target, ".") || strings.ContainsAny(target, "/%$") || strings.Contains(target, ".") {
		return false // path-like or pattern: plausibly a real file
	}
	if len(rule.Recipe) == 0 {
		return commonPhonyTargets[target]
	}
	for _, rl := range rule.Recipe {
		if strings.Contains(rl.Command, "$@") {
			return false // best guess: the recipe produces the file
		}
		for _, word := range strings.Fields(rl.Command) {
			if word == target || word == "./"+target {
				return false
			}
		}
	}
	return true
}

// suggestPhony builds the non-safe fix: append to an existing .PHONY
// declaration when there is one, otherwise insert a new declaration
// right above the rule.
func suggestPhony(doc *parser.Document, rule *parser.RuleEntry, target string) *diag.Fix {
	desc := fmt.Sprintf("declare %q in .PHONY", target)
	for _, e := range doc.Entries {
		if ph, ok := e.(*parser.PhonyDeclaration); ok {
			return diag.Insert(desc, false, ph.LineSpan.End, " "+target)
		}
	}
	return diag.Insert(desc, false, rule.FullSpan.Start, ".PHONY: "+target+"\n")
}
