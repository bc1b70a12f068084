package style

import (
	"strings"
	"unicode"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// VariableNaming checks assigned variable names against a case
// convention: "upper" (UPPER_CASE, the default) or "lower" (lower_case).
type VariableNaming struct{}

func (*VariableNaming) ID() string                     { return "style/variable-naming" }
func (*VariableNaming) Category() diag.Category        { return diag.CategoryStyle }
func (*VariableNaming) DefaultSeverity() diag.Severity { return diag.Warning }

func (*VariableNaming) Description() string {
	return "Variables should follow a consistent case convention " +
		"(option \"style\": upper or lower, default upper)."
}

func (*VariableNaming) Check(doc *parser.Document, opts lint.Options) []diag.Diagnostic {
	style := opts.String("style", "upper")

	var out []diag.Diagnostic
	for _, a := range doc.Assignments() {
		if strings.Contains(a.Name, "$") {
			continue
		}
		if matchesCase(a.Name, style) {
			continue
		}
		out = append(out, diag.Newf(
			"style/variable-naming",
			diag.CategoryStyle,
			diag.Warning,
			a.NameSpan,
			"variable %q does not follow %s convention", a.Name, caseName(style),
		))
	}
	return out
}

// TargetNaming checks rule target names against a case convention,
// defaulting to lower_case. Special targets (leading dot), patterns, and
// computed names are skipped.
type TargetNaming struct{}

func (*TargetNaming) ID() string                     { return "style/target-naming" }
func (*TargetNaming) Category() diag.Category        { return diag.CategoryStyle }
func (*TargetNaming) DefaultSeverity() diag.Severity { return diag.Warning }

func (*TargetNaming) Description() string {
	return "Targets should follow a consistent case convention " +
		"(option \"style\": upper or lower, default lower)."
}

func (*TargetNaming) Check(doc *parser.Document, opts lint.Options) []diag.Diagnostic {
	style := opts.String("style", "lower")

	var out []diag.Diagnostic
	for _, rule := range doc.Rules() {
		for _, target := range rule.Targets {
			if strings.HasPrefix(target, ".") || strings.ContainsAny(target, "%$") {
				continue
			}
			if matchesCase(target, style) {
				continue
			}
			out = append(out, diag.Newf(
				"style/target-naming",
				diag.CategoryStyle,
				diag.Warning,
				rule.HeaderSpan,
				"target %q does not follow %s convention", target, caseName(style),
			))
		}
	}
	return out
}

// matchesCase ignores non-alphabetic characters, so UPPER_CASE-2 and
// lower-case.o both pass their respective conventions.
func matchesCase(name, style string) bool {
	for _, c := range name {
		if !unicode.IsLetter(c) {
			continue
		}
		if style == "lower" && unicode.IsUpper(c) {
			return false
		}
		if style != "lower" && unicode.IsLower(c) {
			return false
		}
	}
	return true
}

func caseName(style string) string {
	if style == "lower" {
		return "lower_case"
	}
	return "UPPER_CASE"
}
