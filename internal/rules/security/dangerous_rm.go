// Package security contains rules for recipe commands that can destroy
// data when a variable expands differently than the author assumed.
package security

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/donaldgifford/makelint/internal/diag"
	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/parser"
)

// DangerousRM reports recursive-force rm invocations whose path argument
// can collapse to the filesystem root: a literal / (or /*), or a bare
// variable expansion followed by a slash, as in rm -rf $(PREFIX)/bin.
// When PREFIX expands empty that command deletes /bin.
//
// Recipe text is parsed as shell with mvdan.cc/sh; ${VAR:?} style guarded
// expansions are not reported. Unparseable commands fall back to a
// substring check. Either way the rule returns a verdict; it never fails
// the run.
type DangerousRM struct{}

func (*DangerousRM) ID() string                     { return "security/dangerous-rm" }
func (*DangerousRM) Category() diag.Category        { return diag.CategorySecurity }
func (*DangerousRM) DefaultSeverity() diag.Severity { return diag.Warning }

func (*DangerousRM) Description() string {
	return "A recipe running rm with both recursive and force flags on / or " +
		"on an unguarded variable expansion (rm -rf $(DIR)/...) deletes far " +
		"too much when the variable is empty. Guard the variable " +
		"(${DIR:?}) or avoid the absolute form."
}

func (*DangerousRM) Check(doc *parser.Document, _ lint.Options) []diag.Diagnostic {
	sh := syntax.NewParser()

	var out []diag.Diagnostic
	for _, rule := range doc.Rules() {
		for _, rl := range rule.Recipe {
			if !dangerousCommand(sh, rl.Command) {
				continue
			}
			out = append(out, diag.New(
				"security/dangerous-rm",
				diag.CategorySecurity,
				diag.Warning,
				rl.LineSpan,
				"rm -rf on a root path or unguarded variable expansion",
			))
		}
	}
	return out
}

func dangerousCommand(sh *syntax.Parser, command string) bool {
	// Make writes a literal shell dollar as $$; undo that so ${VAR}
	// expansions reach the shell parser the way the shell sees them.
	command = strings.ReplaceAll(command, "$$", "$")

	file, err := sh.Parse(strings.NewReader(command), "")
	if err != nil {
		// Make-specific syntax the shell parser rejects; best-effort
		// substring check instead of giving up.
		return strings.Contains(command, "rm -rf /") && !strings.Contains(command, "rm -rf /tmp")
	}

	dangerous := false
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 || call.Args[0].Lit() != "rm" {
			return true
		}

		recursive, force, risky := false, false, false
		for _, arg := range call.Args[1:] {
			lit := arg.Lit()
			if strings.HasPrefix(lit, "-") {
				switch lit {
				case "--recursive":
					recursive = true
				case "--force":
					force = true
				default:
					recursive = recursive || strings.ContainsAny(lit[1:], "rR")
					force = force || strings.Contains(lit[1:], "f")
				}
				continue
			}
			if riskyWord(arg) {
				risky = true
			}
		}
		if recursive && force && risky {
			dangerous = true
		}
		return true
	})
	return dangerous
}

// riskyWord reports whether an rm argument can resolve to the root:
// a literal / or /*, or a word that begins with an unguarded expansion
// and continues with a slash.
func riskyWord(word *syntax.Word) bool {
	parts := flatten(word.Parts)
	if len(parts) == 0 {
		return false
	}

	switch first := parts[0].(type) {
	case *syntax.Lit:
		cleaned := strings.TrimSuffix(first.Value, "*")
		return cleaned == "/"
	case *syntax.ParamExp:
		if first.Exp != nil {
			return false // ${VAR:?...} and friends count as guarded
		}
		return followedBySlash(parts)
	case *syntax.CmdSubst:
		// Make's $(VAR) reads as command substitution in shell syntax.
		return followedBySlash(parts)
	}
	return false
}

func followedBySlash(parts []syntax.WordPart) bool {
	if len(parts) < 2 {
		return false
	}
	lit, ok := parts[1].(*syntax.Lit)
	return ok && strings.HasPrefix(lit.Value, "/")
}

// flatten descends through double quotes so "$(DIR)/" and $(DIR)/ are
// treated alike.
func flatten(parts []syntax.WordPart) []syntax.WordPart {
	var out []syntax.WordPart
	for _, p := range parts {
		if dq, ok := p.(*syntax.DblQuoted); ok {
			out = append(out, flatten(dq.Parts)...)
			continue
		}
		out = append(out, p)
	}
	return out
}
