package parser

import (
	"strings"

	"github.com/donaldgifford/makelint/internal/diag"
)

// Assignment operator patterns, ordered by length (longest first to avoid
// partial matches, e.g., ::= before :=).
var assignOps = []AssignOp{OpPosix, OpShell, OpDefault, OpAppend, OpSimple, OpRecursive}

// Conditional directive keywords.
var conditionalKeywords = map[string]bool{
	"ifeq":   true,
	"ifneq":  true,
	"ifdef":  true,
	"ifndef": true,
	"else":   true,
	"endif":  true,
}

// Include directive keywords.
var includeKeywords = map[string]bool{
	"include":  true,
	"-include": true,
	"sinclude": true,
}

// Directive keywords that start a line (non-conditional, non-include).
var directiveKeywords = map[string]bool{
	".DEFAULT_GOAL":         true,
	".SUFFIXES":             true,
	".DELETE_ON_ERROR":      true,
	".SECONDARY":            true,
	".PRECIOUS":             true,
	".INTERMEDIATE":         true,
	".NOTPARALLEL":          true,
	".ONESHELL":             true,
	".POSIX":                true,
	".SILENT":               true,
	".IGNORE":               true,
	".EXPORT_ALL_VARIABLES": true,
	"export":                true,
	"unexport":              true,
	"vpath":                 true,
	"override":              true,
	"undefine":              true,
}

// Parse converts Makefile source text into a Document. It is total: it
// never fails, though the result may contain Malformed entries and carry
// syntax diagnostics collected during recovery.
func Parse(path, src string) *Document {
	p := &state{
		doc: &Document{
			Path:   path,
			Source: src,
			phony:  make(map[string]bool),
		},
		lines: Lex(src),
	}
	p.run()
	p.resolvePhony()
	return p.doc
}

// state tracks the parser position and the rule currently accepting
// recipe lines.
type state struct {
	doc   *Document
	lines []Line
	i     int
	cur   *RuleEntry // non-nil while in recipe context
}

func (p *state) run() {
	for p.i < len(p.lines) {
		ln := p.lines[p.i]

		if ln.Blank {
			// Blank lines are not entries; they also do not end a
			// recipe (GNU Make skips them inside recipes).
			p.i++
			continue
		}

		// Recipe lines never re-enter the header classifier. A
		// space-indented comment is a comment, not a misindented
		// command; like its column-0 form it does not end the recipe,
		// so it falls through to the classifier with cur intact.
		if p.cur != nil && ln.RecipeContext && ln.Indent != IndentNone {
			if ln.Indent == IndentTab || !strings.HasPrefix(strings.TrimLeft(ln.Text, " \t"), "#") {
				p.recipeLine()
				continue
			}
		}

		joined, group := p.logical()
		p.classify(joined, group)
		p.i += len(group)
	}
}

// logical joins the continuation group starting at the current line. The
// joined form is used for classification; the group keeps the physical
// lines for span construction.
func (p *state) logical() (string, []Line) {
	start := p.i
	end := start
	for end < len(p.lines) && p.lines[end].HasContinuation {
		end++
	}
	if end < len(p.lines) {
		end++
	}
	group := p.lines[start:end]

	if len(group) == 1 {
		return group[0].Text, group
	}
	parts := make([]string, len(group))
	for i, ln := range group {
		text := ln.Text
		if ln.HasContinuation {
			text = strings.TrimRight(text, "\r")
			text = text[:len(text)-1] // drop the backslash
		}
		if i > 0 {
			text = strings.TrimLeft(text, " \t")
		}
		parts[i] = strings.TrimRight(text, " \t")
	}
	return strings.Join(parts, " "), group
}

// recipeLine consumes the recipe command starting at the current line,
// including its continuation lines, and appends it to the current rule.
func (p *state) recipeLine() {
	_, group := p.logical()
	first := group[0]
	last := group[len(group)-1]

	raws := make([]string, len(group))
	for i, ln := range group {
		raws[i] = ln.Text
	}

	command := strings.TrimLeft(first.Text, " \t")
	for _, ln := range group[1:] {
		part := strings.TrimRight(strings.TrimLeft(ln.Text, " \t"), " \t")
		command = strings.TrimRight(command, " \t\r")
		if strings.HasSuffix(command, "\\") {
			command = command[:len(command)-1]
		}
		command = strings.TrimRight(command, " \t") + " " + part
	}

	var silent, ignoreErr bool
	for len(command) > 0 {
		switch command[0] {
		case '@':
			silent = true
		case '-':
			ignoreErr = true
		case '+':
			// Run-always marker; recorded in Command stripping only.
		default:
			goto done
		}
		command = command[1:]
	}
done:

	rl := RecipeLine{
		Raw:         strings.Join(raws, "\n"),
		Command:     command,
		Silent:      silent,
		IgnoreError: ignoreErr,
		Indent:      first.Indent,
		LineSpan:    spanLines(first, last),
		IndentSpan: diag.Span{
			Start: pos(first, 1),
			End:   pos(first, first.IndentLen+1),
		},
	}
	p.cur.Recipe = append(p.cur.Recipe, rl)
	p.cur.FullSpan.End = rl.LineSpan.End
	p.i += len(group)
}

// classify determines the entry for one logical line and appends it.
// Classification order follows Make's grammar: comments, .PHONY, includes,
// directives, assignments (operators win the colon tie-break), then rule
// headers; anything left is Malformed.
func (p *state) classify(joined string, group []Line) {
	trimmed := strings.TrimSpace(joined)
	first := group[0]
	last := group[len(group)-1]
	span := spanLines(first, last)

	// Comments never end recipe context; one interleaved between recipe
	// lines is recorded and the commands after it still belong to the rule.
	if strings.HasPrefix(trimmed, "#") {
		p.doc.Entries = append(p.doc.Entries, &Comment{
			Text:     strings.TrimSpace(strings.TrimLeft(trimmed, "#")),
			Raw:      joined,
			LineSpan: span,
		})
		return
	}

	p.cur = nil

	if strings.HasPrefix(trimmed, ".PHONY:") || trimmed == ".PHONY" {
		rest := strings.TrimPrefix(strings.TrimPrefix(trimmed, ".PHONY"), ":")
		p.doc.Entries = append(p.doc.Entries, &PhonyDeclaration{
			Targets:  strings.Fields(rest),
			LineSpan: span,
		})
		return
	}

	if e := p.tryInclude(trimmed, span); e != nil {
		p.doc.Entries = append(p.doc.Entries, e)
		return
	}

	if e := p.tryDirective(trimmed, joined, span, group); e != nil {
		p.doc.Entries = append(p.doc.Entries, e)
		return
	}

	if e := p.tryAssignment(trimmed, group); e != nil {
		p.doc.Entries = append(p.doc.Entries, e)
		return
	}

	if e := p.tryRule(trimmed, span, group); e != nil {
		p.doc.Entries = append(p.doc.Entries, e)
		p.cur = e.(*RuleEntry)
		return
	}

	reason := malformedReason(first, trimmed)
	p.doc.Entries = append(p.doc.Entries, &Malformed{
		Raw:      joined,
		Reason:   reason,
		LineSpan: span,
	})
	p.doc.Diagnostics = append(p.doc.Diagnostics, diag.New(
		"syntax/malformed-line",
		diag.CategorySyntax,
		diag.Error,
		span,
		reason,
	))
}

func malformedReason(first Line, trimmed string) string {
	if first.Indent == IndentTab {
		return "recipe line outside a rule"
	}
	if strings.ContainsAny(trimmed, "=:") {
		return "cannot parse line: expected ':' or assignment operator at top level"
	}
	return "expected a rule, assignment, directive, or comment"
}

func (p *state) tryInclude(trimmed string, span diag.Span) Entry {
	for keyword := range includeKeywords {
		if trimmed != keyword && !strings.HasPrefix(trimmed, keyword+" ") && !strings.HasPrefix(trimmed, keyword+"\t") {
			continue
		}
		return &IncludeDirective{
			Path:     strings.TrimSpace(trimmed[len(keyword):]),
			Optional: keyword != "include",
			LineSpan: span,
		}
	}
	return nil
}

// tryDirective matches conditionals, define blocks, and the directive
// keywords the linter records verbatim. "export NAME = value" falls
// through to the assignment classifier.
func (p *state) tryDirective(trimmed, joined string, span diag.Span, group []Line) Entry {
	word := trimmed
	if idx := strings.IndexAny(trimmed, " \t:"); idx >= 0 {
		word = trimmed[:idx]
	}

	if conditionalKeywords[word] {
		return &Directive{Keyword: word, Raw: joined, LineSpan: span}
	}

	if word == "define" {
		return p.defineBlock(joined, group)
	}

	if (word == "export" || word == "override") && containsAssignOp(trimmed[len(word):]) {
		return nil // handled as an assignment
	}

	if directiveKeywords[word] {
		return &Directive{Keyword: word, Raw: joined, LineSpan: span}
	}
	return nil
}

// defineBlock absorbs lines through the matching endef into a single
// Directive entry. An unterminated define runs to end of input; the
// parser records what it has rather than failing.
func (p *state) defineBlock(joined string, group []Line) Entry {
	first := group[0]
	raw := []string{joined}
	end := group[len(group)-1]

	j := p.i + len(group)
	for j < len(p.lines) {
		ln := p.lines[j]
		raw = append(raw, ln.Text)
		end = ln
		j++
		if strings.TrimSpace(ln.Text) == "endef" {
			break
		}
	}
	// Skip the absorbed body: classify() advances past group, so stash
	// the extra distance here.
	p.i = j - len(group)

	return &Directive{
		Keyword:  "define",
		Raw:      strings.Join(raw, "\n"),
		LineSpan: spanLines(first, end),
	}
}

// tryAssignment matches NAME OP value, with operators matched greedily so
// that x:=1 is an assignment, not a rule named "x" (Make gives assignment
// operators priority).
func (p *state) tryAssignment(trimmed string, group []Line) Entry {
	export := false
	content := trimmed
	if strings.HasPrefix(content, "export ") || strings.HasPrefix(content, "export\t") {
		export = true
		content = strings.TrimLeft(content[len("export"):], " \t")
	}

	opIdx, op := findAssignOp(content)
	if opIdx < 0 {
		return nil
	}

	name := strings.TrimSpace(content[:opIdx])
	if name == "" || strings.ContainsAny(name, " \t") {
		// "override VAR = val" keeps the modifier in the name the way
		// Make reports it; anything else with spaces is a rule or junk.
		fields := strings.Fields(name)
		if len(fields) != 2 || fields[0] != "override" {
			return nil
		}
		name = fields[1]
	}
	// A colon outside a variable reference means a target-specific
	// variable (foo: BAR := x), which Make reads as a rule on foo.
	if ruleColonIndex(name) >= 0 {
		return nil
	}

	value := strings.TrimSpace(content[opIdx+len(op):])

	first := group[0]
	last := group[len(group)-1]

	// Name and value spans are anchored on the first physical line so
	// fixes can rewrite either part alone.
	base := first.IndentLen
	if export {
		if i := strings.Index(first.Text, "export"); i >= 0 {
			base = i + len("export")
		}
	}
	nameCol := base + 1
	if i := strings.Index(first.Text[base:], name); i >= 0 {
		nameCol = base + i + 1
	}
	nameSpan := diag.Span{
		Start: pos(first, nameCol),
		End:   pos(first, nameCol+len(name)),
	}

	lineEnd := pos(last, len(last.Text)+1)
	valueSpan := diag.Span{Start: lineEnd, End: lineEnd}
	if value != "" {
		prefix := value
		if cut := strings.IndexAny(value, " \t"); cut > 0 && len(group) > 1 {
			prefix = value[:cut]
		}
		searchFrom := nameCol - 1 + len(name)
		if valCol := strings.Index(first.Text[searchFrom:], prefix); valCol >= 0 {
			valueSpan = diag.Span{Start: pos(first, searchFrom+valCol+1), End: lineEnd}
		}
	}

	return &VariableAssignment{
		Name:      name,
		Op:        op,
		Value:     value,
		Export:    export,
		NameSpan:  nameSpan,
		ValueSpan: valueSpan,
		LineSpan:  spanLines(first, last),
	}
}

func (p *state) tryRule(trimmed string, span diag.Span, group []Line) Entry {
	colon := ruleColonIndex(trimmed)
	if colon < 0 {
		return nil
	}

	targetStr := strings.TrimSpace(trimmed[:colon])
	if targetStr == "" {
		return nil
	}

	rest := trimmed[colon+1:]
	double := strings.HasPrefix(rest, ":")
	if double {
		rest = rest[1:]
	}
	rest = strings.TrimSpace(rest)

	// Strip a trailing comment; "## help" inline docs are common.
	if hashIdx := strings.Index(rest, "#"); hashIdx >= 0 {
		rest = strings.TrimSpace(rest[:hashIdx])
	}

	var prereqs, orderOnly []string
	if pipeIdx := strings.Index(rest, "|"); pipeIdx >= 0 {
		prereqs = strings.Fields(rest[:pipeIdx])
		orderOnly = strings.Fields(rest[pipeIdx+1:])
	} else {
		prereqs = strings.Fields(rest)
	}

	return &RuleEntry{
		Targets:     strings.Fields(targetStr),
		Prereqs:     prereqs,
		OrderOnly:   orderOnly,
		DoubleColon: double,
		HeaderSpan:  span,
		FullSpan:    span,
	}
}

// resolvePhony derives the Phony flag on rules from all .PHONY entries.
// Forward declarations are legal, so this runs after the full pass.
func (p *state) resolvePhony() {
	for _, e := range p.doc.Entries {
		if ph, ok := e.(*PhonyDeclaration); ok {
			for _, t := range ph.Targets {
				p.doc.phony[t] = true
			}
		}
	}
	for _, r := range p.doc.Rules() {
		for _, t := range r.Targets {
			if p.doc.phony[t] {
				r.Phony = true
				break
			}
		}
	}
}

// findAssignOp locates the leftmost assignment operator outside $() and
// ${} variable references, trying longer operators first at each position
// so ::= beats := beats =.
func findAssignOp(s string) (int, AssignOp) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip the escaped character
		case '$':
			if i+1 < len(s) && (s[i+1] == '(' || s[i+1] == '{') {
				depth++
				i++
			}
		case ')', '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth != 0 {
				continue
			}
			for _, op := range assignOps {
				if strings.HasPrefix(s[i:], string(op)) {
					return i, op
				}
			}
		}
	}
	return -1, ""
}

// containsAssignOp reports whether any assignment operator occurs in s.
func containsAssignOp(s string) bool {
	idx, _ := findAssignOp(s)
	return idx >= 0
}

// ruleColonIndex finds the colon separating targets from prerequisites:
// the first unescaped ':' outside $() and ${} variable references that
// does not begin an assignment operator. Returns -1 when the line is not
// a rule header (including when an assignment operator appears first).
func ruleColonIndex(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++ // skip the escaped character
		case '$':
			if i+1 < len(s) && (s[i+1] == '(' || s[i+1] == '{') {
				depth++
				i++
			}
		case ')', '}':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 {
				return -1 // assignment operator wins
			}
		case '?', '+', '!':
			if depth == 0 && i+1 < len(s) && s[i+1] == '=' {
				return -1
			}
		case ':':
			if depth != 0 {
				continue
			}
			// ":=" and "::=" are assignment operators, not rule
			// separators.
			if strings.HasPrefix(s[i:], ":=") || strings.HasPrefix(s[i:], "::=") {
				return -1
			}
			return i
		}
	}
	return -1
}

// pos builds a Position for a 1-based column on a physical line.
func pos(ln Line, col int) diag.Position {
	return diag.Position{
		Line:   ln.Num,
		Column: col,
		Offset: ln.Offset + col - 1,
	}
}

// spanLines covers from the start of first to the end of last.
func spanLines(first, last Line) diag.Span {
	return diag.Span{
		Start: pos(first, 1),
		End:   pos(last, len(last.Text)+1),
	}
}
