// Package parser provides a line-by-line Makefile parser that produces a
// lossless, position-tagged Document. Parsing is total: malformed input
// degrades into Malformed entries and syntax diagnostics, never an error.
package parser

import (
	"strings"

	"github.com/donaldgifford/makelint/internal/diag"
)

// IndentKind classifies the leading whitespace of a line.
type IndentKind int

const (
	// IndentNone means the line starts at column 1.
	IndentNone IndentKind = iota
	// IndentTab means the line starts with a tab character.
	IndentTab
	// IndentSpace means the line is indented with spaces only.
	IndentSpace
	// IndentMixed means the indentation mixes spaces and tabs with a
	// space first (a tab-first run counts as IndentTab).
	IndentMixed
)

// String returns a short name for the indent kind.
func (k IndentKind) String() string {
	switch k {
	case IndentTab:
		return "tab"
	case IndentSpace:
		return "space"
	case IndentMixed:
		return "mixed"
	default:
		return "none"
	}
}

// AssignOp is a Make assignment operator.
type AssignOp string

const (
	OpRecursive AssignOp = "="
	OpSimple    AssignOp = ":="
	OpPosix     AssignOp = "::="
	OpDefault   AssignOp = "?="
	OpAppend    AssignOp = "+="
	OpShell     AssignOp = "!="
)

// Document is the parsed representation of one Makefile. It owns the
// original source text, which is immutable after parse; every Span in the
// tree indexes into it. Entry order is source order.
type Document struct {
	// Path identifies the file; used in output and ignore matching.
	Path string

	// Source is the exact text the document was parsed from.
	Source string

	// Entries in source order.
	Entries []Entry

	// Diagnostics collected during error recovery, all category syntax.
	Diagnostics []diag.Diagnostic

	phony map[string]bool
}

// IsPhony reports whether target is declared in any .PHONY entry of the
// document. Forward declarations count.
func (d *Document) IsPhony(target string) bool {
	return d.phony[target]
}

// SourceLines splits the original text into lines without trailing
// newlines. Element i holds source line i+1.
func (d *Document) SourceLines() []string {
	if d.Source == "" {
		return nil
	}
	lines := strings.Split(d.Source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Rules returns the RuleEntry values of the document in source order.
func (d *Document) Rules() []*RuleEntry {
	var out []*RuleEntry
	for _, e := range d.Entries {
		if r, ok := e.(*RuleEntry); ok {
			out = append(out, r)
		}
	}
	return out
}

// Assignments returns the VariableAssignment entries in source order.
func (d *Document) Assignments() []*VariableAssignment {
	var out []*VariableAssignment
	for _, e := range d.Entries {
		if a, ok := e.(*VariableAssignment); ok {
			out = append(out, a)
		}
	}
	return out
}

// Entry is one top-level element of a Document. Spans of distinct entries
// never overlap, with one exception: a Comment interleaved between recipe
// lines sits inside the FullSpan of its rule.
type Entry interface {
	// Span covers the entire entry in the original text, including any
	// recipe lines for rules.
	Span() diag.Span

	entry()
}

// RecipeLine is one command line belonging to a rule.
type RecipeLine struct {
	// Raw is the full line text including indentation.
	Raw string

	// Command is the shell text after indentation, with the leading
	// @ / - / + prefix characters stripped.
	Command string

	// Silent and IgnoreError record stripped @ and - prefixes.
	Silent      bool
	IgnoreError bool

	// Indent classifies the leading whitespace; anything but IndentTab
	// is a syntax error in Make.
	Indent IndentKind

	// LineSpan covers the whole line; IndentSpan covers exactly the
	// leading whitespace run (empty when Indent is IndentNone).
	LineSpan   diag.Span
	IndentSpan diag.Span
}

// RuleEntry is a rule: targets, prerequisites, and a recipe.
type RuleEntry struct {
	Targets     []string
	Prereqs     []string
	OrderOnly   []string // prerequisites after |
	Recipe      []RecipeLine
	DoubleColon bool // target:: prereqs

	HeaderSpan diag.Span
	FullSpan   diag.Span

	// Phony is derived after parsing: true when any target appears in a
	// .PHONY declaration anywhere in the document.
	Phony bool
}

func (r *RuleEntry) Span() diag.Span { return r.FullSpan }
func (r *RuleEntry) entry()          {}

// VariableAssignment is NAME OP value.
type VariableAssignment struct {
	Name   string
	Op     AssignOp
	Value  string
	Export bool // "export NAME = value" form

	NameSpan  diag.Span
	ValueSpan diag.Span
	LineSpan  diag.Span
}

func (v *VariableAssignment) Span() diag.Span { return v.LineSpan }
func (v *VariableAssignment) entry()          {}

// PhonyDeclaration is a ".PHONY: a b c" line.
type PhonyDeclaration struct {
	Targets  []string
	LineSpan diag.Span
}

func (p *PhonyDeclaration) Span() diag.Span { return p.LineSpan }
func (p *PhonyDeclaration) entry()          {}

// IncludeDirective is include/-include/sinclude. The path expression is
// kept as raw text; variable references in it are not resolved.
type IncludeDirective struct {
	Path     string
	Optional bool // -include and sinclude
	LineSpan diag.Span
}

func (i *IncludeDirective) Span() diag.Span { return i.LineSpan }
func (i *IncludeDirective) entry()          {}

// Comment is a line whose first non-whitespace character is #.
type Comment struct {
	Text     string // text after the # marker, trimmed
	Raw      string
	LineSpan diag.Span
}

func (c *Comment) Span() diag.Span { return c.LineSpan }
func (c *Comment) entry()          {}

// Directive is a recognized construct the linter records but does not
// evaluate: conditionals (ifeq/ifdef/.../endif), define blocks, export
// lines without an assignment, vpath, and special dot-targets other than
// .PHONY.
type Directive struct {
	Keyword  string
	Raw      string
	LineSpan diag.Span
}

func (d *Directive) Span() diag.Span { return d.LineSpan }
func (d *Directive) entry()          {}

// Malformed is the recovery placeholder for a line that matched no known
// construct. The parser records it together with a syntax diagnostic and
// resumes at the next line.
type Malformed struct {
	Raw      string
	Reason   string
	LineSpan diag.Span
}

func (m *Malformed) Span() diag.Span { return m.LineSpan }
func (m *Malformed) entry()          {}
