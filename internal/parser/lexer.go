package parser

import "strings"

// Line is one physical source line with the annotations the parser needs:
// indentation kind, continuation flags, and whether the lexer believes the
// line sits in recipe context (the line follows a rule header or another
// recipe line of the same rule).
type Line struct {
	// Num is the 1-based line number.
	Num int

	// Text is the line without its trailing newline.
	Text string

	// Offset is the byte offset of the first character in the source.
	Offset int

	// Indent classifies the leading whitespace run; IndentLen is its
	// byte length.
	Indent    IndentKind
	IndentLen int

	// Continues is true when the previous line ended with an unescaped
	// backslash, making this line part of the same logical line.
	Continues bool

	// HasContinuation is true when this line itself ends with an
	// unescaped backslash.
	HasContinuation bool

	// RecipeContext is true when a tab-indented line here would be a
	// recipe command rather than stray indentation. This is the lexer's
	// one piece of state.
	RecipeContext bool

	// Blank is true for empty or whitespace-only lines.
	Blank bool
}

// Lexer walks source text producing annotated lines. It never fails; any
// byte sequence yields a finite line sequence.
type Lexer struct {
	src    string
	offset int
	num    int

	inRecipe     bool
	prevContinue bool
	contRecipe   bool // recipe context of the logical line being continued
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next annotated line. The second result is false once
// the input is exhausted.
func (lx *Lexer) Next() (Line, bool) {
	if lx.offset >= len(lx.src) {
		return Line{}, false
	}

	start := lx.offset
	end := strings.IndexByte(lx.src[start:], '\n')
	var text string
	if end < 0 {
		text = lx.src[start:]
		lx.offset = len(lx.src)
	} else {
		text = lx.src[start : start+end]
		lx.offset = start + end + 1
	}
	lx.num++

	indent, indentLen := classifyIndent(text)
	blank := strings.TrimSpace(text) == ""

	ln := Line{
		Num:             lx.num,
		Text:            text,
		Offset:          start,
		Indent:          indent,
		IndentLen:       indentLen,
		Continues:       lx.prevContinue,
		HasContinuation: hasContinuation(text),
		Blank:           blank,
	}

	if ln.Continues {
		// Continuation lines stay in whatever context the logical
		// line started in.
		ln.RecipeContext = lx.contRecipe
	} else {
		ln.RecipeContext = lx.inRecipe
		lx.updateContext(ln)
		lx.contRecipe = ln.RecipeContext
	}

	lx.prevContinue = ln.HasContinuation
	return ln, true
}

// updateContext advances the recipe-context state machine past a
// non-continuation line.
func (lx *Lexer) updateContext(ln Line) {
	switch {
	case ln.Blank:
		// Blank lines inside a recipe do not end it in GNU Make.
	case strings.HasPrefix(strings.TrimLeft(ln.Text, " \t"), "#") && ln.Indent != IndentTab:
		// Comment lines do not end a recipe either. Tab-led comments
		// are shell text and fall under the recipe case below.
	case lx.inRecipe && ln.Indent != IndentNone:
		// Indented line in context: a recipe command (tab) or a
		// wrongly indented one (space/mixed). Context continues.
	case opensRule(ln.Text):
		lx.inRecipe = true
	default:
		lx.inRecipe = false
	}
}

// Lex collects all lines of src. The result is finite and can be walked
// any number of times.
func Lex(src string) []Line {
	lx := NewLexer(src)
	var lines []Line
	for {
		ln, ok := lx.Next()
		if !ok {
			return lines
		}
		lines = append(lines, ln)
	}
}

// classifyIndent inspects the leading whitespace run of a line.
func classifyIndent(text string) (IndentKind, int) {
	n := 0
	sawTab := false
	for n < len(text) && (text[n] == ' ' || text[n] == '\t') {
		if text[n] == '\t' {
			sawTab = true
		}
		n++
	}
	switch {
	case n == 0:
		return IndentNone, 0
	case text[0] == '\t':
		// Make only cares that the first character is a tab.
		return IndentTab, n
	case sawTab:
		return IndentMixed, n
	default:
		return IndentSpace, n
	}
}

// hasContinuation reports whether the line ends with an unescaped
// backslash. Make only splices a backslash sitting immediately before
// the newline, so trailing spaces break the continuation; only a CR
// from CRLF input is ignored. An even run of trailing backslashes
// escapes itself.
func hasContinuation(text string) bool {
	trimmed := strings.TrimRight(text, "\r")
	n := 0
	for n < len(trimmed) && trimmed[len(trimmed)-1-n] == '\\' {
		n++
	}
	return n%2 == 1
}

// opensRule reports whether a top-level line looks like a rule header:
// it carries an unescaped colon outside any variable reference that is
// not part of an assignment operator. Assignment operators win the
// tie-break, matching Make's own grammar.
func opensRule(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed[0] == '#' {
		return false
	}
	return ruleColonIndex(trimmed) >= 0
}
