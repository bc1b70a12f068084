// Package diff produces unified diffs between two versions of a file.
// makelint uses it to preview fixes before writing them out.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is how many unchanged lines surround each hunk.
const contextLines = 3

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type op struct {
	kind opKind
	line string
}

// Unified returns a unified diff of old → new for the named file, or an
// empty string when the texts are equal.
func Unified(name, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	ops := script(splitLines(oldText), splitLines(newText))

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", name)
	fmt.Fprintf(&b, "+++ b/%s\n", name)

	for _, h := range hunks(ops) {
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", h.oldRange(), h.newRange())
		for _, o := range h.ops {
			switch o.kind {
			case opEqual:
				b.WriteString(" ")
			case opDelete:
				b.WriteString("-")
			case opInsert:
				b.WriteString("+")
			}
			b.WriteString(o.line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// script computes an edit script via a longest-common-subsequence table.
// Makefiles are small; the quadratic table is fine.
func script(a, b []string) []op {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []op
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, op{opEqual, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, op{opDelete, a[i]})
			i++
		default:
			ops = append(ops, op{opInsert, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, op{opDelete, a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, op{opInsert, b[j]})
	}
	return ops
}

// hunk is a run of ops with surrounding context, plus the 1-based start
// lines in each file.
type hunk struct {
	ops      []op
	oldStart int
	newStart int
}

func (h hunk) oldRange() string { return formatRange(h.oldStart, countOld(h.ops)) }
func (h hunk) newRange() string { return formatRange(h.newStart, countNew(h.ops)) }

func formatRange(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	if count == 0 && start > 0 {
		start--
	}
	return fmt.Sprintf("%d,%d", start, count)
}

func countOld(ops []op) int {
	n := 0
	for _, o := range ops {
		if o.kind != opInsert {
			n++
		}
	}
	return n
}

func countNew(ops []op) int {
	n := 0
	for _, o := range ops {
		if o.kind != opDelete {
			n++
		}
	}
	return n
}

// hunks groups the edit script into hunks: every changed line plus up to
// contextLines of unchanged neighbors on each side. Changes closer than
// the combined context merge into one hunk.
func hunks(ops []op) []hunk {
	keep := make([]bool, len(ops))
	lastChange := -(contextLines + 1)
	for i, o := range ops {
		if o.kind != opEqual {
			start := i - contextLines
			if start < 0 {
				start = 0
			}
			for j := start; j <= i; j++ {
				keep[j] = true
			}
			lastChange = i
		} else if i-lastChange <= contextLines {
			keep[i] = true
		}
	}

	var out []hunk
	oldLine, newLine := 1, 1
	i := 0
	for i < len(ops) {
		if !keep[i] {
			oldLine++
			newLine++
			i++
			continue
		}
		h := hunk{oldStart: oldLine, newStart: newLine}
		for i < len(ops) && keep[i] {
			h.ops = append(h.ops, ops[i])
			if ops[i].kind != opInsert {
				oldLine++
			}
			if ops[i].kind != opDelete {
				newLine++
			}
			i++
		}
		out = append(out, h)
	}
	return out
}
