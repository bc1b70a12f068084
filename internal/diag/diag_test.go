package diag

import (
	"encoding/json"
	"sort"
	"testing"
)

func span(line, col, start, end int) Span {
	return Span{
		Start: Position{Line: line, Column: col, Offset: start},
		End:   Position{Line: line, Column: col + (end - start), Offset: end},
	}
}

func TestSpanLen(t *testing.T) {
	s := span(1, 1, 4, 9)
	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5", s.Len())
	}
}

func TestSpanContains(t *testing.T) {
	s := span(1, 1, 4, 9)
	tests := []struct {
		offset int
		want   bool
	}{
		{3, false},
		{4, true},
		{8, true},
		{9, false}, // half-open
	}
	for _, tt := range tests {
		if got := s.Contains(tt.offset); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", span(1, 1, 0, 5), span(1, 1, 10, 15), false},
		{"adjacent", span(1, 1, 0, 5), span(1, 1, 5, 10), false},
		{"overlapping", span(1, 1, 0, 5), span(1, 1, 4, 10), true},
		{"nested", span(1, 1, 0, 10), span(1, 1, 3, 5), true},
		{"identical", span(1, 1, 2, 6), span(1, 1, 2, 6), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("reversed: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLessOrdering(t *testing.T) {
	diags := []Diagnostic{
		New("style/line-length", CategoryStyle, Warning, span(3, 1, 20, 25), "c"),
		New("practice/missing-phony", CategoryPractice, Warning, span(1, 1, 0, 5), "a"),
		New("syntax/tab-in-recipe", CategorySyntax, Error, span(1, 5, 4, 8), "b"),
		New("style/variable-naming", CategoryStyle, Warning, span(3, 1, 20, 25), "d"),
	}
	sort.SliceStable(diags, func(i, j int) bool { return Less(diags[i], diags[j]) })

	want := []string{
		"practice/missing-phony", // 1:1
		"syntax/tab-in-recipe",   // 1:5
		"style/line-length",      // 3:1, id tie-break
		"style/variable-naming",  // 3:1
	}
	for i, id := range want {
		if diags[i].RuleID != id {
			t.Errorf("position %d: got %s, want %s", i, diags[i].RuleID, id)
		}
	}
}

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(Error)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"error"` {
		t.Errorf("marshal: got %s", data)
	}

	var s Severity
	if err := json.Unmarshal([]byte(`"warning"`), &s); err != nil {
		t.Fatal(err)
	}
	if s != Warning {
		t.Errorf("unmarshal: got %v, want Warning", s)
	}

	if err := json.Unmarshal([]byte(`"fatal"`), &s); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]Severity{"error": Error, "warning": Warning, "info": Info} {
		got, err := ParseSeverity(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}
	if _, err := ParseSeverity("loud"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestFixNormalizeSorts(t *testing.T) {
	f := NewFix("reorder", true,
		Edit{Span: span(2, 1, 10, 12), Replacement: "b"},
		Edit{Span: span(1, 1, 0, 2), Replacement: "a"},
	)
	if f.Edits[0].Span.Start.Offset != 0 {
		t.Error("edits should be sorted by start offset")
	}
}

func TestFixValid(t *testing.T) {
	tests := []struct {
		name    string
		fix     *Fix
		textLen int
		want    bool
	}{
		{"in bounds", Replace("r", true, span(1, 1, 2, 5), "x"), 10, true},
		{"past end", Replace("r", true, span(1, 1, 8, 12), "x"), 10, false},
		{"negative", Replace("r", true, Span{Start: Position{Offset: -1}, End: Position{Offset: 2}}, "x"), 10, false},
		{"inverted", Replace("r", true, Span{Start: Position{Offset: 5}, End: Position{Offset: 2}}, "x"), 10, false},
		{
			"overlapping edits",
			NewFix("r", true,
				Edit{Span: span(1, 1, 0, 4), Replacement: "a"},
				Edit{Span: span(1, 1, 2, 6), Replacement: "b"},
			),
			10,
			false,
		},
		{
			"adjacent edits",
			NewFix("r", true,
				Edit{Span: span(1, 1, 0, 4), Replacement: "a"},
				Edit{Span: span(1, 1, 4, 6), Replacement: "b"},
			),
			10,
			true,
		},
		{"insertion at end", Insert("i", true, Position{Offset: 10}, "x"), 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fix.Valid(tt.textLen); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithFixAndRelatedDoNotMutate(t *testing.T) {
	base := New("style/variable-shadowing", CategoryStyle, Warning, span(5, 1, 40, 43), "shadow")
	related := span(1, 1, 0, 3)

	withRel := base.WithRelated(related)
	if base.Related != nil {
		t.Error("WithRelated must copy, not mutate")
	}
	if withRel.Related == nil || withRel.Related.Start.Offset != 0 {
		t.Error("related span not carried")
	}

	withFix := base.WithFix(Replace("r", true, related, "x"))
	if base.Fix != nil {
		t.Error("WithFix must copy, not mutate")
	}
	if withFix.Fix == nil {
		t.Error("fix not carried")
	}
}
