package rexel

import "testing"

// TestScenarioS4StreamedStarPlusLiteral is spec.md §8 S4: `a*b` against
// `aaab`, fed one rune at a time through the parallel executor.
func TestScenarioS4StreamedStarPlusLiteral(t *testing.T) {
	prog, err := Compile("a*b", true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	pm := NewParallelMatcher(prog)

	for _, r := range "aaa" {
		res := pm.Step(r, 0)
		if res.Matched {
			t.Fatalf("unexpected match after %q", r)
		}
		if res.DeadEnd {
			t.Fatalf("unexpected dead end after %q", r)
		}
	}

	res := pm.Step('b', 0)
	if !res.Matched || res.Length != 4 {
		t.Fatalf("expected match of length 4 after consuming 'aaab', got %+v", res)
	}

	res = pm.Step('x', 0)
	if !res.DeadEnd {
		t.Fatalf("expected dead end after a further, non-matching character, got %+v", res)
	}
	if !res.Matched || res.Length != 4 {
		t.Fatalf("dead end should still report the match already found, got %+v", res)
	}
}

// TestScenarioS5BacktrackCapturesAndBackreference is spec.md §8 S5:
// `(.(.).)\1` against `123123` via the backtracking engine.
func TestScenarioS5BacktrackCapturesAndBackreference(t *testing.T) {
	prog, err := Compile(`(.(.).)\1`, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !prog.HasBackref {
		t.Fatalf("expected HasBackref to be detected")
	}

	bm := NewBacktrackMatcher(prog)
	input := []rune("123123")
	m := bm.FindAt(input, 0, NoAssertions)
	if m == nil {
		t.Fatalf("expected a match")
	}
	if got := m.End - m.Start; got != 6 {
		t.Fatalf("expected match length 6, got %d", got)
	}
	if got := m.Group(input, 1); got != "123" {
		t.Fatalf("capture 1 = %q, want %q", got, "123")
	}
	if got := m.Group(input, 2); got != "2" {
		t.Fatalf("capture 2 = %q, want %q", got, "2")
	}
	if got := Expand(`\1`, input, m); got != "123" {
		t.Fatalf(`Expand("\1") = %q, want %q`, got, "123")
	}
}

// TestParallelAndBacktrackAgreeWithoutBackreferences is spec.md §8 property
// 6: for a back-reference-free pattern, both executors must agree on
// whether a match exists and, if so, where it starts and ends.
func TestParallelAndBacktrackAgreeWithoutBackreferences(t *testing.T) {
	cases := []struct {
		pattern  string
		anchored bool
		input    string
	}{
		{`a*b`, true, "aaab"},
		{`a*b`, true, "aaa"},
		{`a+`, false, "xxaaayy"},
		{`[0-9]+`, false, "ab123cd"},
		{`(ab)+c`, true, "ababc"},
		{`fo{1,3}`, true, "fooo"},
		{`fo{1,3}`, true, "f"},
		{`\bcat\b`, false, "a cat sat"},
		{`^abc$`, true, "abc"},
	}
	for _, c := range cases {
		prog, err := Compile(c.pattern, c.anchored)
		if err != nil {
			t.Fatalf("Compile(%q): %v", c.pattern, err)
		}
		if prog.HasBackref {
			t.Fatalf("test case %q unexpectedly has a back-reference", c.pattern)
		}
		input := []rune(c.input)
		flagsAt := TextFlagsAt(input)

		pr := findParallel(prog, input, 0, flagsAt)
		br := NewBacktrackMatcher(prog).Find(input, 0, flagsAt)

		switch {
		case pr == nil && br == nil:
			continue
		case pr == nil || br == nil:
			t.Fatalf("%q against %q: parallel=%v backtrack=%v disagree on match existence", c.pattern, c.input, pr, br)
		case pr.Start != br.Start || pr.End != br.End:
			t.Fatalf("%q against %q: parallel=[%d,%d) backtrack=[%d,%d) disagree", c.pattern, c.input, pr.Start, pr.End, br.Start, br.End)
		}
	}
}

func TestClassMatchingAndCaseFold(t *testing.T) {
	prog, err := Compile(`(?i:HELLO)`, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	input := []rune("hello")
	m := NewBacktrackMatcher(prog).FindAt(input, 0, NoAssertions)
	if m == nil || m.End != 5 {
		t.Fatalf("expected case-insensitive match, got %+v", m)
	}
}

func TestUnanchoredFindLocatesMatchMidString(t *testing.T) {
	prog, err := Compile(`[0-9]+`, false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	input := []rune("abc42xyz")
	m := findParallel(prog, input, 0, TextFlagsAt(input))
	if m == nil || m.Start != 3 || m.End != 5 {
		t.Fatalf("expected match [3,5), got %+v", m)
	}
}

func TestAlternationPrefersFirstMatchingBranch(t *testing.T) {
	prog, err := Compile(`cat|caterpillar`, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	input := []rune("caterpillar")
	m := NewBacktrackMatcher(prog).FindAt(input, 0, NoAssertions)
	if m == nil || m.End != 3 {
		t.Fatalf("expected the first branch 'cat' to win (length 3), got %+v", m)
	}
}

func TestBoundedRepeatRespectsMaxCount(t *testing.T) {
	prog, err := Compile(`a{2,4}`, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	input := []rune("aaaaaa")
	m := NewBacktrackMatcher(prog).FindAt(input, 0, NoAssertions)
	if m == nil || m.End != 4 {
		t.Fatalf("expected greedy {2,4} to consume exactly 4 a's, got %+v", m)
	}
}

func TestExpandSpanInterpolation(t *testing.T) {
	prog, err := Compile(`(a)(b)(c)`, true)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	input := []rune("abc")
	m := NewBacktrackMatcher(prog).FindAt(input, 0, NoAssertions)
	if m == nil {
		t.Fatalf("expected a match")
	}
	if got := Expand(`\:1:3`, input, m); got != "abc" {
		t.Fatalf(`Expand("\:1:3") = %q, want %q`, got, "abc")
	}
}
