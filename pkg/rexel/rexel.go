// Package rexel implements the regex component spec.md §4.H describes: a
// pattern compiler producing a flat 16-bit opcode program, and two
// executors over it — a non-backtracking parallel-thread matcher for
// streaming, back-reference-free patterns, and a buffered backtracking
// matcher for everything else, including `\N`/`$N` back-references and
// capture extraction.
package rexel

import "fmt"

// Matcher ties compilation to whichever executor a pattern needs,
// dispatching on Program.HasBackref (and, in Find, Program.NumCaptures) the way spec.md §4.H's "detect at
// compile time and return a capability bit" instructs callers to.
type Matcher struct {
	Prog *Program
}

// MustCompile is Compile, panicking on error — for the well-known patterns
// baked into keymaps and config validators, where a bad pattern is a
// programming error, not runtime input.
func MustCompile(pattern string, anchored bool) *Matcher {
	m, err := New(pattern, anchored)
	if err != nil {
		panic(fmt.Sprintf("rexel: MustCompile(%q): %v", pattern, err))
	}
	return m
}

// New compiles pattern into a Matcher.
func New(pattern string, anchored bool) (*Matcher, error) {
	prog, err := Compile(pattern, anchored)
	if err != nil {
		return nil, err
	}
	return &Matcher{Prog: prog}, nil
}

// CanStream reports whether this pattern's parallel executor can run it
// incrementally, without buffering the whole input.
func (m *Matcher) CanStream() bool { return !m.Prog.HasBackref }

// NewParallel returns a fresh incremental matcher for streaming input
// through one rune (or boundary) at a time. Panics if the pattern needs
// back-references — check CanStream first.
func (m *Matcher) NewParallel() *ParallelMatcher {
	if m.Prog.HasBackref {
		panic("rexel: pattern uses back-references, parallel executor cannot run it")
	}
	return NewParallelMatcher(m.Prog)
}

// NewBacktrack returns a buffered matcher able to extract captures and
// resolve back-references, for any pattern.
func (m *Matcher) NewBacktrack() *BacktrackMatcher {
	return NewBacktrackMatcher(m.Prog)
}

// Find runs the right executor for the pattern against a fully-buffered
// rune slice and returns the first match at or after from, or nil. A
// pattern with no capture groups and no back-references runs on the
// parallel executor; any other pattern runs on the backtracking one, so the
// returned Match carries every group's bounds. flagsAt
// reports the assertion bits true at a given rune offset (spec.md §4.H's
// "assertion bitmask and the code point are presented together").
func (m *Matcher) Find(input []rune, from int, flagsAt FlagsAt) *Match {
	if !m.Prog.HasBackref && m.Prog.NumCaptures == 0 {
		return findParallel(m.Prog, input, from, flagsAt)
	}
	return m.NewBacktrack().Find(input, from, flagsAt)
}

// findParallel drives the parallel executor over a fully-buffered slice, so
// callers that don't care about streaming can still use Find uniformly
// regardless of which engine a pattern needs.
func findParallel(prog *Program, input []rune, from int, flagsAt FlagsAt) *Match {
	search := func(start int) *Match {
		pm := newParallelMatcher(prog, true)
		var last StepResult
		for i := start; i < len(input); i++ {
			last = pm.Step(input[i], flagsAt(i))
			if last.DeadEnd {
				break
			}
		}
		if !last.DeadEnd {
			last = pm.Finish(flagsAt(len(input)))
		}
		if !last.Matched {
			return nil
		}
		return &Match{Start: start, End: start + last.Length, Captures: [][2]int{{start, start + last.Length}}}
	}
	if prog.Anchored {
		return search(from)
	}
	for start := from; start <= len(input); start++ {
		if r := search(start); r != nil {
			return r
		}
	}
	return nil
}

// NoAssertions is a FlagsAt that never reports any boundary condition, for
// callers matching plain text with no `^`/`$`/`\b`-style anchors.
func NoAssertions(int) assertFlag { return 0 }

// TextFlagsAt builds a FlagsAt over a plain rune buffer, computing
// start/end-of-document, start/end-of-line and word-break bits from the
// buffer's own content — the common case for pkg/rexel's regex test/search
// consumers that are not streaming against a live pkg/document.
func TextFlagsAt(input []rune) FlagsAt {
	isWord := func(r rune) bool {
		return r == '_' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}
	return func(offset int) assertFlag {
		var f assertFlag
		if offset == 0 {
			f |= assertSOD | assertSOL
		} else if input[offset-1] == '\n' {
			f |= assertSOL
		}
		if offset == len(input) {
			f |= assertEOD | assertEOL
		} else if input[offset] == '\n' {
			f |= assertEOL
		}
		before := offset > 0 && isWord(input[offset-1])
		after := offset < len(input) && isWord(input[offset])
		if before != after {
			f |= assertWBRK
		} else {
			f |= assertNOWBRK
		}
		return f
	}
}
