package rexel

import (
	"fmt"
	"strconv"
	"strings"
)

// BacktrackMatcher is the executor spec.md §4.H reserves for patterns that
// use `\N`/`$N` back-references, which the parallel executor cannot express
// (a back-reference needs to know exactly which capture bounds a specific
// path through the program produced, not just the longest length reaching a
// state). It buffers the whole input and walks the program with ordinary Go
// recursion standing in for the explicit "(prog-pos, buf-pos) fork-choice
// stack" spec.md describes: each opForkGreedy/opForkLazy/opCaptureStart/
// opCaptureEnd call recurses into the continuation and unwinds (restoring
// any capture it tentatively set) on failure, which is exactly what an
// explicit stack of saved records would replay. Recursion depth is bounded
// by program size, which this engine's hand-authored-pattern scope keeps
// small.
type BacktrackMatcher struct {
	prog *Program
}

func NewBacktrackMatcher(prog *Program) *BacktrackMatcher {
	return &BacktrackMatcher{prog: prog}
}

// Match is one successful match: Captures[0] is the whole match, Captures[N]
// is capture group N's [start,end) rune offsets into the input searched,
// or [-1,-1] if that group never participated.
type Match struct {
	Start, End int
	Captures   [][2]int
}

// Group returns capture g's matched text, or "" if it did not participate.
func (m *Match) Group(input []rune, g int) string {
	if g < 0 || g >= len(m.Captures) {
		return ""
	}
	lo, hi := m.Captures[g][0], m.Captures[g][1]
	if lo < 0 || hi < 0 {
		return ""
	}
	return string(input[lo:hi])
}

// FlagsAt reports the assertion bits holding at a boundary offset into a
// rune buffer, for the backtracking executor's opAssert checks.
type FlagsAt func(offset int) assertFlag

// FindAt attempts a match anchored exactly at start.
func (m *BacktrackMatcher) FindAt(input []rune, start int, flagsAt FlagsAt) *Match {
	caps := make([]int, 2*(m.prog.NumCaptures+1))
	for i := range caps {
		caps[i] = -1
	}
	caps[0] = start
	end, ok := m.run(input, start, 0, caps, flagsAt)
	if !ok {
		return nil
	}
	caps[1] = end
	result := &Match{Start: start, End: end}
	for g := 0; g <= m.prog.NumCaptures; g++ {
		result.Captures = append(result.Captures, [2]int{caps[2*g], caps[2*g+1]})
	}
	return result
}

// Find attempts a match starting at or after from, trying every later start
// offset in turn unless the program is anchored.
func (m *BacktrackMatcher) Find(input []rune, from int, flagsAt FlagsAt) *Match {
	if m.prog.Anchored {
		return m.FindAt(input, from, flagsAt)
	}
	for start := from; start <= len(input); start++ {
		if r := m.FindAt(input, start, flagsAt); r != nil {
			return r
		}
	}
	return nil
}

func (m *BacktrackMatcher) run(input []rune, sp, pc int, caps []int, flagsAt FlagsAt) (int, bool) {
	for {
		op, operand := unpack(m.prog.Prog[1+pc])
		switch op {
		case opMatch:
			return sp, true
		case opClass:
			if sp >= len(input) {
				return 0, false
			}
			set := m.prog.classAt(operand)
			if !set.contains(input[sp]) {
				return 0, false
			}
			sp++
			pc++
		case opAssert:
			want := assertFlag(operand)
			if flagsAt(sp)&want != want {
				return 0, false
			}
			pc++
		case opJmp:
			pc = operand
		case opForkGreedy:
			if end, ok := m.run(input, sp, pc+1, caps, flagsAt); ok {
				return end, true
			}
			pc = operand
		case opForkLazy:
			if end, ok := m.run(input, sp, operand, caps, flagsAt); ok {
				return end, true
			}
			pc++
		case opCaptureStart:
			old := caps[2*operand]
			caps[2*operand] = sp
			if end, ok := m.run(input, sp, pc+1, caps, flagsAt); ok {
				return end, true
			}
			caps[2*operand] = old
			return 0, false
		case opCaptureEnd:
			old := caps[2*operand+1]
			caps[2*operand+1] = sp
			if end, ok := m.run(input, sp, pc+1, caps, flagsAt); ok {
				return end, true
			}
			caps[2*operand+1] = old
			return 0, false
		case opCaseFold:
			// Folding is baked into opClass's set at compile time
			// (classFor); this marker has no runtime effect, including on
			// backreference comparisons below, which stay case-sensitive.
			pc++
		case opBackref:
			lo, hi := caps[2*operand], caps[2*operand+1]
			if lo < 0 || hi < 0 {
				return 0, false
			}
			n := hi - lo
			if sp+n > len(input) {
				return 0, false
			}
			for i := 0; i < n; i++ {
				if input[sp+i] != input[lo+i] {
					return 0, false
				}
			}
			sp += n
			pc++
		default:
			return 0, false
		}
	}
}

// Expand synthesises replacement text from template against a match's
// captured bounds (spec.md §4.H "template-interpolation operation (`\N`,
// `\:N:M`)"): `\N` substitutes capture N's text; `\:N:M` substitutes the
// span from capture N's start to capture M's end, for pulling out text that
// straddles two captures without a wrapping group of its own. Any other
// backslash escape is passed through literally.
func Expand(template string, input []rune, m *Match) string {
	var out strings.Builder
	r := []rune(template)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' || i+1 >= len(r) {
			out.WriteRune(r[i])
			continue
		}
		if r[i+1] == ':' {
			rest := string(r[i+2:])
			n, okN, consumedN := leadingInt(rest)
			if okN && strings.HasPrefix(rest[consumedN:], ":") {
				rest2 := rest[consumedN+1:]
				mnum, okM, consumedM := leadingInt(rest2)
				if okM {
					lo, hi := spanBounds(m, n, mnum)
					if lo >= 0 && hi >= lo {
						out.WriteString(string(input[lo:hi]))
					}
					i += 2 + consumedN + consumedM
					continue
				}
			}
			out.WriteRune(r[i])
			continue
		}
		n, ok, consumed := leadingInt(string(r[i+1:]))
		if !ok {
			out.WriteRune(r[i])
			continue
		}
		out.WriteString(m.Group(input, n))
		i += consumed
		continue
	}
	return out.String()
}

func spanBounds(m *Match, n, mnum int) (int, int) {
	if n < 0 || n >= len(m.Captures) || mnum < 0 || mnum >= len(m.Captures) {
		return -1, -1
	}
	lo := m.Captures[n][0]
	hi := m.Captures[mnum][1]
	if lo < 0 || hi < 0 {
		return -1, -1
	}
	return lo, hi
}

// leadingInt reads the run of ASCII digits at the start of s, returning the
// parsed value, whether any digits were found, and how many runes to skip.
func leadingInt(s string) (int, bool, int) {
	j := 0
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == 0 {
		return 0, false, 0
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false, 0
	}
	return n, true, j
}

func (m *Match) String() string {
	return fmt.Sprintf("[%d,%d) captures=%v", m.Start, m.End, m.Captures)
}
