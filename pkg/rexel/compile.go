package rexel

import "fmt"

// Program is a compiled pattern (spec.md §4.H "Compiled regex"): a flat
// array of 16-bit program words plus a flat sets-region array, exactly the
// data model spec.md §3 describes. Word[0] of Prog is the program's own
// length, as the spec requires.
type Program struct {
	Prog []uint16
	Sets []uint16

	// SetOffsets maps an opClass operand (a set's intern index) to its
	// starting word offset in Sets, so executors can decode it directly.
	SetOffsets []int

	NumCaptures int
	Anchored    bool
	HasBackref  bool // only the backtracking executor can run this program
}

// classAt decodes the charSet an opClass instruction with the given operand
// (its intern index, not a byte offset) refers to.
func (p *Program) classAt(idx int) charSet {
	return decodeSet(p.Sets, p.SetOffsets[idx])
}

// compileCtx threads the case-fold/lax/dot-all settings currently in effect
// down through the AST — each can be overridden per group (spec.md §4.H
// "grouped sub-regex with optional ? flag prefix").
type compileCtx struct {
	caseFold bool
	lax      bool
	dotAll   bool
}

func (c compileCtx) override(g *groupNode) compileCtx {
	if g.caseFold != nil {
		c.caseFold = *g.caseFold
	}
	if g.lax != nil {
		c.lax = *g.lax
	}
	if g.dotAll != nil {
		c.dotAll = *g.dotAll
	}
	return c
}

// Compile parses and compiles pattern into a Program. anchored disables the
// implicit "try from every start position" a caller would otherwise layer
// on top (spec.md §4.H "Anchoring & flags").
func Compile(pattern string, anchored bool) (*Program, error) {
	ast, numCaptures, err := parse(pattern)
	if err != nil {
		return nil, err
	}

	hasBackref := containsBackref(ast)

	ctx := compileCtx{}

	// Pass 1: measure. Instruction word-counts depend only on the AST's
	// shape (repetition bounds, alternation arity, group flags), never on
	// a character class's contents, so this pass needs no sets table.
	total := size(ast, ctx)

	// Pass 2: emit, now that every instruction's absolute address can be
	// computed directly from sizes measured in pass 1 — no backpatching.
	var sets setTable
	pos := 0
	buf := make([]uint16, total)
	emit(ast, ctx, buf, &pos, &sets)
	if pos != total {
		return nil, fmt.Errorf("rexel: internal error, measured %d words, emitted %d", total, pos)
	}
	buf = append(buf, pack(opMatch, 0))

	prog := make([]uint16, 1+len(buf))
	copy(prog[1:], buf)
	prog[0] = uint16(len(buf))

	flatSets := sets.encode()

	return &Program{
		Prog:        prog,
		Sets:        flatSets,
		SetOffsets:  sets.offsets,
		NumCaptures: numCaptures,
		Anchored:    anchored,
		HasBackref:  hasBackref,
	}, nil
}

func containsBackref(n node) bool {
	switch t := n.(type) {
	case *backrefNode:
		return true
	case *concatNode:
		for _, it := range t.items {
			if containsBackref(it) {
				return true
			}
		}
	case *altNode:
		for _, b := range t.branches {
			if containsBackref(b) {
				return true
			}
		}
	case *repeatNode:
		return containsBackref(t.body)
	case *groupNode:
		return containsBackref(t.body)
	}
	return false
}

// classFor resolves a literal/dot/class AST node to the charSet it should
// match against under ctx, applying case-fold/lax widening and interning it
// into sets, returning the set's table index.
func classFor(n node, ctx compileCtx, sets *setTable) int {
	var s *charSet
	switch t := n.(type) {
	case *litNode:
		switch {
		case ctx.lax && t.r == ' ':
			s = laxSpaceSet()
		case ctx.lax && t.r == '-':
			s = laxDashSet()
		default:
			s = &charSet{ranges: []runeRange{{t.r, t.r}}}
		}
	case *classNode:
		s = &charSet{ranges: append([]runeRange(nil), t.set.ranges...), negate: t.set.negate}
	case *dotNode:
		if ctx.dotAll {
			s = anySet()
		} else {
			s = notNewlineSet()
		}
	default:
		panic(fmt.Sprintf("rexel: classFor called on non-matching node %T", n))
	}
	if ctx.caseFold {
		s = caseFoldExpand(s)
	} else {
		s.normalize()
	}
	return sets.intern(s)
}

// size computes how many program words n compiles to under ctx. It must
// stay in lockstep with emit: every branch here has a matching branch there
// producing exactly this many words, which is what lets emit address
// fork/jump targets directly instead of backpatching.
func size(n node, ctx compileCtx) int {
	switch t := n.(type) {
	case *litNode, *classNode, *dotNode:
		return 1
	case *assertNode:
		return 1
	case *backrefNode:
		return 1
	case *concatNode:
		total := 0
		for _, it := range t.items {
			total += size(it, ctx)
		}
		return total
	case *altNode:
		total := 0
		for _, b := range t.branches {
			total += size(b, ctx)
		}
		return total + 2*(len(t.branches)-1)
	case *repeatNode:
		bodySize := size(t.body, ctx)
		total := t.min * bodySize
		switch {
		case t.max == -1:
			total += bodySize + 2
		case t.max > t.min:
			total += (t.max - t.min) * (bodySize + 1)
		}
		return total
	case *groupNode:
		inner := ctx.override(t)
		total := size(t.body, inner)
		if t.capture != 0 {
			total += 2
		}
		if t.caseFold != nil {
			total += 2
		}
		return total
	default:
		panic(fmt.Sprintf("rexel: size: unknown node %T", n))
	}
}

// emit writes n's instructions into buf starting at *pos, advancing *pos by
// exactly size(n, ctx, ...) words.
func emit(n node, ctx compileCtx, buf []uint16, pos *int, sets *setTable) {
	switch t := n.(type) {
	case *litNode, *classNode, *dotNode:
		idx := classFor(n, ctx, sets)
		buf[*pos] = pack(opClass, idx)
		*pos++
	case *assertNode:
		buf[*pos] = pack(opAssert, int(t.flag))
		*pos++
	case *backrefNode:
		buf[*pos] = pack(opBackref, t.n)
		*pos++
	case *concatNode:
		for _, it := range t.items {
			emit(it, ctx, buf, pos, sets)
		}
	case *altNode:
		emitAlt(t, ctx, buf, pos, sets)
	case *repeatNode:
		emitRepeat(t, ctx, buf, pos, sets)
	case *groupNode:
		emitGroup(t, ctx, buf, pos, sets)
	default:
		panic(fmt.Sprintf("rexel: emit: unknown node %T", n))
	}
}

func emitAlt(t *altNode, ctx compileCtx, buf []uint16, pos *int, sets *setTable) {
	for i, b := range t.branches {
		last := i == len(t.branches)-1
		if !last {
			bodySize := size(b, ctx)
			// fork: fall through into this branch, else jump past it to
			// the next branch's fork/body.
			target := *pos + 1 + bodySize + 1 // +1 fork word, +1 jmp word
			buf[*pos] = pack(opForkGreedy, target)
			*pos++
			emit(b, ctx, buf, pos, sets)
			// jmp to the end, computed from the remaining branches' sizes.
			remaining := 0
			for _, rb := range t.branches[i+1:] {
				remaining += size(rb, ctx)
			}
			remaining += 2 * (len(t.branches) - i - 2)
			if remaining < 0 {
				remaining = 0
			}
			buf[*pos] = pack(opJmp, *pos+1+remaining)
			*pos++
		} else {
			emit(b, ctx, buf, pos, sets)
		}
	}
}

func emitRepeat(t *repeatNode, ctx compileCtx, buf []uint16, pos *int, sets *setTable) {
	bodySize := size(t.body, ctx)
	for i := 0; i < t.min; i++ {
		emit(t.body, ctx, buf, pos, sets)
	}
	switch {
	case t.max == -1:
		loopStart := *pos
		exitTarget := loopStart + 1 + bodySize + 1
		op := opForkGreedy
		if t.lazy {
			op = opForkLazy
		}
		buf[*pos] = pack(op, exitTarget)
		*pos++
		emit(t.body, ctx, buf, pos, sets)
		buf[*pos] = pack(opJmp, loopStart)
		*pos++
	case t.max > t.min:
		optional := t.max - t.min
		for i := 0; i < optional; i++ {
			remaining := (optional - i - 1) * (bodySize + 1)
			exitTarget := *pos + 1 + bodySize + remaining
			op := opForkGreedy
			if t.lazy {
				op = opForkLazy
			}
			buf[*pos] = pack(op, exitTarget)
			*pos++
			emit(t.body, ctx, buf, pos, sets)
		}
	}
}

func emitGroup(t *groupNode, ctx compileCtx, buf []uint16, pos *int, sets *setTable) {
	inner := ctx.override(t)
	if t.caseFold != nil {
		on := 0
		if *t.caseFold {
			on = 1
		}
		buf[*pos] = pack(opCaseFold, on)
		*pos++
	}
	if t.capture != 0 {
		buf[*pos] = pack(opCaptureStart, t.capture)
		*pos++
	}
	emit(t.body, inner, buf, pos, sets)
	if t.capture != 0 {
		buf[*pos] = pack(opCaptureEnd, t.capture)
		*pos++
	}
	if t.caseFold != nil {
		prevOn := 0
		if ctx.caseFold {
			prevOn = 1
		}
		buf[*pos] = pack(opCaseFold, prevOn)
		*pos++
	}
}
