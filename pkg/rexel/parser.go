package rexel

import (
	"fmt"
	"strconv"
)

// node is one piece of the parsed pattern AST, turned into program words by
// compile.go's two-pass emit.
type node interface{}

type litNode struct{ r rune }
type classNode struct{ set *charSet }
type assertNode struct{ flag assertFlag }
type backrefNode struct{ n int }
type concatNode struct{ items []node }
type altNode struct{ branches []node }
type repeatNode struct {
	body     node
	min, max int // max == -1 means unbounded
	lazy     bool
}
type groupNode struct {
	body    node
	capture int // 0 means non-capturing
	// caseFold/lax/dotAll are nil when the group does not override the
	// enclosing setting, else point to the overridden value.
	caseFold *bool
	lax      *bool
	dotAll   *bool
}

// dotNode is `.`; whether it matches a newline depends on the dotAll
// setting in effect where it is compiled, which is only known once the AST
// is walked with its group-flag context (compile.go), not at parse time.
type dotNode struct{}

// parser is a recursive-descent parser over a pattern's rune sequence,
// spec.md §4.H's grammar: "alternation of branches; each branch is a
// sequence of pieces; a piece is an atom optionally followed by a
// quantifier".
type parser struct {
	src      []rune
	pos      int
	captures int
}

// parse compiles pattern's grammar into an AST node and reports how many
// capturing groups it contains.
func parse(pattern string) (node, int, error) {
	p := &parser{src: []rune(pattern)}
	n, err := p.parseAlt()
	if err != nil {
		return nil, 0, err
	}
	if p.pos != len(p.src) {
		return nil, 0, fmt.Errorf("rexel: unexpected %q at position %d", p.peek(), p.pos)
	}
	return n, p.captures, nil
}

func (p *parser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() rune {
	r := p.peek()
	p.pos++
	return r
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) parseAlt() (node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.peek() != '|' {
		return first, nil
	}
	branches := []node{first}
	for p.peek() == '|' {
		p.next()
		n, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, n)
	}
	return &altNode{branches: branches}, nil
}

func (p *parser) parseConcat() (node, error) {
	var items []node
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		piece, err := p.parsePiece()
		if err != nil {
			return nil, err
		}
		items = append(items, piece)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &concatNode{items: items}, nil
}

func (p *parser) parsePiece() (node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	switch p.peek() {
	case '*':
		p.next()
		return p.maybeLazy(&repeatNode{body: atom, min: 0, max: -1}), nil
	case '+':
		p.next()
		return p.maybeLazy(&repeatNode{body: atom, min: 1, max: -1}), nil
	case '?':
		p.next()
		return p.maybeLazy(&repeatNode{body: atom, min: 0, max: 1}), nil
	case '{':
		return p.parseBraceQuant(atom)
	}
	return atom, nil
}

func (p *parser) maybeLazy(r *repeatNode) node {
	if p.peek() == '?' {
		p.next()
		r.lazy = true
	}
	return r
}

func (p *parser) parseBraceQuant(atom node) (node, error) {
	start := p.pos
	p.next() // '{'
	min, ok := p.parseInt()
	if !ok {
		p.pos = start
		return atom, nil
	}
	max := min
	if p.peek() == ',' {
		p.next()
		if p.peek() == '}' {
			max = -1
		} else if n, ok := p.parseInt(); ok {
			max = n
		} else {
			p.pos = start
			return atom, nil
		}
	}
	if p.peek() != '}' {
		p.pos = start
		return atom, nil
	}
	p.next()
	return p.maybeLazy(&repeatNode{body: atom, min: min, max: max}), nil
}

func (p *parser) parseInt() (int, bool) {
	start := p.pos
	for p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *parser) parseAtom() (node, error) {
	switch r := p.peek(); {
	case r == '(':
		return p.parseGroup()
	case r == '[':
		return p.parseClass()
	case r == '.':
		p.next()
		return &dotNode{}, nil
	case r == '^':
		p.next()
		return &assertNode{flag: assertSOL}, nil
	case r == '$':
		p.next()
		if d := p.peek(); d >= '1' && d <= '9' {
			n := 0
			for p.peek() >= '0' && p.peek() <= '9' {
				n = n*10 + int(p.next()-'0')
			}
			return &backrefNode{n: n}, nil
		}
		return &assertNode{flag: assertEOL}, nil
	case r == '\\':
		return p.parseEscape()
	case r == 0 && p.eof():
		return nil, fmt.Errorf("rexel: unexpected end of pattern")
	default:
		p.next()
		return &litNode{r: r}, nil
	}
}

func (p *parser) parseGroup() (node, error) {
	p.next() // '('
	g := &groupNode{}
	if p.peek() == '?' {
		p.next()
		flags, err := p.parseGroupFlags()
		if err != nil {
			return nil, err
		}
		g.caseFold, g.dotAll, g.lax = flags.caseFold, flags.dotAll, flags.lax
	} else {
		p.captures++
		g.capture = p.captures
	}
	body, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if p.peek() != ')' {
		return nil, fmt.Errorf("rexel: unterminated group at position %d", p.pos)
	}
	p.next()
	g.body = body
	return g, nil
}

type groupFlags struct {
	caseFold *bool
	dotAll   *bool
	lax      *bool
}

// parseGroupFlags reads the flag letters after "(?" up to and including the
// ':' that introduces the group body (spec.md §4.H "grouped sub-regex with
// optional ? flag prefix controlling case, lax, single-line, and capture
// disablement"). ':' alone (no letters) is a plain non-capturing group.
func (p *parser) parseGroupFlags() (groupFlags, error) {
	var f groupFlags
	t, fv := true, false
	for {
		switch p.peek() {
		case ':':
			p.next()
			return f, nil
		case 'i':
			p.next()
			f.caseFold = &t
		case 'I':
			p.next()
			f.caseFold = &fv
		case 's':
			p.next()
			f.dotAll = &t
		case 'S':
			p.next()
			f.dotAll = &fv
		case 'l':
			p.next()
			f.lax = &t
		case 'L':
			p.next()
			f.lax = &fv
		default:
			return f, fmt.Errorf("rexel: unknown group flag %q at position %d", p.peek(), p.pos)
		}
	}
}

func (p *parser) parseClass() (node, error) {
	p.next() // '['
	set := &charSet{}
	if p.peek() == '^' {
		p.next()
		set.negate = true
	}
	first := true
	for p.peek() != ']' || first {
		if p.eof() {
			return nil, fmt.Errorf("rexel: unterminated character class")
		}
		first = false
		lo, err := p.parseClassAtom(set)
		if err != nil {
			return nil, err
		}
		if lo == -1 {
			continue // a mnemonic shorthand already added its own ranges
		}
		hi := lo
		if p.peek() == '-' && p.pos+1 < len(p.src) && p.src[p.pos+1] != ']' {
			p.next()
			h, err := p.parseClassAtom(set)
			if err != nil {
				return nil, err
			}
			hi = h
		}
		set.add(lo, hi)
	}
	p.next() // ']'
	set.normalize()
	return &classNode{set: set}, nil
}

// parseClassAtom reads one character-class member. It returns -1 if the
// member was a mnemonic shorthand (\d, \w, \s, ...) whose ranges it already
// merged into set directly, rather than a single rune to be range-paired by
// the caller.
func (p *parser) parseClassAtom(set *charSet) (rune, error) {
	if p.peek() != '\\' {
		return p.next(), nil
	}
	p.next() // '\\'
	r := p.next()
	switch r {
	case 'd':
		set.addSet(digitSet())
		return -1, nil
	case 'w':
		set.addSet(wordSet())
		return -1, nil
	case 's':
		set.addSet(spaceSet())
		return -1, nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'x':
		return p.parseHex(2), nil
	case 'u':
		return p.parseHex(4), nil
	default:
		return r, nil
	}
}

func (p *parser) parseHex(digits int) rune {
	start := p.pos
	end := start + digits
	if end > len(p.src) {
		end = len(p.src)
	}
	n, err := strconv.ParseInt(string(p.src[start:end]), 16, 32)
	if err != nil {
		return 0
	}
	p.pos = end
	return rune(n)
}

// parseEscape handles a backslash sequence outside a character class:
// mnemonic classes, assertions, back-references, and escaped literals
// (spec.md §4.H "backslash escapes for mnemonic specials... point,
// word-break/not, hex/octal/unicode literals, POSIX-style classes, case
// classes").
func (p *parser) parseEscape() (node, error) {
	p.next() // '\\'
	if p.eof() {
		return nil, fmt.Errorf("rexel: dangling backslash")
	}
	r := p.next()
	switch r {
	case 'd':
		return &classNode{set: digitSet()}, nil
	case 'D':
		s := digitSet()
		s.negate = true
		return &classNode{set: s}, nil
	case 'w':
		return &classNode{set: wordSet()}, nil
	case 'W':
		s := wordSet()
		s.negate = true
		return &classNode{set: s}, nil
	case 's':
		return &classNode{set: spaceSet()}, nil
	case 'S':
		s := spaceSet()
		s.negate = true
		return &classNode{set: s}, nil
	case 'b':
		return &assertNode{flag: assertWBRK}, nil
	case 'B':
		return &assertNode{flag: assertNOWBRK}, nil
	case 'A':
		return &assertNode{flag: assertSOD}, nil
	case 'Z':
		return &assertNode{flag: assertEOD}, nil
	case 'p':
		return &assertNode{flag: assertPoint}, nil
	case 'n':
		return &litNode{r: '\n'}, nil
	case 't':
		return &litNode{r: '\t'}, nil
	case 'r':
		return &litNode{r: '\r'}, nil
	case 'x':
		return &litNode{r: p.parseHex(2)}, nil
	case 'u':
		return &litNode{r: p.parseHex(4)}, nil
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := int(r - '0')
		for p.peek() >= '0' && p.peek() <= '9' {
			n = n*10 + int(p.next()-'0')
		}
		return &backrefNode{n: n}, nil
	default:
		return &litNode{r: r}, nil
	}
}
