package document

import (
	"strings"

	"github.com/neil-edlib/edlib/pkg/attr"
	"github.com/neil-edlib/edlib/pkg/mark"
)

// offsetRef is a memdoc position: a rune offset into buf. memdoc is the
// simplest possible mark.Ref implementation, analogous to the teacher's
// plain-struct worktree.Worktree: scaffolding the rest of the package is
// built and tested against, not an editor feature in its own right.
type offsetRef int

func compareOffsets(a, b mark.Ref) int {
	ao, bo := a.(offsetRef), b.(offsetRef)
	switch {
	case ao < bo:
		return -1
	case ao > bo:
		return 1
	default:
		return 0
	}
}

var _ Document = (*Memdoc)(nil)

// Memdoc is a minimal in-memory document: a rune slice plus the mark
// bookkeeping spec.md §4.E requires. It exists to give pkg/mark and
// pkg/dispatch something concrete to operate on; it is not itself a
// specified feature.
type Memdoc struct {
	name string
	buf  []rune

	marks *mark.Doc
	attrs *attr.Set

	readOnly  bool
	autoClose bool

	requested map[string]bool
}

// NewMemdoc creates an empty (or seeded, if text is non-empty) in-memory
// document named name.
func NewMemdoc(name, text string) *Memdoc {
	d := &Memdoc{
		name:      name,
		buf:       []rune(text),
		marks:     mark.NewDoc(compareOffsets),
		attrs:     attr.New(),
		requested: make(map[string]bool),
	}
	return d
}

func (d *Memdoc) Name() string         { return d.name }
func (d *Memdoc) Marks() *mark.Doc     { return d.marks }
func (d *Memdoc) Attrs() *attr.Set     { return d.attrs }
func (d *Memdoc) ReadOnly() bool       { return d.readOnly }
func (d *Memdoc) AutoClose() bool      { return d.autoClose }
func (d *Memdoc) SetReadOnly(v bool)   { d.readOnly = v }
func (d *Memdoc) SetAutoClose(v bool)  { d.autoClose = v }

func (d *Memdoc) off(m *mark.Mark) int { return int(m.Ref().(offsetRef)) }

func (d *Memdoc) Step(m *mark.Mark, forward, move bool) rune {
	off := d.off(m)
	if forward {
		if off >= len(d.buf) {
			return EOD
		}
		r := d.buf[off]
		if move {
			d.marks.MoveTo(m, offsetRef(off+1))
		}
		return r
	}
	if off <= 0 {
		return EOD
	}
	r := d.buf[off-1]
	if move {
		d.marks.MoveTo(m, offsetRef(off-1))
	}
	return r
}

func (d *Memdoc) CharAt(m *mark.Mark, forward bool) rune {
	off := d.off(m)
	if forward {
		if off >= len(d.buf) {
			return EOD
		}
		return d.buf[off]
	}
	if off <= 0 {
		return EOD
	}
	return d.buf[off-1]
}

func (d *Memdoc) SetRef(m *mark.Mark, end bool) {
	if end {
		d.marks.MoveTo(m, offsetRef(len(d.buf)))
		return
	}
	d.marks.MoveTo(m, offsetRef(0))
}

func (d *Memdoc) GetAttr(m *mark.Mark, key string) (string, bool) {
	if m != nil {
		if v, ok := m.Attrs.Get(key); ok {
			return v, true
		}
	}
	return d.attrs.Get(key)
}

// Replace deletes [start,end) and inserts text in its place, then walks the
// global mark list once to relocate every affected mark (spec.md §5 "mark
// updates triggered by an edit complete before replace returns"). Marks
// strictly inside the deleted range collapse to the start of the inserted
// text; marks at or after the end of the deleted range shift by the size
// difference between the old and new text.
//
// Marks sitting exactly at lo — the one offset raw position comparison can't
// order, since the edit doesn't move the buffer on that side — fall back to
// seq, the same total order mark.Order runs on: left (the edit's near mark)
// and anything already ordered before it stay at lo; a mark strictly after
// left in document order rides along with the inserted text (spec.md §8
// scenario S1). left and its seq are captured before any mark moves, since
// left's own seq is reassigned by the very MoveTo that relocates it.
func (d *Memdoc) Replace(start, end *mark.Mark, text string) error {
	lo, hi := d.off(start), d.off(end)
	left := start
	if lo > hi {
		lo, hi = hi, lo
		left = end
	}
	leftSeq := left.Seq()

	ins := []rune(text)
	delta := len(ins) - (hi - lo)

	next := make([]rune, 0, len(d.buf)+delta)
	next = append(next, d.buf[:lo]...)
	next = append(next, ins...)
	next = append(next, d.buf[hi:]...)
	d.buf = next

	// Targets are computed in one walk before any mark moves: MoveTo
	// re-links a mark further along the list, where a walk still in
	// progress would reach it a second time.
	type move struct {
		m  *mark.Mark
		to int
	}
	var moves []move
	for m := d.marks.FirstAny(); m != nil; m = mark.NextAny(m) {
		mo := d.off(m)
		switch {
		case mo < lo:
			// strictly before the edit, untouched
		case mo == lo:
			if m.Seq() > leftSeq {
				moves = append(moves, move{m, lo + len(ins)})
			}
		case mo < hi:
			moves = append(moves, move{m, lo})
		default: // mo >= hi
			moves = append(moves, move{m, mo + delta})
		}
	}
	for _, mv := range moves {
		d.marks.MoveTo(mv.m, offsetRef(mv.to))
	}

	return nil
}

func (d *Memdoc) Save() error { return nil }

func (d *Memdoc) RequestNotify(name string) { d.requested[name] = true }

func (d *Memdoc) Content(from *mark.Mark, fn func(r rune, at *mark.Mark) bool) {
	off := d.off(from)
	for i := off; i < len(d.buf); i++ {
		at := mark.NewMark(d.marks, offsetRef(i), mark.ViewUngrouped, from)
		if !fn(d.buf[i], at) {
			return
		}
	}
}

// Text returns the document's full content, for tests and the front end's
// window view.
func (d *Memdoc) Text() string {
	var b strings.Builder
	b.Grow(len(d.buf))
	for _, r := range d.buf {
		b.WriteRune(r)
	}
	return b.String()
}

// NewPoint creates a point at offset off in d, for use by callers (the
// internal/tui windows) that need a mark handle into this document.
func (d *Memdoc) NewPoint(off int) *mark.Mark {
	return mark.NewPoint(d.marks, offsetRef(off), nil)
}

// NewMarkAt creates an ordinary mark at offset off, in view v (or
// mark.ViewUngrouped).
func (d *Memdoc) NewMarkAt(off, v int) *mark.Mark {
	return mark.NewMark(d.marks, offsetRef(off), v, nil)
}
