package mark

import "github.com/neil-edlib/edlib/pkg/attr"

// seqGap is the spacing left between two neighbouring marks' sequence
// numbers when there is room to spare. When an insertion leaves no room
// (spec.md §9 "Renumbering is amortised O(1) per insertion"), the whole
// list is renumbered with this gap restored throughout.
const seqGap = 1 << 16

// Doc holds one document's mark list: the global ref-ordered linked list,
// one sublist per view, and the point registry needed to keep every
// point's per-view threads in sync (spec.md §3 "View").
type Doc struct {
	compare func(a, b Ref) int

	head *Mark // lowest-ref mark, nil if the document has no marks

	viewHeads map[int]*Mark
	nextView  int

	points map[*Mark]bool
}

// NewDoc creates an empty mark list for a document. compare must impose a
// total order over the document's Ref type consistent with document
// position — the mark subsystem never inspects a Ref itself.
func NewDoc(compare func(a, b Ref) int) *Doc {
	return &Doc{
		compare:   compare,
		viewHeads: make(map[int]*Mark),
		points:    make(map[*Mark]bool),
	}
}

// AddView allocates a new, empty view and returns its number (spec.md §4.D
// "View allocation. Monotonic indices within a document").
func (d *Doc) AddView() int {
	v := d.nextView
	d.nextView++
	d.viewHeads[v] = nil
	return v
}

// DelView frees every mark still in view v's sublist and removes the view.
// Permitted only by the view's owner pane per spec.md §4.D — callers are
// expected to have already checked ownership.
func (d *Doc) DelView(v int) {
	for m := d.viewHeads[v]; m != nil; {
		next := m.viewNext
		d.Free(m)
		m = next
	}
	delete(d.viewHeads, v)
}

// insertSorted splices m into the global list in ref order, starting the
// scan from hint (or the head, if hint is nil) — most edits happen near a
// mark the caller already has in hand, so this is typically near-O(1).
func (d *Doc) insertSorted(m *Mark, hint *Mark) {
	cur := hint
	if cur == nil {
		cur = d.head
	}
	if cur == nil {
		d.head, m.prev, m.next = m, nil, nil
		return
	}

	if d.compare(m.ref, cur.ref) < 0 {
		for cur.prev != nil && d.compare(m.ref, cur.prev.ref) < 0 {
			cur = cur.prev
		}
		m.prev, m.next = cur.prev, cur
		if cur.prev != nil {
			cur.prev.next = m
		} else {
			d.head = m
		}
		cur.prev = m
	} else {
		for cur.next != nil && d.compare(m.ref, cur.next.ref) >= 0 {
			cur = cur.next
		}
		m.prev, m.next = cur, cur.next
		if cur.next != nil {
			cur.next.prev = m
		}
		cur.next = m
	}
}

// unlinkGlobal removes m from the global list without touching its view
// sublist membership.
func (d *Doc) unlinkGlobal(m *Mark) {
	if m.prev != nil {
		m.prev.next = m.next
	} else if d.head == m {
		d.head = m.next
	}
	if m.next != nil {
		m.next.prev = m.prev
	}
	m.prev, m.next = nil, nil
}

// assignSeq gives m a sequence number strictly between its current global
// neighbours (m.prev and m.next, already linked by insertSorted), renumbering
// the whole list first if no integer gap remains between them.
func (d *Doc) assignSeq(m *Mark) {
	lo, hi := seqBounds(m)
	if hi-lo < 2 {
		d.renumber()
		lo, hi = seqBounds(m)
	}
	m.seq = lo + (hi-lo)/2
}

// seqBounds returns the open interval m's seq must fall strictly inside,
// given m's current prev/next neighbours in the global list.
func seqBounds(m *Mark) (lo, hi int64) {
	switch {
	case m.prev != nil && m.next != nil:
		return m.prev.seq, m.next.seq
	case m.prev != nil:
		return m.prev.seq, m.prev.seq + 2*seqGap
	case m.next != nil:
		return m.next.seq - 2*seqGap, m.next.seq
	default:
		return 0, 2 * seqGap
	}
}

// renumber reassigns every mark (and point thread) a seq spaced seqGap
// apart, preserving relative order. Amortised O(1) per insertion (spec.md
// §9) since it only runs when a gap has been exhausted.
func (d *Doc) renumber() {
	var i int64
	for m := d.head; m != nil; m = m.next {
		m.seq = i * seqGap
		i++
	}
}

func (d *Doc) linkIntoView(m *Mark) {
	if m.viewnum < 0 {
		return
	}
	var prev, next *Mark
	for cur := m.prev; cur != nil; cur = cur.prev {
		if cur.viewnum == m.viewnum {
			prev = cur
			break
		}
	}
	for cur := m.next; cur != nil; cur = cur.next {
		if cur.viewnum == m.viewnum {
			next = cur
			break
		}
	}
	m.viewPrev, m.viewNext = prev, next
	if prev != nil {
		prev.viewNext = m
	} else {
		d.viewHeads[m.viewnum] = m
	}
	if next != nil {
		next.viewPrev = m
	}
}

func (d *Doc) unlinkFromView(m *Mark) {
	if m.viewPrev != nil {
		m.viewPrev.viewNext = m.viewNext
	} else if d.viewHeads[m.viewnum] == m {
		d.viewHeads[m.viewnum] = m.viewNext
	}
	if m.viewNext != nil {
		m.viewNext.viewPrev = m.viewPrev
	}
	m.viewPrev, m.viewNext = nil, nil
}

// newMark is the shared constructor for ordinary marks, points, and point
// view-threads.
func (d *Doc) newMark(ref Ref, viewnum int, hint *Mark) *Mark {
	m := &Mark{ref: ref, viewnum: viewnum, doc: d, Attrs: attr.New()}
	d.insertSorted(m, hint)
	d.assignSeq(m)
	d.linkIntoView(m)
	return m
}

// NewMark creates an ungrouped mark at ref (viewnum ViewUngrouped), or in
// view v if v >= 0. hint, if non-nil, is a nearby existing mark to start
// the positional search from.
func NewMark(d *Doc, ref Ref, viewnum int, hint *Mark) *Mark {
	return d.newMark(ref, viewnum, hint)
}

// NewPoint creates a point at ref: a mark of viewnum ViewPoint that
// additionally carries a hidden thread into every view currently open on
// the document (spec.md §3 "Points").
func NewPoint(d *Doc, ref Ref, hint *Mark) *Mark {
	p := d.newMark(ref, ViewPoint, hint)
	p.threads = make(map[int]*Mark)
	for v := range d.viewHeads {
		thread := d.newMark(ref, v, p)
		thread.ownerPoint = p
		p.threads[v] = thread
	}
	d.points[p] = true
	return p
}

// Dup creates a new mark at the same ref as m, in the same view, ordered
// after m and after every other mark already at that ref.
func Dup(m *Mark) *Mark {
	return m.doc.newMark(m.ref, m.viewnum, m)
}

// Free removes m from the document's mark list (global and view). Freeing
// a point also frees its per-view threads.
func (d *Doc) Free(m *Mark) {
	if m.IsPoint() {
		for _, th := range m.threads {
			d.unlinkFromView(th)
			d.unlinkGlobal(th)
		}
		delete(d.points, m)
	}
	d.unlinkFromView(m)
	d.unlinkGlobal(m)
}

// MoveTo relocates m to newRef, re-sequencing it so the ordering law keeps
// holding (spec.md §8 property 1). If m is a point, every per-view thread
// is moved to newRef as well (spec.md §3 "Moving a point updates every
// thread").
func (d *Doc) MoveTo(m *Mark, newRef Ref) {
	d.unlinkFromView(m)
	d.unlinkGlobal(m)
	m.ref = newRef
	d.insertSorted(m, nil)
	d.assignSeq(m)
	d.linkIntoView(m)

	if m.IsPoint() {
		for _, th := range m.threads {
			d.unlinkFromView(th)
			d.unlinkGlobal(th)
			th.ref = newRef
			d.insertSorted(th, m)
			d.assignSeq(th)
			d.linkIntoView(th)
		}
	}
}

// MoveToMark relocates m to sit at target's current ref, after target and
// after every other mark already at that ref in document order.
func MoveToMark(m, target *Mark) {
	m.doc.unlinkFromView(m)
	m.doc.unlinkGlobal(m)
	m.ref = target.ref
	m.doc.insertSorted(m, target)
	m.doc.assignSeq(m)
	m.doc.linkIntoView(m)
}

// SameRef reports whether a and b sit at the same document position.
func SameRef(a, b *Mark) bool {
	return a.doc.compare(a.ref, b.ref) == 0
}

// First returns the first (lowest-ref) mark in view v, or nil.
func (d *Doc) First(v int) *Mark { return d.viewHeads[v] }

// FirstAny returns the lowest-ref mark across the whole document,
// regardless of view — used by whole-document walks like a document's
// Replace, which must relocate every live mark, not just one view's.
func (d *Doc) FirstAny() *Mark { return d.head }

// Last returns the last (highest-ref) mark in view v, or nil.
func (d *Doc) Last(v int) *Mark {
	m := d.viewHeads[v]
	if m == nil {
		return nil
	}
	for m.viewNext != nil {
		m = m.viewNext
	}
	return m
}

// Next returns the next mark after m within m's own view, or nil.
func Next(m *Mark) *Mark { return m.viewNext }

// Prev returns the mark before m within m's own view, or nil.
func Prev(m *Mark) *Mark { return m.viewPrev }

// NextAny returns the next mark after m in the whole document (any view),
// or nil — used by doc:content and similar whole-document walks.
func NextAny(m *Mark) *Mark { return m.next }

// PrevAny returns the mark before m in the whole document (any view).
func PrevAny(m *Mark) *Mark { return m.prev }

// AtOrBefore returns the last mark in view v whose ref is <= ref, or nil if
// every mark in v is after ref.
func (d *Doc) AtOrBefore(v int, ref Ref) *Mark {
	var found *Mark
	for m := d.viewHeads[v]; m != nil; m = m.viewNext {
		if d.compare(m.ref, ref) <= 0 {
			found = m
		} else {
			break
		}
	}
	return found
}

// ClipView detaches from view v's sublist (without freeing) every mark
// whose ref falls within [lo, hi) — used when a region of the view becomes
// hidden, e.g. by folding (spec.md §4.D "clip marks in a range").
func (d *Doc) ClipView(v int, lo, hi Ref) {
	m := d.viewHeads[v]
	for m != nil {
		next := m.viewNext
		if d.compare(m.ref, lo) >= 0 && d.compare(m.ref, hi) < 0 {
			d.unlinkFromView(m)
		}
		m = next
	}
}
