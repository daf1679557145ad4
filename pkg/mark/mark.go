// Package mark implements the mark and view subsystem (spec component D):
// an ordered collection of position markers into a document, grouped by
// view, kept in a single ref-ordered linked list with an O(1) total-order
// test via a monotonic sequence number.
//
// The mark subsystem does not know what a Ref *means* — that is the
// document's business (spec.md §3 "ref is an opaque document-defined
// location") — so a Doc is constructed with a Compare function supplied by
// the hosting document, and every ordering decision funnels through it.
package mark

import "github.com/neil-edlib/edlib/pkg/attr"

// Ref is an opaque document-defined location. Documents define their own
// concrete type (a byte offset, a rope node, ...); the mark subsystem only
// ever calls the Doc's Compare function on two Refs, never inspects them.
type Ref any

// Reserved view numbers, spec.md §3.
const (
	ViewUngrouped = -2
	ViewPoint     = -1
)

// Mark is a (ref, seq, viewnum, attrs) tuple (spec.md §3). A Mark with
// viewnum == ViewPoint is a point: it additionally owns one hidden thread
// Mark per existing view (see threads in doc.go), each kept at the point's
// current ref within that view's sublist.
type Mark struct {
	ref     Ref
	seq     int64
	viewnum int
	Attrs   *attr.Set

	doc *Doc

	prev, next         *Mark // global, ref-ordered list
	viewPrev, viewNext *Mark // this mark's view sublist, nil if not in one

	ownerPoint *Mark          // set on a hidden per-view thread entry
	threads    map[int]*Mark // set on a point: viewnum -> its thread entry
}

// Ref returns the mark's current document position.
func (m *Mark) Ref() Ref { return m.ref }

// Seq returns the mark's current sequence number. Two marks' relative
// document order can always be recovered from Seq in O(1) (spec.md §4.D).
func (m *Mark) Seq() int64 { return m.seq }

// ViewNum returns the view this mark belongs to, or ViewUngrouped/ViewPoint.
func (m *Mark) ViewNum() int { return m.viewnum }

// IsPoint reports whether m is a point (a movable cursor with per-view
// threads), as opposed to an ordinary mark.
func (m *Mark) IsPoint() bool { return m.viewnum == ViewPoint && m.ownerPoint == nil }

// Order reports the document-order relationship between a and b: negative
// if a precedes b, zero if they have the same seq, positive if a follows
// b. This is the O(1) order test required by spec.md §4.D and exercised by
// the mark ordering law (spec.md §8 property 1).
func Order(a, b *Mark) int {
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}
