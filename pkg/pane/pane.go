// Package pane implements the pane tree (spec component C) and the
// notification bus that rides along with it (spec component G, see
// notify.go) — panes own the notifier/notifiee lists per spec.md §3/§4.G.
package pane

import (
	"sync"

	"github.com/neil-edlib/edlib/pkg/attr"
	"github.com/neil-edlib/edlib/pkg/keymap"
)

// Damage bits, spec.md §4.C. Postorder bits are cleared top-down during
// Refresh; the rest are cleared bottom-up.
type Damage uint32

const (
	DamageSize      Damage = 1 << iota // this pane was resized
	DamageSizeChild                    // an ancestor was resized (top-down propagation of Size)
	DamageContent                      // this pane's content changed
	DamageViewChild                    // an ancestor's content changed (top-down propagation of Content)
	DamageCursor                       // this pane's cursor moved
	DamageView                         // this pane's view changed
	DamageChild                        // some descendant is damaged; propagates up
	DamagePostorder                    // this pane's Refresh runs after its children's
	DamageClosed                       // pane is closed, awaiting reclaim
)

// Cursor is a pane-relative cursor position. Present reports whether the
// pane currently has a cursor (spec.md §3: "cursor-relative position (cx,
// cy) or absent").
type Cursor struct {
	X, Y    int
	Present bool
}

// Pane is a node in the pane tree.
type Pane struct {
	parent   *Pane
	children []*Pane

	// Position relative to parent, and size.
	X, Y int
	W, H int

	z       int
	zLo, zHi int // absolute z interval, covers every descendant's z

	cursor Cursor

	damage Damage

	Handler *keymap.Map
	Data    any
	Attrs   *attr.Set

	focus *Pane

	notifiers []notifierEntry // this pane publishes to these subscribers
	notifiees []notifieeEntry // this pane subscribes to these publishers

	closed bool

	root *Root
}

// Root owns the tree's deferred-free list (spec.md §3 "Lifecycle", §5
// "Shared resource policy"). Closing a pane from inside its own handler is
// safe because the pane is only unlinked immediately; its storage is
// reclaimed by Root.Sweep at the next tick.
type Root struct {
	pane    *Pane
	toDrop  []*Pane
	mu      sync.Mutex
	visitID uint64
}

// NewRoot creates the tree's root pane. The root has no parent; Pane.Close
// has no special case for it.
func NewRoot() *Root {
	r := &Root{}
	p := &Pane{
		W: 0, H: 0,
		Attrs: attr.New(),
		root:  r,
	}
	r.pane = p
	return r
}

// Pane returns the root pane of the tree.
func (r *Root) Pane() *Pane { return r.pane }

// nextVisitID returns a token used by the notification bus to guard
// re-entrant iteration (spec.md §4.G, §9 "notifier skip-and-reap").
func (r *Root) nextVisitID() uint64 {
	r.visitID++
	return r.visitID
}

// Register creates a new child pane under parent (spec.md §3 "Lifecycle:
// created by explicit registration under a parent").
func Register(parent *Pane, z int, h *keymap.Map, data any) *Pane {
	p := &Pane{
		parent:  parent,
		z:       z,
		zLo:     z,
		zHi:     z,
		Handler: h,
		Data:    data,
		Attrs:   attr.New(),
		root:    parent.root,
	}
	parent.children = append(parent.children, p)
	parent.recomputeZRange()
	parent.Damage(DamageChild)
	return p
}

// Root reports the Root this pane belongs to.
func (p *Pane) Root() *Root { return p.root }

// Parent returns the pane's parent, or nil for the root.
func (p *Pane) Parent() *Pane { return p.parent }

// Children returns the pane's children in registration order. Callers must
// not mutate the returned slice.
func (p *Pane) Children() []*Pane { return p.children }

// Z returns the pane's z-order value among its siblings.
func (p *Pane) Z() int { return p.z }

// ZRange returns the absolute z interval covering this pane and every
// descendant (spec.md §3 invariant).
func (p *Pane) ZRange() (lo, hi int) { return p.zLo, p.zHi }

func (p *Pane) recomputeZRange() {
	lo, hi := p.z, p.z
	for _, c := range p.children {
		if c.zLo < lo {
			lo = c.zLo
		}
		if c.zHi > hi {
			hi = c.zHi
		}
	}
	changed := lo != p.zLo || hi != p.zHi
	p.zLo, p.zHi = lo, hi
	if changed && p.parent != nil {
		p.parent.recomputeZRange()
	}
}

// Resize updates the pane's position and size (spec.md §4.C "resize
// (x,y,w,h)"). It marks DamageSize, which propagates top-down to
// descendants.
func (p *Pane) Resize(x, y, w, h int) {
	p.X, p.Y, p.W, p.H = x, y, w, h
	p.Damage(DamageSize)
	if p.cursor.Present && !p.cursorInBounds() {
		p.cursor.Present = false
	}
}

func (p *Pane) cursorInBounds() bool {
	return p.cursor.X >= 0 && p.cursor.X < p.W && p.cursor.Y >= 0 && p.cursor.Y < p.H
}

// SetCursor sets the pane-relative cursor position. Per spec.md §3's
// invariant ("cursor position, when present, lies within pane bounds"),
// setting a position outside the pane's bounds clears it instead.
func (p *Pane) SetCursor(x, y int) {
	p.cursor = Cursor{X: x, Y: y, Present: true}
	if !p.cursorInBounds() {
		p.cursor.Present = false
	}
	p.Damage(DamageCursor)
}

// ClearCursor removes the pane's cursor.
func (p *Pane) ClearCursor() {
	if p.cursor.Present {
		p.cursor = Cursor{}
		p.Damage(DamageCursor)
	}
}

// GetCursor returns the pane's cursor, if any.
func (p *Pane) GetCursor() Cursor { return p.cursor }

// AbsXY translates a point in p's local coordinates to absolute (root)
// coordinates by walking up the tree (spec.md §4.C "absolute-coordinate
// translation up the tree").
func (p *Pane) AbsXY(x, y int) (int, int) {
	for cur := p; cur != nil; cur = cur.parent {
		x += cur.X
		y += cur.Y
	}
	return x, y
}

// Closed reports whether Close has been called on this pane.
func (p *Pane) Closed() bool { return p.closed }
