// Package selection implements the selection:claim/commit/discard protocol
// spec.md §6 describes: a pane may claim ownership of "the selection",
// another pane may later commit (prompting the owner to publish its
// content) or discard (only the current owner may). It is built directly on
// pkg/dispatch's Context/Result and pkg/pane's ancestor-walk, the same way
// pkg/dispatch/wellknown.go composes a command out of the two packages.
package selection

import (
	"github.com/neil-edlib/edlib/pkg/dispatch"
	"github.com/neil-edlib/edlib/pkg/keymap"
	"github.com/neil-edlib/edlib/pkg/pane"
)

// Tracker holds the selection's current owner and its fallback owner. Owner
// references are weak: ownership is a peer relationship, not a parental one
// (spec.md §9 "Weak references to peer panes"), so a closed owner is treated
// as no owner rather than dereferenced.
type Tracker struct {
	owner    *pane.Pane
	fallback *pane.Pane
}

// New returns a Tracker with no current owner.
func New() *Tracker {
	return &Tracker{}
}

// Claim handles selection:claim: ctx.Home becomes the selection owner. If
// ctx.Num == 1, ctx.Home is also installed as the fallback owner, restored
// by Discard once the new owner relinquishes it (spec.md §6).
func (t *Tracker) Claim(ctx *dispatch.Context) dispatch.Result {
	t.owner = ctx.Home
	if ctx.Num == 1 {
		t.fallback = ctx.Home
	}
	return dispatch.Result(1)
}

// Commit handles selection:commit: the current owner is asked, via
// Notify:selection:content, to publish its content into ctx before Commit
// itself returns. Delivery is synchronous (spec.md §9 Open Question,
// decided in DESIGN.md as a hard contract): Commit does not return until the
// owner's handler has run and written the content.
func (t *Tracker) Commit(ctx *dispatch.Context) dispatch.Result {
	owner := t.currentOwner()
	if owner == nil {
		return dispatch.Efalse
	}
	res := pane.Walk(owner, "Notify:selection:content", ctx, 0)
	if res == 0 {
		return dispatch.Efalse
	}
	return dispatch.Result(res)
}

// Discard handles selection:discard: it succeeds only if ctx.Home is the
// current owner (spec.md §6 "succeeding only if the caller owns it"),
// restoring whatever fallback owner was installed at Claim time.
func (t *Tracker) Discard(ctx *dispatch.Context) dispatch.Result {
	owner := t.currentOwner()
	if owner == nil || owner != ctx.Home {
		return dispatch.Efalse
	}
	if t.owner == t.fallback {
		t.fallback = nil
	}
	t.owner = t.fallback
	return dispatch.Result(1)
}

// currentOwner resolves the weak owner reference, falling back (and then
// clearing entirely) across any owner that has since closed.
func (t *Tracker) currentOwner() *pane.Pane {
	if t.owner != nil && t.owner.Closed() {
		t.owner = nil
	}
	if t.owner == nil && t.fallback != nil {
		if t.fallback.Closed() {
			t.fallback = nil
		} else {
			t.owner = t.fallback
		}
	}
	return t.owner
}

// Owner reports the current selection owner, or nil if there is none.
func (t *Tracker) Owner() *pane.Pane {
	return t.currentOwner()
}

// Register installs claim/commit/discard on h under the reserved
// selection:* command names (spec.md §6), dispatching each to t.
func Register(h *keymap.Map, t *Tracker) {
	h.SetExact("selection:claim", dispatch.Wrap(t.Claim))
	h.SetExact("selection:commit", dispatch.Wrap(t.Commit))
	h.SetExact("selection:discard", dispatch.Wrap(t.Discard))
}
