package dispatch

import "github.com/neil-edlib/edlib/pkg/mark"

// MoveFunc attempts to move m one step in the given direction, reporting
// whether the position actually changed.
type MoveFunc func(m *mark.Mark, forward bool) bool

// MoveViewLarge implements the Move-View-Large retry semantics resolved in
// DESIGN.md (spec.md §9 Open Question): a "page" movement that fails to
// advance the point retries exactly once from the opposite edge of the
// view, then reports Efalse if that also makes no progress. This is the
// behaviour a view's scroll-by-page handler should compose with its own
// move implementation.
func MoveViewLarge(m *mark.Mark, forward bool, move MoveFunc) Result {
	if move(m, forward) {
		return Result(1)
	}
	if move(m, !forward) {
		return Result(1)
	}
	return Efalse
}
