// Package dispatch implements the dispatch engine (spec component F): it
// turns a Context into a walk up the pane ancestor chain, resolving
// fall-through, plus the reserved
// Result code taxonomy every handler returns (spec.md §7).
package dispatch

import (
	"github.com/neil-edlib/edlib/pkg/keymap"
	"github.com/neil-edlib/edlib/pkg/mark"
	"github.com/neil-edlib/edlib/pkg/pane"
)

// Result is a dispatch's return code (spec.md §7). Zero (Efallthrough)
// means "this handler chose not to act"; negative values at or below Enoarg
// denote an error kind; values >= 1 are success (a count, a boolean, or a
// generic "handled").
type Result int

// Reserved result codes, spec.md §6 "Return codes" / §7 "Taxonomy". The
// spec fixes Efallthrough=0 and Enoarg=-1000 and names the remaining kinds
// without assigning them values; this package assigns them contiguously
// below Enoarg, in the order spec.md §7 lists them (see DESIGN.md).
const (
	Efallthrough Result = 0
	Enoarg       Result = -1000
	Einval       Result = -1001
	Enosup       Result = -1002
	Efail        Result = -1003
	Efalse       Result = -1004
	Eunused      Result = -1005
)

// Func is a dispatch handler: it receives the Context a dispatch is
// carrying and returns a Result. Comm/Comm2 let it call back into the
// caller as a continuation (spec.md §4.F "Callbacks").
type Func func(ctx *Context) Result

// Context is the command context threaded through every dispatch (spec.md
// §3 "Command context").
type Context struct {
	Key   string    // the command being dispatched
	Home  *pane.Pane // the pane whose handler is currently running
	Focus *pane.Pane // the pane the caller addressed

	Num, Num2   int
	Mark, Mark2 *mark.Mark
	Str, Str2   string
	X, Y        int
	X2, Y2      int

	Comm  Func // caller-supplied continuation
	Comm2 Func // second caller-supplied continuation
}

// CallComm invokes ctx.Comm as a nested dispatch with its own context,
// returning Enosup if no continuation was supplied (spec.md §4.F
// "Callbacks... each call is itself a dispatch of a caller-supplied
// 'comm' with its own context").
func (ctx *Context) CallComm(inner *Context) Result {
	if ctx.Comm == nil {
		return Enosup
	}
	return ctx.Comm(inner)
}

// CallComm2 invokes ctx.Comm2 the same way.
func (ctx *Context) CallComm2(inner *Context) Result {
	if ctx.Comm2 == nil {
		return Enosup
	}
	return ctx.Comm2(inner)
}

// Wrap adapts a Func into a keymap.Handler, so dispatch handlers can be
// registered directly on a pane's keymap.Map (pkg/keymap has no knowledge
// of dispatch.Context; ctx travels through as interface{}, per
// keymap.Handler's doc comment).
func Wrap(f Func) keymap.Handler {
	return func(key string, raw any) int {
		ctx, ok := raw.(*Context)
		if !ok {
			return int(Einval)
		}
		return int(f(ctx))
	}
}

// Dispatch runs the ancestor-walk algorithm of spec.md §4.F starting from
// ctx.Focus: the topmost-from-focus ancestor (nearest to focus) whose
// keymap matches ctx.Key is invoked; a fall-through result re-runs the
// search from that pane's parent. ctx.Home is set to whichever pane's
// handler is actually invoked before each call, so a handler can tell
// which pane it is running as.
func Dispatch(ctx *Context) Result {
	for cur := ctx.Focus; cur != nil; cur = cur.Parent() {
		h, ok := cur.Handler.Lookup(ctx.Key)
		if !ok {
			continue
		}
		ctx.Home = cur
		res := Result(h(ctx.Key, ctx))
		if res != Efallthrough {
			return res
		}
	}
	return Efallthrough
}

// CoordDispatch is the coordinate-dispatch variant of spec.md §4.F: it
// first descends from target to the leaf-most non-occluded pane at (x,y),
// then runs the ordinary ancestor walk from there.
func CoordDispatch(target *pane.Pane, x, y int, ctx *Context) Result {
	leaf := pane.LeafAt(target, x, y)
	ctx.Focus = leaf
	return Dispatch(ctx)
}
