package tui

import (
	"github.com/neil-edlib/edlib/pkg/attr"
	"github.com/neil-edlib/edlib/pkg/dispatch"
	"github.com/neil-edlib/edlib/pkg/document"
	"github.com/neil-edlib/edlib/pkg/keymap"
	"github.com/neil-edlib/edlib/pkg/mark"
	"github.com/neil-edlib/edlib/pkg/pane"
)

// window is the pane.Pane.Data payload for one top-level editor window: a
// document plus the point that is this window's visible cursor, and a
// plain rune-offset mirror of that point (Memdoc's Ref type is
// package-private, so editing commands below track the offset themselves
// rather than recovering it from the mark). It is the same kind of plain
// scaffolding struct pkg/document.Memdoc itself is: something concrete for
// the pane-tree/dispatch machinery to operate on, not a specified feature.
type window struct {
	title  string
	doc    *document.Memdoc
	point  *mark.Mark
	cursor int

	scroll int // first visible line
}

// NewWindow registers a new window pane under parent, backed by a fresh
// Memdoc named title and seeded with text. The pane's keymap wires the
// Move-Char-*/Replace commands spec.md §6 reserves directly onto the
// document, the way a real document-hosting pane would.
func NewWindow(parent *pane.Pane, title, text string) *pane.Pane {
	doc := document.NewMemdoc(title, text)
	w := &window{title: title, doc: doc, point: doc.NewPoint(0)}

	h := keymap.New()
	p := pane.Register(parent, 0, h, w)
	registerWindowKeymap(h, w)
	p.Attrs.Set("title", title)
	return p
}

func registerWindowKeymap(h *keymap.Map, w *window) {
	h.SetExact("Move-Char-Forward", dispatch.Wrap(func(ctx *dispatch.Context) dispatch.Result {
		if w.doc.Step(w.point, true, true) == document.EOD {
			return dispatch.Efalse
		}
		w.cursor++
		return dispatch.Result(1)
	}))
	h.SetExact("Move-Char-Backward", dispatch.Wrap(func(ctx *dispatch.Context) dispatch.Result {
		if w.doc.Step(w.point, false, true) == document.EOD {
			return dispatch.Efalse
		}
		w.cursor--
		return dispatch.Result(1)
	}))
	h.SetExact("Replace", dispatch.Wrap(func(ctx *dispatch.Context) dispatch.Result {
		if err := w.doc.Replace(w.point, w.point, ctx.Str); err != nil {
			return dispatch.Efail
		}
		// Replace leaves its start mark before the inserted text.
		for range []rune(ctx.Str) {
			w.doc.Step(w.point, true, true)
		}
		w.cursor += len([]rune(ctx.Str))
		return dispatch.Result(1)
	}))
	h.SetExact("Backspace", dispatch.Wrap(func(ctx *dispatch.Context) dispatch.Result {
		if w.cursor == 0 {
			return dispatch.Efalse
		}
		start := w.doc.NewMarkAt(w.cursor-1, 0)
		end := w.doc.NewMarkAt(w.cursor, 0)
		if err := w.doc.Replace(start, end, ""); err != nil {
			return dispatch.Efail
		}
		w.cursor--
		return dispatch.Result(1)
	}))
}

// attrsOf is a small helper so callers outside this package (the dump
// command) can read a window pane's display attributes without reaching
// into pane.Pane.Data directly.
func attrsOf(p *pane.Pane) *attr.Set { return p.Attrs }
