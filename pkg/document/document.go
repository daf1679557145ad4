// Package document defines the document contract (spec component E): the
// fixed vocabulary a concrete document type must implement to host a
// pkg/mark mark list.
//
// This package does not wire doc:* command strings to a pane's keymap, and
// no other package in this module does either: callers such as
// internal/tui call the Document methods below directly. A
// Document only needs to exist independently of any pane to be testable on
// its own, the way the mark ordering law is tested against a bare *mark.Doc.
package document

import (
	"github.com/neil-edlib/edlib/pkg/attr"
	"github.com/neil-edlib/edlib/pkg/mark"
)

// EOD is the sentinel Step/CharAt return when there is no character to
// cross in the requested direction (spec.md §4.E "an end-of-document
// sentinel").
const EOD = rune(-1)

// Document is the fixed vocabulary spec.md §4.E requires: step, char-at,
// set-ref, get-attr, replace, save, request-notify, and doc:content
// streaming, plus the bookkeeping spec.md says a document maintains (mark
// list head, view table, attribute set, name, autoclose/readonly flags).
type Document interface {
	// Name is this document's display/identifying name (e.g. a file path).
	Name() string

	// Marks returns the document's mark list and view table.
	Marks() *mark.Doc

	// Attrs returns the document-level attribute set.
	Attrs() *attr.Set

	// Flags reports the autoclose/readonly flags spec.md §4.E names.
	ReadOnly() bool
	AutoClose() bool

	// Step advances (forward=true) or retreats (forward=false) m by one
	// code point. If move is true, m itself is relocated past the crossed
	// character; if false, m is left in place and only the character is
	// reported (a peek). Returns EOD if there is no character to cross.
	Step(m *mark.Mark, forward, move bool) rune

	// CharAt reports the code point immediately before (forward=false) or
	// after (forward=true) m, without moving m. Returns EOD at a boundary.
	CharAt(m *mark.Mark, forward bool) rune

	// SetRef relocates m to the document's first position (end=false) or
	// one-past-the-last position (end=true).
	SetRef(m *mark.Mark, end bool)

	// GetAttr returns a document attribute visible at m's position, falling
	// back to the document-level attribute set if m carries no override.
	GetAttr(m *mark.Mark, key string) (string, bool)

	// Replace deletes the text between start and end (start must be at or
	// before end) and inserts text in its place. Marks inside the replaced
	// range are relocated to the start of the inserted text; marks after
	// the range shift to stay at the same logical content (spec.md §5
	// "mark updates triggered by an edit complete before replace
	// returns").
	Replace(start, end *mark.Mark, text string) error

	// Save persists the document's content. A document with no backing
	// store (memdoc) is a no-op.
	Save() error

	// RequestNotify records that name should be delivered via the
	// document's own notification bus the next time it changes (spec.md
	// §6 "a subscriber requests them via doc:request:<name>"). The actual
	// pane-level subscription bookkeeping lives in pkg/pane; this just lets
	// a document decide whether it needs to compute the notification's
	// payload at all.
	RequestNotify(name string)

	// Content streams the document from m to the end (or until fn returns
	// false), calling fn once per code point with a fresh mark at that
	// code point's position (spec.md §6 "doc:content").
	Content(from *mark.Mark, fn func(r rune, at *mark.Mark) bool)
}
