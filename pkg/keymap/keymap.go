// Package keymap implements the command registry / keymap described in
// spec.md §4.B: a string-keyed handler lookup supporting exact keys, prefix
// keys, and a fallback chain.
package keymap

import "sort"

// Handler reacts to a command key. ctx is opaque to the keymap; it is the
// dispatch engine's command context (pkg/dispatch.Context), passed through
// via an interface{} to avoid an import cycle between keymap and dispatch.
type Handler func(key string, ctx any) int

type prefixEntry struct {
	prefix  string
	handler Handler
}

// Map is a single keymap: exact-key handlers, prefix handlers, and an
// optional fallback chain consulted when nothing in this map matches.
//
// Registration is immutable after insertion except by chaining another map
// via SetChain — this matches spec.md §4.B ("Registration is immutable
// after insertion except by chaining another map").
type Map struct {
	exact    map[string]Handler
	prefixes []prefixEntry // kept sorted by descending prefix length
	chain    *Map
}

// New returns an empty keymap.
func New() *Map {
	return &Map{exact: make(map[string]Handler)}
}

// SetExact registers the handler for an exact key. A key that already has a
// handler keeps it; the later registration is ignored.
func (m *Map) SetExact(key string, h Handler) {
	if _, ok := m.exact[key]; ok {
		return
	}
	m.exact[key] = h
}

// SetPrefix registers a handler for every key beginning with prefix.
// Longer prefixes are tried before shorter ones in Lookup. A prefix that is
// already registered keeps its first handler.
func (m *Map) SetPrefix(prefix string, h Handler) {
	for _, p := range m.prefixes {
		if p.prefix == prefix {
			return
		}
	}
	m.prefixes = append(m.prefixes, prefixEntry{prefix: prefix, handler: h})
	sort.Slice(m.prefixes, func(i, j int) bool {
		return len(m.prefixes[i].prefix) > len(m.prefixes[j].prefix)
	})
}

// SetChain installs the fallback keymap consulted when this map has no
// matching exact or prefix entry for a key.
func (m *Map) SetChain(next *Map) {
	m.chain = next
}

// Lookup resolves key to a handler: exact match first, then longest
// matching prefix, then the chain. ok is false if nothing in this map or
// its chain matches.
func (m *Map) Lookup(key string) (Handler, bool) {
	if m == nil {
		return nil, false
	}
	if h, ok := m.exact[key]; ok {
		return h, true
	}
	for _, p := range m.prefixes {
		if len(key) >= len(p.prefix) && key[:len(p.prefix)] == p.prefix {
			return p.handler, true
		}
	}
	if m.chain != nil {
		return m.chain.Lookup(key)
	}
	return nil, false
}

// global is the process-wide registry used by global-set-command (spec.md
// §6). It has no chain of its own; it is the root of every pane's keymap
// chain that opts in to global commands.
var global = New()

// GlobalSetCommand implements global-set-command: registers an exact-key
// handler in the process-wide registry, used by extensions at startup.
func GlobalSetCommand(key string, h Handler) {
	global.SetExact(key, h)
}

// GlobalSetPrefix implements the prefix form of global-set-command.
func GlobalSetPrefix(prefix string, h Handler) {
	global.SetPrefix(prefix, h)
}

// Global returns the process-wide registry, for chaining a pane's keymap to
// it via SetChain.
func Global() *Map {
	return global
}
