package pane

// Walk is the ancestor-walk-with-fallthrough primitive behind notification
// delivery (spec.md §4.G); pkg/dispatch.Dispatch runs the same walk in its
// own loop for command dispatch (spec.md §4.F). It asks
// each pane from start up to the root for a handler matching key, invokes
// the first one found, and continues upward past it if the result equals
// sentinel ("fall-through").
//
// This lives in pkg/pane rather than pkg/dispatch so that the notification
// bus (which is pane-resident per spec.md §3/§4.G) can deliver through
// exactly the same mechanism dispatch uses, without an import cycle between
// pane and dispatch.
func Walk(start *Pane, key string, ctx any, sentinel int) int {
	for cur := start; cur != nil; cur = cur.parent {
		h, ok := cur.Handler.Lookup(key)
		if !ok {
			continue
		}
		res := h(key, ctx)
		if res != sentinel {
			return res
		}
	}
	return sentinel
}
