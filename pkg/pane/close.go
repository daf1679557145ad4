package pane

// Close detaches p from the tree, recursively closing its descendants
// post-order first (spec.md §3 "Lifecycle"). Freeing storage is deferred to
// Root.Sweep, which runs once the current dispatch has unwound — this makes
// it safe to close a pane from inside its own handler (spec.md §8 property
// 3, §9 "Deferred reclamation").
func (p *Pane) Close() {
	if p.closed {
		return
	}

	// Post-order: close every child before this pane detaches, so a
	// parent's ChildClosed handler never observes a child still in the
	// tree above an already-closed grandchild.
	children := append([]*Pane(nil), p.children...)
	for _, c := range children {
		c.Close()
	}

	p.closed = true
	p.damage |= DamageClosed

	parent := p.parent
	if parent != nil {
		for i, c := range parent.children {
			if c == p {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
		parent.recomputeZRange()
		if parent.focus == p {
			parent.focus = nil
		}
		Walk(parent, "ChildClosed", p, 0)
	}

	Notify(p, "Close", p)

	if p.root != nil {
		p.root.mu.Lock()
		p.root.toDrop = append(p.root.toDrop, p)
		p.root.mu.Unlock()
	}
}

// Sweep drains the deferred-free list, releasing every pane closed since
// the last Sweep. Call it once per tick, after the dispatch that may have
// triggered closes has fully unwound (spec.md §4.F point 4, §9).
func (r *Root) Sweep() {
	r.mu.Lock()
	drop := r.toDrop
	r.toDrop = nil
	r.mu.Unlock()

	for _, p := range drop {
		p.parent = nil
		p.children = nil
		p.focus = nil
		p.notifiers = nil
		p.notifiees = nil
		p.Handler = nil
		p.Data = nil
	}
}

// PendingSweep reports how many panes are queued for reclamation. Exposed
// for tests verifying close safety (spec.md §8 property 3).
func (r *Root) PendingSweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toDrop)
}
