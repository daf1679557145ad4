package pane

// SetFocus ascends from p, setting each ancestor's focus child to the child
// on the path from p to the root (spec.md §4.C "Focus"). After SetFocus(p),
// FocusedLeaf(root) descends back down to p.
func (p *Pane) SetFocus() {
	for cur, child := p.parent, p; cur != nil; child, cur = cur, cur.parent {
		if cur.focus != child {
			cur.focus = child
			cur.Damage(DamageChild)
		}
	}
}

// FocusChild returns the pane's current focus child, or nil.
func (p *Pane) FocusChild() *Pane { return p.focus }

// FocusedLeaf descends focus children from p, returning the pane at the
// bottom of the chain — "the focus pane of a subtree" (spec.md §4.C).
func FocusedLeaf(p *Pane) *Pane {
	for p.focus != nil {
		p = p.focus
	}
	return p
}
