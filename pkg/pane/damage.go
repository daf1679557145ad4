package pane

// Damage sets bits on p, propagating Size and Content top-down to every
// descendant, not just direct children (as SizeChild/ViewChild, spec.md
// §4.C "Damage propagation"), and every bit upward to ancestors as Child, so
// Refresh can skip subtrees with nothing to do. A pane that only received
// SizeChild/ViewChild from its own parent still passes it on to its
// children — otherwise a grandchild with no damage of its own would never
// see its ancestor's resize, since Refresh returns early on damage==0.
func (p *Pane) Damage(bits Damage) {
	p.damage |= bits

	if bits&(DamageSize|DamageSizeChild) != 0 {
		for _, c := range p.children {
			c.Damage(DamageSizeChild)
		}
	}
	if bits&(DamageContent|DamageViewChild) != 0 {
		for _, c := range p.children {
			c.Damage(DamageViewChild)
		}
	}

	if p.parent != nil && p.parent.damage&DamageChild == 0 {
		p.parent.Damage(DamageChild)
	} else if p.parent != nil {
		p.parent.damage |= DamageChild
	}
}

// DamageBits returns the pane's current damage bitset, for inspection by
// tests and the reference renderer.
func (p *Pane) DamageBits() Damage { return p.damage }

const nonPostorderMask = DamageSize | DamageSizeChild | DamageContent |
	DamageViewChild | DamageCursor | DamageView | DamageChild

// Refresh walks the tree rooted at p, invoking each damaged pane's
// "Refresh" handler exactly once (spec.md §4.C "Refresh walks the tree,
// clearing damage bottom-up for non-postorder flags and top-down for
// postorder, invoking each pane's Refresh handler exactly once per tick").
//
// A pane with DamagePostorder set has its handler invoked after its
// children have been refreshed, so a container can react to its children's
// completed layout; every other pane is refreshed on the way down.
func Refresh(p *Pane) {
	if p.damage == 0 {
		return
	}

	postorder := p.damage&DamagePostorder != 0
	if postorder {
		p.damage &^= DamagePostorder
	} else {
		invokeRefresh(p)
	}

	for _, c := range p.children {
		Refresh(c)
	}

	if postorder {
		invokeRefresh(p)
	}
	p.damage &^= nonPostorderMask
}

func invokeRefresh(p *Pane) {
	if p.Handler == nil {
		return
	}
	if h, ok := p.Handler.Lookup("Refresh"); ok {
		h("Refresh", p)
	}
}
