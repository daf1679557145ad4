package pane

// Masked reports whether the point (x,y), given in p's own local coordinate
// frame, is hidden by a sibling of p with greater z at that point (spec.md
// §4.C "mask test"). The root is never masked.
func Masked(p *Pane, x, y int) bool {
	if p.parent == nil {
		return false
	}
	px, py := x+p.X, y+p.Y
	for _, sib := range p.parent.children {
		if sib == p || sib.z <= p.z {
			continue
		}
		if px >= sib.X && px < sib.X+sib.W && py >= sib.Y && py < sib.Y+sib.H {
			return true
		}
	}
	return false
}

// LeafAt descends from p to the leaf-most pane containing the point (x,y),
// given in p's local coordinate frame, choosing among overlapping children
// the one with the greatest z at each level (spec.md §4.F "Coordinate
// dispatch": "descends to the leaf-most non-occluded pane at that point").
func LeafAt(p *Pane, x, y int) *Pane {
	var best *Pane
	for _, c := range p.children {
		if x >= c.X && x < c.X+c.W && y >= c.Y && y < c.Y+c.H {
			if best == nil || c.z > best.z {
				best = c
			}
		}
	}
	if best == nil {
		return p
	}
	return LeafAt(best, x-best.X, y-best.Y)
}
