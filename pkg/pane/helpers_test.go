package pane

import "github.com/neil-edlib/edlib/pkg/keymap"

func newTestMap() *keymap.Map {
	return keymap.New()
}
