package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpPanesPrintsScratchWindow(t *testing.T) {
	out := runCLI(t, "dump-panes")
	assert.Contains(t, out, "children:")
	assert.Contains(t, out, "title: '*scratch*'")
}
