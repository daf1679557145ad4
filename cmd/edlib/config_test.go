package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLintReportsCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edlib.ini")
	contents := "[global]\ntab-width = 4\n\n[module]\npython- = lang-python\n\n[file:*.go]\ntab-width = 8\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	out := runCLI(t, "config", "lint", path)
	assert.Contains(t, out, "global attributes: 1")
	assert.Contains(t, out, "module triggers: 1")
	assert.Contains(t, out, "file rules: 1")
	assert.Contains(t, out, "file:*.go -> 1 attribute(s)")
}

func TestConfigLintMissingFileErrors(t *testing.T) {
	rootCmd.SetArgs([]string{"config", "lint", "/nonexistent/edlib.ini"})
	err := rootCmd.Execute()
	require.Error(t, err)
}
