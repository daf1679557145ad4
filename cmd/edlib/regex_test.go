package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	require.NoError(t, err)
	return out.String()
}

func TestRegexTestReportsMatch(t *testing.T) {
	out := runCLI(t, "regex", "test", "a(b+)c", "xxabbbcxx")
	assert.Contains(t, out, "match 2-7")
	assert.Contains(t, out, `$1: "bbb"`)
}

func TestRegexTestReportsNoMatch(t *testing.T) {
	out := runCLI(t, "regex", "test", "zzz", "abc")
	assert.Equal(t, "no match\n", out)
}

func TestRegexExpandSubstitutesCaptures(t *testing.T) {
	out := runCLI(t, "regex", "expand", `(\w+)@(\w+)`, "mail me@host please", `user=\1 host=\2`)
	assert.Equal(t, "user=me host=host\n", out)
}

func TestRegexTestRejectsBadPattern(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"regex", "test", "a(b", "abc"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
