package iniconf

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
	return p
}

// TestScenarioS6ConfigInclude is spec.md §8 S6: a.ini includes b.ini from
// the empty (default) section, and b.ini's [global] section's attribute
// ends up set after loading a.ini.
func TestScenarioS6ConfigInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.ini", "[global]\nname = value\n")
	a := writeFile(t, dir, "a.ini", "include = b.ini\n")

	cfg, err := LoadFromPath(a)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := cfg.Global.Get("name"); !ok || got != "value" {
		t.Fatalf("global.name = %q, %v; want %q, true", got, ok, "value")
	}
}

func TestGlobalSection(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "c.ini", "[global]\nindent-width = 4\ntab-size = 8\n")
	cfg, err := LoadFromPath(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := cfg.Global.Get("indent-width"); v != "4" {
		t.Fatalf("indent-width = %q, want 4", v)
	}
	if v, _ := cfg.Global.Get("tab-size"); v != "8" {
		t.Fatalf("tab-size = %q, want 8", v)
	}
}

func TestModuleSection(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "d.ini", "[module]\nemacs: = mode-emacs\npython- = lang-python\n")
	cfg, err := LoadFromPath(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := cfg.Modules.Get("emacs:"); v != "mode-emacs" {
		t.Fatalf("modules[emacs:] = %q, want mode-emacs", v)
	}
	if v, _ := cfg.Modules.Get("python-"); v != "lang-python" {
		t.Fatalf("modules[python-] = %q, want lang-python", v)
	}
}

func TestFileSectionGlobMatching(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "e.ini", "[file:*.go]\nindent-width = 4\n[file:*.md]\nwrap = yes\n")
	cfg, err := LoadFromPath(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	goAttrs := cfg.AttrsFor("main.go")
	if v, ok := goAttrs.Get("indent-width"); !ok || v != "4" {
		t.Fatalf("main.go indent-width = %q, %v", v, ok)
	}
	if _, ok := goAttrs.Get("wrap"); ok {
		t.Fatalf("main.go should not pick up *.md's wrap attribute")
	}
	mdAttrs := cfg.AttrsFor("README.md")
	if v, ok := mdAttrs.Get("wrap"); !ok || v != "yes" {
		t.Fatalf("README.md wrap = %q, %v", v, ok)
	}
}

func TestQuotedValueAndComment(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "f.ini", "[global]\ngreeting = \"hello # not a comment\" # real comment\nplain = bare # trimmed\n")
	cfg, err := LoadFromPath(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := cfg.Global.Get("greeting"); v != "hello # not a comment" {
		t.Fatalf("greeting = %q", v)
	}
	if v, _ := cfg.Global.Get("plain"); v != "bare" {
		t.Fatalf("plain = %q, want %q", v, "bare")
	}
}

func TestContinuationLine(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "g.ini", "[global]\nlong-value = abc\n  def\n  ghi\n")
	cfg, err := LoadFromPath(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := cfg.Global.Get("long-value"); v != "abcdefghi" {
		t.Fatalf("long-value = %q, want %q", v, "abcdefghi")
	}
}

func TestIncludeResolvesAgainstIncludingFileDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeFile(t, sub, "shared.ini", "[global]\nfrom-sub = yes\n")
	a := writeFile(t, sub, "main.ini", "include = shared.ini\n")

	cfg, err := LoadFromPath(a)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, ok := cfg.Global.Get("from-sub"); !ok || v != "yes" {
		t.Fatalf("from-sub = %q, %v", v, ok)
	}
}

func TestUnknownSectionIgnored(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "h.ini", "[bogus]\nkey = value\n[global]\nreal = yes\n")
	cfg, err := LoadFromPath(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := cfg.Global.Get("real"); v != "yes" {
		t.Fatalf("real = %q, want yes", v)
	}
	if got := cfg.Global.Len(); got != 1 {
		t.Fatalf("expected only the global section's key, got %d entries", got)
	}
}

func TestFindConfigWalksUpward(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFilename, "[global]\nroot = yes\n")
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	got := FindConfig(sub)
	want := filepath.Join(dir, ConfigFilename)
	if got != want {
		t.Fatalf("FindConfig(%s) = %q, want %q", sub, got, want)
	}
}

func TestFindConfigReturnsEmptyWhenNotFound(t *testing.T) {
	dir := t.TempDir()
	if got := FindConfig(dir); got != "" {
		t.Fatalf("FindConfig(%s) = %q, want empty", dir, got)
	}
}

func TestLoadFindsNearestConfigFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFilename, "[global]\nfrom-root = yes\n")
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, ok := cfg.Global.Get("from-root"); !ok || v != "yes" {
		t.Fatalf("from-root = %q, %v", v, ok)
	}
}

func TestLoadErrorsWhenConfigFilenameMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatalf("Load should fail when %s is nowhere in the ancestor chain", ConfigFilename)
	}
}
