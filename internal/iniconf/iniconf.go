// Package iniconf loads the editor's ini config format (spec "Config format
// (ini)"): sections for global attributes, lazy module-loading triggers,
// per-filename attribute overrides, and a nested include directive. The
// shape mirrors internal/config's FindConfig/Load/LoadFromPath triple,
// re-targeted at a line-oriented grammar instead of a JS/JSON one.
package iniconf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/neil-edlib/edlib/pkg/attr"
)

const maxLineLength = 256

// ConfigFilename is the well-known name FindConfig looks for, the same role
// internal/config's ConfigFilename plays for the teacher's workflow.config.js.
const ConfigFilename = ".edlib.ini"

// FileRule is one `[file:<glob>]` section: attributes applied to documents
// whose filename matches Glob.
type FileRule struct {
	Glob  string
	Attrs *attr.Set
}

// Config is the accumulated result of loading an ini file and everything it
// includes.
type Config struct {
	Global  *attr.Set
	Modules *attr.Set // trigger name/prefix -> module to load
	Files   []FileRule
}

func New() *Config {
	return &Config{Global: attr.New(), Modules: attr.New()}
}

// AttrsFor returns the effective attribute set for filename: Global,
// overlaid by every file-rule whose glob matches, in the order the rules
// were loaded (later rules win on key collisions).
func (c *Config) AttrsFor(filename string) *attr.Set {
	result := attr.New()
	copyInto(result, c.Global)
	base := filepath.Base(filename)
	for _, rule := range c.Files {
		ok, err := path.Match(rule.Glob, base)
		if err != nil || !ok {
			continue
		}
		copyInto(result, rule.Attrs)
	}
	return result
}

func copyInto(dst, src *attr.Set) {
	key := ""
	for {
		k, v, ok := src.FindNextWithPrefix("", key)
		if !ok {
			return
		}
		dst.Set(k, v)
		key = k
	}
}

// FindConfig walks upward from startDir looking for ConfigFilename, the same
// way internal/config.FindConfig walks upward for workflow.config.js. It
// returns the empty string if no ancestor directory has one.
func FindConfig(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ConfigFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load finds ConfigFilename at or above startDir and loads it, the same
// two-step shape as internal/config.Load (FindConfig then LoadFromPath).
func Load(startDir string) (*Config, error) {
	found := FindConfig(startDir)
	if found == "" {
		return nil, fmt.Errorf("iniconf: could not find %s in %s or any parent directory", ConfigFilename, startDir)
	}
	return LoadFromPath(found)
}

// LoadFromPath reads a specific ini file, and every file it includes, into a
// fresh Config.
func LoadFromPath(configPath string) (*Config, error) {
	cfg := New()
	if err := loadInto(cfg, configPath, map[string]bool{}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// includeSearchPath is the three-tier resolution order spec.md's "Config
// format (ini)" section names for an `include = file` directive: the
// including file's own directory first, then the system config directory,
// then the user's.
func includeSearchPath(fromDir string) []string {
	dirs := []string{fromDir, "/usr/share/edlib"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "edlib"))
	}
	return dirs
}

func resolveInclude(fromDir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	for _, dir := range includeSearchPath(fromDir) {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("iniconf: include %q not found in %v", name, includeSearchPath(fromDir))
}

func loadInto(cfg *Config, file string, seen map[string]bool) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	if seen[abs] {
		return fmt.Errorf("iniconf: include cycle at %s", file)
	}
	seen[abs] = true

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("iniconf: %w", err)
	}
	defer f.Close()

	return parseInto(cfg, f, filepath.Dir(file), seen)
}

func parseInto(cfg *Config, r io.Reader, dir string, seen map[string]bool) error {
	scanner := bufio.NewScanner(r)
	section := "include" // the implicit section before any "[...]" header
	var currentFile *FileRule

	var pendingKey string
	var pendingVal *string // points at the string being built, nil when no key is open

	appendValue := func(v string) {
		if pendingVal == nil {
			return
		}
		*pendingVal += v
	}
	closeValue := func() {
		if pendingVal == nil {
			return
		}
		applyKeyValue(cfg, section, currentFile, pendingKey, *pendingVal)
		pendingVal = nil
	}

	var includeErr error

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > maxLineLength {
			line = line[:maxLineLength]
		}

		if line != "" && (line[0] == ' ' || line[0] == '\t') && pendingVal != nil {
			appendValue(stripComment(strings.TrimLeft(line, " \t")))
			continue
		}

		// Any non-continuation line ends whatever value was being built.
		closeValue()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if trimmed[0] == '[' {
			end := strings.IndexByte(trimmed, ']')
			if end < 0 {
				continue
			}
			section = strings.TrimSpace(trimmed[1:end])
			currentFile = nil
			if strings.HasPrefix(section, "file:") {
				glob := section[len("file:"):]
				currentFile = findOrAddFileRule(cfg, glob)
			}
			continue
		}

		key, val, ok := splitKeyValue(trimmed)
		if !ok {
			continue
		}
		val = stripComment(val)
		val = unquote(strings.TrimSpace(val))

		if section == "include" && key == "include" {
			if err := applyInclude(cfg, dir, val, seen); err != nil {
				includeErr = err
				break
			}
			continue
		}

		pendingKey = key
		buf := val
		pendingVal = &buf
	}
	closeValue()

	if includeErr != nil {
		return includeErr
	}
	return scanner.Err()
}

// applyInclude resolves an `include = name` directive against dir's search
// path and merges it into cfg, the per-directive step backing parseInto's
// handling of spec.md §6's `include` section — the teacher's applyDefaults
// equivalent for this grammar.
func applyInclude(cfg *Config, dir, name string, seen map[string]bool) error {
	target, err := resolveInclude(dir, name)
	if err != nil {
		return err
	}
	return loadInto(cfg, target, seen)
}

func findOrAddFileRule(cfg *Config, glob string) *FileRule {
	for i := range cfg.Files {
		if cfg.Files[i].Glob == glob {
			return &cfg.Files[i]
		}
	}
	cfg.Files = append(cfg.Files, FileRule{Glob: glob, Attrs: attr.New()})
	return &cfg.Files[len(cfg.Files)-1]
}

func applyKeyValue(cfg *Config, section string, file *FileRule, key, val string) {
	switch {
	case section == "global":
		cfg.Global.Set(key, val)
	case section == "module":
		cfg.Modules.Set(key, val)
	case file != nil:
		file.Attrs.Set(key, val)
	case section == "include":
		// "include = ..." is handled inline in parseInto before reaching
		// here; any other key in the implicit section is ignored.
	default:
		// unknown section: ignored per spec
	}
}

// splitKeyValue splits "key = value" on the first '='. The key is trimmed
// of surrounding whitespace; the value is returned untrimmed.
func splitKeyValue(line string) (key, val string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), line[i+1:], true
}

// stripComment cuts s at the first '#' that is not inside a matched pair of
// double quotes.
func stripComment(s string) string {
	inQuotes := false
	for i, r := range s {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return s[:i]
			}
		}
	}
	return s
}

// unquote strips a matched pair of surrounding double quotes, else trims
// trailing whitespace left over from comment-stripping.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return strings.TrimRight(s, " \t")
}
