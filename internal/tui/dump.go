package tui

import (
	"gopkg.in/yaml.v3"

	"github.com/neil-edlib/edlib/pkg/attr"
	"github.com/neil-edlib/edlib/pkg/pane"
)

// paneDump is a debug snapshot of one pane.Pane, recursively including its
// children — the yaml.v3-backed counterpart to internal/app's plain-struct
// Model being inspectable by tests (model_test.go reads Model fields
// directly); a pane tree has no exported fields to read directly, so this
// package's dump command walks it through the public accessors instead.
type paneDump struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
	Z int `yaml:"z"`

	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Closed   bool              `yaml:"closed,omitempty"`
	Children []paneDump        `yaml:"children,omitempty"`
}

func dumpPane(p *pane.Pane) paneDump {
	d := paneDump{
		X: p.X, Y: p.Y, W: p.W, H: p.H, Z: p.Z(),
		Closed: p.Closed(),
	}
	if attrs := attrsOf(p); attrs != nil {
		if m := flattenAttrs(attrs); len(m) > 0 {
			d.Attrs = m
		}
	}
	for _, c := range p.Children() {
		d.Children = append(d.Children, dumpPane(c))
	}
	return d
}

// flattenAttrs walks an attr.Set into a plain map via repeated
// FindNextWithPrefix calls, the same traversal internal/iniconf.copyInto
// uses — attr.Set exposes no direct iterator.
func flattenAttrs(s *attr.Set) map[string]string {
	out := map[string]string{}
	key := ""
	for {
		k, v, ok := s.FindNextWithPrefix("", key)
		if !ok {
			return out
		}
		out[k] = v
		key = k
	}
}

// Dump renders root's pane tree as YAML, for the dump-panes CLI command and
// for tests that want to assert on tree shape without threading *pane.Pane
// pointers through assertions.
func Dump(root *pane.Root) (string, error) {
	d := dumpPane(root.Pane())
	out, err := yaml.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DumpModel is Dump applied to a Model's own pane tree, for callers outside
// this package (cmd/edlib's dump-panes command) that only have a Model, not
// the unexported *pane.Root inside it.
func DumpModel(m Model) (string, error) {
	return Dump(m.root)
}
