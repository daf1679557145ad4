package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neil-edlib/edlib/internal/keyevent"
	"github.com/neil-edlib/edlib/internal/selection"
	"github.com/neil-edlib/edlib/pkg/dispatch"
	"github.com/neil-edlib/edlib/pkg/keymap"
	"github.com/neil-edlib/edlib/pkg/pane"
)

// Model is the root Bubbletea model for the reference front end. It owns
// the pane tree (one pane.Root), the list of top-level window panes
// (spec.md's "window:*" scope), and the state internal/app.Model's
// equivalents (focus, layout, status line) track for the worktree
// dashboard — reapplied here to an editor's pane tree instead of a
// worktree list.
type Model struct {
	root    *pane.Root
	windows []*pane.Pane
	focus   int

	layout Layout
	ready  bool

	message string

	selection *selection.Tracker
	clicks    keyevent.ClickTracker
}

// New creates a Model with one empty scratch window, the way a freshly
// started editor offers a single buffer.
func New() Model {
	root := pane.NewRoot()
	root.Pane().Handler = keymap.New()
	m := Model{
		root:      root,
		selection: selection.New(),
	}
	w := NewWindow(root.Pane(), "*scratch*", "")
	m.windows = append(m.windows, w)
	selection.Register(root.Pane().Handler, m.selection)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.layout = m.layout.Resize(msg.Width, msg.Height)
		m.root.Pane().Resize(0, 0, msg.Width, msg.Height)
		for _, w := range m.windows {
			w.Resize(0, 0, msg.Width, m.layout.ContentHeight)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) focusedWindow() *pane.Pane {
	if len(m.windows) == 0 {
		return nil
	}
	return m.windows[m.focus]
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		if len(m.windows) > 0 {
			m.focus = (m.focus + 1) % len(m.windows)
		}
		return m, nil
	}

	ev := keyevent.FromKeyMsg(msg)
	key, literal, ok := translateKeyEvent(ev)
	if !ok {
		return m, nil
	}

	target := m.focusedWindow()
	if target == nil {
		return m, nil
	}
	res := dispatch.Dispatch(&dispatch.Context{Key: key, Focus: target, Str: literal})
	if res == dispatch.Efalse {
		m.message = "no further movement"
	}
	return m, nil
}

// translateKeyEvent turns an edlib key-event string into the reserved
// command key it drives in this reference front end, for the small subset
// of editing gestures the window keymap understands (spec.md names the
// commands; wiring a specific keystroke to each is a front-end choice, the
// same role internal/app/keys.go's KeyMap plays for the teacher). literal
// carries the text a "Replace" command inserts; it is empty for every other
// command.
func translateKeyEvent(ev string) (key, literal string, ok bool) {
	switch ev {
	case "Right", "C-f":
		return "Move-Char-Forward", "", true
	case "Left", "C-b":
		return "Move-Char-Backward", "", true
	case "Backspace":
		return "Backspace", "", true
	}
	if len(ev) > 4 && ev[:4] == "Chr-" {
		return "Replace", ev[4:], true
	}
	return "", "", false
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	target := m.focusedWindow()
	if target == nil {
		return m, nil
	}

	if msg.Action == tea.MouseActionRelease {
		if click := m.clicks.Observe(msg, time.Now()); click != "" {
			m.message = click
		}
	}

	dispatch.CoordDispatch(target, msg.X, msg.Y, &dispatch.Context{Key: "Click"})
	return m, nil
}
