package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestResizeSizesWindows(t *testing.T) {
	m := New()
	result, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = result.(Model)

	if !m.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}
	w := m.focusedWindow()
	if w.W != 80 {
		t.Fatalf("focused window width = %d, want 80", w.W)
	}
}

func TestTypingInsertsIntoFocusedDocument(t *testing.T) {
	m := New()
	result, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = result.(Model)

	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = result.(Model)
	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m = result.(Model)

	win := m.focusedWindow().Data.(*window)
	if win.doc.Text() != "hi" {
		t.Fatalf("document text = %q, want %q", win.doc.Text(), "hi")
	}
}

func TestBackspaceRemovesLastTypedCharacter(t *testing.T) {
	m := New()
	result, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = result.(Model)
	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = result.(Model)
	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = result.(Model)

	win := m.focusedWindow().Data.(*window)
	if win.doc.Text() != "" {
		t.Fatalf("document text after backspace = %q, want empty", win.doc.Text())
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := New()
	result, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = result.(Model)
	m.windows = append(m.windows, NewWindow(m.root.Pane(), "second", ""))

	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = result.(Model)
	if m.focus != 1 {
		t.Fatalf("focus after Tab = %d, want 1", m.focus)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := New()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Ctrl-C should return a quit command")
	}
}

func TestViewRendersWindowTitleAndContent(t *testing.T) {
	m := New()
	result, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = result.(Model)
	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = result.(Model)

	view := m.View()
	if !strings.Contains(view, "*scratch*") {
		t.Error("view missing window title")
	}
	if !strings.Contains(view, "h") {
		t.Error("view missing typed content")
	}
	if !strings.Contains(view, "╭") {
		t.Error("view missing panel border")
	}
}
