// Package tui is the reference terminal front end: it renders the pane
// tree built by pkg/pane, turns bubbletea keystrokes and mouse events into
// dispatches via internal/keyevent and pkg/dispatch, and is not itself part
// of the editor core — spec.md treats the terminal front end as exercising
// the domain stack, not as a specified feature in its own right.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout mirrors internal/ui/layout.go's panel-sizing approach, reapplied
// to this package's two always-on strips (tab bar, status bar) plus
// whatever vertical space remains for the focused window's content.
type Layout struct {
	Width  int
	Height int

	TabsHeight   int
	ContentHeight int
	StatusHeight int
}

const (
	minTabsHeight   = 3
	minStatusHeight = 1
)

// Resize recomputes panel heights for a width x height terminal, the same
// clamp-then-distribute approach internal/ui.Layout.Resize uses.
func (l Layout) Resize(w, h int) Layout {
	l.Width, l.Height = w, h
	l.TabsHeight = minTabsHeight
	l.StatusHeight = minStatusHeight
	l.ContentHeight = h - l.TabsHeight - l.StatusHeight
	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}
	return l
}

// Palette, reused verbatim from internal/ui/layout.go's lazygit-inspired
// scheme — the reference front end keeps the teacher's visual identity.
var (
	BorderColor      = lipgloss.Color("240")
	FocusBorderColor = lipgloss.Color("34")
	DimTextColor     = lipgloss.Color("250")
	HighlightColor   = lipgloss.Color("34")
	SelectedBgColor  = lipgloss.Color("25")
	CursorColor      = lipgloss.Color("214")
)

// PanelStyle returns a bordered box sized to (width, height), highlighted
// when focused — same shape as internal/ui.PanelStyle.
func PanelStyle(width, height int, focused bool) lipgloss.Style {
	borderColor := BorderColor
	if focused {
		borderColor = FocusBorderColor
	}
	return lipgloss.NewStyle().
		Width(width - 2).
		Height(height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)
}

// TitleStyle matches internal/ui.TitleStyle's focused/dim split.
func TitleStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(FocusBorderColor)
	}
	return lipgloss.NewStyle().Foreground(DimTextColor)
}
