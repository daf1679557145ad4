package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the tab bar, the focused window's content, and the status
// line, following the stacked-panel composition internal/app/view.go uses
// (lipgloss.JoinVertical over independently rendered strips).
func (m Model) View() string {
	if !m.ready {
		return "initializing…"
	}

	tabs := m.renderTabs()
	content := m.renderContent()
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, tabs, content, status)
}

func (m Model) renderTabs() string {
	title := TitleStyle(true).Render(" windows ")
	var labels []string
	for i, w := range m.windows {
		t, _ := attrsOf(w).Get("title")
		style := lipgloss.NewStyle()
		if i == m.focus {
			style = style.Bold(true).Background(SelectedBgColor).Foreground(lipgloss.Color("255"))
		} else {
			style = style.Foreground(DimTextColor)
		}
		labels = append(labels, style.Render(" "+t+" "))
	}
	bar := strings.Join(labels, "")
	box := PanelStyle(m.layout.Width, m.layout.TabsHeight, false).Render(bar)
	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}

func (m Model) renderContent() string {
	w := m.focusedWindow()
	if w == nil {
		return lipgloss.NewStyle().Width(m.layout.Width).Height(m.layout.ContentHeight).Render("")
	}
	win := w.Data.(*window)

	text := win.doc.Text()
	lines := strings.Split(text, "\n")

	style := PanelStyle(m.layout.Width, m.layout.ContentHeight, true)
	title := TitleStyle(true).Render(" " + win.title + " ")

	innerH := m.layout.ContentHeight - 2
	start, end := visibleWindow(len(lines), win.scroll, innerH)
	visible := lines[start:end]

	box := style.Render(strings.Join(visible, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}

func (m Model) renderStatus() string {
	style := lipgloss.NewStyle().Width(m.layout.Width).Foreground(DimTextColor)
	msg := m.message
	if msg == "" {
		msg = "Tab: switch window  C-f/C-b: move  C-c: quit"
	}
	return style.Render(" " + msg)
}

// visibleWindow mirrors internal/ui/layout.go's visible_window: the slice
// of [0,total) that fits within maxLines while keeping cursor (here, the
// scroll offset itself) in view.
func visibleWindow(total, cursor, maxLines int) (int, int) {
	if total <= maxLines {
		return 0, total
	}
	start := 0
	if cursor >= maxLines {
		start = cursor - maxLines + 1
	}
	end := start + maxLines
	if end > total {
		end = total
		start = end - maxLines
	}
	if start < 0 {
		start = 0
	}
	return start, end
}
