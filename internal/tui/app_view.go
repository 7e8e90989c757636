package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/docs"
	"tasklist/internal/listview"
	"tasklist/internal/model"
)

func helpMarkdown() string {
	md, ok := docs.Get("keys")
	if !ok {
		return "# Keys\n\nPress q to quit."
	}
	return md
}

func (m appModel) View() string {
	header := m.viewHeader()
	tabs := m.viewTabs()

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = styleMuted().Render(m.emptyText())
	}
	bodyH := m.height - headerLines - footerLines
	if bodyH < rowHeight {
		bodyH = rowHeight
	}

	switch m.mode {
	case modeForm:
		body = m.placeModal(m.form.view(m.width), bodyH)
	case modeEditText:
		body = m.placeModal(m.prompt.view(m.width), bodyH)
	case modeConfirmDelete:
		text := ""
		if t, _, ok := m.state.FindTask(m.confirmID); ok {
			text = t.Text
		}
		modal := renderConfirmModal(m.width, "Delete task", fmt.Sprintf("Delete %q?", text), "Delete", "Cancel", m.confirmFocus)
		body = m.placeModal(modal, bodyH)
	case modeHelp:
		body = RenderMarkdown(helpMarkdown(), modalBodyWidth(m.width), m.dark)
	}
	body = clampView(body, m.width, bodyH)

	return clampView(strings.Join([]string{
		header,
		tabs,
		body,
		m.viewMinibuffer(),
		m.viewFooter(),
	}, "\n"), m.width, m.height)
}

func (m appModel) placeModal(modal string, h int) string {
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, modal)
}

func (m appModel) emptyText() string {
	switch m.filter {
	case model.FilterActive:
		return "Nothing active."
	case model.FilterCompleted:
		return "Nothing completed yet."
	default:
		return "No tasks yet. Press a to add one."
	}
}

func (m appModel) viewHeader() string {
	c := listview.Count(m.state.Tasks)
	title := lipgloss.NewStyle().Bold(true).Render("Tasks")
	meta := fmt.Sprintf("%d total %s %d active %s %d done", c.Total, glyphSep(), c.Active, glyphSep(), c.Completed)
	right := "light"
	if m.dark {
		right = "dark"
	}
	if m.label != "" {
		right = m.label + "  " + right
	}
	left := title + "  " + styleMuted().Render(meta)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + styleMuted().Render(right)
}

func (m appModel) viewTabs() string {
	active := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true).Padding(0, 1)
	idle := styleMuted().Padding(0, 1)
	var parts []string
	for i, f := range model.Filters {
		label := fmt.Sprintf("%d %s", i+1, strings.ToUpper(string(f[:1]))+string(f[1:]))
		if f == m.filter {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, idle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m appModel) viewMinibuffer() string {
	if m.minibufferText == "" {
		return ""
	}
	st := lipgloss.NewStyle().Foreground(colorBanner).Bold(true)
	if m.minibufferErr {
		st = lipgloss.NewStyle().Foreground(colorError)
	}
	return st.Render(m.minibufferText)
}

func (m appModel) viewFooter() string {
	var keys string
	switch m.mode {
	case modeForm, modeEditText:
		keys = "enter: save  esc: cancel"
	case modeConfirmDelete:
		keys = "y: delete  n/esc: cancel"
	case modeHelp:
		keys = "any key: close"
	default:
		if m.drag.Dragging() {
			keys = "release to drop  release outside / any key: cancel"
		} else {
			keys = "a: add  e: edit  x: toggle  d: delete  K/J: move  1-3: filter  D: dark  ?: help  q: quit"
		}
	}
	return styleMuted().Render(keys)
}
