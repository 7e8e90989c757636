package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	rowHeight        = 2
	checkboxHitWidth = 4
)

// taskDelegate renders each task on two lines: checkbox, text and priority,
// then the due/category meta line.
type taskDelegate struct{}

func newTaskDelegate() taskDelegate { return taskDelegate{} }

func (d taskDelegate) Height() int                             { return rowHeight }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(taskItem)
	if !ok || contentW < 8 {
		fmt.Fprint(w, "\n")
		return
	}
	t := it.task()

	textStyle := lipgloss.NewStyle()
	if t.Completed {
		textStyle = styleMuted().Strikethrough(true)
	}
	badge := stylePriority(t.Priority).Render(strings.ToUpper(string(t.Priority)))

	title := glyphCheckbox(t.Completed) + " " + textStyle.Render(t.Text) + "  " + badge
	meta := strings.Repeat(" ", checkboxHitWidth) + styleMuted().Render(it.row.Task.Priority.Class()+" "+glyphSep()+" "+it.Description())

	row := lipgloss.NewStyle()
	switch {
	case it.dragging:
		row = row.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
		title = glyphDragHandle() + " " + title
	case index == m.Index():
		row = row.Foreground(colorSelectedFg).Background(colorSelectedBg)
	}

	fmt.Fprint(w, row.Render(fitLine(title, contentW))+"\n"+row.Render(fitLine(meta, contentW)))
}

// fitLine pads or cuts s (ANSI-aware) to exactly width columns.
func fitLine(s string, width int) string {
	sw := xansi.StringWidth(s)
	switch {
	case sw < width:
		return s + strings.Repeat(" ", width-sw)
	case sw > width:
		if width <= 1 {
			return xansi.Truncate(s, width, "")
		}
		return xansi.Truncate(s, width, "…")
	}
	return s
}
