package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"tasklist/internal/listview"
	"tasklist/internal/model"
)

// taskItem is one visible row of the task list.
type taskItem struct {
	row      listview.Row
	dragging bool
}

func (i taskItem) FilterValue() string { return i.row.Task.Text }
func (i taskItem) Title() string       { return i.row.Task.Text }
func (i taskItem) Description() string { return listview.Meta(i.row.Task) }

func (i taskItem) task() model.Task { return i.row.Task }

func newList(items []list.Item) list.Model {
	l := list.New(items, newTaskDelegate(), 0, 0)
	l.Title = "Tasks"
	// Header, filter tabs and footer are drawn by the app; keep list chrome off
	// so rows start on the first line of the list area.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	// Bubble list defaults to quitting on ESC; here ESC cancels.
	l.KeyMap.Quit.SetKeys("q")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)

	// "d" and "f" are app keys (delete, filter); keep paging on arrows and pgup/pgdown.
	l.KeyMap.PrevPage.SetKeys("left", "h", "pgup", "b")
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown")

	goToStartKeys := append([]string{}, l.KeyMap.GoToStart.Keys()...)
	goToStartKeys = append(goToStartKeys, "<")
	l.KeyMap.GoToStart.SetKeys(goToStartKeys...)

	goToEndKeys := append([]string{}, l.KeyMap.GoToEnd.Keys()...)
	goToEndKeys = append(goToEndKeys, ">")
	l.KeyMap.GoToEnd.SetKeys(goToEndKeys...)
	return l
}

// selectListItemByID moves the cursor to the row for id, if visible.
func selectListItemByID(l *list.Model, id string) bool {
	for i, it := range l.Items() {
		if ti, ok := it.(taskItem); ok && ti.row.ID == id {
			l.Select(i)
			return true
		}
	}
	return false
}
