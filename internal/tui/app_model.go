package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"tasklist/internal/listview"
	"tasklist/internal/logging"
	"tasklist/internal/model"
	"tasklist/internal/notify"
	"tasklist/internal/reminder"
	"tasklist/internal/reorder"
	"tasklist/internal/store"
)

// Options wires the TUI to storage and the reminder pipeline.
type Options struct {
	Store    store.Store
	Notifier notify.Notifier
	Scanner  *reminder.Scanner
	Interval time.Duration
	// Theme is auto|light|dark; used only when no darkMode preference is stored.
	Theme  string
	Label  string
	Logger *logging.Logger
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeEditText
	modeConfirmDelete
	modeHelp
)

// pressState is a left-button press on a row that may turn into a drag.
type pressState struct {
	active bool
	id     string
	y      int
}

type appModel struct {
	store store.Store
	state *store.State
	label string
	log   *logging.Logger

	width  int
	height int

	mode   mode
	filter model.Filter
	list   list.Model

	form   taskForm
	prompt textPrompt

	confirmID    string
	confirmFocus confirmModalFocus

	notifier notify.Notifier
	scanner  *reminder.Scanner
	interval time.Duration
	perm     notify.Permission

	dark bool

	drag  reorder.Session
	press pressState

	minibufferText  string
	minibufferErr   bool
	minibufferSetAt time.Time
	flashSeq        int
}

func newAppModel(opts Options) appModel {
	m := appModel{
		store:    opts.Store,
		label:    opts.Label,
		log:      opts.Logger,
		filter:   model.FilterAll,
		notifier: opts.Notifier,
		scanner:  opts.Scanner,
		interval: opts.Interval,
		width:    80,
		height:   24,
	}
	if m.log == nil {
		m.log = logging.Discard()
	}

	ctx := context.Background()
	st, err := m.store.Load(ctx)
	if err != nil {
		m.log.Errorf("tui: load: %v", err)
		(&m).showError("Load failed: " + err.Error())
		st = &store.State{}
	}
	m.state = st

	persisted, found, err := m.store.LoadDarkMode(ctx)
	if err != nil {
		m.log.Warnf("tui: load dark mode: %v", err)
	}
	m.dark = resolveDarkMode(persisted, found, opts.Theme)
	applyDarkMode(m.dark)

	if ui, err := m.store.LoadTUIState(); err != nil {
		m.log.Warnf("tui: load ui state: %v", err)
	} else if ui.Filter != "" {
		m.filter = ui.Filter
	}

	m.list = newList(nil)
	m.resizeList()
	m.refreshList()
	return m
}

func (m *appModel) resizeList() {
	h := m.height - headerLines - footerLines
	if h < rowHeight {
		h = rowHeight
	}
	w := m.width
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

// visibleRows is the filtered projection of the in-memory list.
func (m appModel) visibleRows() []listview.Row {
	return listview.Visible(listview.ApplyFilter(listview.Render(m.state.Tasks), m.filter))
}

// refreshList rebuilds list items from state, keeping the cursor on the same
// task when it is still visible.
func (m *appModel) refreshList() {
	curID := m.selectedID()
	curIdx := m.list.Index()

	dragID := m.drag.DraggedID()
	rows := m.visibleRows()
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, taskItem{row: r, dragging: r.ID == dragID && dragID != ""})
	}
	m.list.SetItems(items)

	if curID != "" && selectListItemByID(&m.list, curID) {
		return
	}
	if n := len(items); n > 0 {
		if curIdx >= n {
			curIdx = n - 1
		}
		if curIdx < 0 {
			curIdx = 0
		}
		m.list.Select(curIdx)
	}
}

func (m appModel) selectedID() string {
	if it, ok := m.list.SelectedItem().(taskItem); ok {
		return it.row.ID
	}
	return ""
}

func (m appModel) selectedTask() (model.Task, bool) {
	id := m.selectedID()
	if id == "" {
		return model.Task{}, false
	}
	t, _, ok := m.state.FindTask(id)
	if !ok {
		return model.Task{}, false
	}
	return *t, true
}

// pageRows describes the on-screen geometry of the rows on the current page.
func (m appModel) pageRows() []reorder.Row {
	items := m.list.Items()
	start, end := m.list.Paginator.GetSliceBounds(len(items))
	rows := make([]reorder.Row, 0, end-start)
	top := listTop()
	for i := start; i < end; i++ {
		it, ok := items[i].(taskItem)
		if !ok {
			continue
		}
		rows = append(rows, reorder.Row{
			ID:     it.row.ID,
			Top:    float64(top + (i-start)*rowHeight),
			Height: rowHeight,
		})
	}
	return rows
}

// rowAt maps a screen row to the task drawn there.
func (m appModel) rowAt(y int) (id string, index int, ok bool) {
	if y < listTop() {
		return "", -1, false
	}
	items := m.list.Items()
	start, end := m.list.Paginator.GetSliceBounds(len(items))
	i := start + (y-listTop())/rowHeight
	if i < start || i >= end {
		return "", -1, false
	}
	it, isTask := items[i].(taskItem)
	if !isTask {
		return "", -1, false
	}
	return it.row.ID, i, true
}

func (m appModel) insideList(x, y int) bool {
	return x >= 0 && x < m.width && y >= listTop() && y < listTop()+m.list.Height()
}

// save persists the whole list. Failures are reported in the minibuffer.
func (m *appModel) save() {
	if err := m.store.Save(context.Background(), m.state); err != nil {
		m.log.Errorf("tui: save: %v", err)
		m.showError("Save failed: " + err.Error())
	}
}

func (m *appModel) reload() {
	st, err := m.store.Load(context.Background())
	if err != nil {
		m.showError("Reload failed: " + err.Error())
		return
	}
	m.state = st
	m.refreshList()
	m.showMinibuffer("Reloaded")
}

func (m *appModel) showMinibuffer(s string) {
	m.minibufferText = strings.TrimSpace(s)
	m.minibufferErr = false
	m.minibufferSetAt = time.Now()
	m.flashSeq++
}

func (m *appModel) showError(s string) {
	m.showMinibuffer(s)
	m.minibufferErr = true
}
