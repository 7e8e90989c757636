package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/model"
	"tasklist/internal/mutate"
	"tasklist/internal/notify"
	"tasklist/internal/store"
)

func (m appModel) Init() tea.Cmd {
	return tea.Batch(requestPermissionCmd(m.notifier), tickReminders(m.interval))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeList()
		return m, nil

	case permissionMsg:
		m.perm = msg.perm
		m.log.Infof("tui: notification permission %s", msg.perm)
		return m, nil

	case reminderTickMsg:
		var scan tea.Cmd
		if m.perm == notify.PermissionGranted {
			scan = scanRemindersCmd(m.scanner)
		}
		return m, tea.Batch(scan, tickReminders(m.interval))

	case remindersMsg:
		if msg.err != nil {
			m.log.Errorf("tui: reminder scan: %v", msg.err)
			return m, nil
		}
		if len(msg.reminders) == 0 {
			return m, nil
		}
		(&m).showMinibuffer(reminderBanner(msg.reminders))
		return m, clearFlashAfter(m.flashSeq, minibufferAutoClearAfter)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.minibufferText = ""
			m.minibufferErr = false
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeEditText:
			return m.updateEditText(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		default:
			return m.updateList(msg)
		}
	}

	// Cursor blink and other input messages.
	switch m.mode {
	case modeForm:
		var cmd tea.Cmd
		m.form, _, cmd = m.form.update(msg)
		return m, cmd
	case modeEditText:
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.drag.Dragging() {
		// Keys during a drag abort it.
		(&m).cancelDrag()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "a", "n":
		m.form = newTaskForm()
		m.mode = modeForm
		return m, textinput.Blink

	case "e":
		if t, ok := m.selectedTask(); ok {
			m.prompt = newTextPrompt(t)
			m.mode = modeEditText
			return m, textinput.Blink
		}
		return m, nil

	case "E":
		if t, ok := m.selectedTask(); ok {
			m.form = newEditForm(t)
			m.mode = modeForm
			return m, textinput.Blink
		}
		return m, nil

	case "enter", " ", "x":
		(&m).toggleSelected()
		return m, nil

	case "d", "delete", "backspace":
		if id := m.selectedID(); id != "" {
			m.confirmID = id
			m.confirmFocus = confirmFocusConfirm
			m.mode = modeConfirmDelete
		}
		return m, nil

	case "alt+up", "K":
		(&m).moveSelected(-1)
		return m, nil

	case "alt+down", "J":
		(&m).moveSelected(1)
		return m, nil

	case "1":
		(&m).setFilter(model.FilterAll)
		return m, nil
	case "2":
		(&m).setFilter(model.FilterActive)
		return m, nil
	case "3":
		(&m).setFilter(model.FilterCompleted)
		return m, nil
	case "f", "tab":
		(&m).setFilter(m.filter.Next())
		return m, nil

	case "D":
		(&m).toggleDarkMode()
		return m, nil

	case "r":
		(&m).reload()
		return m, nil

	case "?":
		m.mode = modeHelp
		return m, nil

	case "esc":
		m.minibufferText = ""
		m.minibufferErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, res, cmd := m.form.update(msg)
	m.form = f
	switch res {
	case formCancel:
		m.mode = modeList
		m.form = taskForm{}
		return m, nil
	case formSubmit:
		if f.editingID == "" {
			it, err := mutate.AddTask(m.state, f.newTask())
			if err != nil {
				m.form.err = err.Error()
				return m, nil
			}
			id := it.ID
			(&m).save()
			(&m).refreshList()
			selectListItemByID(&m.list, id)
		} else {
			if err := model.ValidateDue(f.due.Value()); err != nil {
				m.form.err = err.Error()
				return m, nil
			}
			_, changed, err := mutate.EditText(m.state, f.editingID, f.text.Value())
			if err != nil {
				m.form.err = err.Error()
				return m, nil
			}
			_, changedFields, err := mutate.SetFields(m.state, f.editingID, f.fields())
			if err != nil {
				m.form.err = err.Error()
				return m, nil
			}
			if changed || changedFields {
				(&m).save()
				(&m).refreshList()
			}
		}
		m.mode = modeList
		m.form = taskForm{}
		return m, nil
	}
	return m, cmd
}

func (m appModel) updateEditText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.mode = modeList
		return m, nil
	case "enter":
		m.mode = modeList
		_, changed, err := mutate.EditText(m.state, m.prompt.taskID, m.prompt.input.Value())
		if err != nil {
			// Empty text leaves the task as it was.
			if !errors.Is(err, mutate.ErrEmptyText) {
				(&m).showError(err.Error())
			}
			return m, nil
		}
		if changed {
			(&m).save()
			(&m).refreshList()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.mode = modeList
		m.confirmID = ""
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		fallthrough
	case "enter":
		id := m.confirmID
		m.mode = modeList
		m.confirmID = ""
		if m.confirmFocus != confirmFocusConfirm {
			return m, nil
		}
		t, err := mutate.DeleteTask(m.state, id)
		if err != nil {
			(&m).showError(err.Error())
			return m, nil
		}
		(&m).save()
		(&m).refreshList()
		(&m).showMinibuffer("Deleted: " + t.Text)
		return m, nil
	}
	return m, nil
}

func (m *appModel) toggleSelected() {
	id := m.selectedID()
	if id == "" {
		return
	}
	if _, err := mutate.ToggleCompleted(m.state, id); err != nil {
		m.showError(err.Error())
		return
	}
	m.save()
	m.refreshList()
}

// moveSelected moves the selected task past its visible neighbour (dir -1 up,
// +1 down). Hidden tasks between them keep their relative order.
func (m *appModel) moveSelected(dir int) {
	id := m.selectedID()
	if id == "" {
		return
	}
	items := m.list.Items()
	cur := m.list.Index()
	nb := cur + dir
	if nb < 0 || nb >= len(items) {
		return
	}
	neighbour, ok := items[nb].(taskItem)
	if !ok {
		return
	}
	_, idx, ok := m.state.FindTask(neighbour.row.ID)
	if !ok {
		return
	}
	// Removing the moved task shifts a following neighbour up by one, so
	// inserting at the neighbour's original index lands just after it.
	changed, err := mutate.MoveTask(m.state, id, idx)
	if err != nil {
		m.showError(err.Error())
		return
	}
	if changed {
		m.save()
		m.refreshList()
		selectListItemByID(&m.list, id)
	}
}

func (m *appModel) setFilter(f model.Filter) {
	if m.filter == f {
		return
	}
	m.filter = f
	m.refreshList()
	if err := m.store.SaveTUIState(&store.TUIState{Filter: f}); err != nil {
		m.log.Warnf("tui: save ui state: %v", err)
	}
}

func (m *appModel) toggleDarkMode() {
	m.dark = !m.dark
	applyDarkMode(m.dark)
	if err := m.store.SaveDarkMode(context.Background(), m.dark); err != nil {
		m.log.Errorf("tui: save dark mode: %v", err)
		m.showError("Save failed: " + err.Error())
		return
	}
	if m.dark {
		m.showMinibuffer("Dark mode on")
	} else {
		m.showMinibuffer("Dark mode off")
	}
}

// updateMouse implements click-to-toggle and press/drag/release reordering.
func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeList {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.list.CursorUp()
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.list.CursorDown()
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press = pressState{}
		id, idx, ok := m.rowAt(msg.Y)
		if !ok {
			return m, nil
		}
		m.list.Select(idx)
		if msg.X < checkboxHitWidth {
			(&m).toggleSelected()
			return m, nil
		}
		m.press = pressState{active: true, id: id, y: msg.Y}
		return m, nil

	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		if !m.drag.Dragging() {
			if !m.press.active || msg.Y == m.press.y {
				return m, nil
			}
			if err := m.drag.Begin(m.state.TaskIDs(), m.press.id); err != nil {
				m.log.Warnf("tui: drag begin: %v", err)
				return m, nil
			}
			m.log.Debugf("tui: drag start id=%s origin=%d", m.press.id, m.drag.Origin())
		}
		// Pointer position is the centre of the cell.
		order, changed := m.drag.Over(m.pageRows(), float64(msg.Y)+0.5)
		if changed {
			mutate.ApplyOrder(m.state, order)
		}
		(&m).refreshList()
		selectListItemByID(&m.list, m.drag.DraggedID())
		return m, nil

	case msg.Action == tea.MouseActionRelease:
		m.press = pressState{}
		if !m.drag.Dragging() {
			return m, nil
		}
		id := m.drag.DraggedID()
		if !m.insideList(msg.X, msg.Y) {
			(&m).cancelDrag()
			return m, nil
		}
		order, err := m.drag.Drop()
		m.drag.End()
		if err != nil {
			(&m).refreshList()
			return m, nil
		}
		mutate.ApplyOrder(m.state, order)
		(&m).save()
		(&m).refreshList()
		selectListItemByID(&m.list, id)
		m.log.Debugf("tui: drag drop id=%s", id)
		return m, nil
	}
	return m, nil
}

// cancelDrag restores the order from before the drag; nothing is persisted.
func (m *appModel) cancelDrag() {
	id := m.drag.DraggedID()
	mutate.ApplyOrder(m.state, m.drag.Cancel())
	m.drag.End()
	m.press = pressState{}
	m.refreshList()
	selectListItemByID(&m.list, id)
	m.log.Debugf("tui: drag cancelled id=%s", id)
}
