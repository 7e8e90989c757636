package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tasklist/internal/model"
	"tasklist/internal/mutate"
)

type formField int

const (
	fieldText formField = iota
	fieldDue
	fieldCategory
	fieldPriority
	fieldCount
)

// taskForm is the add/edit form: text, due date, category and a priority
// picker. editingID is empty when adding.
type taskForm struct {
	title     string
	editingID string

	text     textinput.Model
	due      textinput.Model
	category textinput.Model
	priority model.Priority

	focus formField
	err   string
}

func newTextInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Cursor.Style = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent)
	return in
}

func newTaskForm() taskForm {
	f := taskForm{
		title:    "Add task",
		text:     newTextInput("What needs doing?", 500),
		due:      newTextInput(model.DueInputLayout+" (optional)", 40),
		category: newTextInput("Category (optional)", 80),
		priority: model.PriorityMedium,
	}
	f.setFocus(fieldText)
	return f
}

func newEditForm(t model.Task) taskForm {
	f := newTaskForm()
	f.title = "Edit task"
	f.editingID = t.ID
	f.text.SetValue(t.Text)
	f.due.SetValue(t.DueDate)
	f.category.SetValue(t.Category)
	if t.Priority.Valid() {
		f.priority = t.Priority
	}
	f.text.CursorEnd()
	return f
}

func (f *taskForm) setFocus(field formField) {
	f.focus = (field + fieldCount) % fieldCount
	f.text.Blur()
	f.due.Blur()
	f.category.Blur()
	switch f.focus {
	case fieldText:
		f.text.Focus()
	case fieldDue:
		f.due.Focus()
	case fieldCategory:
		f.category.Focus()
	}
}

func (f taskForm) newTask() mutate.NewTask {
	return mutate.NewTask{
		Text:     f.text.Value(),
		Priority: string(f.priority),
		DueDate:  f.due.Value(),
		Category: f.category.Value(),
	}
}

func (f taskForm) fields() mutate.Fields {
	p := string(f.priority)
	due := f.due.Value()
	cat := f.category.Value()
	return mutate.Fields{Priority: &p, DueDate: &due, Category: &cat}
}

type formResult int

const (
	formContinue formResult = iota
	formSubmit
	formCancel
)

// update handles one message. Submission is only reported when the text is
// non-empty; otherwise the form stays open.
func (f taskForm) update(msg tea.Msg) (taskForm, formResult, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "ctrl+g":
			return f, formCancel, nil
		case "enter":
			if strings.TrimSpace(f.text.Value()) == "" {
				f.err = "Task text is required"
				f.setFocus(fieldText)
				return f, formContinue, nil
			}
			return f, formSubmit, nil
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, formContinue, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, formContinue, nil
		}
		if f.focus == fieldPriority {
			switch k.String() {
			case "left", "h":
				f.priority = prevPriority(f.priority)
			case "right", "l", " ":
				f.priority = f.priority.Next()
			case "1":
				f.priority = model.PriorityLow
			case "2":
				f.priority = model.PriorityMedium
			case "3":
				f.priority = model.PriorityHigh
			}
			return f, formContinue, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldText:
		f.text, cmd = f.text.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	case fieldCategory:
		f.category, cmd = f.category.Update(msg)
	}
	f.err = ""
	return f, formContinue, cmd
}

func prevPriority(p model.Priority) model.Priority {
	for i, x := range model.Priorities {
		if x == p {
			return model.Priorities[(i+len(model.Priorities)-1)%len(model.Priorities)]
		}
	}
	return model.PriorityMedium
}

func (f taskForm) view(width int) string {
	bodyW := modalBodyWidth(width)
	label := func(field formField, s string) string {
		st := styleMuted()
		if f.focus == field {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		return st.Render(s)
	}

	var pick []string
	for _, p := range model.Priorities {
		s := " " + string(p) + " "
		if p == f.priority {
			s = stylePriority(p).Reverse(true).Render(s)
		} else {
			s = styleMuted().Render(s)
		}
		pick = append(pick, s)
	}

	lines := []string{
		label(fieldText, "Task"),
		formInput(bodyW, f.text, f.focus == fieldText),
		label(fieldDue, "Due"),
		formInput(bodyW, f.due, f.focus == fieldDue),
		label(fieldCategory, "Category"),
		formInput(bodyW, f.category, f.focus == fieldCategory),
		label(fieldPriority, "Priority"),
		strings.Join(pick, " "),
	}
	if f.err != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorError).Render(f.err))
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render("tab: next field   ←/→: priority   enter: save   esc: cancel"))
	return renderModalBox(width, f.title, strings.Join(lines, "\n"))
}

// formInput renders one field of a modal as a single bodyW-wide row: a
// focus bar in the gutter, then the input on the input background. Long
// values are truncated with an ellipsis instead of wrapping.
func formInput(bodyW int, in textinput.Model, focused bool) string {
	bodyW = max(bodyW, 10)

	gutter := " "
	if focused {
		gutter = lipgloss.NewStyle().Foreground(colorAccent).Render(glyphFocusBar())
	}
	view := inputFlattener.Replace(in.View())
	view = xansi.Truncate(view, bodyW-2, "…")

	field := lipgloss.NewStyle().
		Background(colorInputBg).
		Width(bodyW - 1).
		MaxHeight(1).
		Render(" " + view)
	return gutter + field
}

var inputFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// textPrompt is the single-line edit prompt ("e").
type textPrompt struct {
	taskID string
	input  textinput.Model
}

func newTextPrompt(t model.Task) textPrompt {
	in := newTextInput("Task text", 500)
	in.SetValue(t.Text)
	in.CursorEnd()
	in.Focus()
	return textPrompt{taskID: t.ID, input: in}
}

func (p textPrompt) view(width int) string {
	bodyW := modalBodyWidth(width)
	content := formInput(bodyW, p.input, true) + "\n\n" +
		styleMuted().Width(bodyW).Render("enter: save   esc: cancel   (empty text keeps the task unchanged)")
	return renderModalBox(width, "Edit task", content)
}
