package mutate

import (
	"fmt"
	"strings"

	"tasklist/internal/model"
	"tasklist/internal/reorder"
	"tasklist/internal/store"
)

// Every function here mutates st in place and reports whether anything
// changed. Callers are responsible for flushing st.Tasks to the store after a
// change; nothing is written on rejected input.

type NewTask struct {
	Text     string
	Priority string
	DueDate  string
	Category string
}

// AddTask appends a task built from form input. Priority defaults to medium.
func AddTask(st *store.State, in NewTask) (*model.Task, error) {
	if st == nil {
		return nil, fmt.Errorf("nil state")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	p := model.PriorityMedium
	if strings.TrimSpace(in.Priority) != "" {
		var ok bool
		p, ok = model.ParsePriority(in.Priority)
		if !ok {
			return nil, ErrInvalidPriority
		}
	}
	due := strings.TrimSpace(in.DueDate)
	if err := model.ValidateDue(due); err != nil {
		return nil, fmt.Errorf("%w: %q", err, due)
	}
	st.Tasks = append(st.Tasks, model.Task{
		ID:       model.NewID(),
		Text:     text,
		Priority: p,
		DueDate:  due,
		Category: strings.TrimSpace(in.Category),
	})
	return &st.Tasks[len(st.Tasks)-1], nil
}

func ToggleCompleted(st *store.State, id string) (*model.Task, error) {
	t, _, ok := st.FindTask(id)
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	t.Completed = !t.Completed
	return t, nil
}

// SetCompleted is the idempotent variant used by scripts.
func SetCompleted(st *store.State, id string, completed bool) (*model.Task, bool, error) {
	t, _, ok := st.FindTask(id)
	if !ok {
		return nil, false, NotFoundError{Kind: "task", ID: id}
	}
	if t.Completed == completed {
		return t, false, nil
	}
	t.Completed = completed
	return t, true, nil
}

// EditText replaces the task text. Empty (after trimming) input is rejected
// with ErrEmptyText and leaves the task untouched.
func EditText(st *store.State, id, text string) (*model.Task, bool, error) {
	t, _, ok := st.FindTask(id)
	if !ok {
		return nil, false, NotFoundError{Kind: "task", ID: id}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return t, false, ErrEmptyText
	}
	if t.Text == text {
		return t, false, nil
	}
	t.Text = text
	return t, true, nil
}

// Fields holds optional edits; nil means "leave as is". An empty DueDate or
// Category clears it.
type Fields struct {
	Priority *string
	DueDate  *string
	Category *string
}

func SetFields(st *store.State, id string, f Fields) (*model.Task, bool, error) {
	t, _, ok := st.FindTask(id)
	if !ok {
		return nil, false, NotFoundError{Kind: "task", ID: id}
	}
	next := *t
	if f.Priority != nil {
		p, ok := model.ParsePriority(*f.Priority)
		if !ok {
			return t, false, ErrInvalidPriority
		}
		next.Priority = p
	}
	if f.DueDate != nil {
		due := strings.TrimSpace(*f.DueDate)
		if err := model.ValidateDue(due); err != nil {
			return t, false, fmt.Errorf("%w: %q", err, due)
		}
		next.DueDate = due
	}
	if f.Category != nil {
		next.Category = strings.TrimSpace(*f.Category)
	}
	if next == *t {
		return t, false, nil
	}
	*t = next
	return t, true, nil
}

func DeleteTask(st *store.State, id string) (model.Task, error) {
	t, idx, ok := st.FindTask(id)
	if !ok {
		return model.Task{}, NotFoundError{Kind: "task", ID: id}
	}
	removed := *t
	st.Tasks = append(st.Tasks[:idx], st.Tasks[idx+1:]...)
	return removed, nil
}

// MoveTask moves id to insertAt (index after removing it from the list).
func MoveTask(st *store.State, id string, insertAt int) (bool, error) {
	if _, _, ok := st.FindTask(id); !ok {
		return false, NotFoundError{Kind: "task", ID: id}
	}
	order, changed := reorder.Move(st.TaskIDs(), id, insertAt)
	if !changed {
		return false, nil
	}
	ApplyOrder(st, order)
	return true, nil
}

// ApplyOrder rearranges st.Tasks to follow order (task IDs in display order),
// e.g. the order returned by a finished drag session.
func ApplyOrder(st *store.State, order []string) bool {
	if st == nil {
		return false
	}
	before := st.TaskIDs()
	st.Tasks = reorder.Apply(st.Tasks, func(t model.Task) string { return t.ID }, order)
	after := st.TaskIDs()
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}
