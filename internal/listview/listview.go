// Package listview projects the task list into display rows.
//
// Rendering is a pure function of the in-memory records: rows are never read
// back to derive task state.
package listview

import (
	"strings"

	"tasklist/internal/model"
)

// Row is one rendered list row.
type Row struct {
	Index     int // position in the full list
	ID        string
	Task      model.Task
	Class     string // priority class, e.g. "priority-high"
	Completed bool
	Visible   bool
}

// Render produces one row per task, all visible.
func Render(tasks []model.Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, Row{
			Index:     i,
			ID:        t.ID,
			Task:      t,
			Class:     t.Priority.Class(),
			Completed: t.Completed,
			Visible:   true,
		})
	}
	return rows
}

// ApplyFilter sets visibility from each row's completed flag. It returns a
// new slice and never changes order.
func ApplyFilter(rows []Row, f model.Filter) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		r.Visible = f.Matches(r.Task)
		out[i] = r
	}
	return out
}

// Visible returns the visible rows in display order.
func Visible(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Visible {
			out = append(out, r)
		}
	}
	return out
}

// Tasks returns the records behind rows, in row order.
func Tasks(rows []Row) []model.Task {
	out := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Task)
	}
	return out
}

// Meta renders the secondary line shown under a task.
func Meta(t model.Task) string {
	due := strings.TrimSpace(t.DueDate)
	if due == "" {
		due = "N/A"
	}
	cat := strings.TrimSpace(t.Category)
	if cat == "" {
		cat = "None"
	}
	return "Due: " + due + " | Category: " + cat
}

// Counts summarizes the list for headers.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

func Count(tasks []model.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}
