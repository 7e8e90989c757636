package model

import (
	"strings"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists priorities in picker order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Class is the row tag used by list renderers ("priority-high").
func (p Priority) Class() string {
	return "priority-" + string(p)
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	for i, x := range Priorities {
		if x == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}

// Task is one persisted to-do record.
//
// The JSON field names are the persisted wire format and must stay literal.
// ID is process-local: it addresses rows in the UI and drag sessions and is
// regenerated on every load.
type Task struct {
	ID        string   `json:"-"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	DueDate   string   `json:"dueDate"`
	Category  string   `json:"category"`
}

func NewID() string {
	return uuid.NewString()
}

// HasDue reports whether the task has a due date set.
func (t Task) HasDue() bool {
	return strings.TrimSpace(t.DueDate) != ""
}

// SameRecord compares persisted fields only (ID is ignored).
func (t Task) SameRecord(o Task) bool {
	return t.Text == o.Text &&
		t.Priority == o.Priority &&
		t.Completed == o.Completed &&
		t.DueDate == o.DueDate &&
		t.Category == o.Category
}
