package store

import (
	"encoding/json"
	"strings"

	"tasklist/internal/model"
)

// Display placeholders the original browser app wrote back into storage when
// a task had no due date or category.
const (
	legacyNoDue      = "N/A"
	legacyNoCategory = "None"
)

type wireTask struct {
	Text      string `json:"text"`
	Priority  string `json:"priority"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate"`
	Category  string `json:"category"`
}

// EncodeTasks serializes the full list in display order.
func EncodeTasks(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeTasks parses the persisted list. It never fails: absent or malformed
// data yields an empty list, and individual malformed records are dropped.
// Every decoded task gets a fresh process-local ID.
func DecodeTasks(raw string) []model.Task {
	out := []model.Task{}
	if isNullOrEmpty([]byte(raw)) {
		return out
	}
	var recs []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return out
	}
	for _, rec := range recs {
		var w wireTask
		if err := json.Unmarshal(rec, &w); err != nil {
			continue
		}
		t, ok := normalizeWireTask(w)
		if !ok {
			continue
		}
		t.ID = model.NewID()
		out = append(out, t)
	}
	return out
}

func normalizeWireTask(w wireTask) (model.Task, bool) {
	text := strings.TrimSpace(w.Text)
	if text == "" {
		return model.Task{}, false
	}
	p, ok := model.ParsePriority(w.Priority)
	if !ok {
		p = model.PriorityMedium
	}
	due := strings.TrimSpace(w.DueDate)
	if due == legacyNoDue {
		due = ""
	}
	cat := strings.TrimSpace(w.Category)
	if cat == legacyNoCategory {
		cat = ""
	}
	return model.Task{
		Text:      text,
		Priority:  p,
		Completed: w.Completed,
		DueDate:   due,
		Category:  cat,
	}, true
}

func isNullOrEmpty(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	s := strings.TrimSpace(string(b))
	return s == "" || s == "null"
}
