package listview

import (
	"reflect"
	"testing"

	"tasklist/internal/model"
)

func sample() []model.Task {
	return []model.Task{
		{ID: "a", Text: "A", Priority: model.PriorityHigh},
		{ID: "b", Text: "B", Priority: model.PriorityLow, Completed: true, DueDate: "2026-01-01T08:00", Category: "home"},
		{ID: "c", Text: "C", Priority: model.PriorityMedium},
	}
}

func visibleIDs(rows []Row) []string {
	var out []string
	for _, r := range Visible(rows) {
		out = append(out, r.ID)
	}
	return out
}

func TestRender_TagsRows(t *testing.T) {
	t.Parallel()

	rows := Render(sample())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows; got %d", len(rows))
	}
	for i, r := range rows {
		if r.Index != i || !r.Visible {
			t.Fatalf("row %d: unexpected index/visibility %+v", i, r)
		}
	}
	if rows[0].Class != "priority-high" || rows[1].Class != "priority-low" {
		t.Fatalf("unexpected classes: %q %q", rows[0].Class, rows[1].Class)
	}
	if !rows[1].Completed || rows[0].Completed {
		t.Fatalf("unexpected completion flags")
	}
	if !reflect.DeepEqual(Tasks(rows), sample()) {
		t.Fatalf("Tasks(rows) should return the rendered records unchanged")
	}
}

func TestApplyFilter(t *testing.T) {
	t.Parallel()

	rows := Render(sample())
	tests := []struct {
		f    model.Filter
		want []string
	}{
		{f: model.FilterAll, want: []string{"a", "b", "c"}},
		{f: model.FilterActive, want: []string{"a", "c"}},
		{f: model.FilterCompleted, want: []string{"b"}},
	}
	for _, tt := range tests {
		got := visibleIDs(ApplyFilter(rows, tt.f))
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("filter %s: got %v want %v", tt.f, got, tt.want)
		}
	}
}

func TestApplyFilter_Idempotent(t *testing.T) {
	t.Parallel()

	rows := Render(sample())
	for _, f := range model.Filters {
		once := ApplyFilter(rows, f)
		twice := ApplyFilter(once, f)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("filter %s is not idempotent", f)
		}
		// Order and records are untouched.
		if !reflect.DeepEqual(Tasks(once), sample()) {
			t.Fatalf("filter %s changed records", f)
		}
	}
}

func TestMeta(t *testing.T) {
	t.Parallel()

	if got := Meta(model.Task{}); got != "Due: N/A | Category: None" {
		t.Fatalf("Meta(empty) = %q", got)
	}
	if got := Meta(sample()[1]); got != "Due: 2026-01-01T08:00 | Category: home" {
		t.Fatalf("Meta = %q", got)
	}
	if c := Count(sample()); c.Total != 3 || c.Active != 2 || c.Completed != 1 {
		t.Fatalf("Count = %+v", c)
	}
}
