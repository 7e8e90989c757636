package mutate

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"tasklist/internal/listview"
	"tasklist/internal/model"
	"tasklist/internal/store"
)

func newTestStore(t *testing.T) (store.Store, *store.State) {
	t.Helper()
	s := store.New(store.NewMemoryKV())
	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, st
}

func mustSave(t *testing.T, s store.Store, st *store.State) {
	t.Helper()
	if err := s.Save(context.Background(), st); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func mustLoadTasks(t *testing.T, s store.Store) []model.Task {
	t.Helper()
	got, err := s.LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	return got
}

func assertPersistedMatchesRendered(t *testing.T, s store.Store, st *store.State) {
	t.Helper()
	rendered := listview.Tasks(listview.Render(st.Tasks))
	persisted := mustLoadTasks(t, s)
	if len(rendered) != len(persisted) {
		t.Fatalf("persisted %d tasks; rendered %d", len(persisted), len(rendered))
	}
	for i := range rendered {
		if !rendered[i].SameRecord(persisted[i]) {
			t.Fatalf("row %d differs:\nrendered:  %+v\npersisted: %+v", i, rendered[i], persisted[i])
		}
	}
}

func TestAddTask_Scenario1(t *testing.T) {
	s, st := newTestStore(t)

	if _, err := AddTask(st, NewTask{Text: "Buy milk", Priority: "low"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	mustSave(t, s, st)

	got := mustLoadTasks(t, s)
	if len(got) != 1 {
		t.Fatalf("expected 1 stored task; got %d", len(got))
	}
	want := model.Task{Text: "Buy milk", Priority: model.PriorityLow}
	if !got[0].SameRecord(want) {
		t.Fatalf("stored %+v; want %+v", got[0], want)
	}
}

func TestAddTask_RejectsEmptyText(t *testing.T) {
	s, st := newTestStore(t)
	if _, err := AddTask(st, NewTask{Text: "keep", Priority: "high"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	mustSave(t, s, st)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := AddTask(st, NewTask{Text: text, Priority: "low"}); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("AddTask(%q): expected ErrEmptyText; got %v", text, err)
		}
	}
	if len(st.Tasks) != 1 {
		t.Fatalf("expected list length unchanged; got %d", len(st.Tasks))
	}
	if got := mustLoadTasks(t, s); len(got) != 1 || got[0].Text != "keep" {
		t.Fatalf("expected storage unchanged; got %+v", got)
	}
}

func TestAddTask_ValidatesPriorityAndDue(t *testing.T) {
	_, st := newTestStore(t)

	if _, err := AddTask(st, NewTask{Text: "x", Priority: "urgent"}); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority; got %v", err)
	}
	if _, err := AddTask(st, NewTask{Text: "x", DueDate: "tomorrow"}); !errors.Is(err, model.ErrInvalidDue) {
		t.Fatalf("expected ErrInvalidDue; got %v", err)
	}
	it, err := AddTask(st, NewTask{Text: "  trimmed  ", Category: " home "})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if it.Text != "trimmed" || it.Category != "home" || it.Priority != model.PriorityMedium || it.ID == "" {
		t.Fatalf("unexpected task: %+v", it)
	}
}

func TestToggleCompleted_Scenario2(t *testing.T) {
	s, st := newTestStore(t)
	it, _ := AddTask(st, NewTask{Text: "Buy milk", Priority: "low"})
	mustSave(t, s, st)

	if _, err := ToggleCompleted(st, it.ID); err != nil {
		t.Fatalf("ToggleCompleted: %v", err)
	}
	mustSave(t, s, st)

	got := mustLoadTasks(t, s)
	if !got[0].Completed {
		t.Fatalf("expected stored task completed")
	}
	rows := listview.Render(st.Tasks)
	if n := len(listview.Visible(listview.ApplyFilter(rows, model.FilterCompleted))); n != 1 {
		t.Fatalf("completed filter should show the task; visible=%d", n)
	}
	if n := len(listview.Visible(listview.ApplyFilter(rows, model.FilterActive))); n != 0 {
		t.Fatalf("active filter should hide the task; visible=%d", n)
	}

	if _, err := ToggleCompleted(st, "missing"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestReorderAndDelete_Scenarios3And4(t *testing.T) {
	s, st := newTestStore(t)
	a, _ := AddTask(st, NewTask{Text: "A", Priority: "high"})
	aID := a.ID
	b, _ := AddTask(st, NewTask{Text: "B", Priority: "low"})
	bID := b.ID
	mustSave(t, s, st)

	changed, err := MoveTask(st, bID, 0)
	if err != nil || !changed {
		t.Fatalf("MoveTask: changed=%v err=%v", changed, err)
	}
	mustSave(t, s, st)
	got := mustLoadTasks(t, s)
	if len(got) != 2 || got[0].Text != "B" || got[1].Text != "A" {
		t.Fatalf("expected stored order [B A]; got %+v", got)
	}

	if _, err := DeleteTask(st, aID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	mustSave(t, s, st)
	got = mustLoadTasks(t, s)
	if len(got) != 1 || got[0].Text != "B" {
		t.Fatalf("expected only B stored; got %+v", got)
	}
}

func TestEditText(t *testing.T) {
	_, st := newTestStore(t)
	it, _ := AddTask(st, NewTask{Text: "old"})
	id := it.ID

	if _, changed, err := EditText(st, id, "   "); !errors.Is(err, ErrEmptyText) || changed {
		t.Fatalf("expected empty edit rejected; changed=%v err=%v", changed, err)
	}
	if st.Tasks[0].Text != "old" {
		t.Fatalf("rejected edit must not change text")
	}
	if _, changed, err := EditText(st, id, " new "); err != nil || !changed {
		t.Fatalf("EditText: changed=%v err=%v", changed, err)
	}
	if st.Tasks[0].Text != "new" {
		t.Fatalf("expected trimmed text; got %q", st.Tasks[0].Text)
	}
	if _, changed, _ := EditText(st, id, "new"); changed {
		t.Fatalf("same text should not report a change")
	}
}

func TestSetFields(t *testing.T) {
	_, st := newTestStore(t)
	it, _ := AddTask(st, NewTask{Text: "x", Priority: "low", Category: "home", DueDate: "2026-05-01"})
	id := it.ID

	high := "high"
	due := "2026-05-02T10:30"
	empty := ""
	got, changed, err := SetFields(st, id, Fields{Priority: &high, DueDate: &due, Category: &empty})
	if err != nil || !changed {
		t.Fatalf("SetFields: changed=%v err=%v", changed, err)
	}
	if got.Priority != model.PriorityHigh || got.DueDate != due || got.Category != "" {
		t.Fatalf("unexpected task: %+v", got)
	}

	bad := "soon"
	if _, changed, err := SetFields(st, id, Fields{DueDate: &bad, Priority: &high}); err == nil || changed {
		t.Fatalf("expected invalid due rejected; changed=%v err=%v", changed, err)
	}
	if st.Tasks[0].DueDate != due {
		t.Fatalf("rejected edit must leave the task untouched")
	}
	if _, changed, err := SetFields(st, id, Fields{}); err != nil || changed {
		t.Fatalf("empty edit: changed=%v err=%v", changed, err)
	}
}

func TestSetCompleted_Idempotent(t *testing.T) {
	_, st := newTestStore(t)
	it, _ := AddTask(st, NewTask{Text: "x"})
	id := it.ID
	if _, changed, _ := SetCompleted(st, id, true); !changed {
		t.Fatalf("expected change")
	}
	if _, changed, _ := SetCompleted(st, id, true); changed {
		t.Fatalf("expected no change on repeat")
	}
}

// Random operation sequences keep storage equal to the rendered list when
// every mutation is followed by a full save.
func TestOperationSequences_PersistedEqualsRendered(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 25; run++ {
		s, st := newTestStore(t)
		for step := 0; step < 40; step++ {
			pick := func() string {
				if len(st.Tasks) == 0 {
					return "missing"
				}
				return st.Tasks[rng.Intn(len(st.Tasks))].ID
			}
			var changed bool
			var err error
			switch rng.Intn(6) {
			case 0, 1:
				_, err = AddTask(st, NewTask{
					Text:     "task " + strconv.Itoa(step),
					Priority: string(model.Priorities[rng.Intn(3)]),
				})
				changed = err == nil
			case 2:
				_, err = ToggleCompleted(st, pick())
				changed = err == nil
			case 3:
				_, changed, err = EditText(st, pick(), "edited "+strconv.Itoa(step))
			case 4:
				_, err = DeleteTask(st, pick())
				changed = err == nil
			case 5:
				changed, err = MoveTask(st, pick(), rng.Intn(len(st.Tasks)+1))
			}
			if err != nil {
				var nf NotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("run %d step %d: unexpected error %v", run, step, err)
				}
			}
			if changed {
				mustSave(t, s, st)
			}
			assertPersistedMatchesRendered(t, s, st)
		}
	}
}
