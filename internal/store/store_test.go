package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasklist/internal/logging"
	"tasklist/internal/model"
)

func backendsForTest(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	return map[string]KV{
		"sqlite": &SQLiteKV{Path: filepath.Join(dir, "sqlite", sqliteFileName)},
		"file":   &FileKV{Path: filepath.Join(dir, "file", stateFileName)},
		"memory": NewMemoryKV(),
	}
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "a", Text: "Buy milk", Priority: model.PriorityLow},
		{ID: "b", Text: "Ship release", Priority: model.PriorityHigh, Completed: true, DueDate: "2026-10-20T09:00", Category: "work"},
		{ID: "c", Text: "Call mom", Priority: model.PriorityMedium, Category: "family"},
	}
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, kv := range backendsForTest(t) {
		name, kv := name, kv
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := New(kv)

			want := sampleTasks()
			if err := s.SaveTasks(ctx, want); err != nil {
				t.Fatalf("SaveTasks: %v", err)
			}
			got, err := s.LoadTasks(ctx)
			if err != nil {
				t.Fatalf("LoadTasks: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("expected %d tasks; got %d (%+v)", len(want), len(got), got)
			}
			for i := range want {
				if !got[i].SameRecord(want[i]) {
					t.Fatalf("record %d mismatch:\nwant: %+v\ngot:  %+v", i, want[i], got[i])
				}
				if got[i].ID == "" {
					t.Fatalf("expected loaded task %d to get an id", i)
				}
			}
		})
	}
}

func TestStore_SaveOverwritesWholeList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(&SQLiteKV{Path: filepath.Join(t.TempDir(), sqliteFileName)})

	if err := s.SaveTasks(ctx, sampleTasks()); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	if err := s.SaveTasks(ctx, []model.Task{{Text: "only", Priority: model.PriorityLow}}); err != nil {
		t.Fatalf("SaveTasks (second): %v", err)
	}
	got, err := s.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(got) != 1 || got[0].Text != "only" {
		t.Fatalf("expected only the second list; got %+v", got)
	}
}

func TestStore_LoadFailsSoft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name string
		raw  *string
	}{
		{name: "absent"},
		{name: "empty", raw: strPtr("")},
		{name: "null", raw: strPtr("null")},
		{name: "not json", raw: strPtr("{oops")},
		{name: "object not array", raw: strPtr(`{"text":"x"}`)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kv := NewMemoryKV()
			if tt.raw != nil {
				_ = kv.Set(ctx, KeyTasks, *tt.raw)
			}
			got, err := New(kv).LoadTasks(ctx)
			if err != nil {
				t.Fatalf("LoadTasks: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil list; got %#v", got)
			}
		})
	}
}

func TestDecodeTasks_NormalizesLegacyRecords(t *testing.T) {
	t.Parallel()

	raw := `[
		{"text":"A","priority":"high","completed":false,"dueDate":"N/A","category":"None"},
		{"text":"   ","priority":"low"},
		{"text":"B","priority":"urgent","completed":true,"dueDate":"2026-01-02T10:00","category":"home"},
		{"text":42},
		{"text":"C"}
	]`
	got := DecodeTasks(raw)
	if len(got) != 3 {
		t.Fatalf("expected 3 valid records; got %d (%+v)", len(got), got)
	}
	if got[0].DueDate != "" || got[0].Category != "" {
		t.Fatalf("expected placeholders cleared; got %+v", got[0])
	}
	if got[1].Priority != model.PriorityMedium || !got[1].Completed || got[1].Category != "home" {
		t.Fatalf("unexpected record B: %+v", got[1])
	}
	if got[2].Text != "C" || got[2].Priority != model.PriorityMedium {
		t.Fatalf("unexpected record C: %+v", got[2])
	}
}

func TestEncodeTasks_UsesLiteralFieldNames(t *testing.T) {
	t.Parallel()

	raw, err := EncodeTasks([]model.Task{{ID: "x", Text: "Buy milk", Priority: model.PriorityLow}})
	if err != nil {
		t.Fatalf("EncodeTasks: %v", err)
	}
	want := `[{"text":"Buy milk","priority":"low","completed":false,"dueDate":"","category":""}]`
	if raw != want {
		t.Fatalf("unexpected wire format:\nwant: %s\ngot:  %s", want, raw)
	}

	empty, err := EncodeTasks(nil)
	if err != nil || empty != "[]" {
		t.Fatalf("expected [] for nil list; got %q %v", empty, err)
	}
}

func TestStore_DarkMode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv)

	if _, found, err := s.LoadDarkMode(ctx); err != nil || found {
		t.Fatalf("expected no stored dark mode; found=%v err=%v", found, err)
	}
	if err := s.SaveDarkMode(ctx, true); err != nil {
		t.Fatalf("SaveDarkMode: %v", err)
	}
	if raw, _, _ := kv.Get(ctx, KeyDarkMode); raw != "true" {
		t.Fatalf("expected stringified bool; got %q", raw)
	}
	dark, found, err := s.LoadDarkMode(ctx)
	if err != nil || !found || !dark {
		t.Fatalf("expected dark=true found=true; got %v %v %v", dark, found, err)
	}

	st, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !st.DarkMode {
		t.Fatalf("expected state dark mode on")
	}
}

func TestFileKV_CorruptFileLoadsEmptyAndIsReplacedOnSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "garbage", body: "{not json"},
		{name: "truncated", body: `{"tasks":"[{\"text\":\"a\"`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			dir := t.TempDir()
			path := filepath.Join(dir, stateFileName)
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			kv, err := OpenKV(BackendFile, dir)
			if err != nil {
				t.Fatalf("OpenKV: %v", err)
			}
			if _, _, err := kv.Get(ctx, KeyTasks); !errors.Is(err, ErrCorruptSlot) {
				t.Fatalf("Get err = %v; want ErrCorruptSlot", err)
			}

			var logBuf bytes.Buffer
			s := New(kv)
			s.Logger = logging.New(&logBuf)
			got, err := s.LoadTasks(ctx)
			if err != nil || got == nil || len(got) != 0 {
				t.Fatalf("LoadTasks = %+v, %v; want empty list", got, err)
			}
			if _, found, err := s.LoadDarkMode(ctx); err != nil || found {
				t.Fatalf("LoadDarkMode found=%v err=%v; want absent", found, err)
			}
			st, err := s.Load(ctx)
			if err != nil || len(st.Tasks) != 0 {
				t.Fatalf("Load = %+v, %v", st, err)
			}
			if !strings.Contains(logBuf.String(), "[WARN]") {
				t.Fatalf("expected a warning in the log; got %q", logBuf.String())
			}

			if err := kv.Set(ctx, KeyDarkMode, "false"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := kv.Get(ctx, KeyDarkMode)
			if err != nil || !ok || v != "false" {
				t.Fatalf("expected darkMode=false after rewrite; got %q %v %v", v, ok, err)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Fatalf("expected temp file to be renamed away; stat err=%v", err)
			}
		})
	}
}

func TestOpenKV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kv, err := OpenKV(BackendSQLite, dir)
	if err != nil {
		t.Fatalf("OpenKV sqlite: %v", err)
	}
	if sk, ok := kv.(*SQLiteKV); !ok || sk.Path != filepath.Join(dir, sqliteFileName) {
		t.Fatalf("unexpected sqlite kv: %#v", kv)
	}
	if _, err := OpenKV(BackendFile, ""); err == nil {
		t.Fatalf("expected error for file backend without dir")
	}
	if _, err := ParseBackend("redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestState_FindTask(t *testing.T) {
	t.Parallel()

	st := &State{Tasks: sampleTasks()}
	it, idx, ok := st.FindTask("b")
	if !ok || idx != 1 || it.Text != "Ship release" {
		t.Fatalf("unexpected FindTask result: %+v %d %v", it, idx, ok)
	}
	if _, _, ok := st.FindTask("zzz"); ok {
		t.Fatalf("expected missing task")
	}
	if ids := st.TaskIDs(); len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func strPtr(s string) *string { return &s }
