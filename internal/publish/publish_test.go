package publish

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasklist/internal/model"
	"tasklist/internal/store"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "a", Text: "Buy milk", Priority: model.PriorityLow, DueDate: "2026-04-01T09:00"},
		{ID: "b", Text: "File *taxes*", Priority: model.PriorityHigh, Completed: true, Category: "admin"},
	}
}

func TestRenderTasksMarkdown(t *testing.T) {
	t.Parallel()

	md := RenderTasksMarkdown(sampleTasks(), RenderOptions{})
	for _, want := range []string{
		"# Tasks",
		"_1 active, 1 completed_",
		"- [ ] Buy milk **(low)**",
		"  Due: 2026-04-01T09:00 | Category: None",
		"- [x] File \\*taxes\\* **(high)**",
		"  Due: N/A | Category: admin",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
	if strings.Index(md, "Buy milk") > strings.Index(md, "taxes") {
		t.Fatalf("expected list order preserved:\n%s", md)
	}
}

func TestRenderTasksMarkdown_Filter(t *testing.T) {
	t.Parallel()

	md := RenderTasksMarkdown(sampleTasks(), RenderOptions{Filter: model.FilterActive, Title: "Today"})
	if !strings.HasPrefix(md, "# Today\n") {
		t.Fatalf("expected custom title:\n%s", md)
	}
	if strings.Contains(md, "taxes") {
		t.Fatalf("completed task should be filtered out:\n%s", md)
	}

	empty := RenderTasksMarkdown(nil, RenderOptions{})
	if !strings.Contains(empty, "_No tasks._") {
		t.Fatalf("expected empty marker:\n%s", empty)
	}
}

func TestExport_JSONRoundTripsThroughStore(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), FormatJSON, RenderOptions{}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	kv := store.NewMemoryKV()
	if err := kv.Set(context.Background(), store.KeyTasks, strings.TrimSpace(buf.String())); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.New(kv).LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	want := sampleTasks()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks; got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].SameRecord(want[i]) {
			t.Fatalf("task %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestExport_PDF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Export(&buf, sampleTasks(), FormatPDF, RenderOptions{}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected a PDF header; got %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWriteFile_RespectsOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "tasks.md")
	res, err := WriteFile(path, sampleTasks(), FormatMarkdown, RenderOptions{}, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if len(res.Written) != 1 || res.Bytes == 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	if _, err := WriteFile(path, sampleTasks(), FormatMarkdown, RenderOptions{}, WriteOptions{}); err == nil {
		t.Fatalf("expected refusal without --overwrite")
	}
	if _, err := WriteFile(path, sampleTasks(), FormatMarkdown, RenderOptions{}, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteFile(overwrite): %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatJSON, "md": FormatMarkdown, "PDF": FormatPDF} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Fatalf("expected error")
	}
}
