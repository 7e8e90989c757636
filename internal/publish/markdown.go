package publish

import (
	"bytes"
	"strconv"
	"strings"

	"tasklist/internal/listview"
	"tasklist/internal/model"
)

type RenderOptions struct {
	Filter model.Filter
	Title  string
}

// RenderTasksMarkdown renders tasks as a GitHub-style checklist, in list
// order, with due date and category under each entry.
func RenderTasksMarkdown(tasks []model.Task, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Tasks"
	}
	writeLn("# " + title)
	writeLn("")

	c := listview.Count(tasks)
	writeLn("_" + strconv.Itoa(c.Active) + " active, " + strconv.Itoa(c.Completed) + " completed_")
	writeLn("")

	rows := listview.Visible(listview.ApplyFilter(listview.Render(tasks), opt.Filter))
	if len(rows) == 0 {
		writeLn("_No tasks._")
		return buf.String()
	}
	for _, r := range rows {
		box := "[ ]"
		if r.Completed {
			box = "[x]"
		}
		writeLn("- " + box + " " + escapeInline(r.Task.Text) + " **(" + string(r.Task.Priority) + ")**")
		writeLn("  " + listview.Meta(r.Task))
	}
	return buf.String()
}

// escapeInline keeps task text from being read as markdown structure.
func escapeInline(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"[", "\\[",
		"]", "\\]",
		"\n", " ",
	)
	return r.Replace(s)
}
