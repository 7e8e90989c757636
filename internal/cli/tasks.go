package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tasklist/internal/listview"
	"tasklist/internal/model"
	"tasklist/internal/mutate"
	"tasklist/internal/store"

	"github.com/spf13/cobra"
)

// taskView is the CLI shape of a task: the persisted fields plus its 1-based
// position in the full list.
type taskView struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Priority  string `json:"priority"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate"`
	Category  string `json:"category"`
}

func viewOf(t model.Task, idx int) taskView {
	return taskView{
		Index:     idx + 1,
		Text:      t.Text,
		Priority:  string(t.Priority),
		Completed: t.Completed,
		DueDate:   t.DueDate,
		Category:  t.Category,
	}
}

type taskList []taskView

func (l taskList) Headers() []string {
	return []string{"#", "Done", "Task", "Priority", "Due", "Category"}
}

func (l taskList) Rows() [][]string {
	out := make([][]string, 0, len(l))
	for _, t := range l {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		out = append(out, []string{strconv.Itoa(t.Index), done, t.Text, t.Priority, t.DueDate, t.Category})
	}
	return out
}

func (t taskView) Headers() []string { return taskList{}.Headers() }
func (t taskView) Rows() [][]string  { return taskList{t}.Rows() }

// saveAndWrite flushes st and prints the task at idx.
func saveAndWrite(cmd *cobra.Command, app *App, s store.Store, st *store.State, idx int) error {
	if err := s.Save(context.Background(), st); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": viewOf(st.Tasks[idx], idx)})
}

func newAddCmd(app *App) *cobra.Command {
	var text string
	var due string
	var category string
	var priority string

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a task",
		Example: strings.TrimSpace(`
  tasklist add Buy milk
  tasklist add --text "Call the bank" --priority high --due 2026-01-02T09:30 --category errands
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(text) == "" {
				text = strings.Join(args, " ")
			}
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := mutate.AddTask(st, mutate.NewTask{
				Text:     text,
				Priority: priority,
				DueDate:  due,
				Category: category,
			}); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Infof("cli: add %q", strings.TrimSpace(text))
			return saveAndWrite(cmd, app, s, st, len(st.Tasks)-1)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Task text (default: positional args)")
	cmd.Flags().StringVar(&due, "due", "", "Due date ("+model.DueInputLayout+")")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (low|medium|high)")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := taskList{}
			for _, r := range listview.Visible(listview.ApplyFilter(listview.Render(st.Tasks), f)) {
				out = append(out, viewOf(r.Task, r.Index))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(model.FilterAll), "Filter (all|active|completed)")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <n>",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, idx, err := taskAt(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := mutate.ToggleCompleted(st, t.ID); err != nil {
				return writeErr(cmd, err)
			}
			return saveAndWrite(cmd, app, s, st, idx)
		},
	}
}

// newDoneCmd builds `done` (completed=true) and `undo` (completed=false).
// Unlike toggle, both are idempotent.
func newDoneCmd(app *App, completed bool) *cobra.Command {
	use, short := "done <n>", "Mark a task completed"
	if !completed {
		use, short = "undo <n>", "Mark a task active again"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, idx, err := taskAt(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, changed, err := mutate.SetCompleted(st, t.ID, completed)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !changed {
				return writeOut(cmd, app, map[string]any{"data": viewOf(*t, idx)})
			}
			return saveAndWrite(cmd, app, s, st, idx)
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit <n> [text...]",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("text") {
				text = strings.Join(args[1:], " ")
			}
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, idx, err := taskAt(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, changed, err := mutate.EditText(st, t.ID, text)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !changed {
				return writeOut(cmd, app, map[string]any{"data": viewOf(*t, idx)})
			}
			return saveAndWrite(cmd, app, s, st, idx)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text (default: positional args after <n>)")
	return cmd
}

func newSetCmd(app *App) *cobra.Command {
	var priority string
	var due string
	var category string

	cmd := &cobra.Command{
		Use:   "set <n>",
		Short: "Change priority, due date, or category",
		Long:  "Only the flags you pass are changed. Pass an empty value (--due \"\") to clear a due date or category.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var f mutate.Fields
			if cmd.Flags().Changed("priority") {
				f.Priority = &priority
			}
			if cmd.Flags().Changed("due") {
				f.DueDate = &due
			}
			if cmd.Flags().Changed("category") {
				f.Category = &category
			}
			if f.Priority == nil && f.DueDate == nil && f.Category == nil {
				return writeErr(cmd, errors.New("nothing to set (pass --priority, --due, or --category)"))
			}

			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, idx, err := taskAt(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, changed, err := mutate.SetFields(st, t.ID, f)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !changed {
				return writeOut(cmd, app, map[string]any{"data": viewOf(*t, idx)})
			}
			return saveAndWrite(cmd, app, s, st, idx)
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&due, "due", "", "Due date ("+model.DueInputLayout+"); empty clears")
	cmd.Flags().StringVar(&category, "category", "", "Category; empty clears")
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, idx, err := taskAt(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			removed, err := mutate.DeleteTask(st, t.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(context.Background(), st); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Infof("cli: rm %q", removed.Text)
			return writeOut(cmd, app, map[string]any{"data": viewOf(removed, idx)})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "move <n> --to <position>",
		Short: "Move a task to another position",
		Long:  "Positions are 1-based. The task ends up at --to; the tasks in between shift by one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, _, err := taskAt(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if to < 1 || to > len(st.Tasks) {
				return writeErr(cmd, errIndex(strconv.Itoa(to), len(st.Tasks)))
			}
			id := t.ID
			changed, err := mutate.MoveTask(st, id, to-1)
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				if err := s.Save(context.Background(), st); err != nil {
					return writeErr(cmd, err)
				}
			}
			out := taskList{}
			for i, x := range st.Tasks {
				out = append(out, viewOf(x, i))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Target position (1-based)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
