package cli

import (
	"context"
	"errors"
	"strings"

	"tasklist/internal/model"
	"tasklist/internal/publish"
	"tasklist/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newExportCmd(app *App) *cobra.Command {
	var as string
	var out string
	var overwrite bool
	var filter string
	var title string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the list as JSON, Markdown, or PDF",
		Long: `Exports the task list in display order.

--as json writes the persisted wire form (a JSON array of
{text, priority, completed, dueDate, category}).`,
		Example: strings.TrimSpace(`
  tasklist export --as markdown
  tasklist export --as pdf --out tasks.pdf
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := publish.ParseFormat(as)
			if err != nil {
				return writeErr(cmd, err)
			}
			flt, err := model.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.RenderOptions{Filter: flt, Title: title}

			if strings.TrimSpace(out) == "" {
				if f == publish.FormatPDF {
					return writeErr(cmd, errors.New("pdf export needs --out"))
				}
				if err := publish.Export(cmd.OutOrStdout(), st.Tasks, f, opt); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}

			res, err := publish.WriteFile(out, st.Tasks, f, opt, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Infof("cli: export %s -> %s (%d bytes)", f, out, res.Bytes)
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&as, "as", string(publish.FormatJSON), "Export format (json|markdown|pdf)")
	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing --out file")
	cmd.Flags().StringVar(&filter, "filter", string(model.FilterAll), "Filter (all|active|completed)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (markdown, pdf)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var filter string
	var width int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the list as styled Markdown in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			flt, err := model.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dark, found, err := s.LoadDarkMode(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			if !found {
				dark = strings.EqualFold(strings.TrimSpace(app.cfg.Theme), "dark")
			}
			if width <= 0 {
				width = 80
				if w, _, err := term.GetSize(0); err == nil && w > 0 {
					width = w
				}
			}
			md := publish.RenderTasksMarkdown(st.Tasks, publish.RenderOptions{Filter: flt})
			_, err = cmd.OutOrStdout().Write([]byte(tui.RenderMarkdown(md, width, dark) + "\n"))
			return err
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(model.FilterAll), "Filter (all|active|completed)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (default: terminal width or 80)")
	return cmd
}
