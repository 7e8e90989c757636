package cli

import (
	"fmt"
	"strings"

	"tasklist/internal/docs"
	"tasklist/internal/tui"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Built-in help topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": docs.Topics()})
			}
			md, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic: %s (available: %s)", args[0], strings.Join(docs.Topics(), ", ")))
			}
			if !raw {
				md = tui.RenderMarkdown(md, 80, strings.EqualFold(app.cfg.Theme, "dark"))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), md)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")
	return cmd
}
