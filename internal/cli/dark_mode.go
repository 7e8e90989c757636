package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDarkModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "dark-mode [on|off|toggle]",
		Short:     "Show or change the persisted dark mode preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			dark, found, err := s.LoadDarkMode(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"darkMode": dark, "stored": found}})
			}

			switch strings.ToLower(strings.TrimSpace(args[0])) {
			case "on", "true":
				dark = true
			case "off", "false":
				dark = false
			case "toggle":
				dark = !dark
			default:
				return writeErr(cmd, fmt.Errorf("unknown dark mode value: %s (want on|off|toggle)", args[0]))
			}
			if err := s.SaveDarkMode(ctx, dark); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"darkMode": dark, "stored": true}})
		},
	}
}
