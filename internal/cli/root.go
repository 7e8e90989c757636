package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/format"
	"tasklist/internal/logging"
	"tasklist/internal/notify"
	"tasklist/internal/reminder"
	"tasklist/internal/store"
	"tasklist/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Storage    string
	PrettyJSON bool
	Format     string

	cfg config.Config
	log *logging.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tasklist",
		Short:        "Local task list: TUI + scriptable CLI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tasklist

  # Scriptable commands
  tasklist add --text "Buy milk" --priority high --due 2026-01-02T09:30
  tasklist list --filter active
  tasklist toggle 1

  # Watch for tasks that are about to become due
  tasklist remind --watch
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init()
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.log.Close()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKLIST_DIR", ""), "Path to the data dir (default: dir from config, ~/.tasklist/default)")
	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("TASKLIST_STORAGE", ""), "Storage backend (sqlite|file|memory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKLIST_FORMAT", ""), "Output format (json|text)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newDoneCmd(app, true))
	cmd.AddCommand(newDoneCmd(app, false))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newRemindCmd(app))
	cmd.AddCommand(newDarkModeCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// init layers flags over the config file and environment.
func (app *App) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.cfg = cfg
	if strings.TrimSpace(app.Dir) == "" {
		app.Dir = cfg.Dir
	}
	if strings.TrimSpace(app.Storage) == "" {
		app.Storage = cfg.Storage
	}
	if strings.TrimSpace(app.Format) == "" {
		app.Format = cfg.Format
	}
	switch app.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format: %s (want json|text)", app.Format)
	}

	lg, err := logging.Open(cfg.DebugLog)
	if err != nil {
		// A broken debug log path must not block the command.
		fmt.Fprintf(os.Stderr, "tasklist: debug log: %v\n", err)
		lg = logging.Discard()
	}
	app.log = lg
	app.log.Debugf("cli: dir=%s storage=%s format=%s", app.Dir, app.Storage, app.Format)
	return nil
}

func runTUI(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	// Desktop notifications when available; the banner inside the TUI
	// otherwise.
	n := notify.Fallback{
		Primary:   notify.NewDesktop(app.cfg.Notifications),
		Secondary: notify.InApp{Enabled: app.cfg.Notifications},
	}
	return tui.Run(tui.Options{
		Store:    s,
		Notifier: n,
		Scanner:  newScanner(app, s, n),
		Interval: app.cfg.Remind.Interval,
		Theme:    app.cfg.Theme,
		Label:    app.Dir,
		Logger:   app.log,
	})
}

func openStore(app *App) (store.Store, error) {
	backend, err := store.ParseBackend(app.Storage)
	if err != nil {
		return store.Store{}, err
	}
	kv, err := store.OpenKV(backend, app.Dir)
	if err != nil {
		return store.Store{}, err
	}
	s := store.New(kv)
	s.Logger = app.log
	if backend != store.BackendMemory {
		s.Dir = app.Dir
	}
	return s, nil
}

// loadState opens the store and reads the persisted list.
func loadState(app *App) (*store.State, store.Store, error) {
	s, err := openStore(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	st, err := s.Load(context.Background())
	if err != nil {
		return nil, s, err
	}
	return st, s, nil
}

func newScanner(app *App, s store.Store, n notify.Notifier) *reminder.Scanner {
	return &reminder.Scanner{
		Source:   s,
		Notifier: n,
		Interval: app.cfg.Remind.Interval,
		Logger:   app.log,
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
