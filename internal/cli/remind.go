package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasklist/internal/notify"
	"tasklist/internal/reminder"

	"github.com/spf13/cobra"
)

type reminderView struct {
	Text    string `json:"text"`
	DueDate string `json:"dueDate"`
	Due     string `json:"due"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

func remindersData(rs []reminder.Reminder) []reminderView {
	out := make([]reminderView, 0, len(rs))
	for _, r := range rs {
		n := r.Notification()
		out = append(out, reminderView{
			Text:    r.Task.Text,
			DueDate: r.Task.DueDate,
			Due:     r.Due.Format(time.RFC3339),
			Title:   n.Title,
			Body:    n.Body,
		})
	}
	return out
}

func newRemindCmd(app *App) *cobra.Command {
	var watch bool
	var interval time.Duration
	var terminalOnly bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Notify about tasks due within the next minute",
		Long: `Scans the list once (or every --interval with --watch) and sends a
notification for each incomplete task due within the next minute. Each
(text, due date) pair is notified at most once per process.

Desktop notifications are used when available (notify-send, osascript);
otherwise reminders are written to stderr with a terminal bell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			term := &notify.Terminal{W: cmd.ErrOrStderr(), Enabled: app.cfg.Notifications}
			var n notify.Notifier = notify.Fallback{Primary: notify.NewDesktop(app.cfg.Notifications), Secondary: term}
			if terminalOnly {
				n = term
			}

			sc := newScanner(app, s, n)
			if cmd.Flags().Changed("interval") {
				sc.Interval = interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			perm := n.RequestPermission(ctx)
			app.log.Infof("cli: remind permission=%s watch=%v", perm, watch)

			if !watch {
				got, err := sc.Scan(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{
					"data":       remindersData(got),
					"permission": perm.String(),
				})
			}

			// The first scan runs immediately; Run waits a full interval.
			if got, err := sc.Scan(ctx); err != nil {
				app.log.Errorf("cli: remind scan: %v", err)
			} else if len(got) > 0 {
				_ = writeOut(cmd, app, map[string]any{"data": remindersData(got)})
			}
			err = sc.Run(ctx, func(got []reminder.Reminder) {
				_ = writeOut(cmd, app, map[string]any{"data": remindersData(got)})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep scanning until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Scan interval for --watch (default: remind.interval from config)")
	cmd.Flags().BoolVar(&terminalOnly, "terminal", false, "Skip desktop notifications; write reminders to stderr")
	return cmd
}
