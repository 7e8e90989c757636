package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/notify"
	"tasklist/internal/reminder"
)

type permissionMsg struct{ perm notify.Permission }

type reminderTickMsg struct{}

type remindersMsg struct {
	reminders []reminder.Reminder
	err       error
}

type flashDoneMsg struct{ seq int }

const minibufferAutoClearAfter = 8 * time.Second

// requestPermissionCmd asks the notifier once at startup.
func requestPermissionCmd(n notify.Notifier) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		return permissionMsg{perm: n.RequestPermission(context.Background())}
	}
}

func tickReminders(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = reminder.DefaultInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return reminderTickMsg{} })
}

func scanRemindersCmd(s *reminder.Scanner) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		got, err := s.Scan(context.Background())
		return remindersMsg{reminders: got, err: err}
	}
}

func clearFlashAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func reminderBanner(rs []reminder.Reminder) string {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, r.Task.Text)
	}
	noun := "is"
	if len(rs) > 1 {
		noun = "are"
	}
	return glyphReminder() + " " + strings.Join(parts, ", ") + " " + noun + " due soon!"
}
