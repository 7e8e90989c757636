// Package reminder scans persisted tasks on a fixed interval and notifies
// about tasks that are about to become due.
package reminder

import (
	"context"
	"sync"
	"time"

	"tasklist/internal/logging"
	"tasklist/internal/model"
	"tasklist/internal/notify"
)

const (
	DefaultInterval = time.Minute
	// Horizon is how far ahead of its due time a task is reported.
	Horizon = time.Minute

	Title = "Task Reminder"
)

// Source supplies the persisted task list. store.Store implements it.
type Source interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
}

// Reminder is one notification produced by a scan.
type Reminder struct {
	Task model.Task
	Due  time.Time
}

func (r Reminder) Notification() notify.Notification {
	return notify.Notification{Title: Title, Body: Body(r.Task)}
}

func Body(t model.Task) string {
	return "⏰ " + t.Text + " is due soon!"
}

// Due reports whether t is incomplete and due strictly within (now, now+Horizon).
func Due(t model.Task, now time.Time, loc *time.Location) (time.Time, bool) {
	if t.Completed || !t.HasDue() {
		return time.Time{}, false
	}
	due, err := model.ParseDue(t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	delta := due.Sub(now)
	return due, delta > 0 && delta < Horizon
}

type notifiedKey struct {
	text string
	due  string
}

// Scanner notifies at most once per (text, due date) pair for the lifetime
// of the process. Tasks carry no stable identity across reloads, so two
// distinct tasks with identical text and due date share one notification.
type Scanner struct {
	Source   Source
	Notifier notify.Notifier
	Interval time.Duration
	Location *time.Location
	Now      func() time.Time
	Logger   *logging.Logger

	mu       sync.Mutex
	notified map[notifiedKey]time.Time
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scanner) interval() time.Duration {
	if s.Interval > 0 {
		return s.Interval
	}
	return DefaultInterval
}

// Scan reads the source once and delivers a notification for each task in
// the reminder window. Nothing is delivered (or recorded) unless permission
// has been granted.
func (s *Scanner) Scan(ctx context.Context) ([]Reminder, error) {
	if s.Notifier == nil || s.Notifier.Permission() != notify.PermissionGranted {
		return nil, nil
	}
	tasks, err := s.Source.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notified == nil {
		s.notified = map[notifiedKey]time.Time{}
	}
	for k, due := range s.notified {
		if !due.After(now) {
			delete(s.notified, k)
		}
	}

	var out []Reminder
	for _, t := range tasks {
		due, ok := Due(t, now, s.Location)
		if !ok {
			continue
		}
		key := notifiedKey{text: t.Text, due: t.DueDate}
		if _, seen := s.notified[key]; seen {
			continue
		}
		r := Reminder{Task: t, Due: due}
		if err := s.Notifier.Notify(ctx, r.Notification()); err != nil {
			s.Logger.Warnf("reminder: notify %q: %v", t.Text, err)
			continue
		}
		s.notified[key] = due
		out = append(out, r)
	}
	if len(out) > 0 {
		s.Logger.Infof("reminder: %d notification(s) at %s", len(out), now.Format(time.RFC3339))
	}
	return out, nil
}

// Run scans every Interval until ctx is cancelled. onScan, when non-nil,
// receives each non-empty scan result.
func (s *Scanner) Run(ctx context.Context, onScan func([]Reminder)) error {
	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			got, err := s.Scan(ctx)
			if err != nil {
				s.Logger.Errorf("reminder: scan: %v", err)
				continue
			}
			if len(got) > 0 && onScan != nil {
				onScan(got)
			}
		}
	}
}
