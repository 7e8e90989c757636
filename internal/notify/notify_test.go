package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDesktop_PermissionAndDelivery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var ran [][]string
	d := &Desktop{
		Enabled:  true,
		LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		Run: func(_ context.Context, name string, args ...string) error {
			ran = append(ran, append([]string{name}, args...))
			return nil
		},
	}

	if got := d.Permission(); got != PermissionDefault {
		t.Fatalf("expected default permission before request; got %v", got)
	}
	if got := d.RequestPermission(ctx); got != PermissionGranted {
		t.Fatalf("expected granted; got %v", got)
	}
	if err := d.Notify(ctx, Notification{Title: "Task Reminder", Body: "hi"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(ran) != 1 {
		t.Fatalf("expected one notifier invocation; got %v", ran)
	}
	if !strings.Contains(strings.Join(ran[0], " "), "hi") {
		t.Fatalf("expected body in invocation; got %v", ran[0])
	}
}

func TestDesktop_DeniedWhenDisabledOrMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	calls := 0
	run := func(context.Context, string, ...string) error { calls++; return nil }

	disabled := &Desktop{Enabled: false, Run: run}
	if got := disabled.RequestPermission(ctx); got != PermissionDenied {
		t.Fatalf("expected denied when disabled; got %v", got)
	}

	missing := &Desktop{
		Enabled:  true,
		LookPath: func(string) (string, error) { return "", errors.New("not found") },
		Run:      run,
	}
	if got := missing.RequestPermission(ctx); got != PermissionDenied {
		t.Fatalf("expected denied without binary; got %v", got)
	}
	_ = missing.Notify(ctx, Notification{Body: "x"})
	if calls != 0 {
		t.Fatalf("denied notifier must not deliver; calls=%d", calls)
	}
}

func TestTerminal_WritesWithBell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := &Terminal{W: &buf, Enabled: true}
	ctx := context.Background()
	if term.RequestPermission(ctx) != PermissionGranted {
		t.Fatalf("expected granted")
	}
	_ = term.Notify(ctx, Notification{Title: "Task Reminder", Body: "⏰ Buy milk is due soon!"})
	if got := buf.String(); got != "\aTask Reminder: ⏰ Buy milk is due soon!\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFallback_UsesSecondaryWhenPrimaryDenied(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	primary := &Recorder{Grant: false}
	secondary := &Recorder{Grant: true}
	f := Fallback{Primary: primary, Secondary: secondary}

	if f.RequestPermission(ctx) != PermissionGranted {
		t.Fatalf("expected fallback granted")
	}
	_ = f.Notify(ctx, Notification{Body: "x"})
	if len(primary.Sent()) != 0 || len(secondary.Sent()) != 1 {
		t.Fatalf("expected delivery via secondary; primary=%v secondary=%v", primary.Sent(), secondary.Sent())
	}
}

func TestFallback_DesktopFailureFallsThroughToInApp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	calls := 0
	desktop := &Desktop{
		Enabled:  true,
		LookPath: func(string) (string, error) { return "/usr/bin/notify-send", nil },
		Run: func(context.Context, string, ...string) error {
			calls++
			return errors.New("no dbus session")
		},
	}
	f := Fallback{Primary: desktop, Secondary: InApp{Enabled: true}}

	if f.RequestPermission(ctx) != PermissionGranted {
		t.Fatalf("expected fallback granted")
	}
	if err := f.Notify(ctx, Notification{Title: "Task Reminder", Body: "x"}); err != nil {
		t.Fatalf("expected in-app delivery after desktop failure; got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one desktop attempt; got %d", calls)
	}

	// Both sides failing surfaces the desktop error.
	f = Fallback{Primary: desktop, Secondary: InApp{}}
	if err := f.Notify(ctx, Notification{Body: "x"}); err == nil || !strings.Contains(err.Error(), "no dbus session") {
		t.Fatalf("expected desktop error when secondary is off; got %v", err)
	}
}

func TestRecorder_DeniedDropsNotifications(t *testing.T) {
	t.Parallel()

	r := &Recorder{}
	ctx := context.Background()
	if r.RequestPermission(ctx) != PermissionDenied {
		t.Fatalf("expected denied")
	}
	_ = r.Notify(ctx, Notification{Body: "x"})
	if len(r.Sent()) != 0 {
		t.Fatalf("expected nothing delivered")
	}
}

func TestInApp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := (InApp{Enabled: true}).RequestPermission(ctx); got != PermissionGranted {
		t.Fatalf("expected granted; got %v", got)
	}
	if got := (InApp{}).RequestPermission(ctx); got != PermissionDenied {
		t.Fatalf("expected denied; got %v", got)
	}
}
