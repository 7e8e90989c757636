// Package notify delivers user-visible notifications (desktop or terminal)
// behind a permission gate that is requested once at startup.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

type Notification struct {
	Title string
	Body  string
}

type Notifier interface {
	// RequestPermission asks once and caches the answer.
	RequestPermission(ctx context.Context) Permission
	Permission() Permission
	Notify(ctx context.Context, n Notification) error
}

// Desktop shows notifications through the platform's command-line notifier
// (notify-send on Linux, osascript on macOS). Permission is granted when
// notifications are enabled and a notifier binary is available.
type Desktop struct {
	Enabled bool

	// Hooks for tests.
	LookPath func(file string) (string, error)
	Run      func(ctx context.Context, name string, args ...string) error

	mu   sync.Mutex
	perm Permission
	bin  string
}

func NewDesktop(enabled bool) *Desktop {
	return &Desktop{Enabled: enabled}
}

func (d *Desktop) lookPath(file string) (string, error) {
	if d.LookPath != nil {
		return d.LookPath(file)
	}
	return exec.LookPath(file)
}

func (d *Desktop) run(ctx context.Context, name string, args ...string) error {
	if d.Run != nil {
		return d.Run(ctx, name, args...)
	}
	return exec.CommandContext(ctx, name, args...).Run()
}

func desktopBinary() string {
	if runtime.GOOS == "darwin" {
		return "osascript"
	}
	return "notify-send"
}

func (d *Desktop) RequestPermission(_ context.Context) Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.perm != PermissionDefault {
		return d.perm
	}
	if !d.Enabled {
		d.perm = PermissionDenied
		return d.perm
	}
	bin, err := d.lookPath(desktopBinary())
	if err != nil {
		d.perm = PermissionDenied
		return d.perm
	}
	d.bin = bin
	d.perm = PermissionGranted
	return d.perm
}

func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.perm
}

func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	d.mu.Lock()
	perm, bin := d.perm, d.bin
	d.mu.Unlock()
	if perm != PermissionGranted {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if strings.HasSuffix(bin, "osascript") {
		script := fmt.Sprintf("display notification %q with title %q", n.Body, n.Title)
		return d.run(ctx, bin, "-e", script)
	}
	return d.run(ctx, bin, n.Title, n.Body)
}

// Terminal writes notifications as lines (with a bell) to W. Used by
// `remind --watch` on machines without a desktop notifier.
type Terminal struct {
	W       io.Writer
	Enabled bool

	mu   sync.Mutex
	perm Permission
}

func (t *Terminal) RequestPermission(_ context.Context) Permission {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.perm == PermissionDefault {
		if t.Enabled && t.W != nil {
			t.perm = PermissionGranted
		} else {
			t.perm = PermissionDenied
		}
	}
	return t.perm
}

func (t *Terminal) Permission() Permission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.perm
}

func (t *Terminal) Notify(_ context.Context, n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.perm != PermissionGranted {
		return nil
	}
	_, err := fmt.Fprintf(t.W, "\a%s: %s\n", n.Title, n.Body)
	return err
}

// Fallback uses Primary when it is granted and Secondary otherwise. A
// delivery error from Primary is retried on Secondary when Secondary is
// granted; both errors are returned only if that fails too.
type Fallback struct {
	Primary   Notifier
	Secondary Notifier
}

func (f Fallback) RequestPermission(ctx context.Context) Permission {
	if f.Primary.RequestPermission(ctx) == PermissionGranted {
		return PermissionGranted
	}
	return f.Secondary.RequestPermission(ctx)
}

func (f Fallback) Permission() Permission {
	if f.Primary.Permission() == PermissionGranted {
		return PermissionGranted
	}
	return f.Secondary.Permission()
}

func (f Fallback) Notify(ctx context.Context, n Notification) error {
	if f.Primary.Permission() != PermissionGranted {
		return f.Secondary.Notify(ctx, n)
	}
	err := f.Primary.Notify(ctx, n)
	if err == nil {
		return nil
	}
	if f.Secondary.RequestPermission(ctx) != PermissionGranted {
		return err
	}
	if err2 := f.Secondary.Notify(ctx, n); err2 != nil {
		return errors.Join(err, err2)
	}
	return nil
}

// InApp grants permission when enabled and delivers nothing itself: the TUI
// shows scan results as a banner.
type InApp struct {
	Enabled bool
}

func (a InApp) RequestPermission(context.Context) Permission { return a.Permission() }

func (a InApp) Permission() Permission {
	if a.Enabled {
		return PermissionGranted
	}
	return PermissionDenied
}

func (InApp) Notify(context.Context, Notification) error { return nil }

// Recorder keeps notifications in memory for tests.
type Recorder struct {
	Grant bool

	mu   sync.Mutex
	perm Permission
	sent []Notification
}

func (r *Recorder) RequestPermission(_ context.Context) Permission {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.perm == PermissionDefault {
		if r.Grant {
			r.perm = PermissionGranted
		} else {
			r.perm = PermissionDenied
		}
	}
	return r.perm
}

func (r *Recorder) Permission() Permission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.perm
}

func (r *Recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.perm != PermissionGranted {
		return nil
	}
	r.sent = append(r.sent, n)
	return nil
}

// Sent returns a copy of delivered notifications.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification{}, r.sent...)
}
