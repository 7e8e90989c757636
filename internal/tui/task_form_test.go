package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestFormInput_OneRowOfBodyWidth(t *testing.T) {
	in := newTextInput("Task text", 500)
	in.SetValue(strings.Repeat("long task text ", 20))
	in.Focus()

	for _, focused := range []bool{true, false} {
		got := formInput(40, in, focused)
		if strings.Contains(got, "\n") {
			t.Fatalf("focused=%v: expected a single row; got %q", focused, got)
		}
		if w := xansi.StringWidth(got); w != 40 {
			t.Fatalf("focused=%v: width = %d; want 40", focused, w)
		}
		if !strings.Contains(xansi.Strip(got), "…") {
			t.Fatalf("focused=%v: expected truncation marker; got %q", focused, xansi.Strip(got))
		}
	}

	short := newTextInput("Category", 50)
	short.SetValue("home")
	if got := xansi.Strip(formInput(40, short, false)); !strings.HasPrefix(got, "  home") {
		t.Fatalf("unexpected unfocused row %q", got)
	}
}
