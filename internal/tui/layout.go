package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const (
	headerLines = 2 // title line + tabs line
	footerLines = 2 // minibuffer + key help
)

// listTop is the screen row where the first task row is drawn.
func listTop() int { return headerLines }

// clampView cuts every line of s to width columns and pads or truncates the
// line count to height. Zero values leave that dimension alone.
func clampView(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	if width > 0 {
		for i, ln := range lines {
			if xansi.StringWidth(ln) > width {
				lines[i] = xansi.Truncate(ln, width, "")
			}
		}
	}
	return strings.Join(lines, "\n")
}
