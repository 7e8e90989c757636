package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, so affordances (checkboxes,
// drag handle, separators) come in a Unicode and an ASCII set.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TASKLIST_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// Checkboxes are three cells wide in both sets; clicks in the first
// checkboxHitWidth columns of a row toggle completion.
func glyphCheckbox(done bool) string {
	if glyphs() == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "[✓]"
	}
	return "[ ]"
}

func glyphDragHandle() string {
	if glyphs() == glyphSetASCII {
		return "::"
	}
	return "⠿ "
}

func glyphReminder() string {
	if glyphs() == glyphSetASCII {
		return "(!)"
	}
	return "⏰"
}

func glyphFocusBar() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▌"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "·"
}
