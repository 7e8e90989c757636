package model

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDue = errors.New("invalid due date")

// dueLayouts are tried in order. The first one is the browser datetime-local
// form and is what the add form suggests.
var dueLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const DueInputLayout = "2006-01-02T15:04"

// ParseDue parses a due-date string. Strings without a zone are read in loc.
// Date-only values resolve to midnight.
func ParseDue(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDue
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDue
}

// ValidateDue accepts empty (no due date) or any parseable due string.
func ValidateDue(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := ParseDue(s, time.Local)
	return err
}
