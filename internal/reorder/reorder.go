// Package reorder implements list reordering: index-based moves and the
// pointer-driven drag session used by the interactive list.
//
// Orders are slices of task IDs in display order. Nothing here knows about
// rendering; callers describe row geometry with Row.
package reorder

import (
	"errors"
	"strings"
)

var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("drag already in progress")
	ErrUnknownID       = errors.New("id not in order")
)

// Row is the on-screen geometry of one rendered row.
type Row struct {
	ID     string
	Top    float64
	Height float64
}

func (r Row) Midpoint() float64 {
	return r.Top + r.Height/2
}

func indexOf(order []string, id string) int {
	for i, x := range order {
		if x == id {
			return i
		}
	}
	return -1
}

func without(order []string, id string) []string {
	out := make([]string, 0, len(order))
	for _, x := range order {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func equalOrders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Move returns order with id moved so that it ends up at insertAt in the list
// obtained after removing it. insertAt is clamped. changed is false for a
// no-op move or an unknown id.
func Move(order []string, id string, insertAt int) (out []string, changed bool) {
	id = strings.TrimSpace(id)
	cur := indexOf(order, id)
	if cur < 0 {
		return append([]string{}, order...), false
	}
	rest := without(order, id)
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}
	out = make([]string, 0, len(order))
	out = append(out, rest[:insertAt]...)
	out = append(out, id)
	out = append(out, rest[insertAt:]...)
	return out, !equalOrders(order, out)
}

// InsertBefore returns the ID of the row the dragged row should be inserted
// before: the first non-dragging row (display order) whose vertical midpoint
// lies below pointerY. ok is false when the pointer is below every row, which
// means "append at the end".
func InsertBefore(rows []Row, draggedID string, pointerY float64) (id string, ok bool) {
	for _, r := range rows {
		if r.ID == draggedID {
			continue
		}
		if pointerY < r.Midpoint() {
			return r.ID, true
		}
	}
	return "", false
}

// Apply reorders items to follow order. Items whose id is not in order keep
// their relative position at the end.
func Apply[T any](items []T, idOf func(T) string, order []string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[idOf(it)] = it
	}
	out := make([]T, 0, len(items))
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if it, ok := byID[id]; ok && !seen[id] {
			out = append(out, it)
			seen[id] = true
		}
	}
	for _, it := range items {
		if !seen[idOf(it)] {
			out = append(out, it)
		}
	}
	return out
}
