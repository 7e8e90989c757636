package cli

import (
	"fmt"
	"strconv"
	"strings"

	"tasklist/internal/model"
	"tasklist/internal/store"
)

type indexError struct {
	arg string
	n   int
}

func (e indexError) Error() string {
	if e.n == 0 {
		return fmt.Sprintf("task not found: %s (the list is empty)", e.arg)
	}
	return fmt.Sprintf("task not found: %s (want 1..%d)", e.arg, e.n)
}

func errIndex(arg string, n int) error {
	return indexError{arg: arg, n: n}
}

// taskAt resolves a 1-based position in the full list. IDs are regenerated
// on every load, so positions are the only stable handle across invocations.
func taskAt(st *store.State, arg string) (*model.Task, int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(st.Tasks) {
		return nil, -1, errIndex(arg, len(st.Tasks))
	}
	return &st.Tasks[n-1], n - 1, nil
}
