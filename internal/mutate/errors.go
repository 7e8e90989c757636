package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText       = errors.New("task text is required")
	ErrInvalidPriority = errors.New("invalid priority (want low|medium|high)")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
