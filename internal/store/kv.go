package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// KV is the application-scoped key/value slot the task list persists into.
// Set must replace the value atomically from the caller's perspective.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// ErrCorruptSlot is returned by a KV whose backing data cannot be decoded.
// Store treats it like missing data.
var ErrCorruptSlot = errors.New("corrupt storage slot")

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

const (
	sqliteFileName = "tasklist.sqlite"
	stateFileName  = "state.json"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendSQLite, nil
	case BackendSQLite, BackendFile, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unknown storage backend: %s (want sqlite|file|memory)", s)
	}
}

// OpenKV returns the KV for backend rooted at dir.
func OpenKV(backend Backend, dir string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("sqlite storage: missing dir")
		}
		return &SQLiteKV{Path: filepath.Join(dir, sqliteFileName)}, nil
	case BackendFile:
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("file storage: missing dir")
		}
		return &FileKV{Path: filepath.Join(dir, stateFileName)}, nil
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
