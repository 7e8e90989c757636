package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tasklist/internal/logging"
	"tasklist/internal/model"
)

// Persisted keys.
const (
	KeyTasks    = "tasks"
	KeyDarkMode = "darkMode"
)

// State is the in-memory application state handed to every handler.
// Tasks is the canonical working copy; it is flushed whole to the KV after
// each mutation.
type State struct {
	Tasks    []model.Task
	DarkMode bool
}

// Store is the storage adapter over a KV slot. Dir, when set, holds
// auxiliary UI state (see TUIState); it is never part of the KV slot.
type Store struct {
	KV     KV
	Dir    string
	Logger *logging.Logger
}

func New(kv KV) Store {
	return Store{KV: kv}
}

func (s Store) kv() (KV, error) {
	if s.KV == nil {
		return nil, errors.New("store: no kv configured")
	}
	return s.KV, nil
}

// LoadTasks reads the persisted list. Missing or malformed data loads as an
// empty list; only backend failures are returned as errors.
func (s Store) LoadTasks(ctx context.Context) ([]model.Task, error) {
	kv, err := s.kv()
	if err != nil {
		return nil, err
	}
	raw, ok, err := kv.Get(ctx, KeyTasks)
	if errors.Is(err, ErrCorruptSlot) {
		s.Logger.Warnf("store: %v; loading an empty list", err)
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		return []model.Task{}, nil
	}
	return DecodeTasks(raw), nil
}

// SaveTasks overwrites the whole persisted list.
func (s Store) SaveTasks(ctx context.Context, tasks []model.Task) error {
	kv, err := s.kv()
	if err != nil {
		return err
	}
	raw, err := EncodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := kv.Set(ctx, KeyTasks, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// LoadDarkMode returns the stored preference and whether one was stored.
func (s Store) LoadDarkMode(ctx context.Context) (dark bool, found bool, err error) {
	kv, err := s.kv()
	if err != nil {
		return false, false, err
	}
	raw, ok, err := kv.Get(ctx, KeyDarkMode)
	if errors.Is(err, ErrCorruptSlot) {
		s.Logger.Warnf("store: %v; no dark mode preference", err)
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("load dark mode: %w", err)
	}
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false, nil
	}
	return b, true, nil
}

func (s Store) SaveDarkMode(ctx context.Context, dark bool) error {
	kv, err := s.kv()
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, KeyDarkMode, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	return nil
}

// Load reads the full application state.
func (s Store) Load(ctx context.Context) (*State, error) {
	tasks, err := s.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	dark, _, err := s.LoadDarkMode(ctx)
	if err != nil {
		return nil, err
	}
	return &State{Tasks: tasks, DarkMode: dark}, nil
}

// Save flushes tasks only; dark mode is persisted independently.
func (s Store) Save(ctx context.Context, st *State) error {
	if st == nil {
		return errors.New("nil state")
	}
	return s.SaveTasks(ctx, st.Tasks)
}

// FindTask returns the task with id and its index.
func (st *State) FindTask(id string) (*model.Task, int, bool) {
	if st == nil {
		return nil, -1, false
	}
	id = strings.TrimSpace(id)
	for i := range st.Tasks {
		if st.Tasks[i].ID == id {
			return &st.Tasks[i], i, true
		}
	}
	return nil, -1, false
}

// TaskIDs returns the IDs in display order.
func (st *State) TaskIDs() []string {
	if st == nil {
		return nil
	}
	out := make([]string, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		out = append(out, t.ID)
	}
	return out
}
