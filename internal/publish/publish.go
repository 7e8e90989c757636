// Package publish exports the task list as JSON, Markdown, or PDF.
package publish

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tasklist/internal/model"
	"tasklist/internal/store"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format: %q (expected json|markdown|pdf)", s)
	}
}

// Export writes tasks to w. JSON uses the persisted wire form, so an export
// can be fed back into storage unchanged.
func Export(w io.Writer, tasks []model.Task, f Format, opt RenderOptions) error {
	switch f {
	case FormatJSON:
		var kept []model.Task
		for _, t := range tasks {
			if opt.Filter.Matches(t) {
				kept = append(kept, t)
			}
		}
		s, err := store.EncodeTasks(kept)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, RenderTasksMarkdown(tasks, opt))
		return err
	case FormatPDF:
		return WriteTasksPDF(w, tasks, opt)
	default:
		return fmt.Errorf("unknown export format: %q", f)
	}
}

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
	Bytes   int      `json:"bytes"`
}

// WriteFile exports tasks to path, creating parent directories.
func WriteFile(path string, tasks []model.Task, f Format, opt RenderOptions, wopt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --out")
	}
	path = filepath.Clean(path)

	var buf bytes.Buffer
	if err := Export(&buf, tasks, f, opt); err != nil {
		return WriteResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(path, buf.Bytes(), wopt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}, Bytes: buf.Len()}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
