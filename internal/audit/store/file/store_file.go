// Package file implements the audit store as a newline-delimited JSON file,
// one object per line, append-only.
package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"breakpoint/internal/audit"
)

type Store struct {
	mu   sync.Mutex
	path string
}

// New creates the store, making the parent directory if needed. The log file
// itself is created lazily on first append so a fresh deployment serves an
// empty log list instead of erroring.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create audit log directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) Append(_ context.Context, e audit.Entry) error {
	line, err := e.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Tail reads the last n lines of the log, newest first.
func (s *Store) Tail(_ context.Context, n int) ([]audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var nonEmpty [][]byte
	for _, l := range lines {
		if len(bytes.TrimSpace(l)) > 0 {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) > n {
		nonEmpty = nonEmpty[len(nonEmpty)-n:]
	}

	entries := make([]audit.Entry, 0, len(nonEmpty))
	for i := len(nonEmpty) - 1; i >= 0; i-- {
		var e audit.Entry
		if err := e.UnmarshalJSON(nonEmpty[i]); err != nil {
			return nil, fmt.Errorf("parse audit log line: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
