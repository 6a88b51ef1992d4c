package crfsuite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Scope is a temporary directory that owns the intermediate files of one
// train and dump cycle. Close removes whatever is left and fails if it can't.
type Scope struct {
	dir   string
	next  int
	files []string
}

// NewScope creates a fresh directory under base (os.TempDir when empty).
func NewScope(base string) (*Scope, error) {
	dir, err := os.MkdirTemp(base, "nerprobe-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return &Scope{dir: dir}, nil
}

// Dir returns the scope directory.
func (s *Scope) Dir() string {
	return s.dir
}

// NewFile allocates a numbered path with the given suffix. The file itself is
// not created.
func (s *Scope) NewFile(suffix string) string {
	path := filepath.Join(s.dir, fmt.Sprintf("%04d%s", s.next, suffix))
	s.next++
	s.files = append(s.files, path)
	return path
}

// Children lists the entries currently in the scope directory.
func (s *Scope) Children() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

// Remove deletes path and checks that it is gone. A path that was never
// created is not an error.
func (s *Scope) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &CleanupError{Path: path, Remaining: s.Children(), Err: err}
	}
	if _, err := os.Lstat(path); err == nil {
		return &CleanupError{Path: path, Remaining: s.Children(), Err: errors.New("file still present after delete")}
	}
	return nil
}

// Close removes every allocated file and then the directory itself.
func (s *Scope) Close() error {
	var errs []error
	for _, path := range s.files {
		if err := s.Remove(path); err != nil {
			errs = append(errs, err)
		}
	}
	s.files = nil
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if err := os.Remove(s.dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &CleanupError{Path: s.dir, Remaining: s.Children(), Err: err}
	}
	return nil
}
