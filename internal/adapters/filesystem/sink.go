package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirSink writes exported files into a directory
type DirSink struct {
	dir string
}

// NewDirSink creates the directory if needed. A leading ~ is expanded to
// the home directory.
func NewDirSink(dir string) (*DirSink, error) {
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

// Put writes data to name inside the directory, replacing any existing file
func (s *DirSink) Put(_ context.Context, name string, data []byte, _ string) error {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid export name %q", name)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Location returns the directory path
func (s *DirSink) Location() string { return s.dir }
