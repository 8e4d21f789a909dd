// Package document routes document paths to the opener for their format.
package document

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"pdfsat/internal/ports"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// Opener dispatches on the file extension
type Opener struct {
	byExt map[string]ports.DocumentOpener
}

// NewOpener creates an empty Opener
func NewOpener() *Opener {
	return &Opener{byExt: make(map[string]ports.DocumentOpener)}
}

// Register routes the given extensions (with or without the dot) to o
func (m *Opener) Register(o ports.DocumentOpener, exts ...string) *Opener {
	for _, ext := range exts {
		m.byExt[normalize(ext)] = o
	}
	return m
}

// Extensions lists the registered extensions, sorted
func (m *Opener) Extensions() []string {
	out := make([]string, 0, len(m.byExt))
	for ext := range m.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether path has a registered extension
func (m *Opener) Supports(path string) bool {
	_, ok := m.byExt[normalize(filepath.Ext(path))]
	return ok
}

func (m *Opener) Open(ctx context.Context, path string) (ports.Document, error) {
	ext := normalize(filepath.Ext(path))
	o, ok := m.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, ext, strings.Join(m.Extensions(), ", "))
	}
	return o.Open(ctx, path)
}

func normalize(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
