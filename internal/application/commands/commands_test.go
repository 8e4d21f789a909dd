package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdfsat/internal/application"
	"pdfsat/internal/ports/portstest"
)

type fixture struct {
	dir       string
	opener    *portstest.Opener
	notes     *portstest.NotesReader
	surface   *portstest.Surface
	presenter *application.Presenter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		dir:     t.TempDir(),
		opener:  portstest.NewOpener(),
		notes:   &portstest.NotesReader{Files: map[string]string{}},
		surface: &portstest.Surface{},
	}
	f.presenter = application.NewPresenter(f.opener, f.notes,
		application.WithSurface(f.surface),
		application.WithSessionStore(&portstest.SessionStore{}),
	)
	return f
}

// document creates an empty file on disk and registers a fake document for it
func (f *fixture) document(t *testing.T, name string, pages int) (string, *portstest.Document) {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	doc := portstest.NewDocument(name, pages)
	f.opener.Add(path, doc)
	return path, doc
}

func (f *fixture) load(t *testing.T, name string, pages int) string {
	t.Helper()
	path, _ := f.document(t, name, pages)
	if _, err := NewLoadDocumentCommand(f.presenter, path, false).Execute(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return path
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
