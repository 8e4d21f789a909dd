package document

import (
	"context"
	"errors"
	"testing"

	"pdfsat/internal/ports/portstest"
)

func TestOpener_RoutesByExtension(t *testing.T) {
	pdfs := portstest.NewOpener()
	pdfs.Add("/talks/Intro.PDF", portstest.NewDocument("Intro.PDF", 3))
	decks := portstest.NewOpener()
	decks.Add("/talks/intro.dsh", portstest.NewDocument("intro.dsh", 5))

	m := NewOpener().Register(pdfs, ".pdf").Register(decks, "dsh", ".xml")

	doc, err := m.Open(context.Background(), "/talks/Intro.PDF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount() != 3 {
		t.Errorf("pdf pages = %d", doc.PageCount())
	}

	doc, err = m.Open(context.Background(), "/talks/intro.dsh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount() != 5 {
		t.Errorf("deck pages = %d", doc.PageCount())
	}

	_, err = m.Open(context.Background(), "/talks/intro.key")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	if !m.Supports("x.XML") || m.Supports("x.txt") {
		t.Error("Supports mismatch")
	}
	if got := m.Extensions(); len(got) != 3 || got[0] != ".dsh" {
		t.Errorf("extensions = %v", got)
	}
}
