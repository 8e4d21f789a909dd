package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pdfsat/internal/application"
	"pdfsat/internal/domain"
	"pdfsat/internal/ports"
)

// NotesExportName is the file the normalized notes are written to
const NotesExportName = "notes.txt"

// ExportResult contains the result of an export
type ExportResult struct {
	Pages    int
	Files    []string
	Location string
	Message  string
}

// ExportCommand renders every page of a document to PNG files in a sink,
// plus the notes in normalized --N-- form when there are any.
type ExportCommand struct {
	opener    ports.DocumentOpener
	notes     ports.NotesReader
	sink      ports.SlideSink
	Path      string
	NotesPath string
	Tier      domain.Tier

	// Workers bounds concurrent page renders; zero means GOMAXPROCS
	Workers int
}

// NewExportCommand creates a new ExportCommand rendering at presentation
// quality. An empty notesPath looks for the co-located notes file.
func NewExportCommand(opener ports.DocumentOpener, notes ports.NotesReader, sink ports.SlideSink, path, notesPath string) *ExportCommand {
	return &ExportCommand{
		opener:    opener,
		notes:     notes,
		sink:      sink,
		Path:      path,
		NotesPath: notesPath,
		Tier:      domain.TierPresentation,
	}
}

// SlideFileName returns the export name of a 0-based page
func SlideFileName(page int) string {
	return fmt.Sprintf("slide-%03d.png", page+1)
}

// Validate checks the inputs
func (c *ExportCommand) Validate() error {
	if err := application.ValidateFile("path", c.Path); err != nil {
		return err
	}
	if c.sink == nil {
		return &application.ValidationError{Field: "dest", Message: "destination is required"}
	}
	return nil
}

// Execute runs the export
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := c.opener.Open(ctx, c.Path)
	if err != nil {
		return nil, &application.LoadError{Path: c.Path, Err: err}
	}
	defer doc.Close()

	total := doc.PageCount()
	files := make([]string, total)

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for page := range total {
		g.Go(func() error {
			img, err := doc.Rasterize(gctx, page, c.Tier.DPI())
			if err != nil {
				return &application.RasterizeError{Page: page, Tier: c.Tier, Err: err}
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return fmt.Errorf("encoding page %d: %w", page+1, err)
			}
			name := SlideFileName(page)
			if err := c.sink.Put(gctx, name, buf.Bytes(), "image/png"); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			files[page] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notesPath := c.NotesPath
	if notesPath == "" {
		notesPath = domain.NotesPathFor(c.Path)
	}
	index, _, err := c.notes.Read(notesPath)
	switch {
	case err == nil && index.Len() > 0:
		if err := c.sink.Put(ctx, NotesExportName, []byte(index.Format()), "text/plain; charset=utf-8"); err != nil {
			return nil, fmt.Errorf("writing %s: %w", NotesExportName, err)
		}
		files = append(files, NotesExportName)
	case err != nil && (c.NotesPath != "" || !errors.Is(err, fs.ErrNotExist)):
		return nil, &application.DecodeError{Path: notesPath, Err: err}
	}

	return &ExportResult{
		Pages:    total,
		Files:    files,
		Location: c.sink.Location(),
		Message:  fmt.Sprintf("Exported %d slides to %s", total, c.sink.Location()),
	}, nil
}
