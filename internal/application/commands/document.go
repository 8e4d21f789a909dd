package commands

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"

	"pdfsat/internal/application"
	"pdfsat/internal/domain"
	"pdfsat/internal/ports"
)

// DocumentInfo describes a document and its notes
type DocumentInfo struct {
	Path      string
	Name      string
	Pages     int
	NotesPath string
	Encoding  string
	Notes     domain.NotesIndex
}

// InfoCommand opens a document to report its page count and notes
type InfoCommand struct {
	opener ports.DocumentOpener
	notes  ports.NotesReader
	Path   string
}

// NewInfoCommand creates a new InfoCommand
func NewInfoCommand(opener ports.DocumentOpener, notes ports.NotesReader, path string) *InfoCommand {
	return &InfoCommand{opener: opener, notes: notes, Path: path}
}

// Validate checks that the document exists
func (c *InfoCommand) Validate() error {
	return application.ValidateFile("path", c.Path)
}

// Execute opens the document and its co-located notes
func (c *InfoCommand) Execute(ctx context.Context) (*DocumentInfo, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := c.opener.Open(ctx, c.Path)
	if err != nil {
		return nil, &application.LoadError{Path: c.Path, Err: err}
	}
	defer doc.Close()

	info := &DocumentInfo{
		Path:  c.Path,
		Name:  doc.Name(),
		Pages: doc.PageCount(),
	}

	notesPath := domain.NotesPathFor(c.Path)
	index, encoding, err := c.notes.Read(notesPath)
	switch {
	case err == nil:
		info.NotesPath = notesPath
		info.Encoding = encoding
		info.Notes = index
	case !errors.Is(err, fs.ErrNotExist):
		return info, &application.DecodeError{Path: notesPath, Err: err}
	}
	return info, nil
}

// RenderCommand rasterizes one page of a document
type RenderCommand struct {
	opener ports.DocumentOpener
	Path   string
	Page   int // 0-based
	Tier   domain.Tier
}

// NewRenderCommand creates a new RenderCommand
func NewRenderCommand(opener ports.DocumentOpener, path string, page int, tier domain.Tier) *RenderCommand {
	return &RenderCommand{opener: opener, Path: path, Page: page, Tier: tier}
}

// Validate checks the inputs
func (c *RenderCommand) Validate() error {
	if err := application.ValidateFile("path", c.Path); err != nil {
		return err
	}
	if c.Page < 0 {
		return &application.ValidationError{
			Field:   "page",
			Message: fmt.Sprintf("page must be 1 or greater, got %d", c.Page+1),
		}
	}
	return nil
}

// Execute renders the page
func (c *RenderCommand) Execute(ctx context.Context) (image.Image, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := c.opener.Open(ctx, c.Path)
	if err != nil {
		return nil, &application.LoadError{Path: c.Path, Err: err}
	}
	cache := application.NewSlideCache(doc)
	defer cache.Close()

	return cache.Get(ctx, c.Page, c.Tier)
}
