// Package deck opens slide decks written in decksh or deck markup and
// rasterizes them natively.
package deck

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	deckxml "github.com/ajstarks/deck"
	"github.com/ajstarks/decksh"

	"pdfsat/internal/ports"
)

// Canvas size used when a deck does not declare one (US letter, landscape)
const (
	DefaultCanvasWidth  = 792
	DefaultCanvasHeight = 612
)

// Opener opens .dsh and .xml decks
type Opener struct {
	logger *slog.Logger
}

// NewOpener creates a deck opener
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Opener{logger: logger.With("component", "deck")}
}

// Open compiles decksh source when the file ends in .dsh, then parses the
// deck markup.
func (o *Opener) Open(ctx context.Context, path string) (ports.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".dsh") {
		data, err = compile(data)
		if err != nil {
			return nil, err
		}
	}
	d, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing deck %s: %w", path, err)
	}
	o.logger.Debug("opened", "path", path, "slides", len(d.Slide), "title", d.Title)
	return &Document{
		name:  filepath.Base(path),
		dir:   filepath.Dir(path),
		deck:  d,
		fonts: defaultFonts,
	}, nil
}

// compile turns decksh source into deck markup
func compile(source []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := decksh.Process(&out, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("decksh: %w", err)
	}
	return out.Bytes(), nil
}

func parse(data []byte) (*deckxml.Deck, error) {
	var d deckxml.Deck
	if err := xml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if d.Canvas.Width <= 0 {
		d.Canvas.Width = DefaultCanvasWidth
	}
	if d.Canvas.Height <= 0 {
		d.Canvas.Height = DefaultCanvasHeight
	}
	return &d, nil
}

// Document is a parsed deck. The canvas is measured in points.
type Document struct {
	name  string
	dir   string
	deck  *deckxml.Deck
	fonts *fontSet
}

func (d *Document) Name() string   { return d.name }
func (d *Document) PageCount() int { return len(d.deck.Slide) }

// Title returns the deck title, if any
func (d *Document) Title() string { return d.deck.Title }

// Rasterize draws one slide at dpi
func (d *Document) Rasterize(ctx context.Context, page int, dpi float64) (image.Image, error) {
	if page < 0 || page >= len(d.deck.Slide) {
		return nil, fmt.Errorf("slide %d out of range [0, %d)", page, len(d.deck.Slide))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scale := dpi / 72
	r := newRenderer(d.fonts, d.dir,
		float64(d.deck.Canvas.Width)*scale,
		float64(d.deck.Canvas.Height)*scale)
	return r.slide(d.deck.Slide[page]), nil
}

func (d *Document) Close() error { return nil }

// readTextFile returns the contents of a text element's file, or fallback
// when it cannot be read
func readTextFile(dir, name, fallback string) string {
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return fallback
	}
	return string(data)
}
