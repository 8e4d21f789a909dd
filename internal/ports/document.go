package ports

import (
	"context"
	"image"
)

// Document is an opened, immutable paged document.
type Document interface {
	// Name is a display name, usually the file's base name
	Name() string

	// PageCount returns the number of pages; it never changes after Open
	PageCount() int

	// Rasterize renders one 0-based page at the given resolution.
	// Implementations must be safe for concurrent calls on different pages.
	Rasterize(ctx context.Context, page int, dpi float64) (image.Image, error)

	// Close releases the underlying handle
	Close() error
}

// DocumentOpener opens documents from paths
type DocumentOpener interface {
	Open(ctx context.Context, path string) (Document, error)
}
