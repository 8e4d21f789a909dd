package application

import (
	"context"
	"fmt"
	"image"
	"sync"

	"golang.org/x/sync/singleflight"

	"pdfsat/internal/domain"
	"pdfsat/internal/ports"
)

type cacheKey struct {
	page int
	tier domain.Tier
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%d/%s", k.page, k.tier)
}

// SlideCache memoizes rasterized pages of one document, per tier.
// Entries live until Close; failed renders are never stored.
type SlideCache struct {
	doc   ports.Document
	total int

	mu      sync.Mutex
	entries map[cacheKey]image.Image
	closed  bool

	inflight singleflight.Group
}

// NewSlideCache wraps an opened document. The cache owns the document and
// closes it on Close.
func NewSlideCache(doc ports.Document) *SlideCache {
	return &SlideCache{
		doc:     doc,
		total:   doc.PageCount(),
		entries: make(map[cacheKey]image.Image),
	}
}

// Document returns the cached document
func (c *SlideCache) Document() ports.Document { return c.doc }

// Total returns the document's page count
func (c *SlideCache) Total() int { return c.total }

// Len returns the number of cached bitmaps
func (c *SlideCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get returns the bitmap for a page at a tier, rasterizing it on first use.
// Concurrent misses for the same page and tier share a single render.
func (c *SlideCache) Get(ctx context.Context, page int, tier domain.Tier) (image.Image, error) {
	key := cacheKey{page: page, tier: tier}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCacheClosed
	}
	if page < 0 || page >= c.total {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, c.total)
	}
	if img, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	v, err, _ := c.inflight.Do(key.String(), func() (any, error) {
		c.mu.Lock()
		if img, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return img, nil
		}
		c.mu.Unlock()

		img, err := c.doc.Rasterize(ctx, page, tier.DPI())
		if err != nil {
			return nil, &RasterizeError{Page: page, Tier: tier, Err: err}
		}

		c.mu.Lock()
		if !c.closed {
			c.entries[key] = img
		}
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Close discards every cached bitmap and closes the document.
// Closing twice is a no-op.
func (c *SlideCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.entries = nil
	c.mu.Unlock()

	return c.doc.Close()
}
