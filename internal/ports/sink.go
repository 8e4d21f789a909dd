package ports

import "context"

// SlideSink receives exported files (rendered slides, normalized notes)
type SlideSink interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error

	// Location describes where files end up, for user-facing messages
	Location() string
}
