package application

import (
	"errors"
	"fmt"

	"pdfsat/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNoDocument     = errors.New("no document loaded")
	ErrCacheClosed    = errors.New("slide cache closed")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrNotLive        = errors.New("not presenting")
	ErrAlreadyLive    = errors.New("already presenting")
	ErrUnknownAction  = errors.New("unknown action")
	ErrLoad           = errors.New("cannot load document")
	ErrRasterize      = errors.New("cannot render page")
	ErrDecode         = errors.New("cannot read notes")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadError is returned when a document cannot be opened. The previously
// loaded document, if any, stays active.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// RasterizeError is returned when a single page cannot be rendered.
// It is never cached.
type RasterizeError struct {
	Page int
	Tier domain.Tier
	Err  error
}

func (e *RasterizeError) Error() string {
	return fmt.Sprintf("cannot render page %d (%s): %v", e.Page+1, e.Tier, e.Err)
}

func (e *RasterizeError) Unwrap() error { return e.Err }

func (e *RasterizeError) Is(target error) bool {
	return target == ErrRasterize
}

// DecodeError is returned when a notes file cannot be read at all
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot read notes %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
