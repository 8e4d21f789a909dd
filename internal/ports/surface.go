package ports

import "image"

// AudienceSurface is the display the audience sees, typically the second
// monitor.
type AudienceSurface interface {
	// Show displays a frame and makes the surface visible
	Show(img image.Image) error

	// Blank suppresses the frame without forgetting it
	Blank() error

	// Hide takes the surface out of presentation mode
	Hide() error

	// SetPointer places the laser pointer at a position relative to the
	// frame (0..1 on both axes), or removes it when visible is false
	SetPointer(x, y float64, visible bool) error
}
