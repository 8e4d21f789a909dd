// Package httpsurface serves the audience display over HTTP. Point a
// full-screen browser on the second monitor at it.
package httpsurface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"pdfsat/internal/ports"
)

// Surface modes reported by /state
const (
	ModeHidden = "hidden"
	ModeLive   = "live"
	ModeBlank  = "blank"
)

var blankSize = image.Rect(0, 0, 1920, 1080)

type pointer struct {
	x, y    float64
	visible bool
}

// Surface implements ports.AudienceSurface. Every change bumps a version
// number the page polls for.
type Surface struct {
	logger *slog.Logger

	mu      sync.Mutex
	frame   image.Image
	mode    string
	pointer pointer
	version uint64

	// encoded caches the PNG for encodedAt
	encoded   []byte
	encodedAt uint64
}

var _ ports.AudienceSurface = (*Surface)(nil)

// New creates a hidden surface
func New(logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Surface{
		logger: logger.With("component", "audience"),
		mode:   ModeHidden,
	}
}

// Show displays a frame
func (s *Surface) Show(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = img
	s.mode = ModeLive
	s.version++
	return nil
}

// Blank shows black until the next Show
func (s *Surface) Blank() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeBlank
	s.version++
	return nil
}

// Hide takes the surface out of presentation
func (s *Surface) Hide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeHidden
	s.frame = nil
	s.pointer = pointer{}
	s.version++
	return nil
}

// SetPointer moves the laser pointer, relative to the frame
func (s *Surface) SetPointer(x, y float64, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := pointer{x: x, y: y, visible: visible}
	if !visible {
		p = pointer{}
	}
	if p == s.pointer {
		return nil
	}
	s.pointer = p
	s.version++
	return nil
}

// State is the JSON body of /state
type State struct {
	Version uint64 `json:"version"`
	Mode    string `json:"mode"`
}

// State returns the current version and mode
func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Version: s.version, Mode: s.mode}
}

// PNG returns the current frame encoded as PNG, or nil when hidden
func (s *Surface) PNG() ([]byte, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeHidden {
		return nil, s.version, nil
	}
	if s.encoded != nil && s.encodedAt == s.version {
		return s.encoded, s.version, nil
	}

	var img image.Image
	switch {
	case s.mode == ModeBlank || s.frame == nil:
		img = black(s.frame)
	case s.pointer.visible:
		img = withPointer(s.frame, s.pointer.x, s.pointer.y)
	default:
		img = s.frame
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, s.version, err
	}
	s.encoded = buf.Bytes()
	s.encodedAt = s.version
	return s.encoded, s.version, nil
}

// black returns a black frame the size of like
func black(like image.Image) image.Image {
	r := blankSize
	if like != nil {
		r = like.Bounds()
	}
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

// withPointer composites a laser dot onto a copy of frame at the relative
// position (x, y)
func withPointer(frame image.Image, x, y float64) image.Image {
	b := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), frame, b.Min, draw.Src)

	dc := gg.NewContextForRGBA(dst)
	px, py := x*float64(b.Dx()), y*float64(b.Dy())
	radius := max(float64(b.Dx())/64, 6)

	glow := gg.NewRadialGradient(px, py, 0, px, py, radius)
	glow.AddColorStop(0, color.NRGBA{R: 255, A: 200})
	glow.AddColorStop(0.3, color.NRGBA{R: 255, G: 50, A: 150})
	glow.AddColorStop(0.6, color.NRGBA{R: 255, G: 100, A: 80})
	glow.AddColorStop(1, color.NRGBA{R: 255, G: 150, A: 0})
	dc.SetFillStyle(glow)
	dc.DrawCircle(px, py, radius)
	dc.Fill()

	core := gg.NewRadialGradient(px, py, 0, px, py, radius/2)
	core.AddColorStop(0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	core.AddColorStop(0.5, color.NRGBA{R: 255, A: 255})
	core.AddColorStop(1, color.NRGBA{R: 200, A: 200})
	dc.SetFillStyle(core)
	dc.DrawCircle(px, py, radius/2)
	dc.Fill()

	return dst
}
