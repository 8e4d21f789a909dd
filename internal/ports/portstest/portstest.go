// Package portstest provides in-memory implementations of the ports for
// tests.
package portstest

import (
	"context"
	"image"
	"image/color"
	"io/fs"
	"sync"
	"sync/atomic"

	"pdfsat/internal/domain"
	"pdfsat/internal/ports"
)

// Document is a fake ports.Document that paints each page a solid gray
// whose level encodes the page number. It counts rasterizer calls.
type Document struct {
	DocName string
	Pages   int

	// FailPages makes Rasterize fail for the listed pages
	FailPages map[int]error

	// Gate, when set, blocks Rasterize until it is closed
	Gate chan struct{}

	calls  atomic.Int64
	closed atomic.Bool

	mu       sync.Mutex
	perPage  map[int]int
	lastDPIs []float64
}

// NewDocument returns a fake document with n pages
func NewDocument(name string, n int) *Document {
	return &Document{DocName: name, Pages: n}
}

func (d *Document) Name() string   { return d.DocName }
func (d *Document) PageCount() int { return d.Pages }

// Rasterize returns a 4x3 image (8x6 above 150 dpi) filled with PageColor(page).
func (d *Document) Rasterize(ctx context.Context, page int, dpi float64) (image.Image, error) {
	d.calls.Add(1)
	d.mu.Lock()
	if d.perPage == nil {
		d.perPage = make(map[int]int)
	}
	d.perPage[page]++
	d.lastDPIs = append(d.lastDPIs, dpi)
	d.mu.Unlock()

	if d.Gate != nil {
		select {
		case <-d.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := d.FailPages[page]; ok {
		return nil, err
	}
	w, h := 4, 3
	if dpi > domain.PreviewDPI {
		w, h = 8, 6
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = PageColor(page).Y
	}
	return img, nil
}

func (d *Document) Close() error {
	d.closed.Store(true)
	return nil
}

// Calls returns the total number of Rasterize calls
func (d *Document) Calls() int { return int(d.calls.Load()) }

// PageCalls returns the number of Rasterize calls for one page
func (d *Document) PageCalls(page int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.perPage[page]
}

// Closed reports whether Close was called
func (d *Document) Closed() bool { return d.closed.Load() }

// PageColor is the fill used for a page
func PageColor(page int) color.Gray {
	return color.Gray{Y: uint8(10 + page*10)}
}

// Opener serves fake documents by path
type Opener struct {
	mu   sync.Mutex
	Docs map[string]*Document
	Errs map[string]error
}

// NewOpener returns an opener with no documents
func NewOpener() *Opener {
	return &Opener{Docs: make(map[string]*Document), Errs: make(map[string]error)}
}

// Add registers a document under path
func (o *Opener) Add(path string, doc *Document) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Docs[path] = doc
}

func (o *Opener) Open(_ context.Context, path string) (ports.Document, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err, ok := o.Errs[path]; ok {
		return nil, err
	}
	doc, ok := o.Docs[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return doc, nil
}

// Surface records what a presenter pushed to the audience
type Surface struct {
	mu       sync.Mutex
	Frames   []image.Image
	Blanks   int
	Hides    int
	PointerX float64
	PointerY float64
	Pointer  bool
}

func (s *Surface) Show(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Frames = append(s.Frames, img)
	return nil
}

func (s *Surface) Blank() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Blanks++
	return nil
}

func (s *Surface) Hide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Hides++
	return nil
}

func (s *Surface) SetPointer(x, y float64, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PointerX, s.PointerY, s.Pointer = x, y, visible
	return nil
}

// Shown returns the number of frames pushed
func (s *Surface) Shown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Frames)
}

// Last returns the most recent frame, or nil
func (s *Surface) Last() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}

// SessionStore keeps session state in memory
type SessionStore struct {
	mu      sync.Mutex
	State   domain.SessionState
	Saves   int
	SaveErr error
}

func (s *SessionStore) Load(context.Context) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State, nil
}

func (s *SessionStore) Save(_ context.Context, state domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.State = state
	s.Saves++
	return nil
}

func (s *SessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = domain.SessionState{}
	return nil
}

func (s *SessionStore) Close() error { return nil }

// Snapshot returns the stored state
func (s *SessionStore) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State
}

// NotesReader serves parsed notes from an in-memory map of path to text
type NotesReader struct {
	Files map[string]string
}

func (r *NotesReader) Read(path string) (domain.NotesIndex, string, error) {
	text, ok := r.Files[path]
	if !ok {
		return domain.NotesIndex{}, "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return domain.ParseNotes(text), "utf-8", nil
}

// Sink collects exported files in memory
type Sink struct {
	mu    sync.Mutex
	Files map[string][]byte
	Types map[string]string
}

func (s *Sink) Put(_ context.Context, name string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Files == nil {
		s.Files = make(map[string][]byte)
		s.Types = make(map[string]string)
	}
	s.Files[name] = append([]byte(nil), data...)
	s.Types[name] = contentType
	return nil
}

func (s *Sink) Location() string { return "memory" }

// Len returns the number of stored files
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Files)
}
