package application

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pdfsat/internal/domain"
	"pdfsat/internal/ports"
)

// ElapsedUnset is the elapsed readout while not presenting.
const ElapsedUnset = "--:--"

// Snapshot is everything a console needs to draw the presenter view.
type Snapshot struct {
	DocumentName string
	DocumentPath string
	NotesPath    string

	Nav NavState

	// Current and Preview are preview-tier bitmaps. Preview is nil when the
	// preview is past the last slide.
	Current      image.Image
	Preview      image.Image
	PreviewAtEnd bool

	Note    string
	Mode    Mode
	Elapsed string
	Clock   string

	// Diagnostic carries a non-fatal problem from the last load, e.g. an
	// unreadable notes file
	Diagnostic string
}

// Loaded reports whether the snapshot has a document
func (s Snapshot) Loaded() bool { return s.DocumentPath != "" }

// Status is the "Slide c / t (Preview: p)" readout.
func (s Snapshot) Status() string {
	if !s.Loaded() {
		return "No document"
	}
	return fmt.Sprintf("Slide %d / %d (Preview: %d)", s.Nav.Current+1, s.Nav.Total, s.Nav.Preview+1)
}

// PresenterOption configures a Presenter
type PresenterOption func(*Presenter)

// WithSessionStore persists the session at load and close
func WithSessionStore(store ports.SessionStore) PresenterOption {
	return func(p *Presenter) { p.store = store }
}

// WithSurface sets the audience display
func WithSurface(surface ports.AudienceSurface) PresenterOption {
	return func(p *Presenter) { p.surface = surface }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) PresenterOption {
	return func(p *Presenter) { p.logger = logger }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) PresenterOption {
	return func(p *Presenter) { p.now = now }
}

// Presenter is the presentation session controller. It owns the loaded
// document's cache, the navigator and the notes index, and pushes frames
// to the audience surface while live. State changes are serialized;
// presentation renders run outside the lock.
type Presenter struct {
	opener  ports.DocumentOpener
	notes   ports.NotesReader
	store   ports.SessionStore
	surface ports.AudienceSurface
	logger  *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	path       string
	notesPath  string
	cache      *SlideCache
	nav        *domain.Navigator
	index      domain.NotesIndex
	diagnostic string

	mode      Mode
	startedAt time.Time
	elapsed   string
	clock     string
}

// NewPresenter creates an idle presenter with no document.
func NewPresenter(opener ports.DocumentOpener, notes ports.NotesReader, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		opener:  opener,
		notes:   notes,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
		nav:     domain.NewNavigator(0),
		elapsed: ElapsedUnset,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "presenter")
	p.clock = p.now().Format(time.TimeOnly)
	return p
}

// LoadDocument opens a document and makes it the active one. When restore
// is set, the stored slide position is resumed.
//
// The document is opened before anything is torn down, so a failed load
// returns a *LoadError and leaves the previous document active.
func (p *Presenter) LoadDocument(ctx context.Context, path string, restore bool) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	doc, err := p.opener.Open(ctx, path)
	if err != nil {
		p.logger.Warn("load failed", "path", path, "error", err)
		return &LoadError{Path: path, Err: err}
	}

	var stored domain.SessionState
	if p.store != nil {
		if stored, err = p.store.Load(ctx); err != nil {
			p.logger.Warn("session load failed", "error", err)
			stored = domain.SessionState{}
		}
	}

	p.mu.Lock()
	if p.cache != nil {
		if err := p.cache.Close(); err != nil {
			p.logger.Warn("closing previous document", "path", p.path, "error", err)
		}
	}

	p.cache = NewSlideCache(doc)
	p.path = path
	if restore {
		p.nav = domain.RestoreNavigator(p.cache.Total(), stored.LastSlide)
	} else {
		p.nav = domain.NewNavigator(p.cache.Total())
	}

	p.index = domain.NotesIndex{}
	p.notesPath = ""
	p.diagnostic = ""
	notesPath := domain.NotesPathFor(path)
	if restore && !fileExists(notesPath) && stored.LastFile == path && stored.LastNotes != "" {
		notesPath = stored.LastNotes
	}
	if err := p.readNotesLocked(notesPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.diagnostic = err.Error()
		p.logger.Warn("notes unreadable", "path", notesPath, "error", err)
	}

	p.logger.Info("document loaded",
		"path", path,
		"pages", p.cache.Total(),
		"slide", p.nav.Current(),
		"notes", p.notesPath)

	p.saveLocked(ctx)
	live := p.mode == ModeLive
	p.mu.Unlock()

	if live {
		return p.pushCurrent(ctx)
	}
	return nil
}

// LoadNotes replaces the notes index. A file that cannot be read leaves an
// empty index and returns a *DecodeError; the document is unaffected.
func (p *Presenter) LoadNotes(ctx context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.readNotesLocked(path); err != nil {
		p.diagnostic = err.Error()
		return err
	}
	p.diagnostic = ""
	if p.cache != nil {
		p.saveLocked(ctx)
	}
	return nil
}

func (p *Presenter) readNotesLocked(path string) error {
	index, encoding, err := p.notes.Read(path)
	if err != nil {
		p.index = domain.NotesIndex{}
		p.notesPath = ""
		return &DecodeError{Path: path, Err: err}
	}
	p.index = index
	p.notesPath = path
	p.logger.Debug("notes loaded", "path", path, "encoding", encoding, "slides", index.Len())
	return nil
}

// RestoreLastSession reloads the last document, resuming its slide. It
// reports false when there is nothing to restore.
func (p *Presenter) RestoreLastSession(ctx context.Context) (bool, error) {
	if p.store == nil {
		return false, nil
	}
	state, err := p.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("loading session: %w", err)
	}
	if state.LastFile == "" || !fileExists(state.LastFile) {
		return false, nil
	}
	if err := p.LoadDocument(ctx, state.LastFile, true); err != nil {
		return false, err
	}
	return true, nil
}

// Navigate applies a navigation command. It reports whether the state
// changed. When the current slide changes while live, the new frame is
// pushed to the audience.
func (p *Presenter) Navigate(ctx context.Context, action domain.Action) (bool, error) {
	p.mu.Lock()
	before := p.nav.Current()
	if !p.nav.Apply(action) {
		p.mu.Unlock()
		return false, nil
	}
	push := p.nav.Current() != before && p.mode == ModeLive
	p.mu.Unlock()

	if push {
		return true, p.pushCurrent(ctx)
	}
	return true, nil
}

// GoLive starts presenting, from the first slide when fromStart is set.
// It returns ErrAlreadyLive while live or blanked.
func (p *Presenter) GoLive(ctx context.Context, fromStart bool) error {
	p.mu.Lock()
	if p.cache == nil {
		p.mu.Unlock()
		return ErrNoDocument
	}
	if p.mode != ModeIdle {
		p.mu.Unlock()
		return ErrAlreadyLive
	}
	if fromStart {
		p.nav.Restart()
	}
	p.mode = ModeLive
	p.startedAt = p.now()
	p.elapsed = formatElapsed(0)
	p.logger.Info("live", "slide", p.nav.Current(), "from_start", fromStart)
	p.mu.Unlock()

	return p.pushCurrent(ctx)
}

// Stop ends the presentation and hides the audience surface.
func (p *Presenter) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == ModeIdle {
		return nil
	}
	p.mode = ModeIdle
	p.startedAt = time.Time{}
	p.elapsed = ElapsedUnset
	p.logger.Info("stopped")
	if p.surface != nil {
		return p.surface.Hide()
	}
	return nil
}

// ToggleBlank blanks or unblanks the audience surface. Unblanking re-pushes
// the current slide.
func (p *Presenter) ToggleBlank(ctx context.Context) error {
	p.mu.Lock()
	switch p.mode {
	case ModeLive:
		defer p.mu.Unlock()
		p.mode = ModeBlanked
		if p.surface != nil {
			return p.surface.Blank()
		}
		return nil
	case ModeBlanked:
		p.mode = ModeLive
		p.mu.Unlock()
		return p.pushCurrent(ctx)
	default:
		p.mu.Unlock()
		return ErrNotLive
	}
}

// Tick refreshes the wall clock and, while presenting, the elapsed readout.
func (p *Presenter) Tick(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clock = now.Format(time.TimeOnly)
	if p.mode != ModeIdle && !p.startedAt.IsZero() {
		p.elapsed = formatElapsed(now.Sub(p.startedAt))
	}
}

// SetPointer moves the laser pointer, in coordinates relative to the slide
// (0..1). It is ignored unless live.
func (p *Presenter) SetPointer(x, y float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeLive || p.surface == nil {
		return nil
	}
	return p.surface.SetPointer(clamp01(x), clamp01(y), true)
}

// HidePointer removes the laser pointer
func (p *Presenter) HidePointer() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.surface == nil {
		return nil
	}
	return p.surface.SetPointer(0, 0, false)
}

// State returns the current snapshot without bitmaps.
func (p *Presenter) State() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Presenter) stateLocked() Snapshot {
	s := Snapshot{
		DocumentPath: p.path,
		NotesPath:    p.notesPath,
		Nav:          p.nav.State(),
		PreviewAtEnd: p.nav.PreviewAtEnd(),
		Mode:         p.mode,
		Elapsed:      p.elapsed,
		Clock:        p.clock,
		Diagnostic:   p.diagnostic,
	}
	if p.cache != nil {
		s.DocumentName = p.cache.Document().Name()
		s.Note = p.index.Get(p.nav.Current())
	}
	return s
}

// Snapshot returns the current state with preview-tier bitmaps for the
// current and preview slides. A render failure is returned alongside a
// snapshot whose failed bitmap is nil.
func (p *Presenter) Snapshot(ctx context.Context) (Snapshot, error) {
	s, err := p.snapshot(ctx)
	if errors.Is(err, ErrCacheClosed) {
		// the document was replaced while rendering
		return p.snapshot(ctx)
	}
	return s, err
}

func (p *Presenter) snapshot(ctx context.Context) (Snapshot, error) {
	p.mu.Lock()
	s := p.stateLocked()
	cache := p.cache
	p.mu.Unlock()

	if cache == nil || s.Nav.Total == 0 {
		return s, nil
	}

	var errs []error
	img, err := cache.Get(ctx, s.Nav.Current, domain.TierPreview)
	if err != nil {
		errs = append(errs, err)
	}
	s.Current = img

	if !s.PreviewAtEnd {
		img, err := cache.Get(ctx, s.Nav.Preview, domain.TierPreview)
		if err != nil {
			errs = append(errs, err)
		}
		s.Preview = img
	}
	return s, errors.Join(errs...)
}

// Notes returns the loaded notes index
func (p *Presenter) Notes() domain.NotesIndex {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Close persists the slide position, hides the audience surface and
// releases the document.
func (p *Presenter) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.mode != ModeIdle && p.surface != nil {
		errs = append(errs, p.surface.Hide())
	}
	p.mode = ModeIdle
	p.startedAt = time.Time{}
	p.elapsed = ElapsedUnset

	if p.cache != nil {
		p.saveLocked(ctx)
		errs = append(errs, p.cache.Close())
		p.cache = nil
	}
	p.path = ""
	p.notesPath = ""
	p.nav = domain.NewNavigator(0)
	p.index = domain.NotesIndex{}
	return errors.Join(errs...)
}

// pushCurrent renders the current slide at presentation quality and shows
// it on the audience surface. The render runs without holding the lock; the
// frame is dropped if the slide, the document or the mode changed meanwhile.
func (p *Presenter) pushCurrent(ctx context.Context) error {
	p.mu.Lock()
	cache, slide := p.cache, p.nav.Current()
	if p.surface == nil || cache == nil || cache.Total() == 0 || p.mode != ModeLive {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	img, err := cache.Get(ctx, slide, domain.TierPresentation)
	if errors.Is(err, ErrCacheClosed) {
		return nil
	}
	if err != nil {
		p.logger.Warn("render failed", "slide", slide, "error", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cache != cache || p.nav.Current() != slide || p.mode != ModeLive {
		p.logger.Debug("stale frame dropped", "slide", slide)
		return nil
	}
	return p.surface.Show(img)
}

func (p *Presenter) saveLocked(ctx context.Context) {
	if p.store == nil || p.path == "" {
		return
	}
	state := domain.SessionState{
		LastFile:      p.path,
		LastDirectory: filepath.Dir(p.path),
		LastNotes:     p.notesPath,
		LastSlide:     p.nav.Current(),
	}
	if err := p.store.Save(ctx, state); err != nil {
		p.logger.Warn("session save failed", "error", err)
	}
}

// formatElapsed renders a duration as MM:SS. Minutes are not capped.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
