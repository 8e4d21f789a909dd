package application

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsat/internal/domain"
	"pdfsat/internal/ports/portstest"
)

type presenterFixture struct {
	opener  *portstest.Opener
	notes   *portstest.NotesReader
	store   *portstest.SessionStore
	surface *portstest.Surface
	now     time.Time
	p       *Presenter
}

func newPresenterFixture(t *testing.T) *presenterFixture {
	t.Helper()
	f := &presenterFixture{
		opener:  portstest.NewOpener(),
		notes:   &portstest.NotesReader{Files: map[string]string{}},
		store:   &portstest.SessionStore{},
		surface: &portstest.Surface{},
		now:     time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	f.p = NewPresenter(f.opener, f.notes,
		WithSessionStore(f.store),
		WithSurface(f.surface),
		WithClock(func() time.Time { return f.now }),
	)
	return f
}

func (f *presenterFixture) add(path string, pages int) *portstest.Document {
	doc := portstest.NewDocument(filepath.Base(path), pages)
	f.opener.Add(path, doc)
	return doc
}

func TestPresenter_LoadDocument(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/intro.pdf", 5)
	f.notes.Files["/talks/intro_notes.txt"] = "welcome\n---\nagenda"

	require.NoError(t, f.p.LoadDocument(context.Background(), "/talks/intro.pdf", false))

	s := f.p.State()
	assert.True(t, s.Loaded())
	assert.Equal(t, "intro.pdf", s.DocumentName)
	assert.Equal(t, "/talks/intro_notes.txt", s.NotesPath)
	assert.Equal(t, 0, s.Nav.Current)
	assert.Equal(t, 1, s.Nav.Preview)
	assert.Equal(t, "welcome", s.Note)
	assert.Equal(t, "Slide 1 / 5 (Preview: 2)", s.Status())
	assert.Equal(t, ModeIdle, s.Mode)
	assert.Equal(t, ElapsedUnset, s.Elapsed)

	saved := f.store.Snapshot()
	assert.Equal(t, "/talks/intro.pdf", saved.LastFile)
	assert.Equal(t, "/talks", saved.LastDirectory)
	assert.Equal(t, "/talks/intro_notes.txt", saved.LastNotes)
}

func TestPresenter_LoadFailureKeepsPreviousDocument(t *testing.T) {
	f := newPresenterFixture(t)
	first := f.add("/talks/a.pdf", 4)
	f.opener.Errs["/talks/broken.pdf"] = errors.New("not a PDF")
	f.notes.Files["/talks/a_notes.txt"] = "one\n---\ntwo"
	ctx := context.Background()

	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	_, err := f.p.Navigate(ctx, domain.ActionAdvance)
	require.NoError(t, err)

	err = f.p.LoadDocument(ctx, "/talks/broken.pdf", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "/talks/broken.pdf", lerr.Path)

	s := f.p.State()
	assert.Equal(t, "/talks/a.pdf", s.DocumentPath)
	assert.Equal(t, 1, s.Nav.Current)
	assert.Equal(t, "two", s.Note)
	assert.False(t, first.Closed())
}

func TestPresenter_ReloadClosesPreviousCache(t *testing.T) {
	f := newPresenterFixture(t)
	a := f.add("/talks/a.pdf", 3)
	f.add("/talks/b.pdf", 2)
	ctx := context.Background()

	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/b.pdf", false))

	assert.True(t, a.Closed())
	s := f.p.State()
	assert.Equal(t, "b.pdf", s.DocumentName)
	assert.Equal(t, 2, s.Nav.Total)
}

func TestPresenter_RestoreLastSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))

	f := newPresenterFixture(t)
	f.add(path, 10)
	f.store.State = domain.SessionState{LastFile: path, LastDirectory: dir, LastSlide: 7}

	ok, err := f.p.RestoreLastSession(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	s := f.p.State()
	assert.Equal(t, 7, s.Nav.Current)
	assert.Equal(t, 8, s.Nav.Preview)
}

func TestPresenter_RestoreOutOfRangeFallsBackToFirstSlide(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))

	f := newPresenterFixture(t)
	f.add(path, 3)
	f.store.State = domain.SessionState{LastFile: path, LastSlide: 12}

	ok, err := f.p.RestoreLastSession(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, f.p.State().Nav.Current)
}

func TestPresenter_RestoreNothingStored(t *testing.T) {
	f := newPresenterFixture(t)

	ok, err := f.p.RestoreLastSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	f.store.State = domain.SessionState{LastFile: "/gone/deck.pdf"}
	ok, err = f.p.RestoreLastSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPresenter_LoadNotesFailureLeavesEmptyIndex(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 2)
	f.notes.Files["/talks/a_notes.txt"] = "hello"
	ctx := context.Background()

	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	require.Equal(t, "hello", f.p.State().Note)

	err := f.p.LoadNotes(ctx, "/talks/missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)

	s := f.p.State()
	assert.Empty(t, s.Note)
	assert.Empty(t, s.NotesPath)
	assert.NotEmpty(t, s.Diagnostic)
	assert.True(t, s.Loaded(), "document display unaffected")
}

func TestPresenter_NavigateWithoutDocumentIsNoop(t *testing.T) {
	f := newPresenterFixture(t)

	for _, a := range domain.Actions() {
		changed, err := f.p.Navigate(context.Background(), a)
		require.NoError(t, err)
		assert.False(t, changed, a.String())
	}
}

func TestPresenter_GoLiveRequiresDocument(t *testing.T) {
	f := newPresenterFixture(t)
	assert.ErrorIs(t, f.p.GoLive(context.Background(), false), ErrNoDocument)
	assert.Equal(t, ModeIdle, f.p.State().Mode)
}

func TestPresenter_PushesOnlyWhenLiveAndNotBlanked(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 5)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))

	_, err := f.p.Navigate(ctx, domain.ActionAdvance)
	require.NoError(t, err)
	assert.Zero(t, f.surface.Shown(), "idle presenter pushes nothing")

	require.NoError(t, f.p.GoLive(ctx, false))
	assert.Equal(t, 1, f.surface.Shown())
	assert.Equal(t, 1, f.p.State().Nav.Current, "go live from current keeps position")

	_, err = f.p.Navigate(ctx, domain.ActionAdvance)
	require.NoError(t, err)
	assert.Equal(t, 2, f.surface.Shown())
	assert.Equal(t, portstest.PageColor(2).Y, grayAt(f.surface.Last()))

	_, err = f.p.Navigate(ctx, domain.ActionPreviewStepForward)
	require.NoError(t, err)
	assert.Equal(t, 2, f.surface.Shown(), "preview moves are not pushed")

	require.NoError(t, f.p.ToggleBlank(ctx))
	assert.Equal(t, ModeBlanked, f.p.State().Mode)
	assert.Equal(t, 1, f.surface.Blanks)

	_, err = f.p.Navigate(ctx, domain.ActionRetreat)
	require.NoError(t, err)
	assert.Equal(t, 2, f.surface.Shown(), "blanked presenter pushes nothing")

	require.NoError(t, f.p.ToggleBlank(ctx))
	assert.Equal(t, ModeLive, f.p.State().Mode)
	assert.Equal(t, 3, f.surface.Shown(), "unblank re-pushes current")
	assert.Equal(t, portstest.PageColor(1).Y, grayAt(f.surface.Last()))

	require.NoError(t, f.p.Stop())
	assert.Equal(t, 1, f.surface.Hides)
	_, err = f.p.Navigate(ctx, domain.ActionAdvance)
	require.NoError(t, err)
	assert.Equal(t, 3, f.surface.Shown())
}

func TestPresenter_PushedFramesArePresentationTier(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 2)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	require.NoError(t, f.p.GoLive(ctx, false))

	live := f.surface.Last()
	snap, err := f.p.Snapshot(ctx)
	require.NoError(t, err)
	assert.Greater(t, live.Bounds().Dx(), snap.Current.Bounds().Dx())
}

func TestPresenter_GoLiveFromStart(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 6)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	for range 3 {
		_, err := f.p.Navigate(ctx, domain.ActionAdvance)
		require.NoError(t, err)
	}
	_, err := f.p.Navigate(ctx, domain.ActionRemember)
	require.NoError(t, err)

	require.NoError(t, f.p.GoLive(ctx, true))
	s := f.p.State()
	assert.Equal(t, 0, s.Nav.Current)
	assert.Equal(t, 1, s.Nav.Preview)
	assert.True(t, s.Nav.HasRemembered)
	assert.Equal(t, portstest.PageColor(0).Y, grayAt(f.surface.Last()))
}

func TestPresenter_ToggleBlankWhenIdle(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 2)
	require.NoError(t, f.p.LoadDocument(context.Background(), "/talks/a.pdf", false))

	assert.ErrorIs(t, f.p.ToggleBlank(context.Background()), ErrNotLive)
	assert.Zero(t, f.surface.Blanks)
}

func TestPresenter_ElapsedClock(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 2)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))

	f.p.Tick(f.now.Add(5 * time.Second))
	assert.Equal(t, ElapsedUnset, f.p.State().Elapsed)
	assert.Equal(t, "09:00:05", f.p.State().Clock)

	require.NoError(t, f.p.GoLive(ctx, false))
	assert.Equal(t, "00:00", f.p.State().Elapsed)

	f.p.Tick(f.now.Add(83 * time.Second))
	assert.Equal(t, "01:23", f.p.State().Elapsed)

	f.p.Tick(f.now.Add(2*time.Hour + 5*time.Second))
	assert.Equal(t, "120:05", f.p.State().Elapsed)

	require.NoError(t, f.p.Stop())
	assert.Equal(t, ElapsedUnset, f.p.State().Elapsed)
	f.p.Tick(f.now.Add(3 * time.Hour))
	assert.Equal(t, ElapsedUnset, f.p.State().Elapsed)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{100 * time.Minute, "100:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatElapsed(tt.d), tt.d.String())
	}
}

func TestPresenter_Pointer(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 2)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))

	require.NoError(t, f.p.SetPointer(0.5, 0.5))
	assert.False(t, f.surface.Pointer, "ignored while idle")

	require.NoError(t, f.p.GoLive(ctx, false))
	require.NoError(t, f.p.SetPointer(0.25, 1.5))
	assert.True(t, f.surface.Pointer)
	assert.Equal(t, 0.25, f.surface.PointerX)
	assert.Equal(t, 1.0, f.surface.PointerY)

	require.NoError(t, f.p.HidePointer())
	assert.False(t, f.surface.Pointer)
}

func TestPresenter_SnapshotEndSentinel(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/one.pdf", 1)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/one.pdf", false))

	s, err := f.p.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotNil(t, s.Current)
	assert.NotNil(t, s.Preview)
	assert.Equal(t, "Slide 1 / 1 (Preview: 1)", s.Status())

	_, err = f.p.Navigate(ctx, domain.ActionAdvance)
	require.NoError(t, err)

	s, err = f.p.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, s.PreviewAtEnd)
	assert.Nil(t, s.Preview)
	assert.NotNil(t, s.Current)
}

func TestPresenter_SnapshotRenderFailure(t *testing.T) {
	f := newPresenterFixture(t)
	doc := f.add("/talks/a.pdf", 3)
	doc.FailPages = map[int]error{1: errors.New("bad xref")}
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))

	s, err := f.p.Snapshot(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRasterize)
	assert.NotNil(t, s.Current)
	assert.Nil(t, s.Preview)
}

func TestPresenter_CloseSavesSlide(t *testing.T) {
	f := newPresenterFixture(t)
	doc := f.add("/talks/a.pdf", 4)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	require.NoError(t, f.p.GoLive(ctx, false))
	for range 2 {
		_, err := f.p.Navigate(ctx, domain.ActionAdvance)
		require.NoError(t, err)
	}

	require.NoError(t, f.p.Close(ctx))

	assert.Equal(t, 2, f.store.Snapshot().LastSlide)
	assert.True(t, doc.Closed())
	assert.Equal(t, 1, f.surface.Hides)
	assert.False(t, f.p.State().Loaded())
}

func grayAt(img image.Image) uint8 {
	return color.GrayModel.Convert(img.At(0, 0)).(color.Gray).Y
}

func TestPresenter_GoLiveWhilePresenting(t *testing.T) {
	f := newPresenterFixture(t)
	f.add("/talks/a.pdf", 4)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	require.NoError(t, f.p.GoLive(ctx, false))
	_, err := f.p.Navigate(ctx, domain.ActionAdvance)
	require.NoError(t, err)
	f.p.Tick(f.now.Add(42 * time.Second))

	assert.ErrorIs(t, f.p.GoLive(ctx, true), ErrAlreadyLive)
	s := f.p.State()
	assert.Equal(t, 1, s.Nav.Current, "position kept")
	assert.Equal(t, "00:42", s.Elapsed, "clock not reset")

	require.NoError(t, f.p.ToggleBlank(ctx))
	assert.ErrorIs(t, f.p.GoLive(ctx, false), ErrAlreadyLive)
	assert.Equal(t, ModeBlanked, f.p.State().Mode)
	assert.Equal(t, 2, f.surface.Shown())
}

func TestPresenter_RenderDoesNotBlockState(t *testing.T) {
	f := newPresenterFixture(t)
	doc := f.add("/talks/a.pdf", 3)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	doc.Gate = make(chan struct{})

	live := make(chan error, 1)
	go func() { live <- f.p.GoLive(ctx, false) }()
	require.Eventually(t, func() bool { return doc.Calls() > 0 }, time.Second, time.Millisecond)

	done := make(chan Snapshot, 1)
	go func() {
		f.p.Tick(f.now.Add(time.Second))
		done <- f.p.State()
	}()
	select {
	case s := <-done:
		assert.Equal(t, ModeLive, s.Mode)
	case <-time.After(time.Second):
		t.Fatal("Tick and State waited for the render")
	}

	close(doc.Gate)
	require.NoError(t, <-live)
	assert.Equal(t, 1, f.surface.Shown())
}

func TestPresenter_StaleFrameDropped(t *testing.T) {
	f := newPresenterFixture(t)
	doc := f.add("/talks/a.pdf", 3)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	doc.Gate = make(chan struct{})

	live := make(chan error, 1)
	go func() { live <- f.p.GoLive(ctx, false) }()
	require.Eventually(t, func() bool { return doc.Calls() > 0 }, time.Second, time.Millisecond)

	require.NoError(t, f.p.Stop())
	close(doc.Gate)
	require.NoError(t, <-live)
	assert.Zero(t, f.surface.Shown(), "render finished after stop")
	assert.Equal(t, 1, f.surface.Hides)
}

func TestPresenter_SnapshotAcrossReload(t *testing.T) {
	f := newPresenterFixture(t)
	first := f.add("/talks/a.pdf", 3)
	f.add("/talks/b.pdf", 2)
	ctx := context.Background()
	require.NoError(t, f.p.LoadDocument(ctx, "/talks/a.pdf", false))
	first.Gate = make(chan struct{})

	type result struct {
		s   Snapshot
		err error
	}
	snap := make(chan result, 1)
	go func() {
		s, err := f.p.Snapshot(ctx)
		snap <- result{s, err}
	}()
	require.Eventually(t, func() bool { return first.Calls() > 0 }, time.Second, time.Millisecond)

	require.NoError(t, f.p.LoadDocument(ctx, "/talks/b.pdf", false))
	close(first.Gate)

	r := <-snap
	require.NoError(t, r.err)
	assert.Equal(t, "b.pdf", r.s.DocumentName)
	assert.NotNil(t, r.s.Current)
	assert.NotNil(t, r.s.Preview)
}
