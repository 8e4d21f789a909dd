package views

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pdfsat/internal/application"
	"pdfsat/internal/domain"
	"pdfsat/internal/ports/portstest"
)

type consoleFixture struct {
	dir     string
	opener  *portstest.Opener
	notes   *portstest.NotesReader
	surface *portstest.Surface
	runner  *Runner
	console *ConsoleModel
}

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	f := &consoleFixture{
		dir:     t.TempDir(),
		opener:  portstest.NewOpener(),
		notes:   &portstest.NotesReader{Files: map[string]string{}},
		surface: &portstest.Surface{},
		runner:  NewRunner(),
	}
	t.Cleanup(f.runner.Stop)

	p := application.NewPresenter(f.opener, f.notes, application.WithSurface(f.surface))
	f.console = NewConsoleModel(p, f.runner, true)
	f.console.SetSize(100, 40)
	f.settle(t, 1)
	return f
}

func (f *consoleFixture) document(t *testing.T, name string, pages int) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	f.opener.Add(path, portstest.NewDocument(name, pages))
	return path
}

// settle feeds n finished jobs back into the console
func (f *consoleFixture) settle(t *testing.T, n int) {
	t.Helper()
	for range n {
		msg := f.runner.Next()()
		if _, ok := msg.(resultMsg); !ok {
			t.Fatalf("runner returned %T", msg)
		}
		f.console.Update(msg)
	}
}

func (f *consoleFixture) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		f.console.Update(k)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConsoleEmpty(t *testing.T) {
	f := newConsoleFixture(t)

	view := f.console.View()
	if !strings.Contains(view, "No document loaded") {
		t.Errorf("view = %q", view)
	}
}

func TestConsoleLoadAndNavigate(t *testing.T) {
	f := newConsoleFixture(t)
	path := f.document(t, "talk.pdf", 3)

	f.console.Update(LoadRequestMsg{Path: path})
	f.settle(t, 1)

	view := f.console.View()
	for _, want := range []string{"talk.pdf", "Slide 1 / 3 (Preview: 2)", "Loaded talk.pdf (3 slides)", "IDLE", "--:--"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	f.press(tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeySpace})
	f.settle(t, 2)

	if got := f.console.snap.Status(); got != "Slide 3 / 3 (Preview: 4)" {
		t.Errorf("Status() = %q", got)
	}
	if !strings.Contains(f.console.View(), "End of presentation") {
		t.Error("preview pane should show the end marker")
	}

	f.press(tea.KeyMsg{Type: tea.KeyLeft})
	f.settle(t, 1)
	if got := f.console.snap.Nav.Current; got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}

func TestConsoleKeysApplyInOrder(t *testing.T) {
	f := newConsoleFixture(t)
	path := f.document(t, "talk.pdf", 10)
	f.console.Update(LoadRequestMsg{Path: path})
	f.settle(t, 1)

	// preview to 5, bookmark it, step back, recall, advance onto it
	f.press(
		runes("j"), runes("j"), runes("j"),
		runes("r"),
		runes("k"),
		runes("g"),
		tea.KeyMsg{Type: tea.KeyRight},
	)
	f.settle(t, 7)

	nav := f.console.snap.Nav
	if nav.Current != 4 || !nav.HasRemembered || nav.Remembered != 4 {
		t.Errorf("nav = %+v", nav)
	}
	if !strings.Contains(f.console.View(), "★ 5") {
		t.Error("bookmark not shown")
	}
}

func TestConsoleLiveControls(t *testing.T) {
	f := newConsoleFixture(t)
	path := f.document(t, "talk.pdf", 3)
	f.console.Update(LoadRequestMsg{Path: path})
	f.settle(t, 1)

	f.press(runes("b"))
	f.settle(t, 1)
	if !f.console.MessageErr || f.console.Message != application.ErrNotLive.Error() {
		t.Errorf("blank while idle: message = %q", f.console.Message)
	}

	f.press(runes("L"))
	f.settle(t, 1)
	if f.console.snap.Mode != application.ModeLive {
		t.Fatalf("Mode = %v, want live", f.console.snap.Mode)
	}
	if f.surface.Shown() != 1 {
		t.Errorf("frames shown = %d, want 1", f.surface.Shown())
	}
	if !strings.Contains(f.console.View(), "LIVE") {
		t.Error("live badge missing")
	}

	f.press(runes("b"))
	f.settle(t, 1)
	if f.console.snap.Mode != application.ModeBlanked {
		t.Errorf("Mode = %v, want blanked", f.console.snap.Mode)
	}

	f.press(tea.KeyMsg{Type: tea.KeyEsc})
	f.settle(t, 1)
	if f.console.snap.Mode != application.ModeIdle || f.surface.Hides != 1 {
		t.Errorf("Mode = %v, hides = %d", f.console.snap.Mode, f.surface.Hides)
	}
}

func TestConsoleCopyNote(t *testing.T) {
	f := newConsoleFixture(t)
	path := f.document(t, "talk.pdf", 2)
	f.notes.Files[domain.NotesPathFor(path)] = "say hello\n---\nsay goodbye"
	f.console.Update(LoadRequestMsg{Path: path})
	f.settle(t, 1)

	var copied string
	f.console.copy = func(s string) error {
		copied = s
		return nil
	}
	f.press(runes("c"))
	if copied != "say hello" {
		t.Errorf("copied %q", copied)
	}
	if f.console.Message != "Note copied to clipboard" {
		t.Errorf("Message = %q", f.console.Message)
	}

	f.console.copy = func(string) error { return errors.New("no clipboard") }
	f.press(runes("c"))
	if !f.console.MessageErr {
		t.Error("copy failure should be an error message")
	}
}

func TestConsoleEditNotes(t *testing.T) {
	f := newConsoleFixture(t)

	_, cmd := f.console.Update(runes("e"))
	if cmd != nil {
		t.Error("edit without a document should not open an editor")
	}

	path := f.document(t, "talk.pdf", 2)
	f.console.Update(LoadRequestMsg{Path: path})
	f.settle(t, 1)

	_, cmd = f.console.Update(runes("e"))
	if cmd == nil {
		t.Fatal("expected editor command")
	}
	msg, ok := cmd().(OpenEditorMsg)
	if !ok || msg.Path != domain.NotesPathFor(path) {
		t.Errorf("msg = %+v", msg)
	}
}

func TestConsoleLoadFailureKeepsDocument(t *testing.T) {
	f := newConsoleFixture(t)
	path := f.document(t, "talk.pdf", 2)
	f.console.Update(LoadRequestMsg{Path: path})
	f.settle(t, 1)

	f.console.Update(LoadRequestMsg{Path: filepath.Join(f.dir, "missing.pdf")})
	f.settle(t, 1)

	if !f.console.MessageErr {
		t.Error("expected error message")
	}
	if f.console.snap.DocumentName != "talk.pdf" {
		t.Errorf("DocumentName = %q", f.console.snap.DocumentName)
	}
}

func TestConsoleSwitchMessages(t *testing.T) {
	f := newConsoleFixture(t)

	_, cmd := f.console.Update(runes("?"))
	if _, ok := cmd().(SwitchToHelpMsg); !ok {
		t.Error("? should open help")
	}
	_, cmd = f.console.Update(runes("o"))
	if _, ok := cmd().(SwitchToLoadMsg); !ok {
		t.Error("o should open the load form")
	}
	_, cmd = f.console.Update(runes("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
