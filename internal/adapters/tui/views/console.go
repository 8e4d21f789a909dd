package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfsat/internal/adapters/tui/styles"
	"pdfsat/internal/application"
	"pdfsat/internal/application/commands"
	"pdfsat/internal/domain"
)

// ConsoleKeyMap defines key bindings for the presenter console
type ConsoleKeyMap struct {
	Advance         key.Binding
	Retreat         key.Binding
	PreviewForward  key.Binding
	PreviewBackward key.Binding
	PreviewRestore  key.Binding
	PreviewNext     key.Binding
	PreviewPrev     key.Binding
	Remember        key.Binding
	Recall          key.Binding
	LiveFromStart   key.Binding
	LiveFromCurrent key.Binding
	Stop            key.Binding
	Blank           key.Binding
	Open            key.Binding
	Edit            key.Binding
	Copy            key.Binding
	NotesDown       key.Binding
	NotesUp         key.Binding
	Help            key.Binding
	Quit            key.Binding
}

var ConsoleKeys = ConsoleKeyMap{
	Advance: key.NewBinding(
		key.WithKeys("right", " "),
		key.WithHelp("→/space", "next slide"),
	),
	Retreat: key.NewBinding(
		key.WithKeys("left", "backspace"),
		key.WithHelp("←", "previous slide"),
	),
	PreviewForward: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "preview forward"),
	),
	PreviewBackward: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "preview back"),
	),
	PreviewRestore: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "preview to jump origin"),
	),
	PreviewNext: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "preview next"),
	),
	PreviewPrev: key.NewBinding(
		key.WithKeys("9"),
		key.WithHelp("9", "preview previous"),
	),
	Remember: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "remember preview"),
	),
	Recall: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to remembered"),
	),
	LiveFromStart: key.NewBinding(
		key.WithKeys("f5", "L"),
		key.WithHelp("F5/L", "present from start"),
	),
	LiveFromCurrent: key.NewBinding(
		key.WithKeys("shift+f5", "l"),
		key.WithHelp("l", "present from here"),
	),
	Stop: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop"),
	),
	Blank: key.NewBinding(
		key.WithKeys("b", "."),
		key.WithHelp("b", "blank"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit notes"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy note"),
	),
	NotesDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll notes"),
	),
	NotesUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll notes up"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var navigationKeys = []struct {
	binding *key.Binding
	action  domain.Action
}{
	{&ConsoleKeys.Advance, domain.ActionAdvance},
	{&ConsoleKeys.Retreat, domain.ActionRetreat},
	{&ConsoleKeys.PreviewForward, domain.ActionPreviewStepForward},
	{&ConsoleKeys.PreviewBackward, domain.ActionPreviewStepBackward},
	{&ConsoleKeys.PreviewRestore, domain.ActionPreviewRestore},
	{&ConsoleKeys.PreviewNext, domain.ActionPreviewSetToNext},
	{&ConsoleKeys.PreviewPrev, domain.ActionPreviewSetToPrev},
	{&ConsoleKeys.Remember, domain.ActionRemember},
	{&ConsoleKeys.Recall, domain.ActionRecall},
}

// snapshotMsg carries a rendered presenter snapshot
type snapshotMsg struct {
	snap    application.Snapshot
	current string
	preview string
	message string
	isErr   bool
}

type tickMsg time.Time

// ConsoleModel is the presenter's own view: current and preview slides,
// the speaker note, mode and clocks
type ConsoleModel struct {
	ViewState
	presenter *application.Presenter
	runner    *Runner
	hasEditor bool

	snap    application.Snapshot
	current string
	preview string
	note    string
	notes   viewport.Model

	// copy writes to the system clipboard
	copy func(string) error
}

// NewConsoleModel creates the console. hasEditor enables the edit-notes key.
func NewConsoleModel(presenter *application.Presenter, runner *Runner, hasEditor bool) *ConsoleModel {
	notes := viewport.New(0, 0)
	notes.KeyMap = viewport.KeyMap{
		PageDown: ConsoleKeys.NotesDown,
		PageUp:   ConsoleKeys.NotesUp,
	}
	return &ConsoleModel{
		presenter: presenter,
		runner:    runner,
		hasEditor: hasEditor,
		snap:      presenter.State(),
		notes:     notes,
		copy:      clipboard.WriteAll,
	}
}

// Init starts the clock and draws the first snapshot
func (m *ConsoleModel) Init() tea.Cmd {
	m.refresh()
	return tea.Batch(m.runner.Next(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// SetSize updates the view dimensions and re-renders the thumbnails
func (m *ConsoleModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	_, _, notesHeight := m.layout()
	m.notes.Width = max(width-4, 10)
	m.notes.Height = notesHeight
	m.refresh()
}

// layout splits the terminal between the two slide panes and the notes
func (m *ConsoleModel) layout() (cols, rows, notesHeight int) {
	cols = max((m.Width-8)/2, 8)
	rows = max(min(cols*3/8, (m.Height-12)*3/5), 3)
	notesHeight = max(m.Height-rows-12, 3)
	return cols, rows, notesHeight
}

// Update handles messages for the console
func (m *ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		cmd := m.handleResult(msg.msg)
		return m, tea.Batch(m.runner.Next(), cmd)

	case tickMsg:
		m.presenter.Tick(time.Time(msg))
		m.applyState(m.presenter.State())
		return m, tick()

	case LoadRequestMsg:
		m.load(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *ConsoleModel) handleResult(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.current = msg.current
		m.preview = msg.preview
		m.applyState(msg.snap)
		switch {
		case msg.message != "":
			m.SetMessage(msg.message, msg.isErr)
		case msg.snap.Diagnostic != "":
			m.SetMessage(msg.snap.Diagnostic, true)
		}
	}
	return nil
}

// applyState takes the textual parts of a snapshot; the rendered panes are
// kept until the next snapshotMsg
func (m *ConsoleModel) applyState(s application.Snapshot) {
	slideChanged := s.Nav.Current != m.snap.Nav.Current || s.DocumentPath != m.snap.DocumentPath
	m.snap = s
	if s.Note != m.note || slideChanged {
		m.note = s.Note
		if s.Note == "" {
			m.notes.SetContent(styles.MutedText.Render("No notes for this slide"))
		} else {
			m.notes.SetContent(lipgloss.NewStyle().Width(m.notes.Width).Render(s.Note))
		}
		m.notes.GotoTop()
	}
}

func (m *ConsoleModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()
	for _, nk := range navigationKeys {
		if key.Matches(msg, *nk.binding) {
			m.navigate(nk.action)
			return nil
		}
	}

	switch {
	case key.Matches(msg, ConsoleKeys.Quit):
		return tea.Quit

	case key.Matches(msg, ConsoleKeys.LiveFromStart):
		m.goLive(true)

	case key.Matches(msg, ConsoleKeys.LiveFromCurrent):
		m.goLive(false)

	case key.Matches(msg, ConsoleKeys.Stop):
		m.submit(func(ctx context.Context) (string, error) {
			_, err := commands.NewStopCommand(m.presenter).Execute(ctx)
			return "", err
		})

	case key.Matches(msg, ConsoleKeys.Blank):
		m.submit(func(ctx context.Context) (string, error) {
			_, err := commands.NewToggleBlankCommand(m.presenter).Execute(ctx)
			return "", err
		})

	case key.Matches(msg, ConsoleKeys.Open):
		dir := ""
		if m.snap.Loaded() {
			dir = filepath.Dir(m.snap.DocumentPath) + string(filepath.Separator)
		}
		return func() tea.Msg { return SwitchToLoadMsg{Dir: dir} }

	case key.Matches(msg, ConsoleKeys.Edit):
		return m.editNotes()

	case key.Matches(msg, ConsoleKeys.Copy):
		m.copyNote()

	case key.Matches(msg, ConsoleKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	default:
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return cmd
	}
	return nil
}

func (m *ConsoleModel) navigate(action domain.Action) {
	m.submit(func(ctx context.Context) (string, error) {
		_, err := commands.NewNavigateCommand(m.presenter, action.String()).Execute(ctx)
		return "", err
	})
}

func (m *ConsoleModel) goLive(fromStart bool) {
	m.submit(func(ctx context.Context) (string, error) {
		_, err := commands.NewGoLiveCommand(m.presenter, fromStart).Execute(ctx)
		if err != nil {
			return "", err
		}
		return "Presenting", nil
	})
}

func (m *ConsoleModel) load(req LoadRequestMsg) {
	m.submit(func(ctx context.Context) (string, error) {
		result, err := commands.NewLoadDocumentCommand(m.presenter, req.Path, req.Restore).Execute(ctx)
		if err != nil {
			return "", err
		}
		if req.NotesPath == "" {
			return result.Message, nil
		}
		notes, err := commands.NewLoadNotesCommand(m.presenter, req.NotesPath).Execute(ctx)
		if err != nil {
			return "", err
		}
		return result.Message + "; " + notes.Message, nil
	})
}

// ReloadNotes re-reads the notes file after it was edited
func (m *ConsoleModel) ReloadNotes(path string) {
	m.submit(func(ctx context.Context) (string, error) {
		result, err := commands.NewLoadNotesCommand(m.presenter, path).Execute(ctx)
		if err != nil {
			return "", err
		}
		return result.Message, nil
	})
}

// NotesPath returns the notes file the edit key opens
func (m *ConsoleModel) NotesPath() string {
	if m.snap.NotesPath != "" {
		return m.snap.NotesPath
	}
	if m.snap.Loaded() {
		return domain.NotesPathFor(m.snap.DocumentPath)
	}
	return ""
}

func (m *ConsoleModel) editNotes() tea.Cmd {
	if !m.hasEditor {
		m.SetMessage("No editor found: set $EDITOR", true)
		return nil
	}
	path := m.NotesPath()
	if path == "" {
		m.SetMessage(application.ErrNoDocument.Error(), true)
		return nil
	}
	return func() tea.Msg { return OpenEditorMsg{Path: path} }
}

func (m *ConsoleModel) copyNote() {
	if m.snap.Note == "" {
		m.SetMessage("No note to copy", true)
		return
	}
	if err := m.copy(m.snap.Note); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Note copied to clipboard", false)
}

// submit runs op on the runner and follows it with a fresh snapshot
func (m *ConsoleModel) submit(op func(ctx context.Context) (string, error)) {
	cols, rows, _ := m.layout()
	p := m.presenter
	m.runner.Submit(func() tea.Msg {
		ctx := context.Background()
		message, err := op(ctx)
		out := render(ctx, p, cols, rows)
		if err != nil {
			out.message, out.isErr = err.Error(), true
		} else if message != "" {
			out.message = message
		}
		return out
	})
}

// refresh re-renders the panes without changing the presentation
func (m *ConsoleModel) refresh() {
	m.submit(func(context.Context) (string, error) { return "", nil })
}

func render(ctx context.Context, p *application.Presenter, cols, rows int) snapshotMsg {
	snap, err := p.Snapshot(ctx)
	out := snapshotMsg{snap: snap}
	if err != nil {
		out.message, out.isErr = err.Error(), true
	}
	if !snap.Loaded() {
		return out
	}
	out.current = Thumbnail(snap.Current, cols, rows)
	if snap.PreviewAtEnd {
		out.preview = EndOfShow(cols, rows)
	} else {
		out.preview = Thumbnail(snap.Preview, cols, rows)
	}
	return out
}

// View renders the console
func (m *ConsoleModel) View() string {
	if !m.snap.Loaded() {
		return NewViewBuilder().
			Title("pdfsat").
			Subtitle("No document loaded").
			Message(m.Message, m.MessageErr).
			Help(ConsoleKeys.Open, ConsoleKeys.Help, ConsoleKeys.Quit).
			String()
	}

	cols, rows, _ := m.layout()
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		pane("Current", styles.CurrentPane, m.current, cols, rows),
		"  ",
		pane("Preview", styles.PreviewPane, m.preview, cols, rows),
	)

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(styles.Notes.Render(m.notes.View()))
	b.WriteString("\n")
	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		ConsoleKeys.Advance,
		ConsoleKeys.Retreat,
		ConsoleKeys.LiveFromStart,
		ConsoleKeys.Stop,
		ConsoleKeys.Blank,
		ConsoleKeys.Help,
		ConsoleKeys.Quit,
	))
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

func (m *ConsoleModel) header() string {
	mode := m.snap.Mode.String()
	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.DocumentName.Render(m.snap.DocumentName),
		"  ",
		styles.ModeBadge(mode).Render(strings.ToUpper(mode)),
		"  ",
		styles.Elapsed.Render(m.snap.Elapsed),
		"  ",
		styles.Clock.Render(m.snap.Clock),
	)
}

func (m *ConsoleModel) statusLine() string {
	parts := []string{styles.StatusBar.Render(m.snap.Status())}
	nav := m.snap.Nav
	if nav.HasRemembered {
		parts = append(parts, styles.Bookmark.Render(fmt.Sprintf("★ %d", nav.Remembered+1)))
	}
	if nav.HasJumpOrigin {
		parts = append(parts, styles.StatusText.Render(fmt.Sprintf("↩ %d", nav.JumpOrigin+1)))
	}
	if m.snap.NotesPath != "" {
		parts = append(parts, styles.StatusText.Render(filepath.Base(m.snap.NotesPath)))
	}
	return strings.Join(parts, " ")
}

func pane(label string, style lipgloss.Style, content string, cols, rows int) string {
	if content == "" {
		content = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, styles.MutedText.Render("rendering…"))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.PaneLabel.Render(label),
		style.Render(content),
	)
}
