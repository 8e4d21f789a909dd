package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pdfsat/internal/adapters/tui/views"
	"pdfsat/internal/application"
	"pdfsat/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewConsole ViewState = iota
	ViewLoad
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.NotesEditor
	runner *views.Runner

	state   ViewState
	console *views.ConsoleModel
	load    *views.LoadModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates the presenter console. editor may be nil.
func NewApp(presenter *application.Presenter, editor ports.NotesEditor) *App {
	runner := views.NewRunner()
	return &App{
		editor:  editor,
		runner:  runner,
		state:   ViewConsole,
		console: views.NewConsoleModel(presenter, runner, editor != nil),
		load:    views.NewLoadModel(),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.console.Init()
}

// Close stops the background renderer once the program has exited
func (a *App) Close() {
	a.runner.Stop()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.console.SetSize(msg.Width, msg.Height)
		a.load.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToLoadMsg:
		a.state = ViewLoad
		return a, a.load.Open(msg.Dir)

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToConsoleMsg:
		a.state = ViewConsole
		return a, nil

	case views.LoadRequestMsg:
		a.state = ViewConsole
		_, cmd := a.console.Update(msg)
		return a, cmd

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.console.SetMessage(msg.err.Error(), true)
			return a, nil
		}
		a.console.ReloadNotes(msg.path)
		return a, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch a.state {
		case ViewConsole:
			_, cmd = a.console.Update(msg)
		case ViewLoad:
			_, cmd = a.load.Update(msg)
		case ViewHelp:
			_, cmd = a.help.Update(msg)
		}
		return a, cmd
	}

	// Renderer results and the clock belong to the console whatever is on
	// screen; the load form also needs cursor blinks.
	_, cmd := a.console.Update(msg)
	if a.state == ViewLoad {
		var loadCmd tea.Cmd
		_, loadCmd = a.load.Update(msg)
		cmd = tea.Batch(cmd, loadCmd)
	}
	return a, cmd
}

type editorFinishedMsg struct {
	path string
	err  error
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{path: path, err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewLoad:
		return a.load.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.console.View()
	}
}
