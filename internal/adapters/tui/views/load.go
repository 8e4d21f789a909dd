package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldDocument = iota
	fieldNotes
)

// LoadModel asks for a document path and an optional notes path
type LoadModel struct {
	ViewState
	form *InputForm
}

// NewLoadModel creates the load form
func NewLoadModel() *LoadModel {
	return &LoadModel{
		form: NewInputForm(
			NewInputField("Document", "talk.pdf, slides.dsh or deck.xml", 0),
			NewInputField("Notes (optional)", "defaults to <name>_notes.txt next to the document", 0),
		),
	}
}

// Open resets the form, starting the document path in dir
func (m *LoadModel) Open(dir string) tea.Cmd {
	m.ClearMessage()
	m.form.SetValue(fieldDocument, dir)
	m.form.SetValue(fieldNotes, "")
	if m.form.FocusedField != fieldDocument {
		m.form.NextField()
	}
	return m.form.Init()
}

// Init initializes the load view
func (m *LoadModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the load view
func (m *LoadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToConsoleMsg{} }

		case key.Matches(msg, m.form.Keys.Submit):
			path := m.form.Value(fieldDocument)
			if path == "" {
				m.SetMessage("A document path is required", true)
				return m, nil
			}
			req := LoadRequestMsg{Path: path, NotesPath: m.form.Value(fieldNotes)}
			return m, func() tea.Msg { return req }
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the load form
func (m *LoadModel) View() string {
	return NewViewBuilder().
		Title("Open document").
		Line(m.form.RenderField(fieldDocument)).
		BlankLine().
		Line(m.form.RenderField(fieldNotes)).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp("open")).
		String()
}
