package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pdfsat/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg {
			return SwitchToConsoleMsg{}
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	k := ConsoleKeys
	v := NewViewBuilder().
		Title("pdfsat Help").
		Subtitle("Presenter console. The audience sees the current slide; you also see what comes next.")

	v.Section("Slides")
	v.Raw(helpLines(k.Advance, k.Retreat))
	v.BlankLine()

	v.Section("Preview")
	v.Raw(helpLines(k.PreviewForward, k.PreviewBackward, k.PreviewNext, k.PreviewPrev, k.PreviewRestore))
	v.Raw(helpLines(k.Remember, k.Recall))
	v.BlankLine()

	v.Section("Presenting")
	v.Raw(helpLines(k.LiveFromStart, k.LiveFromCurrent, k.Blank, k.Stop))
	v.BlankLine()

	v.Section("Notes")
	v.Raw(helpLines(k.NotesDown, k.NotesUp, k.Copy, k.Edit))
	v.BlankLine()

	v.Section("General")
	v.Raw(helpLines(k.Open, k.Help, k.Quit))
	v.BlankLine()

	v.Line(styles.MutedText.Render("Notes files mark slides with --N-- lines, or separate slides with ---."))
	v.BlankLine()
	v.Help(HelpKeys.Close)
	return v.String()
}

func helpLines(bindings ...key.Binding) string {
	var b strings.Builder
	for _, binding := range bindings {
		h := binding.Help()
		b.WriteString("  " + styles.HelpKey.Render(padRight(h.Key, 14)) + styles.HelpDesc.Render(h.Desc) + "\n")
	}
	return b.String()
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
