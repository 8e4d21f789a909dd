package views

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pdfsat/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit    key.Binding
	Cancel    key.Binding
	Complete  key.Binding
	NextField key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete path"),
	),
	NextField: key.NewBinding(
		key.WithKeys("shift+tab", "down", "up"),
		key.WithHelp("shift+tab", "next field"),
	),
}

// InputField represents a single path field with label and textinput
type InputField struct {
	Label string
	Input textinput.Model
}

// InputForm manages path input fields with focus handling and tab
// completion against the filesystem
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a new input form with the given fields
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Label: label,
		Input: input,
	}
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the input form.
// Returns (handled, cmd) where handled is true if the key was processed.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.NextField):
			f.NextField()
			return true, nil
		case key.Matches(msg, f.Keys.Complete):
			f.complete()
			return true, nil
		}
	}

	var cmd tea.Cmd
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		f.Fields[f.FocusedField].Input, cmd = f.Fields[f.FocusedField].Input.Update(msg)
	}
	return false, cmd
}

// NextField moves focus to the next field
func (f *InputForm) NextField() {
	if len(f.Fields) <= 1 {
		return
	}
	f.Fields[f.FocusedField].Input.Blur()
	f.FocusedField = (f.FocusedField + 1) % len(f.Fields)
	f.Fields[f.FocusedField].Input.Focus()
}

// Value returns the value of a field by index, with a leading ~ expanded
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return expandHome(strings.TrimSpace(f.Fields[index].Input.Value()))
}

// SetValue sets the value of a field by index
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
	f.Fields[index].Input.CursorEnd()
}

func (f *InputForm) complete() {
	if f.FocusedField < 0 || f.FocusedField >= len(f.Fields) {
		return
	}
	input := &f.Fields[f.FocusedField].Input
	if completed, ok := CompletePath(input.Value()); ok {
		input.SetValue(completed)
		input.CursorEnd()
	}
}

// RenderField renders a single field with appropriate styling
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}

	field := f.Fields[index]
	var b strings.Builder

	b.WriteString(styles.InputLabel.Render(field.Label))
	b.WriteString("\n")

	if index == f.FocusedField {
		b.WriteString(styles.InputFocused.Render(field.Input.View()))
	} else {
		b.WriteString(styles.InputField.Render(field.Input.View()))
	}

	return b.String()
}

// RenderHelp renders the help text for the form
func (f *InputForm) RenderHelp(submitText string) string {
	bindings := []key.Binding{f.Keys.Complete}
	if len(f.Fields) > 1 {
		bindings = append(bindings, f.Keys.NextField)
	}
	submit := f.Keys.Submit
	submit.SetHelp("enter", submitText)
	bindings = append(bindings, submit, f.Keys.Cancel)
	return RenderHelpLine(bindings...)
}

// CompletePath extends a partial path to the longest prefix shared by the
// entries it matches. A unique directory match gets a trailing separator.
func CompletePath(partial string) (string, bool) {
	if partial == "" {
		return "", false
	}
	expanded := expandHome(partial)
	matches, err := filepath.Glob(escapeGlob(expanded) + "*")
	if err != nil || len(matches) == 0 {
		return partial, false
	}

	completed := matches[0]
	for _, m := range matches[1:] {
		completed = commonPrefix(completed, m)
	}
	if len(matches) == 1 {
		if info, err := os.Stat(completed); err == nil && info.IsDir() {
			completed += string(filepath.Separator)
		}
	}
	if completed == expanded {
		return partial, false
	}
	return completed, true
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
