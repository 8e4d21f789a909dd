package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages

type SwitchToConsoleMsg struct{}

type SwitchToLoadMsg struct {
	Dir string
}

type SwitchToHelpMsg struct{}

// LoadRequestMsg asks the console to load a document and, optionally, a
// notes file in place of the co-located one
type LoadRequestMsg struct {
	Path      string
	NotesPath string
	Restore   bool
}

// OpenEditorMsg asks the app to hand the terminal to the notes editor
type OpenEditorMsg struct {
	Path string
}
