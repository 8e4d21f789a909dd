package ports

import "os/exec"

// NotesEditor opens a speaker notes file in an external editor
type NotesEditor interface {
	// Command returns the editor process for path, ready for the terminal
	// UI to hand the terminal over to
	Command(path string) (*exec.Cmd, error)
}
