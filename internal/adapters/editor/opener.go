package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"pdfsat/internal/ports"
)

// ErrNoEditor is returned when neither $VISUAL nor $EDITOR is set and no
// known editor is on $PATH
var ErrNoEditor = errors.New("no editor found: set $EDITOR environment variable")

// NewNotesTemplate seeds a notes file that does not exist yet
const NewNotesTemplate = "--1--\n\n"

// Opener implements ports.NotesEditor
type Opener struct {
	argv []string
}

var _ ports.NotesEditor = (*Opener)(nil)

// NewOpener resolves the editor from the environment
func NewOpener() *Opener {
	return &Opener{argv: findEditor()}
}

// Available reports whether an editor was found
func (o *Opener) Available() bool {
	return len(o.argv) > 0
}

// Command returns an exec.Cmd editing path, creating the notes file from
// NewNotesTemplate when it is missing
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if !o.Available() {
		return nil, ErrNoEditor
	}
	if err := ensureFile(path); err != nil {
		return nil, err
	}

	args := append(o.argv[1:len(o.argv):len(o.argv)], path)
	cmd := exec.Command(o.argv[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create notes file: %w", err)
	}
	defer f.Close()
	_, err = f.WriteString(NewNotesTemplate)
	return err
}

// findEditor returns the editor command line, split into fields so values
// like "code -w" work
func findEditor() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
