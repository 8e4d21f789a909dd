package domain

import (
	"path/filepath"
	"strings"
)

// NotesSuffix is appended to a document's stem to find its notes file.
const NotesSuffix = "_notes.txt"

// SessionState is what survives between runs of the presenter.
type SessionState struct {
	LastFile      string
	LastDirectory string
	LastNotes     string
	LastSlide     int
}

// IsZero reports whether nothing has been stored yet
func (s SessionState) IsZero() bool {
	return s == SessionState{}
}

// NotesPathFor returns the co-located notes path for a document,
// e.g. talks/intro.pdf -> talks/intro_notes.txt.
func NotesPathFor(documentPath string) string {
	dir := filepath.Dir(documentPath)
	base := filepath.Base(documentPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+NotesSuffix)
}
