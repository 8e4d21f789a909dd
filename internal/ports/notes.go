package ports

import "pdfsat/internal/domain"

// NotesReader loads speaker notes from a path
type NotesReader interface {
	// Read returns the parsed notes and the name of the text encoding
	// that decoded the file
	Read(path string) (domain.NotesIndex, string, error)
}
