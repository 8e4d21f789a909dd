package filesystem

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"pdfsat/internal/domain"
)

// Encoding names reported by NotesReader.Read
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
	EncodingLossy       = "utf-8 (lossy)"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Bytes that Windows-1252 leaves undefined. The x/text decoder maps them to
// C1 controls, so they are checked separately.
var cp1252Undefined = []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

type fallback struct {
	name   string
	enc    encoding.Encoding
	accept func([]byte) bool
}

var legacyEncodings = []fallback{
	{
		name: EncodingWindows1252,
		enc:  charmap.Windows1252,
		accept: func(b []byte) bool {
			for _, c := range b {
				if bytes.IndexByte(cp1252Undefined, c) >= 0 {
					return false
				}
			}
			return true
		},
	},
	{
		name:   EncodingLatin1,
		enc:    charmap.ISO8859_1,
		accept: func([]byte) bool { return true },
	},
}

// NotesReader reads speaker notes files
type NotesReader struct{}

// NewNotesReader creates a NotesReader
func NewNotesReader() *NotesReader {
	return &NotesReader{}
}

// Read decodes and parses a notes file. Any readable file yields an index;
// only a file that cannot be read returns an error.
func (r *NotesReader) Read(path string) (domain.NotesIndex, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.NotesIndex{}, "", fmt.Errorf("failed to read notes: %w", err)
	}
	text, name := DecodeText(data)
	return domain.ParseNotes(text), name, nil
}

// DecodeText converts notes bytes to a string, trying UTF-8, then the
// legacy Western encodings, then a lossy UTF-8 decode. It returns the name
// of the encoding that succeeded.
func DecodeText(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), EncodingUTF8
	}
	for _, fb := range legacyEncodings {
		if !fb.accept(data) {
			continue
		}
		out, err := fb.enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(out), fb.name
		}
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), EncodingLossy
}
