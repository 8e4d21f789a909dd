package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Notes markers: a bare separator advances the slide counter, a numbered
// marker --N-- jumps it to slide N (1-based in the text).
var (
	notesMarker   = regexp.MustCompile(`---|--\d+--`)
	numberedNotes = regexp.MustCompile(`^--(\d+)--$`)
)

const separatorMarker = "---"

// NotesIndex maps 0-based slide indices to speaker notes.
// It is immutable once built.
type NotesIndex struct {
	notes map[int]string
}

// ParseNotes builds a NotesIndex from marker-delimited text.
//
// Text before the first marker belongs to slide 0. Whitespace-only segments
// are dropped, and when two segments land on the same slide the later one
// replaces the earlier.
func ParseNotes(text string) NotesIndex {
	notes := make(map[int]string)
	slide := 0

	assign := func(segment string) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return
		}
		notes[slide] = segment
	}

	last := 0
	for _, loc := range notesMarker.FindAllStringIndex(text, -1) {
		assign(text[last:loc[0]])
		marker := text[loc[0]:loc[1]]
		if marker == separatorMarker {
			slide++
		} else if m := numberedNotes.FindStringSubmatch(marker); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n >= 1 {
				slide = n - 1
			}
		}
		last = loc[1]
	}
	assign(text[last:])

	return NotesIndex{notes: notes}
}

// NewNotesIndex builds an index from an explicit map. The map is copied.
func NewNotesIndex(notes map[int]string) NotesIndex {
	cp := make(map[int]string, len(notes))
	for k, v := range notes {
		if k >= 0 {
			cp[k] = v
		}
	}
	return NotesIndex{notes: cp}
}

// Get returns the note for a slide, or "" when there is none.
func (n NotesIndex) Get(slide int) string {
	return n.notes[slide]
}

// Has reports whether the slide has a note.
func (n NotesIndex) Has(slide int) bool {
	_, ok := n.notes[slide]
	return ok
}

// Len returns the number of slides with notes
func (n NotesIndex) Len() int {
	return len(n.notes)
}

// Indices returns the annotated slide indices in ascending order.
func (n NotesIndex) Indices() []int {
	out := make([]int, 0, len(n.notes))
	for k := range n.notes {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Format writes the index back out using numbered markers only. Parsing the
// result yields the same index as long as no note contains marker text.
func (n NotesIndex) Format() string {
	var b strings.Builder
	for i, slide := range n.Indices() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "--%d--\n%s\n", slide+1, n.notes[slide])
	}
	return b.String()
}
