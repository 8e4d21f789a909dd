package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pdfsat/internal/domain"
)

var notesSlide int

var notesCmd = &cobra.Command{
	Use:   "notes <document|notes-file>",
	Short: "Print speaker notes in normalized form",
	Long: `Read a notes file, in any of the encodings pdfsat accepts, and print
it with explicit --N-- markers. Given a document, its co-located notes
file is used.

Examples:
  pdfsat-cli notes talk.pdf
  pdfsat-cli notes talk_notes.txt --slide 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			path = domain.NotesPathFor(path)
		}

		index, encoding, err := notes.Read(path)
		if err != nil {
			return err
		}
		logger.Debug("notes decoded", "path", path, "encoding", encoding, "slides", index.Len())

		if notesSlide > 0 {
			if !index.Has(notesSlide - 1) {
				fmt.Fprintf(os.Stderr, "no notes for slide %d\n", notesSlide)
				return nil
			}
			fmt.Println(index.Get(notesSlide - 1))
			return nil
		}
		fmt.Print(index.Format())
		return nil
	},
}

func init() {
	notesCmd.Flags().IntVarP(&notesSlide, "slide", "s", 0, "print only this 1-based slide")
	rootCmd.AddCommand(notesCmd)
}
