package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pdfsat/internal/application/commands"
)

var infoCmd = &cobra.Command{
	Use:   "info <document>",
	Short: "Show page count and notes of a document",
	Long: `Open a document and report its page count, plus the co-located notes
file with the encoding it was read in.

Example:
  pdfsat-cli info talk.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		info, err := commands.NewInfoCommand(opener, notes, args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("document: %s\n", info.Path)
		fmt.Printf("pages:    %d\n", info.Pages)
		if info.NotesPath == "" {
			fmt.Println("notes:    none")
			return nil
		}
		fmt.Printf("notes:    %s (%s)\n", info.NotesPath, info.Encoding)
		fmt.Printf("          %d of %d slides annotated\n", info.Notes.Len(), info.Pages)
		for _, slide := range info.Notes.Indices() {
			if slide >= info.Pages {
				fmt.Printf("warning:  notes for slide %d, past the last page\n", slide+1)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
