package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pdfsat/internal/application/commands"
	"pdfsat/internal/bootstrap"
	"pdfsat/internal/domain"
)

var (
	exportNotes   string
	exportTier    string
	exportWorkers int
)

var exportCmd = &cobra.Command{
	Use:   "export <document> <destination>",
	Short: "Render every slide to PNG files",
	Long: `Render every slide as slide-NNN.png, plus notes.txt with normalized
--N-- markers when the document has notes.

The destination is a directory, or s3://bucket/prefix for an
S3-compatible store configured with PDFSAT_S3_ENDPOINT,
PDFSAT_S3_ACCESS_KEY and PDFSAT_S3_SECRET_KEY.

Examples:
  pdfsat-cli export talk.pdf ./handout
  pdfsat-cli export talk.pdf s3://slides/2026/talk`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, ok := domain.ParseTier(exportTier)
		if !ok {
			return fmt.Errorf("invalid tier %q: use preview or presentation", exportTier)
		}

		ctx := context.Background()
		sink, err := bootstrap.Sink(ctx, cfg, args[1])
		if err != nil {
			return err
		}

		export := commands.NewExportCommand(opener, notes, sink, args[0], exportNotes)
		export.Tier = tier
		export.Workers = exportWorkers
		result, err := export.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportNotes, "notes", "n", "", "notes file (default <name>_notes.txt next to the document)")
	exportCmd.Flags().StringVarP(&exportTier, "tier", "t", domain.TierPresentation.String(), "preview or presentation")
	exportCmd.Flags().IntVarP(&exportWorkers, "workers", "w", 0, "parallel renders (default: number of CPUs)")
	rootCmd.AddCommand(exportCmd)
}
