package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pdfsat/internal/adapters/filesystem"
	"pdfsat/internal/bootstrap"
	"pdfsat/internal/config"
	"pdfsat/internal/logging"
	"pdfsat/internal/ports"
)

var (
	cfg      config.Config
	logLevel string
	logger   *slog.Logger
	opener   ports.DocumentOpener
	notes    ports.NotesReader
)

var rootCmd = &cobra.Command{
	Use:   "pdfsat-cli",
	Short: "Inspect, render and export presentations",
	Long: `pdfsat-cli works with the documents and speaker notes pdfsat presents,
without opening the presenter console.

Supported documents are PDF (through poppler), decksh sources (.dsh) and
deck markup (.xml). Speaker notes live next to the document as
<name>_notes.txt.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if _, err := logging.ParseLevel(logLevel); err != nil {
			return err
		}
		logger = logging.New(logLevel, os.Stderr)
		opener = bootstrap.Documents(cfg, logger)
		notes = filesystem.NewNotesReader()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg = config.Load()
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
}
