package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pdfsat/internal/bootstrap"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear the remembered session",
	Long: `pdfsat remembers the last document, its notes and the slide it was
left on, in SQLite or in Redis when PDFSAT_REDIS_URL is set.

Examples:
  pdfsat-cli session show
  pdfsat-cli session clear`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the remembered session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, err := bootstrap.SessionStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		state, err := store.Load(ctx)
		if err != nil {
			return err
		}
		if state.IsZero() {
			fmt.Println("No session stored")
			return nil
		}

		fmt.Printf("file:      %s\n", state.LastFile)
		fmt.Printf("directory: %s\n", state.LastDirectory)
		if state.LastNotes != "" {
			fmt.Printf("notes:     %s\n", state.LastNotes)
		}
		fmt.Printf("slide:     %d\n", state.LastSlide+1)
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the remembered session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, err := bootstrap.SessionStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Session cleared")
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd, sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}
