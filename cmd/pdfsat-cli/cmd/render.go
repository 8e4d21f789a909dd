package cmd

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pdfsat/internal/application/commands"
	"pdfsat/internal/domain"
)

var (
	renderOutput string
	renderTier   string
)

var renderCmd = &cobra.Command{
	Use:   "render <document> <slide>",
	Short: "Render one slide to a PNG file",
	Long: `Render a single 1-based slide at preview (150 dpi) or presentation
(300 dpi) quality.

Examples:
  pdfsat-cli render talk.pdf 3
  pdfsat-cli render slides.dsh 1 --tier preview -o cover.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slide, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid slide number %q", args[1])
		}
		tier, ok := domain.ParseTier(renderTier)
		if !ok {
			return fmt.Errorf("invalid tier %q: use preview or presentation", renderTier)
		}

		ctx := context.Background()
		img, err := commands.NewRenderCommand(opener, args[0], slide-1, tier).Execute(ctx)
		if err != nil {
			return err
		}

		out := renderOutput
		if out == "" {
			stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			out = fmt.Sprintf("%s-%s", stem, commands.SlideFileName(slide-1))
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		b := img.Bounds()
		fmt.Printf("Wrote %s (%dx%d)\n", out, b.Dx(), b.Dy())
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default <name>-slide-NNN.png)")
	renderCmd.Flags().StringVarP(&renderTier, "tier", "t", domain.TierPresentation.String(), "preview or presentation")
	rootCmd.AddCommand(renderCmd)
}
