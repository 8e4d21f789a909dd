package views

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"pdfsat/internal/adapters/tui/styles"
)

const halfBlock = "▀"

// Thumbnail draws img into a cols x rows block of terminal cells. Each cell
// holds two vertically stacked pixels: the upper one as the foreground of a
// half block, the lower one as its background. The image keeps its aspect
// ratio and is centred in the block.
func Thumbnail(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return lipgloss.Place(max(cols, 0), max(rows, 0), lipgloss.Center, lipgloss.Center, "")
	}

	b := img.Bounds()
	if b.Empty() {
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, "")
	}
	w, h := fitInside(b.Dx(), b.Dy(), cols, rows*2)

	dst := image.NewRGBA(image.Rect(0, 0, w, h+h%2))
	draw.ApproxBiLinear.Scale(dst, image.Rect(0, 0, w, h), img, b, draw.Src, nil)
	if h%2 == 1 {
		// pad the odd row so the last half block has a black bottom
		draw.Draw(dst, image.Rect(0, h, w, h+1), image.NewUniform(color.Black), image.Point{}, draw.Src)
	}

	var sb strings.Builder
	for y := 0; y < dst.Bounds().Dy(); y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range w {
			cell := lipgloss.NewStyle().
				Foreground(hex(dst.RGBAAt(x, y))).
				Background(hex(dst.RGBAAt(x, y+1)))
			sb.WriteString(cell.Render(halfBlock))
		}
	}
	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, sb.String())
}

// EndOfShow fills a cols x rows block with the end-of-presentation marker
func EndOfShow(cols, rows int) string {
	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
		styles.EndSentinel.Render("End of presentation"))
}

// fitInside scales w x h down or up to fit a maxW x maxH box, never
// returning a zero dimension
func fitInside(w, h, maxW, maxH int) (int, int) {
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}
	return max(w*maxH/h, 1), maxH
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
