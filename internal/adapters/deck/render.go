package deck

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	deckxml "github.com/ajstarks/deck"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

const (
	linespacing = 1.4
	listspacing = 2.0
)

// renderer draws one slide in pixel space. Deck coordinates are
// percentages of the canvas with y growing upwards.
type renderer struct {
	dc     *gg.Context
	cw, ch float64
	faces  *faceCache
	dir    string
}

func newRenderer(fonts *fontSet, dir string, cw, ch float64) *renderer {
	w, h := max(int(math.Round(cw)), 1), max(int(math.Round(ch)), 1)
	return &renderer{
		dc:    gg.NewContext(w, h),
		cw:    float64(w),
		ch:    float64(h),
		faces: newFaceCache(fonts),
		dir:   dir,
	}
}

// pct converts percentages to canvas measures
func pct(p, m float64) float64 {
	return (p / 100.0) * m
}

// dimen returns canvas coordinates and size from percentages
func (r *renderer) dimen(xp, yp, sp float64) (x, y, s float64) {
	return pct(xp, r.cw), pct(100-yp, r.ch), pct(sp, r.cw)
}

// slide draws every layer of s in the standard deck order
func (r *renderer) slide(s deckxml.Slide) image.Image {
	dc := r.dc
	dc.SetColor(color.White)
	dc.Clear()

	if s.Bg != "" {
		dc.SetColor(parseColor(s.Bg, 0))
		dc.Clear()
	}
	if s.Gradcolor1 != "" && s.Gradcolor2 != "" {
		grad := gg.NewLinearGradient(0, 0, 0, r.ch)
		grad.AddColorStop(0, parseColor(s.Gradcolor1, 0))
		grad.AddColorStop(1, parseColor(s.Gradcolor2, 0))
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, r.cw, r.ch)
		dc.Fill()
	}
	fg := s.Fg
	if fg == "" {
		fg = "black"
	}

	for _, im := range s.Image {
		r.image(im, fg)
	}
	for _, rect := range s.Rect {
		x, y, _ := r.dimen(rect.Xp, rect.Yp, 0)
		w, h := r.size(rect.Wp, rect.Hp, rect.Hr)
		dc.SetColor(parseColor(rect.Color, rect.Opacity))
		dc.DrawRectangle(x-w/2, y-h/2, w, h)
		dc.Fill()
	}
	for _, e := range s.Ellipse {
		x, y, _ := r.dimen(e.Xp, e.Yp, 0)
		w, h := r.size(e.Wp, e.Hp, e.Hr)
		dc.SetColor(parseColor(e.Color, e.Opacity))
		dc.DrawEllipse(x, y, w/2, h/2)
		dc.Fill()
	}
	for _, c := range s.Curve {
		x1, y1, sw := r.dimen(c.Xp1, c.Yp1, c.Sp)
		x2, y2, _ := r.dimen(c.Xp2, c.Yp2, 0)
		x3, y3, _ := r.dimen(c.Xp3, c.Yp3, 0)
		dc.NewSubPath()
		dc.MoveTo(x1, y1)
		dc.QuadraticTo(x2, y2, x3, y3)
		r.stroke(sw, c.Color, c.Opacity)
	}
	for _, a := range s.Arc {
		x, y, sw := r.dimen(a.Xp, a.Yp, a.Sp)
		w, h := pct(a.Wp, r.cw), pct(a.Hp, r.cw)
		dc.NewSubPath()
		dc.DrawEllipticalArc(x, y, w/2, h/2, gg.Radians(-a.A2), gg.Radians(-a.A1))
		r.stroke(sw, a.Color, a.Opacity)
	}
	for _, l := range s.Line {
		x1, y1, sw := r.dimen(l.Xp1, l.Yp1, l.Sp)
		x2, y2, _ := r.dimen(l.Xp2, l.Yp2, 0)
		dc.DrawLine(x1, y1, x2, y2)
		r.stroke(sw, l.Color, l.Opacity)
	}
	for _, p := range s.Polygon {
		r.polygon(p.XC, p.YC, p.Color, p.Opacity)
	}
	for _, t := range s.Text {
		r.text(t, fg)
	}
	for _, l := range s.List {
		r.list(l, fg)
	}
	return dc.Image()
}

// size resolves a width percentage and either a height percentage or a
// height ratio relative to the width
func (r *renderer) size(wp, hp, hr float64) (float64, float64) {
	w := pct(wp, r.cw)
	if hr != 0 {
		return w, pct(hr, w)
	}
	return w, pct(hp, r.ch)
}

func (r *renderer) stroke(sw float64, col string, op float64) {
	if sw == 0 {
		sw = pct(0.2, r.cw)
	}
	r.dc.SetLineWidth(sw)
	r.dc.SetColor(parseColor(col, op))
	r.dc.Stroke()
}

func (r *renderer) polygon(xc, yc, col string, op float64) {
	xs := strings.Fields(xc)
	ys := strings.Fields(yc)
	if len(xs) != len(ys) || len(xs) < 3 {
		return
	}
	r.dc.NewSubPath()
	for i := range xs {
		xp, _ := strconv.ParseFloat(xs[i], 64)
		yp, _ := strconv.ParseFloat(ys[i], 64)
		x, y, _ := r.dimen(xp, yp, 0)
		r.dc.LineTo(x, y)
	}
	r.dc.ClosePath()
	r.dc.SetColor(parseColor(col, op))
	r.dc.Fill()
}

// anchor maps deck alignment to a horizontal anchor and gg alignment
func anchor(align string) (float64, gg.Align) {
	switch align {
	case "center", "middle", "mid", "c":
		return 0.5, gg.AlignCenter
	case "right", "end", "e":
		return 1, gg.AlignRight
	default:
		return 0, gg.AlignLeft
	}
}

func (r *renderer) text(t deckxml.Text, fg string) {
	dc := r.dc
	x, y, fs := r.dimen(t.Xp, t.Yp, t.Sp)
	if fs <= 0 {
		return
	}
	font := t.Font
	if t.Type == "code" {
		font = "mono"
	}
	col := t.Color
	if col == "" {
		col = fg
	}
	lp := t.Lp
	if lp == 0 {
		lp = linespacing
	}
	data := t.Tdata
	if t.File != "" {
		data = readTextFile(r.dir, t.File, data)
	}
	lines := strings.Split(strings.Trim(data, "\n"), "\n")

	dc.Push()
	defer dc.Pop()
	if t.Rotation != 0 {
		dc.RotateAbout(gg.Radians(-t.Rotation), x, y)
	}
	dc.SetFontFace(r.faces.face(font, fs))

	ax, align := anchor(t.Align)
	switch t.Type {
	case "block":
		width := r.cw / 2
		if t.Wp > 0 {
			width = pct(t.Wp, r.cw)
		}
		dc.SetColor(parseColor(col, t.Opacity))
		dc.DrawStringWrapped(strings.Join(lines, " "), x, y, ax, 1, width, lp, align)
	case "code":
		dc.SetColor(color.NRGBA{R: 240, G: 240, B: 240, A: 255})
		dc.DrawRectangle(x-fs, y-fs*1.5, r.cw-x-pct(2, r.cw)+fs, float64(len(lines))*fs*lp+fs)
		dc.Fill()
		fallthrough
	default:
		dc.SetColor(parseColor(col, t.Opacity))
		for _, line := range lines {
			dc.DrawStringAnchored(line, x, y, ax, 0)
			y += fs * lp
		}
	}
}

func (r *renderer) list(l deckxml.List, fg string) {
	dc := r.dc
	x, y, fs := r.dimen(l.Xp, l.Yp, l.Sp)
	if fs <= 0 {
		return
	}
	col := l.Color
	if col == "" {
		col = fg
	}
	lp := l.Lp
	if lp == 0 {
		lp = listspacing
	}

	dc.Push()
	defer dc.Pop()
	if l.Rotation != 0 {
		dc.RotateAbout(gg.Radians(-l.Rotation), x, y)
	}
	if l.Type == "bullet" {
		x += fs
	}
	ax, _ := anchor(l.Align)
	for i, item := range l.Li {
		text := item.ListText
		if l.Type == "number" {
			text = fmt.Sprintf("%d. %s", i+1, text)
		}
		itemCol := col
		if item.Color != "" {
			itemCol = item.Color
		}
		font := l.Font
		if item.Font != "" {
			font = item.Font
		}
		c := parseColor(itemCol, l.Opacity)
		if item.Opacity != 0 {
			c = parseColor(itemCol, item.Opacity)
		}
		if l.Type == "bullet" {
			dc.SetColor(c)
			dc.DrawCircle(x-fs, y-fs/3, fs/4)
			dc.Fill()
		}
		dc.SetFontFace(r.faces.face(font, fs))
		dc.SetColor(c)
		dc.DrawStringAnchored(text, x, y, ax, 0)
		y += fs * lp
	}
}

// image places a picture centered on its position, scaled like the deck
// renderers do, with an optional caption underneath
func (r *renderer) image(im deckxml.Image, fg string) {
	x, y, _ := r.dimen(im.Xp, im.Yp, 0)
	src, err := gg.LoadImage(r.resolve(im.Name))
	if err != nil {
		return
	}
	iw, ih := float64(im.Width), float64(im.Height)
	if iw == 0 || ih == 0 {
		b := src.Bounds()
		iw, ih = float64(b.Dx()), float64(b.Dy())
	}
	if im.Scale > 0 {
		iw *= im.Scale / 100
		ih *= im.Scale / 100
	}
	if im.Autoscale == "on" && iw < r.cw {
		ih = (r.cw / iw) * ih
		iw = r.cw
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(int(iw), 1), max(int(ih), 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	r.dc.DrawImageAnchored(dst, int(x), int(y), 0.5, 0.5)

	if im.Caption != "" {
		size := pct(2, r.cw)
		if im.Sp > 0 {
			size = pct(im.Sp, r.cw)
		}
		col := im.Color
		if col == "" {
			col = fg
		}
		ax, _ := anchor(im.Align)
		if im.Align == "" {
			ax = 0.5
		}
		r.dc.SetFontFace(r.faces.face(im.Font, size))
		r.dc.SetColor(parseColor(col, 0))
		r.dc.DrawStringAnchored(im.Caption, x, y+ih/2+size*2, ax, 0)
	}
}

func (r *renderer) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, name)
}
