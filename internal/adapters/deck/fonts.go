package deck

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSet maps deck font names onto the Go fonts
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	mono    *truetype.Font
}

var defaultFonts = mustLoadFonts()

func mustLoadFonts() *fontSet {
	return &fontSet{
		regular: mustParse(goregular.TTF),
		bold:    mustParse(gobold.TTF),
		mono:    mustParse(gomono.TTF),
	}
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

func (s *fontSet) lookup(name string) *truetype.Font {
	switch name {
	case "mono", "code", "monospace":
		return s.mono
	case "bold", "sans-bold", "title":
		return s.bold
	default:
		return s.regular
	}
}

type faceKey struct {
	font string
	size int
}

// faceCache hands out font faces for one render. Faces are not safe for
// concurrent use, so each render owns its cache.
type faceCache struct {
	fonts *fontSet
	faces map[faceKey]font.Face
}

func newFaceCache(fonts *fontSet) *faceCache {
	return &faceCache{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

// face returns a face for the named font with its em box size px pixels tall
func (c *faceCache) face(name string, px float64) font.Face {
	key := faceKey{font: name, size: max(int(px+0.5), 1)}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(c.fonts.lookup(name), &truetype.Options{
		Size:    float64(key.size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = f
	return f
}
