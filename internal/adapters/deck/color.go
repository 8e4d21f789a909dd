package deck

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var defaultColor = color.NRGBA{R: 127, G: 127, B: 127, A: 255}

// opacity maps a deck opacity to an alpha in [0, 1]:
// 0 is opaque, negative is transparent, positive is a percentage.
func opacity(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 0:
		return min(v/100, 1)
	default:
		return 1
	}
}

// parseColor understands color names, #rgb, #rrggbb, rgb(r,g,b[,a]) and
// hsv(h,s,v). Unknown specs fall back to the default gray.
func parseColor(col string, op float64) color.NRGBA {
	c, ok := lookupColor(strings.ToLower(strings.TrimSpace(col)))
	if !ok {
		c = defaultColor
	}
	c.A = uint8(float64(c.A) * opacity(op))
	return c
}

func lookupColor(s string) (color.NRGBA, bool) {
	switch {
	case s == "":
		return color.NRGBA{}, false
	case s == "none" || s == "transparent":
		return color.NRGBA{}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(colorNumbers(s))
	case strings.HasPrefix(s, "hsv(") && strings.HasSuffix(s, ")"):
		v := colorNumbers(s)
		if len(v) != 3 {
			return color.NRGBA{}, false
		}
		h, _ := strconv.ParseFloat(v[0], 64)
		sat, _ := strconv.ParseFloat(v[1], 64)
		val, _ := strconv.ParseFloat(v[2], 64)
		r, g, b := hsv2rgb(h, sat, val)
		return color.NRGBA{R: r, G: g, B: b, A: 255}, true
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}
	return color.NRGBA{}, false
}

// colorNumbers returns the comma separated arguments of xxx(n1, n2, ...)
func colorNumbers(s string) []string {
	inner := s[strings.IndexByte(s, '(')+1 : len(s)-1]
	return strings.Split(strings.NewReplacer(" ", "", "\t", "").Replace(inner), ",")
}

func parseHex(h string) (color.NRGBA, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func parseRGB(v []string) (color.NRGBA, bool) {
	if len(v) != 3 && len(v) != 4 {
		return color.NRGBA{}, false
	}
	var rgb [3]uint8
	for i := range 3 {
		n, err := strconv.Atoi(v[i])
		if err != nil {
			return color.NRGBA{}, false
		}
		rgb[i] = uint8(min(max(n, 0), 255))
	}
	a := uint8(255)
	if len(v) == 4 {
		f, err := strconv.ParseFloat(v[3], 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		a = uint8(min(max(f, 0), 1) * 255)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: a}, true
}

// hsv2rgb converts hsv(h (0-360), s (0-100), v (0-100)) to rgb
func hsv2rgb(h, s, v float64) (uint8, uint8, uint8) {
	s /= 100
	v /= 100
	if s > 1 || v > 1 || s < 0 || v < 0 {
		return 0, 0, 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	section := h / 60
	x := c * (1 - math.Abs(math.Mod(section, 2)-1))

	var r, g, b float64
	switch {
	case section <= 1:
		r, g, b = c, x, 0
	case section <= 2:
		r, g, b = x, c, 0
	case section <= 3:
		r, g, b = 0, c, x
	case section <= 4:
		r, g, b = 0, x, c
	case section <= 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}
