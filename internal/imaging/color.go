package imaging

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor is RGBColor plus straight alpha (0 transparent, 255 opaque).
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // "#RRGGBB", alpha excluded
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor reads the pixel at (x, y).
//
// Coordinates are 0-based with origin at top-left. The buffer holds
// straight alpha, so RGB values are reported as stored even for
// transparent pixels.
func SampleColor(buf *Buffer, x, y int) (*ColorResult, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if x < 0 || x >= buf.Width || y < 0 || y >= buf.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, buf.Width, buf.Height)
	}

	o := buf.Offset(x, y)
	r, g, b, a := buf.Pix[o], buf.Pix[o+1], buf.Pix[o+2], buf.Pix[o+3]
	c := toColorful(r, g, b)

	return &ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGB:  RGBColor{R: r, G: g, B: b},
		RGBA: RGBAColor{R: r, G: g, B: b, A: a},
		HSL:  hsl(c),
	}, nil
}

// ParseHexColor parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func ParseHexColor(s string) (RGBColor, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !isHexDigits(digits) || (len(digits) != 3 && len(digits) != 6) {
		return RGBColor{}, fmt.Errorf("invalid hex color %q: want 3 or 6 hex digits", s)
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

// isHexDigits reports whether s holds only hexadecimal digits.
func isHexDigits(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func hsl(c colorful.Color) HSLColor {
	h, s, l := c.Hsl()
	hue := int(math.Round(h)) % 360
	return HSLColor{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
