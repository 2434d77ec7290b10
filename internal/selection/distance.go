// Package selection implements colour-based background removal and the
// magic wand selection tool on straight-alpha RGBA buffers.
//
// Both operations compare pixel colours against a reference colour with a
// configurable Metric. MetricRGB is plain Euclidean distance over 0-255
// channels; MetricLab is the CIE76 colour difference, which tracks
// perceived difference more closely for saturated colours.
package selection

import (
	"errors"
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidDimensions reports an empty buffer or a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid input dimensions")
	// ErrBufferMismatch reports a pixel buffer whose length is not width*height*4.
	ErrBufferMismatch = errors.New("buffer length mismatch")
	// ErrOutputTooSmall reports an output or mask buffer too short for the image.
	ErrOutputTooSmall = errors.New("output buffer too small")
	// ErrSeedOutOfBounds reports a magic wand seed outside the image.
	ErrSeedOutOfBounds = errors.New("seed coordinates out of bounds")
)

// Color is an 8-bit RGB colour; alpha is never compared.
type Color struct {
	R, G, B uint8
}

// Metric measures the difference between two colours.
type Metric int

const (
	// MetricRGB is Euclidean distance in 0-255 RGB space (max ≈ 441.7).
	MetricRGB Metric = iota
	// MetricLab is CIE76 ΔE in L*a*b* space on the conventional 0-100 L*
	// scale.
	MetricLab
)

// ParseMetric accepts "rgb" and "lab". The empty string selects MetricRGB.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb":
		return MetricRGB, nil
	case "lab":
		return MetricLab, nil
	default:
		return 0, fmt.Errorf("unknown colour metric %q (want rgb or lab)", s)
	}
}

func (m Metric) String() string {
	if m == MetricLab {
		return "lab"
	}
	return "rgb"
}

// matcher reports whether colours fall within tolerance of a fixed target.
// The Lab conversion of the target is done once.
type matcher struct {
	metric    Metric
	target    Color
	targetLab colorful.Color
	tolerance float64
}

func newMatcher(m Metric, target Color, tolerance float64) *matcher {
	return &matcher{
		metric:    m,
		target:    target,
		targetLab: toColorful(target),
		tolerance: tolerance,
	}
}

func (mt *matcher) match(r, g, b uint8) bool {
	return mt.distance(Color{r, g, b}) <= mt.tolerance
}

func (mt *matcher) distance(c Color) float64 {
	if mt.metric == MetricLab {
		return toColorful(c).DistanceLab(mt.targetLab) * 100
	}
	dr := float64(c.R) - float64(mt.target.R)
	dg := float64(c.G) - float64(mt.target.G)
	db := float64(c.B) - float64(mt.target.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// validate checks an RGBA input buffer and returns its pixel count.
func validate(pixels []byte, width, height int) (int, error) {
	if len(pixels) == 0 || width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d image with %d bytes", ErrInvalidDimensions, width, height, len(pixels))
	}
	if width > math.MaxInt32 || height > math.MaxInt32/width {
		return 0, fmt.Errorf("%w: %dx%d overflows pixel count", ErrInvalidDimensions, width, height)
	}
	n := width * height
	if n > math.MaxInt/4 || len(pixels) != n*4 {
		return 0, fmt.Errorf("%w: got %d bytes, want %d for %dx%d RGBA", ErrBufferMismatch, len(pixels), n*4, width, height)
	}
	return n, nil
}
