package imaging

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidRegion reports an empty or out-of-bounds crop rectangle.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidAngle reports a rotation that is not a multiple of 90 degrees.
	ErrInvalidAngle = errors.New("rotation must be 0, 90, 180 or 270 degrees")
)

// Rect is a rectangle in pixel coordinates. (X, Y) is the inclusive
// top-left corner.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Crop copies the region r out of buf.
//
// Unlike the lower-level buffer routines, a zero-sized rectangle is an
// error here: there is no meaningful image to return.
func Crop(buf *Buffer, r Rect) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("%w: empty crop %dx%d", ErrInvalidRegion, r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 || r.X > buf.Width-r.Width || r.Y > buf.Height-r.Height {
		return nil, fmt.Errorf("%w: crop (%d,%d) %dx%d outside %dx%d image",
			ErrInvalidRegion, r.X, r.Y, r.Width, r.Height, buf.Width, buf.Height)
	}

	cropped := imaging.Crop(buf.Image(), image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height))
	return FromImage(cropped), nil
}

// Rotate turns buf clockwise by degrees, which must be 0, 90, 180 or 270.
// Quarter turns swap the output width and height.
func Rotate(buf *Buffer, degrees int) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	src := buf.Image()
	switch degrees {
	case 0:
		return FromImage(src), nil
	case 90:
		// imaging rotates counter-clockwise
		return FromImage(imaging.Rotate270(src)), nil
	case 180:
		return FromImage(imaging.Rotate180(src)), nil
	case 270:
		return FromImage(imaging.Rotate90(src)), nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAngle, degrees)
	}
}

// FlipDirection selects the mirror axis for Flip.
type FlipDirection int

const (
	// Horizontal mirrors left to right.
	Horizontal FlipDirection = iota
	// Vertical mirrors top to bottom.
	Vertical
)

// ParseFlipDirection accepts "horizontal"/"h" and "vertical"/"v".
func ParseFlipDirection(s string) (FlipDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("unknown flip direction %q (want horizontal or vertical)", s)
	}
}

// Flip mirrors buf along the given axis.
func Flip(buf *Buffer, dir FlipDirection) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	switch dir {
	case Horizontal:
		return FromImage(transform.FlipH(buf.Image())), nil
	case Vertical:
		return FromImage(transform.FlipV(buf.Image())), nil
	default:
		return nil, fmt.Errorf("unknown flip direction %d", dir)
	}
}

// ResizeQuality trades speed for smoothness when scaling.
type ResizeQuality int

const (
	QualityLow     ResizeQuality = iota // nearest neighbour
	QualityMedium                       // bilinear
	QualityHigh                         // Catmull-Rom
	QualityMaximum                      // Lanczos
)

// ParseResizeQuality maps "low", "medium", "high" and "maximum" to a
// ResizeQuality. The empty string selects QualityHigh.
func ParseResizeQuality(s string) (ResizeQuality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "", "high":
		return QualityHigh, nil
	case "maximum", "max":
		return QualityMaximum, nil
	default:
		return 0, fmt.Errorf("unknown resize quality %q", s)
	}
}

func (q ResizeQuality) filter() imaging.ResampleFilter {
	switch q {
	case QualityLow:
		return imaging.NearestNeighbor
	case QualityMedium:
		return imaging.Linear
	case QualityMaximum:
		return imaging.Lanczos
	default:
		return imaging.CatmullRom
	}
}

// Resize scales buf to exactly width x height.
func Resize(buf *Buffer, width, height int, quality ResizeQuality) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if _, err := pixelCount(width, height); err != nil {
		return nil, fmt.Errorf("invalid resize target: %w", err)
	}

	resized := imaging.Resize(buf.Image(), width, height, quality.filter())
	return FromImage(resized), nil
}
