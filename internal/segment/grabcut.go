package segment

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

const (
	// MaxIterations caps the number of refinement rounds.
	MaxIterations = 5

	maskForeground = 255
	maskBackground = 0
)

var (
	// ErrInvalidDimensions reports an empty buffer or a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid input dimensions")
	// ErrBufferMismatch reports a pixel buffer whose length is not width*height*4.
	ErrBufferMismatch = errors.New("buffer length mismatch")
	// ErrMaskTooSmall reports a mask shorter than width*height.
	ErrMaskTooSmall = errors.New("mask buffer too small")
	// ErrInvalidRect reports an empty rectangle or one not inside the image.
	ErrInvalidRect = errors.New("invalid rectangle")
)

// Rect is the seed rectangle in pixel coordinates. (X, Y) is the top-left
// corner (inclusive); the rectangle spans Width columns and Height rows.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Result summarises a completed segmentation.
type Result struct {
	ForegroundPixels int   `json:"foreground_pixels"`
	Iterations       int   `json:"iterations"`
	Flow             int64 `json:"flow"`
}

// Segmenter runs GrabCut segmentations. It holds only configuration, so one
// Segmenter may serve concurrent calls.
type Segmenter struct {
	log zerolog.Logger
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithLogger routes debug output of every segmentation to log.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Segmenter) {
		s.log = log.With().Str("component", "segment").Logger()
	}
}

// New creates a Segmenter. Without options it logs nothing.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment is shorthand for New().Segment.
func Segment(pixels []byte, width, height int, rect Rect, iterations int, mask []byte) (*Result, error) {
	return New().Segment(pixels, width, height, rect, iterations, mask)
}

// Segment separates the subject inside rect from the background.
//
// Parameters:
//   - pixels: straight RGBA bytes, row-major, exactly width*height*4 long.
//   - width, height: image size in pixels, both positive.
//   - rect: seed rectangle, non-empty and fully inside the image.
//   - iterations: refinement rounds, clamped to [1, MaxIterations].
//   - mask: output, at least width*height bytes. On success the first
//     width*height bytes are 255 (foreground) or 0 (background).
//
// Invalid arguments are rejected before mask is touched.
func (s *Segmenter) Segment(pixels []byte, width, height int, rect Rect, iterations int, mask []byte) (*Result, error) {
	n, err := validate(pixels, width, height, rect, mask)
	if err != nil {
		return nil, err
	}
	rounds := clampIterations(iterations)

	trimap := newTrimap(width, height, rect)
	bgModel, fgModel := NewModel(), NewModel()

	bgSamples, fgSamples := collectSamples(pixels, trimap)
	bgModel.Train(bgSamples)
	fgModel.Train(fgSamples)
	s.log.Debug().
		Int("background_samples", len(bgSamples)).
		Int("foreground_samples", len(fgSamples)).
		Msg("initial models trained")

	for round := 0; round < rounds; round++ {
		changed := reclassify(pixels, trimap, bgModel, fgModel)
		bgSamples, fgSamples = collectSamples(pixels, trimap)
		bgModel.Train(bgSamples)
		fgModel.Train(fgSamples)
		s.log.Debug().
			Int("round", round+1).
			Int("relabelled", changed).
			Int("background_samples", len(bgSamples)).
			Int("foreground_samples", len(fgSamples)).
			Msg("refinement round")
	}

	g := BuildGraph(pixels, width, height, trimap, bgModel, fgModel)
	source, sink := n, n+1
	flow := g.MaxFlow(source, sink)
	backgroundSide := g.SourceSide(source)

	foreground := 0
	for idx := 0; idx < n; idx++ {
		if backgroundSide[idx] {
			mask[idx] = maskBackground
			continue
		}
		mask[idx] = maskForeground
		foreground++
	}

	s.log.Debug().
		Int64("flow", flow).
		Int("foreground_pixels", foreground).
		Int("pixels", n).
		Msg("min-cut solved")

	return &Result{ForegroundPixels: foreground, Iterations: rounds, Flow: flow}, nil
}

// clampIterations bounds the requested round count to [1, MaxIterations].
func clampIterations(iterations int) int {
	if iterations < 1 {
		return 1
	}
	if iterations > MaxIterations {
		return MaxIterations
	}
	return iterations
}

// validate checks every input contract and returns the pixel count.
func validate(pixels []byte, width, height int, rect Rect, mask []byte) (int, error) {
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
	if len(mask) < n {
		return 0, fmt.Errorf("%w: got %d bytes, need %d", ErrMaskTooSmall, len(mask), n)
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return 0, fmt.Errorf("%w: empty rectangle %dx%d", ErrInvalidRect, rect.Width, rect.Height)
	}
	if rect.X < 0 || rect.Y < 0 || rect.X > width-rect.Width || rect.Y > height-rect.Height {
		return 0, fmt.Errorf("%w: (%d,%d) %dx%d outside %dx%d image",
			ErrInvalidRect, rect.X, rect.Y, rect.Width, rect.Height, width, height)
	}
	return n, nil
}
