package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidDimensions reports a non-positive width or height, or a pixel
	// count that overflows.
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrBufferMismatch reports an RGBA buffer whose length is not width*height*4.
	ErrBufferMismatch = errors.New("buffer length mismatch")
)

// Buffer is an image held as straight (non-premultiplied) RGBA bytes.
//
// Pixels are stored row-major with no padding: pixel (x, y) starts at
// Pix[(y*Width+x)*4]. This is the layout the segmentation and selection
// packages operate on.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
}

// NewBuffer allocates a zeroed (fully transparent black) buffer.
func NewBuffer(width, height int) (*Buffer, error) {
	n, err := pixelCount(width, height)
	if err != nil {
		return nil, err
	}
	return &Buffer{Pix: make([]byte, n*4), Width: width, Height: height}, nil
}

// FromImage converts any decoded image into a Buffer. The bounds origin is
// moved to (0,0) and the pixel data is always a fresh copy.
func FromImage(img image.Image) *Buffer {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return &Buffer{Pix: nrgba.Pix, Width: b.Dx(), Height: b.Dy()}
}

// Image wraps the buffer as an *image.NRGBA. The returned image shares
// memory with b.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Validate checks that the buffer length matches its dimensions.
func (b *Buffer) Validate() error {
	_, err := ValidateRGBA(b.Pix, b.Width, b.Height)
	return err
}

// Offset returns the index of the first byte of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// ValidateRGBA checks that pix holds exactly width*height RGBA pixels and
// returns the pixel count.
func ValidateRGBA(pix []byte, width, height int) (int, error) {
	if len(pix) == 0 {
		return 0, fmt.Errorf("%w: empty buffer", ErrInvalidDimensions)
	}
	n, err := pixelCount(width, height)
	if err != nil {
		return 0, err
	}
	if len(pix) != n*4 {
		return 0, fmt.Errorf("%w: got %d bytes, want %d for %dx%d RGBA",
			ErrBufferMismatch, len(pix), n*4, width, height)
	}
	return n, nil
}

func pixelCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt32 || height > math.MaxInt32/width || width*height > math.MaxInt/4 {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, width, height)
	}
	return width * height, nil
}
