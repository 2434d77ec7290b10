package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrMaskSize reports a mask shorter than the image it applies to.
var ErrMaskSize = errors.New("mask does not cover image")

// EncodedImage is an encoded image ready to be returned to a client.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// MaskImage wraps a one-byte-per-pixel mask as a grayscale image, sharing
// memory with mask. 255 renders white (selected), 0 black.
func MaskImage(mask []byte, width, height int) (*image.Gray, error) {
	n, err := pixelCount(width, height)
	if err != nil {
		return nil, err
	}
	if len(mask) < n {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrMaskSize, len(mask), n)
	}
	return &image.Gray{
		Pix:    mask[:n],
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// ApplyMask returns a copy of buf whose alpha channel is limited by mask:
// each pixel keeps min(alpha, mask). A binary foreground mask therefore
// cuts the subject out onto a transparent background.
func ApplyMask(buf *Buffer, mask []byte) (*Buffer, error) {
	n, err := ValidateRGBA(buf.Pix, buf.Width, buf.Height)
	if err != nil {
		return nil, err
	}
	if len(mask) < n {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrMaskSize, len(mask), n)
	}

	out := &Buffer{Pix: make([]byte, len(buf.Pix)), Width: buf.Width, Height: buf.Height}
	copy(out.Pix, buf.Pix)
	for i := 0; i < n; i++ {
		if a := &out.Pix[i*4+3]; mask[i] < *a {
			*a = mask[i]
		}
	}
	return out, nil
}

// EncodePNGBase64 encodes img as PNG and wraps it for transport.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
