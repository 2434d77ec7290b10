// Package compress encodes RGBA buffers as JPEG or PNG and searches for the
// JPEG quality that lands closest to a target file size.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	imgbuf "github.com/ironsheep/cutout-mcp/internal/imaging"
)

const (
	// MaxSearchIterations bounds the quality search in ToSize.
	MaxSearchIterations = 10

	// SizeTolerance is the relative distance from the target at which a
	// result counts as a hit, in either direction.
	SizeTolerance = 0.05

	MinQuality = 1
	MaxQuality = 100
)

var (
	// ErrUnsupportedFormat reports an output format with no encoder.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrInvalidQuality reports a quality outside [MinQuality, MaxQuality].
	ErrInvalidQuality = errors.New("quality must be between 1 and 100")
	// ErrNotLossy reports a size search requested for a lossless format.
	ErrNotLossy = errors.New("format has no quality setting to search")
	// ErrInvalidTarget reports a zero or negative target size.
	ErrInvalidTarget = errors.New("target size must be positive")
)

// Format is an output encoding.
type Format int

const (
	JPEG Format = iota
	PNG
)

// ParseFormat accepts "jpeg", "jpg" and "png". WebP is recognised but has
// no pure-Go encoder, so it is reported as unsupported.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) String() string {
	if f == PNG {
		return "png"
	}
	return "jpeg"
}

// MimeType returns the media type of the encoded output.
func (f Format) MimeType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/jpeg"
}

// Result is one encoded image.
type Result struct {
	Data    []byte `json:"-"`
	Size    int    `json:"size"`
	Quality int    `json:"quality"`
	Format  string `json:"format"`
}

// Encode compresses buf at the given quality (1-100). For PNG the quality
// only picks a zlib level: below 50 favours speed, 90 and above favours
// size.
func Encode(buf *imgbuf.Buffer, format Format, quality int) (*Result, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if quality < MinQuality || quality > MaxQuality {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}

	var (
		out bytes.Buffer
		err error
	)
	switch format {
	case JPEG:
		err = imaging.Encode(&out, buf.Image(), imaging.JPEG, imaging.JPEGQuality(quality))
	case PNG:
		err = imaging.Encode(&out, buf.Image(), imaging.PNG, imaging.PNGCompressionLevel(pngLevel(quality)))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}

	return &Result{Data: out.Bytes(), Size: out.Len(), Quality: quality, Format: format.String()}, nil
}

func pngLevel(quality int) png.CompressionLevel {
	switch {
	case quality < 50:
		return png.BestSpeed
	case quality < 90:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Searcher runs quality searches. The zero value is not usable; call
// NewSearcher.
type Searcher struct {
	log zerolog.Logger
}

// NewSearcher returns a Searcher that logs each probe at debug level.
func NewSearcher(log zerolog.Logger) *Searcher {
	return &Searcher{log: log.With().Str("component", "compress").Logger()}
}

// ToSize is shorthand for a Searcher that does not log.
func ToSize(buf *imgbuf.Buffer, targetBytes int, format Format) (*Result, error) {
	return NewSearcher(zerolog.Nop()).ToSize(buf, targetBytes, format)
}

// ToSize binary-searches the quality range for the best-looking encoding
// that fits targetBytes.
//
// Any probe at or under the target, or within SizeTolerance of it, is kept
// and the search moves to higher quality. Larger probes move it lower. At
// most MaxSearchIterations probes are made. If none qualified, the image is
// encoded at quality 1 and returned even though it exceeds the target.
func (s *Searcher) ToSize(buf *imgbuf.Buffer, targetBytes int, format Format) (*Result, error) {
	if format != JPEG {
		return nil, fmt.Errorf("%w: %s", ErrNotLossy, format)
	}
	if targetBytes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTarget, targetBytes)
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	lo, hi := MinQuality, MaxQuality
	var best *Result

	for i := 0; i < MaxSearchIterations; i++ {
		mid := (lo + hi) / 2
		res, err := Encode(buf, format, mid)
		if err != nil {
			return nil, err
		}

		diff := float64(res.Size - targetBytes)
		if diff < 0 {
			diff = -diff
		}
		fits := res.Size <= targetBytes || diff/float64(targetBytes) <= SizeTolerance

		s.log.Debug().
			Int("probe", i+1).
			Int("quality", mid).
			Int("size", res.Size).
			Int("target", targetBytes).
			Bool("fits", fits).
			Msg("quality probe")

		if fits {
			best = res
			lo = mid + 1
		} else {
			hi = mid - 1
		}
		if lo > hi {
			break
		}
	}

	if best == nil {
		return Encode(buf, format, MinQuality)
	}
	return best, nil
}
