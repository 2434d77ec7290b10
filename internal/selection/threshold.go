package selection

import "fmt"

const (
	maxFeather       = 50
	maxFeatherRadius = 5
)

// ThresholdOptions configures RemoveColor.
type ThresholdOptions struct {
	// Tolerance is the largest distance, in Metric units, at which a pixel
	// still counts as the target colour.
	Tolerance float64

	// Feather softens the cut edge. Zero disables it. Values above 50 are
	// treated as 50 and the neighbourhood radius never exceeds 5.
	Feather int

	Metric Metric
}

// RemoveColor copies pixels into out and makes every pixel within
// Tolerance of target fully transparent. It returns the number of bytes
// written (width*height*4).
//
// With feathering enabled, each transparent pixel then takes an alpha
// proportional to the share of its (2r+1)² neighbourhood that is still
// opaque. The scan runs in place in row-major order, so a pixel sees the
// feathered alpha of neighbours above and to its left.
func RemoveColor(pixels []byte, width, height int, target Color, opts ThresholdOptions, out []byte) (int, error) {
	n, err := validate(pixels, width, height)
	if err != nil {
		return 0, err
	}
	size := n * 4
	if len(out) < size {
		return 0, fmt.Errorf("%w: got %d bytes, need %d", ErrOutputTooSmall, len(out), size)
	}

	copy(out[:size], pixels)

	m := newMatcher(opts.Metric, target, opts.Tolerance)
	for i := 0; i < size; i += 4 {
		if m.match(pixels[i], pixels[i+1], pixels[i+2]) {
			out[i+3] = 0
		}
	}

	if opts.Feather > 0 {
		feather(out[:size], width, height, opts.Feather)
	}

	return size, nil
}

func feather(data []byte, width, height, amount int) {
	radius := min(min(amount, maxFeather), maxFeatherRadius)
	window := float64((2*radius + 1) * (2*radius + 1))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 4
			if data[idx+3] != 0 {
				continue
			}

			opaque := 0
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= height {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if (dx == 0 && dy == 0) || nx < 0 || nx >= width {
						continue
					}
					if data[(ny*width+nx)*4+3] > 0 {
						opaque++
					}
				}
			}

			if opaque > 0 {
				data[idx+3] = uint8(float64(opaque) / window * 255)
			}
		}
	}
}
