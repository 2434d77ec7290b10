package selection

import "fmt"

// WandOptions configures MagicWand.
type WandOptions struct {
	Tolerance float64

	// Connected restricts the selection to the 4-connected region around
	// the seed. When false every matching pixel in the image is selected.
	Connected bool

	Metric Metric
}

// MagicWand selects pixels whose colour is within Tolerance of the seed
// pixel. mask must hold at least width*height bytes; its first
// width*height bytes are cleared and selected pixels set to 255. It returns
// the number of selected pixels.
func MagicWand(pixels []byte, width, height, seedX, seedY int, opts WandOptions, mask []byte) (int, error) {
	n, err := validate(pixels, width, height)
	if err != nil {
		return 0, err
	}
	if len(mask) < n {
		return 0, fmt.Errorf("%w: got %d bytes, need %d", ErrOutputTooSmall, len(mask), n)
	}
	if seedX < 0 || seedX >= width || seedY < 0 || seedY >= height {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d image", ErrSeedOutOfBounds, seedX, seedY, width, height)
	}

	clear(mask[:n])

	s := (seedY*width + seedX) * 4
	m := newMatcher(opts.Metric, Color{pixels[s], pixels[s+1], pixels[s+2]}, opts.Tolerance)

	if opts.Connected {
		return floodConnected(pixels, width, height, seedY*width+seedX, m, mask), nil
	}
	return floodGlobal(pixels, n, m, mask), nil
}

// floodConnected grows the selection from seed with an explicit stack so
// large regions cannot exhaust the goroutine stack.
func floodConnected(pixels []byte, width, height, seed int, m *matcher, mask []byte) int {
	selected := 0
	visited := make([]bool, width*height)
	stack := []int{seed}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			continue
		}
		visited[idx] = true

		o := idx * 4
		if !m.match(pixels[o], pixels[o+1], pixels[o+2]) {
			continue
		}
		mask[idx] = 255
		selected++

		x, y := idx%width, idx/width
		if x > 0 {
			stack = append(stack, idx-1)
		}
		if x < width-1 {
			stack = append(stack, idx+1)
		}
		if y > 0 {
			stack = append(stack, idx-width)
		}
		if y < height-1 {
			stack = append(stack, idx+width)
		}
	}
	return selected
}

func floodGlobal(pixels []byte, n int, m *matcher, mask []byte) int {
	selected := 0
	for idx := 0; idx < n; idx++ {
		o := idx * 4
		if m.match(pixels[o], pixels[o+1], pixels[o+2]) {
			mask[idx] = 255
			selected++
		}
	}
	return selected
}
