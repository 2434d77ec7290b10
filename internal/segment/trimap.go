package segment

// Label is the trimap state of one pixel.
type Label uint8

const (
	Background         Label = 0 // definite background, never relabelled
	Foreground         Label = 1 // definite foreground, never relabelled
	ProbableBackground Label = 2
	ProbableForeground Label = 3
)

// Probable reports whether the label may change during refinement.
func (l Label) Probable() bool {
	return l == ProbableBackground || l == ProbableForeground
}

// backgroundClass reports whether a pixel contributes to the background
// sample set.
func (l Label) backgroundClass() bool {
	return l == Background || l == ProbableBackground
}

func (l Label) String() string {
	switch l {
	case Background:
		return "background"
	case Foreground:
		return "foreground"
	case ProbableBackground:
		return "probable-background"
	case ProbableForeground:
		return "probable-foreground"
	default:
		return "unknown"
	}
}

// hysteresis is the density ratio a class must exceed to claim a probable pixel.
const hysteresis = 2.0

// newTrimap labels pixels inside rect ProbableForeground and everything else
// Background. rect must already be validated against the image.
func newTrimap(width, height int, rect Rect) []Label {
	trimap := make([]Label, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rect.Contains(x, y) {
				trimap[y*width+x] = ProbableForeground
			}
		}
	}
	return trimap
}

// pixelColor reads the RGB channels of pixel idx from an RGBA buffer.
func pixelColor(pixels []byte, idx int) Color {
	o := idx * 4
	return Color{R: pixels[o], G: pixels[o+1], B: pixels[o+2]}
}

// collectSamples splits pixel colours into background and foreground sample
// sets according to the trimap.
func collectSamples(pixels []byte, trimap []Label) (bg, fg []Color) {
	for idx, l := range trimap {
		c := pixelColor(pixels, idx)
		if l.backgroundClass() {
			bg = append(bg, c)
		} else {
			fg = append(fg, c)
		}
	}
	return bg, fg
}

// reclassify relabels probable pixels whose colour one model explains more
// than twice as well as the other. Pixels inside the hysteresis band keep
// their label. It returns the number of labels that changed.
func reclassify(pixels []byte, trimap []Label, bgModel, fgModel *Model) int {
	changed := 0
	for idx, l := range trimap {
		if !l.Probable() {
			continue
		}
		c := pixelColor(pixels, idx)
		bgP := bgModel.Probability(c)
		fgP := fgModel.Probability(c)

		next := l
		if fgP > hysteresis*bgP {
			next = ProbableForeground
		} else if bgP > hysteresis*fgP {
			next = ProbableBackground
		}
		if next != l {
			trimap[idx] = next
			changed++
		}
	}
	return changed
}
