package segment

import "math"

const (
	// CapacityScale (K) converts energy terms into integer capacities.
	CapacityScale = 50.0

	// Smoothness (β) controls how fast the n-link penalty decays with colour
	// distance between neighbours.
	Smoothness = 0.5

	// MaxTerminalCost bounds a t-link cost before it is scaled by K.
	MaxTerminalCost = 1e6

	// MaxCapacity is the largest capacity any edge can carry.
	MaxCapacity = math.MaxInt32

	// costEpsilon keeps the negative log-likelihood finite.
	costEpsilon = 1e-10
)

// capacity converts a non-negative energy into an edge capacity.
//
// NaN and non-positive values map to 0. Everything else is rounded half away
// from zero and saturates at MaxCapacity, so the conversion never depends on
// float-to-int truncation or overflow behaviour.
func capacity(x float64) int64 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	r := math.Round(x)
	if r >= MaxCapacity {
		return MaxCapacity
	}
	return int64(r)
}

// terminalCost is the negative log-likelihood of c under m, clamped to
// MaxTerminalCost.
func terminalCost(m *Model, c Color) float64 {
	return math.Min(-math.Log(m.Probability(c)+costEpsilon), MaxTerminalCost)
}

// neighborCapacity is the n-link capacity between two pixel colours:
// K · exp(-β · ‖a − b‖).
func neighborCapacity(a, b Color) int64 {
	return capacity(CapacityScale * math.Exp(-Smoothness*math.Sqrt(squaredDistance(a.vec(), b.vec()))))
}

// BuildGraph constructs the s-t graph for one segmentation.
//
// Node i < len(trimap) is pixel i in row-major order; node len(trimap) is the
// source (background terminal) and node len(trimap)+1 the sink (foreground
// terminal).
//
// t-links:
//   - Background pixels: source -> pixel with capacity K·fgCost only.
//   - Foreground pixels: pixel -> sink with capacity K·bgCost only.
//   - Probable pixels: both edges, leaving the decision to the cut.
//
// n-links join each pixel to its right and bottom neighbours, so every
// undirected 4-neighbour pair is visited once and stored as two directed
// edges of equal capacity.
func BuildGraph(pixels []byte, width, height int, trimap []Label, bgModel, fgModel *Model) *Graph {
	n := width * height
	source, sink := n, n+1
	g := NewGraph(n + 2)

	for idx, l := range trimap {
		c := pixelColor(pixels, idx)
		fgCap := capacity(CapacityScale * terminalCost(fgModel, c))
		bgCap := capacity(CapacityScale * terminalCost(bgModel, c))

		switch l {
		case Background:
			g.AddEdge(source, idx, fgCap)
		case Foreground:
			g.AddEdge(idx, sink, bgCap)
		case ProbableBackground, ProbableForeground:
			g.AddEdge(source, idx, fgCap)
			g.AddEdge(idx, sink, bgCap)
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			c := pixelColor(pixels, idx)
			if x+1 < width {
				right := idx + 1
				w := neighborCapacity(c, pixelColor(pixels, right))
				g.AddEdge(idx, right, w)
				g.AddEdge(right, idx, w)
			}
			if y+1 < height {
				below := idx + width
				w := neighborCapacity(c, pixelColor(pixels, below))
				g.AddEdge(idx, below, w)
				g.AddEdge(below, idx, w)
			}
		}
	}
	return g
}
