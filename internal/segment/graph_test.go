package segment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int64
	}{
		{"zero", 0, 0},
		{"negative", -12.5, 0},
		{"nan", math.NaN(), 0},
		{"rounds down", 12.49, 12},
		{"rounds half up", 12.5, 13},
		{"saturates", 1e12, MaxCapacity},
		{"infinity saturates", math.Inf(1), MaxCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capacity(tt.in))
		})
	}
}

func TestTerminalCost_BoundedForUntrainedModel(t *testing.T) {
	cost := terminalCost(NewModel(), Color{1, 2, 3})
	assert.InDelta(t, -math.Log(2e-10), cost, 1e-9)
	assert.LessOrEqual(t, cost, MaxTerminalCost)
}

func TestNeighborCapacity(t *testing.T) {
	assert.Equal(t, int64(50), neighborCapacity(Color{9, 9, 9}, Color{9, 9, 9}))
	assert.Equal(t, int64(30), neighborCapacity(Color{0, 0, 0}, Color{1, 0, 0}), "50·e^-0.5 = 30.3")
	assert.Equal(t, int64(0), neighborCapacity(Color{255, 0, 0}, Color{0, 0, 255}))
}

// rgba builds a row-major RGBA buffer from colours.
func rgba(colors ...Color) []byte {
	buf := make([]byte, 0, len(colors)*4)
	for _, c := range colors {
		buf = append(buf, c.R, c.G, c.B, 255)
	}
	return buf
}

func TestBuildGraph_Structure(t *testing.T) {
	red := Color{255, 0, 0}
	pixels := rgba(red, red, red, red) // 2x2
	trimap := []Label{Background, Foreground, ProbableBackground, ProbableForeground}

	g := BuildGraph(pixels, 2, 2, trimap, NewModel(), NewModel())
	require.Equal(t, 6, g.Nodes())
	source, sink := 4, 5

	// Source sees one forward edge per pixel that is not definite foreground.
	var fromSource []int
	for _, e := range g.adj[source] {
		fromSource = append(fromSource, e.to)
	}
	assert.ElementsMatch(t, []int{0, 2, 3}, fromSource)

	// Sink sees the reverse edge of every pixel that is not definite background.
	var intoSink []int
	for _, e := range g.adj[sink] {
		intoSink = append(intoSink, e.to)
		assert.Equal(t, int64(0), e.cap, "reverse edges start empty")
	}
	assert.ElementsMatch(t, []int{1, 2, 3}, intoSink)

	// Pixel 0 has a source reverse edge plus right and bottom n-links, each
	// stored as a forward edge and the reverse of its mirror.
	assert.Len(t, g.adj[0], 1+2*2)
}

func TestBuildGraph_ReverseEdgesArePaired(t *testing.T) {
	pixels := rgba(
		Color{0, 0, 0}, Color{40, 40, 40}, Color{80, 80, 80},
		Color{120, 120, 120}, Color{160, 160, 160}, Color{200, 200, 200},
	)
	trimap := []Label{Background, ProbableForeground, Background, ProbableBackground, ProbableForeground, Foreground}
	g := BuildGraph(pixels, 3, 2, trimap, NewModel(), NewModel())

	for v, edges := range g.adj {
		for i, e := range edges {
			back := g.adj[e.to][e.rev]
			assert.Equal(t, v, back.to, "edge %d of node %d", i, v)
			assert.Equal(t, i, back.rev, "edge %d of node %d", i, v)
		}
	}
}
