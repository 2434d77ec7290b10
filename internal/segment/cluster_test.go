package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedCentroids_FarthestPoint(t *testing.T) {
	samples := []Color{
		{10, 10, 10},    // first sample is always the first centroid
		{20, 10, 10},    // close to the first
		{250, 250, 250}, // farthest from the first
		{250, 10, 10},
		{10, 250, 10},
		{10, 10, 250},
	}

	got := seedCentroids(samples)
	want := [Components][3]float64{
		{10, 10, 10},
		{250, 250, 250},
		{250, 10, 10},
		{10, 250, 10},
		{10, 10, 250},
	}
	assert.Equal(t, want, got)
}

func TestSeedCentroids_TiesGoToFirstSample(t *testing.T) {
	samples := []Color{
		{0, 0, 0},
		{100, 0, 0},
		{0, 100, 0}, // same distance from black as the red sample
	}

	got := seedCentroids(samples)
	assert.Equal(t, [3]float64{100, 0, 0}, got[1])
	assert.Equal(t, [3]float64{0, 100, 0}, got[2])
	// Nothing is left at a positive distance, so the search falls back to sample 0.
	assert.Equal(t, [3]float64{0, 0, 0}, got[3])
	assert.Equal(t, [3]float64{0, 0, 0}, got[4])
}

func TestSeedCentroids_Deterministic(t *testing.T) {
	samples := make([]Color, 0, 256)
	for i := 0; i < 256; i++ {
		samples = append(samples, Color{uint8(i), uint8(255 - i), uint8(i * 7)})
	}
	first := seedCentroids(samples)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, seedCentroids(samples))
	}
}

func TestAssignNearest(t *testing.T) {
	centroids := [Components][3]float64{
		{0, 0, 0},
		{255, 255, 255},
		{0, 0, 0}, // duplicate of component 0
		{255, 0, 0},
		{0, 0, 255},
	}
	samples := []Color{
		{1, 1, 1},
		{250, 250, 250},
		{200, 10, 10},
		{5, 5, 240},
	}

	got := assignNearest(samples, centroids)
	assert.Equal(t, []int{0, 1, 3, 4}, got, "duplicate centroid 2 never wins a tie against 0")
}

func TestInitClusters_SingleSample(t *testing.T) {
	centroids, assign := initClusters([]Color{{7, 8, 9}})
	for k := 0; k < Components; k++ {
		assert.Equal(t, [3]float64{7, 8, 9}, centroids[k])
	}
	assert.Equal(t, []int{0}, assign)
}
