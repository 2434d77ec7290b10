package segment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatColor(c Color, n int) []Color {
	out := make([]Color, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestNewModel_ProbabilityIsFloored(t *testing.T) {
	m := NewModel()
	for _, c := range []Color{{0, 0, 0}, {255, 255, 255}, {12, 200, 99}} {
		assert.Equal(t, minProbability, m.Probability(c))
	}
}

func TestModel_TrainEmptyIsNoOp(t *testing.T) {
	m := NewModel()
	m.Train([]Color{{10, 20, 30}, {200, 100, 0}})
	before := *m

	m.Train(nil)
	assert.Equal(t, before, *m)
}

func TestModel_TrainSingleColor(t *testing.T) {
	blue := Color{0, 0, 255}
	m := NewModel()
	m.Train(repeatColor(blue, 8))

	// All seeds coincide, so every sample lands in component 0.
	first := m.Components[0]
	assert.Equal(t, 1.0, first.Weight)
	assert.Equal(t, [3]float64{0, 0, 255}, first.Mean)
	assert.Equal(t, [3]float64{1, 1, 1}, first.Variance, "variance must be floored at 1")

	// The empty components keep their seeded parameters.
	for k := 1; k < Components; k++ {
		assert.Equal(t, 1.0/Components, m.Components[k].Weight, "component %d", k)
		assert.Equal(t, [3]float64{0, 0, 255}, m.Components[k].Mean, "component %d", k)
	}

	want := 1.8 / math.Pow(2*math.Pi, 3)
	assert.InDelta(t, want, m.Probability(blue), 1e-12)
	assert.Equal(t, minProbability, m.Probability(Color{255, 0, 0}))
}

func TestModel_TrainWeightsSumToOne(t *testing.T) {
	var samples []Color
	samples = append(samples, repeatColor(Color{0, 0, 0}, 10)...)
	samples = append(samples, repeatColor(Color{255, 0, 0}, 20)...)
	samples = append(samples, repeatColor(Color{0, 255, 0}, 30)...)
	samples = append(samples, repeatColor(Color{0, 0, 255}, 15)...)
	samples = append(samples, repeatColor(Color{255, 255, 255}, 25)...)

	m := NewModel()
	m.Train(samples)

	var sum float64
	for _, c := range m.Components {
		sum += c.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 0.10, m.Components[0].Weight, 1e-12)
	assert.InDelta(t, 0.25, m.Components[1].Weight, 1e-12, "white is the farthest from black")
}

func TestModel_TrainFitsMeanAndVariance(t *testing.T) {
	// Four corner colours plus one blue cluster spread along the blue channel.
	samples := []Color{
		{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0},
		{0, 0, 200}, {0, 0, 210}, {0, 0, 220}, {0, 0, 230},
	}
	m := NewModel()
	m.Train(samples)

	blue := m.Components[4]
	require.InDelta(t, 0.5, blue.Weight, 1e-12)
	assert.InDelta(t, 215.0, blue.Mean[2], 1e-9)
	assert.InDelta(t, 125.0, blue.Variance[2], 1e-9, "population variance of 200,210,220,230")
	assert.Equal(t, 1.0, blue.Variance[0])
	assert.Equal(t, 1.0, blue.Variance[1])
}

func TestModel_RetrainKeepsVarianceOfEmptyComponents(t *testing.T) {
	m := NewModel()
	m.Train([]Color{
		{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0},
		{0, 0, 200}, {0, 0, 210}, {0, 0, 220}, {0, 0, 230},
	})
	firstFit := m.Components[4].Variance
	require.InDelta(t, 125.0, firstFit[2], 1e-9)

	// A single colour fills component 0 and leaves the other four empty.
	m.Train(repeatColor(Color{10, 20, 30}, 6))

	assert.Equal(t, 1.0, m.Components[0].Weight)
	assert.Equal(t, [3]float64{1, 1, 1}, m.Components[0].Variance)

	empty := m.Components[4]
	assert.Equal(t, firstFit, empty.Variance, "variance from the first fit survives")
	assert.Equal(t, [3]float64{10, 20, 30}, empty.Mean, "mean is reseeded")
	assert.Equal(t, 1.0/Components, empty.Weight)
}

func TestModel_ProbabilitySkipsNegligibleComponents(t *testing.T) {
	m := NewModel()
	m.Components[0] = Component{Mean: [3]float64{100, 100, 100}, Variance: [3]float64{1, 1, 1}, Weight: 1e-11}
	assert.Equal(t, minProbability, m.Probability(Color{100, 100, 100}))

	m.Components[0].Weight = 1
	assert.Greater(t, m.Probability(Color{100, 100, 100}), minProbability)
}

func TestModel_ProbabilityPeaksAtMean(t *testing.T) {
	m := NewModel()
	m.Train([]Color{{90, 100, 110}, {100, 100, 100}, {110, 100, 90}})

	center := m.Probability(Color{100, 100, 100})
	assert.Greater(t, center, m.Probability(Color{120, 100, 100}))
	assert.Greater(t, center, m.Probability(Color{100, 80, 100}))
}
