package segment

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Components is the fixed number of Gaussians in every colour model.
const Components = 5

const (
	// refinePasses is the number of parameter refits per Train call.
	refinePasses = 5

	// minWeight is the weight below which a component is ignored.
	minWeight = 1e-10

	// minProbability floors every density so it stays usable in a logarithm.
	minProbability = 1e-10

	// minVariance keeps each Gaussian from collapsing to zero width.
	minVariance = 1.0

	// varianceEpsilon guards the density against a zero divisor when a
	// component's variance was set directly rather than by Train.
	varianceEpsilon = 1e-10
)

// gaussNorm is (2π)³, the constant part of the per-component normaliser.
var gaussNorm = math.Pow(2*math.Pi, 3)

// Color is an 8-bit RGB triple. Alpha is ignored by the segmentation core.
type Color struct {
	R, G, B uint8
}

func (c Color) vec() [3]float64 {
	return [3]float64{float64(c.R), float64(c.G), float64(c.B)}
}

// Component is one diagonal-covariance Gaussian of a Model.
type Component struct {
	Mean     [3]float64 // per-channel mean (R, G, B)
	Variance [3]float64 // per-channel variance, no cross-channel terms
	Weight   float64    // mixing weight
}

// Model is a Gaussian mixture describing the colour distribution of one class.
//
// The zero-weight state returned by NewModel evaluates every colour to the
// probability floor until Train has seen at least one sample.
type Model struct {
	Components [Components]Component
}

// NewModel returns an untrained model: zero weights, zero means, unit variances.
func NewModel() *Model {
	m := &Model{}
	for k := range m.Components {
		m.Components[k].Variance = [3]float64{1, 1, 1}
	}
	return m
}

// Probability returns the mixture density at c, floored at 1e-10.
//
// Each component contributes
//
//	w · exp(-½ Σ dᵢ²/σᵢ²) / ((2π)³ · sqrt(σ_R² σ_G² σ_B²))
//
// Components whose weight is below 1e-10 are skipped.
func (m *Model) Probability(c Color) float64 {
	x := c.vec()
	var p float64
	for k := range m.Components {
		comp := &m.Components[k]
		if comp.Weight < minWeight {
			continue
		}

		var exponent float64
		varProduct := 1.0
		for ch := 0; ch < 3; ch++ {
			v := math.Max(comp.Variance[ch], varianceEpsilon)
			d := x[ch] - comp.Mean[ch]
			exponent += d * d / v
			varProduct *= v
		}

		p += comp.Weight * math.Exp(-0.5*exponent) / (gaussNorm * math.Sqrt(varProduct))
	}
	return math.Max(p, minProbability)
}

// Train fits the model to samples.
//
// An empty sample set leaves the model untouched. Otherwise the components are
// seeded by farthest-point clustering, every sample is hard-assigned to its
// nearest seed, and the weight, mean and variance of each non-empty component
// are recomputed from its members for a fixed number of passes. Components that
// receive no samples keep whatever parameters they had.
//
// The assignment is never revisited after seeding; this is hard-assignment
// clustering with a Gaussian fit on top, not soft-responsibility EM.
func (m *Model) Train(samples []Color) {
	n := len(samples)
	if n == 0 {
		return
	}

	centroids, assign := initClusters(samples)
	for k := range m.Components {
		m.Components[k].Mean = centroids[k]
		m.Components[k].Weight = 1.0 / Components
	}

	members := groupByComponent(samples, assign)
	for pass := 0; pass < refinePasses; pass++ {
		for k := range m.Components {
			channels := members[k]
			count := len(channels[0])
			if count == 0 {
				continue
			}

			comp := &m.Components[k]
			comp.Weight = float64(count) / float64(n)
			for ch := 0; ch < 3; ch++ {
				mean, variance := stat.PopMeanVariance(channels[ch], nil)
				comp.Mean[ch] = mean
				comp.Variance[ch] = math.Max(variance, minVariance)
			}
		}
	}
}

// groupByComponent splits samples into per-component, per-channel value
// slices following the hard assignment.
func groupByComponent(samples []Color, assign []int) [Components][3][]float64 {
	var counts [Components]int
	for _, k := range assign {
		counts[k]++
	}

	var members [Components][3][]float64
	for k := range members {
		for ch := range members[k] {
			members[k][ch] = make([]float64, 0, counts[k])
		}
	}

	for i, s := range samples {
		k := assign[i]
		members[k][0] = append(members[k][0], float64(s.R))
		members[k][1] = append(members[k][1], float64(s.G))
		members[k][2] = append(members[k][2], float64(s.B))
	}
	return members
}
