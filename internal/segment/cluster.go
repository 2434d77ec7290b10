package segment

// initClusters seeds Components centroids by farthest-point selection and
// assigns every sample to its nearest centroid.
//
// samples must not be empty.
func initClusters(samples []Color) ([Components][3]float64, []int) {
	centroids := seedCentroids(samples)
	return centroids, assignNearest(samples, centroids)
}

// seedCentroids picks the first sample as the first centroid and then, for
// each remaining slot, the sample whose squared distance to its closest
// already-chosen centroid is strictly the largest. The first such sample wins
// ties. When every sample coincides with a chosen centroid the search finds no
// positive distance and falls back to the first sample.
func seedCentroids(samples []Color) [Components][3]float64 {
	var centroids [Components][3]float64
	centroids[0] = samples[0].vec()

	for k := 1; k < Components; k++ {
		best := 0
		bestDist := 0.0
		for i, s := range samples {
			d := nearestDistance(s.vec(), centroids[:k])
			if d > bestDist {
				bestDist = d
				best = i
			}
		}
		centroids[k] = samples[best].vec()
	}
	return centroids
}

// assignNearest returns, for each sample, the index of the closest centroid.
// Ties go to the lowest index.
func assignNearest(samples []Color, centroids [Components][3]float64) []int {
	assign := make([]int, len(samples))
	for i, s := range samples {
		x := s.vec()
		best := 0
		bestDist := squaredDistance(x, centroids[0])
		for k := 1; k < Components; k++ {
			if d := squaredDistance(x, centroids[k]); d < bestDist {
				bestDist = d
				best = k
			}
		}
		assign[i] = best
	}
	return assign
}

func nearestDistance(x [3]float64, centroids [][3]float64) float64 {
	min := squaredDistance(x, centroids[0])
	for _, c := range centroids[1:] {
		if d := squaredDistance(x, c); d < min {
			min = d
		}
	}
	return min
}

func squaredDistance(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}
