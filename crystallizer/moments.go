package crystallizer

import "math"

// Moments of the particle-size distribution by trapezoid integration over
// the size grid. These are the aggregate-metric primitives: the integrator
// calls them once per step and post-hoc analysis reuses them unchanged on
// the final distribution. All functions here are pure.

// trapz integrates y over x (both len ≥ 2, same length).
func trapz(y, x []float64) float64 {
	sum := 0.0
	for i := 1; i < len(x); i++ {
		sum += (y[i] + y[i-1]) / 2 * (x[i] - x[i-1])
	}
	return sum
}

// Moments returns the zeroth, first and second moments of density n over
// sizes L.
func Moments(sizes, density []float64) (m0, m1, m2 float64) {
	n := len(sizes)
	w := make([]float64, n)
	m0 = trapz(density, sizes)
	for i := range w {
		w[i] = sizes[i] * density[i]
	}
	m1 = trapz(w, sizes)
	for i := range w {
		w[i] = sizes[i] * sizes[i] * density[i]
	}
	m2 = trapz(w, sizes)
	return m0, m1, m2
}

// ThirdMoment returns ∫L³n dL, proportional to the crystal volume held in
// suspension; it feeds the secondary-nucleation law.
func ThirdMoment(sizes, density []float64) float64 {
	w := make([]float64, len(sizes))
	for i := range w {
		w[i] = sizes[i] * sizes[i] * sizes[i] * density[i]
	}
	return trapz(w, sizes)
}

// Stats derives the mean size and coefficient of variation from the first
// three moments. Both are zero for a degenerate population (m0 ≤ 0), never
// a division by zero.
func Stats(m0, m1, m2 float64) (meanSize, cv float64) {
	if m0 <= 0 {
		return 0, 0
	}
	meanSize = m1 / m0
	variance := math.Max(m2/m0-meanSize*meanSize, 0)
	if meanSize > 0 {
		cv = math.Sqrt(variance) / meanSize
	}
	return meanSize, cv
}

// DistributionStats is the post-hoc entry point: mean size and CV straight
// from a size grid and density array.
func DistributionStats(sizes, density []float64) (meanSize, cv float64) {
	m0, m1, m2 := Moments(sizes, density)
	return Stats(m0, m1, m2)
}
