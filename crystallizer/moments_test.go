package crystallizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unitGrid(points int) (sizes, density []float64) {
	sizes = make([]float64, points)
	density = make([]float64, points)
	for i := range sizes {
		sizes[i] = float64(i) / float64(points-1)
		density[i] = 1
	}
	return sizes, density
}

func TestMomentsUniformDensity(t *testing.T) {
	sizes, density := unitGrid(201)
	m0, m1, m2 := Moments(sizes, density)

	// ∫1 dL = 1, ∫L dL = 1/2, ∫L² dL = 1/3 over [0,1].
	assert.InDelta(t, 1.0, m0, 1e-9)
	assert.InDelta(t, 0.5, m1, 1e-9)
	assert.InDelta(t, 1.0/3.0, m2, 1e-4)

	assert.InDelta(t, 0.25, ThirdMoment(sizes, density), 1e-4)
}

func TestStats(t *testing.T) {
	mean, cv := Stats(1.0, 0.5, 1.0/3.0)
	assert.InDelta(t, 0.5, mean, 1e-9)
	// CV of a uniform distribution on [0,1]: sqrt(1/12)/0.5.
	assert.InDelta(t, math.Sqrt(1.0/12.0)/0.5, cv, 1e-9)
}

func TestStatsDegeneratePopulation(t *testing.T) {
	// Zero total count never divides by zero.
	mean, cv := Stats(0, 0, 0)
	assert.Zero(t, mean)
	assert.Zero(t, cv)

	mean, cv = Stats(-1e-9, 0.1, 0.1)
	assert.Zero(t, mean)
	assert.Zero(t, cv)

	// Negative roundoff variance clamps to zero CV.
	mean, cv = Stats(1, 0.5, 0.2499999)
	assert.InDelta(t, 0.5, mean, 1e-9)
	assert.Zero(t, cv)
}

func TestStatsIdempotent(t *testing.T) {
	sizes, density := unitGrid(101)
	m0, m1, m2 := Moments(sizes, density)
	meanA, cvA := Stats(m0, m1, m2)
	meanB, cvB := Stats(m0, m1, m2)
	assert.Equal(t, meanA, meanB)
	assert.Equal(t, cvA, cvB)

	// DistributionStats is the same computation end to end.
	meanC, cvC := DistributionStats(sizes, density)
	assert.Equal(t, meanA, meanC)
	assert.Equal(t, cvA, cvC)
}
