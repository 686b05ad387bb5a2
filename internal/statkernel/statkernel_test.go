package statkernel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestInvNormCDFBoundaries(t *testing.T) {
	assert.True(t, math.IsNaN(InvNormCDF(0)))
	assert.True(t, math.IsNaN(InvNormCDF(1)))
	assert.True(t, math.IsNaN(InvNormCDF(-0.1)))
	assert.True(t, math.IsNaN(InvNormCDF(1.1)))
}

func TestInvNormCDFKnownQuantiles(t *testing.T) {
	// z for 95% two-sided CI is the familiar 1.959964...
	got := InvNormCDF(0.975)
	require.InDelta(t, 1.959963985, got, 1e-6)

	got = InvNormCDF(0.5)
	require.InDelta(t, 0.0, got, 1e-9)
}

func TestZForLevel(t *testing.T) {
	z := ZForLevel(0.95)
	assert.InDelta(t, 1.959963985, z, 1e-6)
	assert.Equal(t, float64(0), ZForLevel(0))
	assert.Equal(t, float64(0), ZForLevel(1))
}

func TestWilsonCIZeroBits(t *testing.T) {
	lo, hi, half := WilsonCI(0, 0, 1.96)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
	assert.Equal(t, 0.5, half)
}

func TestWilsonCICoverage(t *testing.T) {
	const (
		trials = 10000
		n      = 10000
		p      = 1e-3
		level  = 0.95
	)
	z := ZForLevel(level)
	rng := rand.New(rand.NewSource(1))
	covered := 0
	samples := make([]float64, trials)
	for i := 0; i < trials; i++ {
		k := uint64(0)
		for j := 0; j < n; j++ {
			if rng.Float64() < p {
				k++
			}
		}
		samples[i] = float64(k)
		lo, hi, _ := WilsonCI(k, n, z)
		if lo <= p && p <= hi {
			covered++
		}
	}
	rate := float64(covered) / float64(trials)
	assert.GreaterOrEqual(t, rate, 0.93)
	assert.LessOrEqual(t, rate, 0.97)

	// Sanity: gonum agrees the empirical error count matches n*p on average.
	mean := stat.Mean(samples, nil)
	assert.InDelta(t, n*p, mean, n*p*0.2+1)
}
