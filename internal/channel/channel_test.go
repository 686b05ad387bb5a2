package channel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestNewUnknown(t *testing.T) {
	_, err := New("awgn8")
	require.Error(t, err)
}

func TestAWGNGainIsUnity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := AWGN{}.Transmit(1.0, rng, 0.5)
	assert.Equal(t, 1.0, out.Gain)
}

func TestAWGNNoiseVarianceMatchesSigma(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const sigma = 0.7
	const n = 200000
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		out := AWGN{}.Transmit(0, rng, sigma)
		samples[i] = out.Y
	}
	variance := stat.Variance(samples, nil)
	assert.InDelta(t, sigma*sigma, variance, sigma*sigma*0.02)
}

func TestRayleighGainNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		out := Rayleigh{}.Transmit(1.0, rng, 1.0)
		assert.GreaterOrEqual(t, out.Gain, 0.0)
		assert.InDelta(t, out.Gain, out.Y, 1e-12)
	}
}
