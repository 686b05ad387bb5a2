package channel

import "math/rand"

// AWGN adds zero-mean Gaussian noise of standard deviation sigma and reports
// unity gain.
type AWGN struct{}

func (AWGN) Transmit(s float64, rng *rand.Rand, sigma float64) Output {
	n := rng.NormFloat64() * sigma
	return Output{Y: s + n, Gain: 1.0}
}
