package channel

import "math/rand"

// Rayleigh is the real-valued fading channel: y = h*s with h = |N(0,1)|,
// reporting gain=h. The additive noise is not applied here — the frame
// pipeline forwards sigma^2/h^2 to the demodulator after equalization, per
// the noise-placement design note.
type Rayleigh struct{}

func (Rayleigh) Transmit(s float64, rng *rand.Rand, _ float64) Output {
	h := rng.NormFloat64()
	if h < 0 {
		h = -h
	}
	return Output{Y: h * s, Gain: h}
}
