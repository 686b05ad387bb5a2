// Package channel implements the two propagation models the frame pipeline
// can drive a symbol through: AWGN and real-valued Rayleigh fading.
package channel

import "math/rand"

// Output is one channel transmission result: the received real sample and
// the gain applied (1.0 for AWGN, the fading draw for Rayleigh) so the
// pipeline can equalize before demodulation.
type Output struct {
	Y    float64
	Gain float64
}

// Channel is the capability set a propagation model exposes. Transmit must
// draw randomness only from the supplied *rand.Rand — implementations never
// touch a package-level or shared generator, since each worker owns its own
// stream.
type Channel interface {
	Transmit(s float64, rng *rand.Rand, sigma float64) Output
}

// New resolves a channel by its configuration name: "awgn" or "rayleigh".
func New(name string) (Channel, error) {
	switch name {
	case "awgn":
		return AWGN{}, nil
	case "rayleigh":
		return Rayleigh{}, nil
	default:
		return nil, &UnknownChannelError{Name: name}
	}
}

// UnknownChannelError reports a config.channel value with no matching
// implementation.
type UnknownChannelError struct {
	Name string
}

func (e *UnknownChannelError) Error() string {
	return "unknown channel: " + e.Name
}
