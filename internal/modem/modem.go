// Package modem implements the bit<->symbol mappings the frame pipeline
// drives: 2-ASK and two 4-ASK variants (Gray and natural bit ordering).
package modem

// Modem is the capability set a modulation scheme exposes to the frame
// pipeline. Implementations hold no mutable state and are safe to share
// across worker goroutines.
type Modem interface {
	// Modulate maps bits (length BitsPerSymbol) to a real baseband symbol.
	Modulate(bits []int) float64
	// Demodulate hard-decides bits (length BitsPerSymbol) from a received
	// real sample.
	Demodulate(r float64) []int
	// DemodulateLLR computes per-bit log-likelihood ratios (bit=0 vs bit=1)
	// from a received sample and the equalized noise variance.
	DemodulateLLR(r, sigma2 float64) []float64
	// BitsPerSymbol is the number of coded bits one symbol carries.
	BitsPerSymbol() int
	// SymbolEnergy is Es, the average energy of one transmitted symbol.
	SymbolEnergy() float64
}

// New resolves a modem by its configuration name. Recognized names:
// "ask2", "ask4_gray" (also "ask4"), "ask4_natural" (also "ask4_binary",
// "ask4_nogray").
func New(name string) (Modem, error) {
	switch name {
	case "ask2":
		return Ask2{}, nil
	case "ask4", "ask4_gray":
		return Ask4{Mapping: Gray}, nil
	case "ask4_natural", "ask4_binary", "ask4_nogray":
		return Ask4{Mapping: Natural}, nil
	default:
		return nil, &UnknownModemError{Name: name}
	}
}

// UnknownModemError reports a config.modem value with no matching
// implementation.
type UnknownModemError struct {
	Name string
}

func (e *UnknownModemError) Error() string {
	return "unknown modem: " + e.Name
}
