// Package coder implements the information-bit encoders/decoders the frame
// pipeline drives: an uncoded passthrough and a rate-1/2, K=7 convolutional
// code with hard-decision Viterbi decoding.
package coder

// Coder is the capability set an error-control scheme exposes.
// Implementations hold no mutable state.
type Coder interface {
	// Encode maps information bits to coded bits.
	Encode(u []int) []int
	// Decode maps hard-decision coded bits back to information bits.
	Decode(cHat []int) []int
	// DecodeSoft maps per-bit LLRs back to information bits. Only called
	// when SupportsSoft reports true.
	DecodeSoft(llr []float64) []int
	// Rate is the code rate R = len(u)/len(c).
	Rate() float64
	// SupportsSoft reports whether DecodeSoft is implemented.
	SupportsSoft() bool
}

// New resolves a coder by its configuration name: "uncoded" or
// "conv_k7_r12".
func New(name string) (Coder, error) {
	switch name {
	case "uncoded":
		return Uncoded{}, nil
	case "conv_k7_r12":
		return NewConvK7R12(), nil
	default:
		return nil, &UnknownCoderError{Name: name}
	}
}

// UnknownCoderError reports a config.coder value with no matching
// implementation.
type UnknownCoderError struct {
	Name string
}

func (e *UnknownCoderError) Error() string {
	return "unknown coder: " + e.Name
}

// Uncoded is the rate-1 passthrough coder: encode and decode are both the
// identity function.
type Uncoded struct{}

func (Uncoded) Encode(u []int) []int {
	c := make([]int, len(u))
	copy(c, u)
	return c
}

func (Uncoded) Decode(cHat []int) []int {
	u := make([]int, len(cHat))
	copy(u, cHat)
	return u
}

func (Uncoded) DecodeSoft(llr []float64) []int {
	u := make([]int, len(llr))
	for i, l := range llr {
		if l < 0 {
			u[i] = 1
		}
	}
	return u
}

func (Uncoded) Rate() float64 { return 1.0 }

func (Uncoded) SupportsSoft() bool { return false }
