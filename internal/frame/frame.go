// Package frame implements one information-bits-to-information-bits round
// trip through the encoder, modulator, channel, equalizer, demodulator, and
// decoder — the unit of work a driver worker repeats until told to stop.
package frame

import (
	"math/rand"

	"github.com/bersim-project/bersim/internal/channel"
	"github.com/bersim-project/bersim/internal/coder"
	"github.com/bersim-project/bersim/internal/modem"
)

// Pipeline owns the information-bit and received-bit/LLR scratch buffers for
// one worker's frame loop, which repeated calls to Run reuse; the coded bits,
// the symbol group and the demodulated bits are still allocated per call. It
// is not safe for concurrent use; each worker owns its own Pipeline.
type Pipeline struct {
	Modem   modem.Modem
	Channel channel.Channel
	Coder   coder.Coder
	Sigma   float64

	u    []int
	cHat []int
	llr  []float64
}

// NewPipeline builds a Pipeline with scratch buffers sized for frameLen
// information bits.
func NewPipeline(m modem.Modem, ch channel.Channel, cd coder.Coder, sigma float64, frameLen int) *Pipeline {
	return &Pipeline{
		Modem:   m,
		Channel: ch,
		Coder:   cd,
		Sigma:   sigma,
		u:       make([]int, 0, frameLen),
		cHat:    make([]int, 0, frameLen*2),
		llr:     make([]float64, 0, frameLen*2),
	}
}

// Result is one frame's outcome: the bit count and error count to fold into
// the shared totals.
type Result struct {
	Bits uint64
	Errs uint64
}

// Run draws frameLen fresh Bernoulli(1/2) information bits from rng, walks
// them through encode -> modulate -> channel -> equalize -> demodulate ->
// decode, and reports the bit-error count against the original information
// bits.
func (p *Pipeline) Run(rng *rand.Rand, frameLen int) Result {
	p.u = p.u[:0]
	for i := 0; i < frameLen; i++ {
		p.u = append(p.u, rng.Intn(2))
	}

	c := p.Coder.Encode(p.u)

	mbs := p.Modem.BitsPerSymbol()
	soft := p.Coder.SupportsSoft()
	p.cHat = p.cHat[:0]
	p.llr = p.llr[:0]
	sigma2 := p.Sigma * p.Sigma

	group := make([]int, mbs)
	for i := 0; i < len(c); i += mbs {
		n := mbs
		if i+n > len(c) {
			n = len(c) - i
		}
		for k := 0; k < mbs; k++ {
			if k < n {
				group[k] = c[i+k]
			} else {
				group[k] = 0
			}
		}
		s := p.Modem.Modulate(group)

		out := p.Channel.Transmit(s, rng, p.Sigma)
		g := out.Gain
		rEq := out.Y
		sigma2Eq := sigma2
		if g > 0 {
			rEq = out.Y / g
			sigma2Eq = sigma2 / (g * g)
		}

		if soft {
			L := p.Modem.DemodulateLLR(rEq, sigma2Eq)
			for k := 0; k < n; k++ {
				p.llr = append(p.llr, L[k])
			}
		} else {
			bits := p.Modem.Demodulate(rEq)
			for k := 0; k < n; k++ {
				p.cHat = append(p.cHat, bits[k])
			}
		}
	}

	var uHat []int
	if soft {
		uHat = p.Coder.DecodeSoft(p.llr)
	} else {
		uHat = p.Coder.Decode(p.cHat)
	}

	l := len(p.u)
	if len(uHat) < l {
		l = len(uHat)
	}
	var errs uint64
	for j := 0; j < l; j++ {
		if p.u[j] != uHat[j] {
			errs++
		}
	}
	return Result{Bits: uint64(l), Errs: errs}
}
