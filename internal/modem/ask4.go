package modem

import "math"

// Ask4BitMapping selects how the two coded bits of a 4-ASK symbol map onto
// the constellation {-3,-1,+1,+3}.
type Ask4BitMapping int

const (
	// Gray maps adjacent symbols to bit patterns differing in exactly one
	// bit: 00->-3, 01->-1, 11->+1, 10->+3.
	Gray Ask4BitMapping = iota
	// Natural maps bit patterns to symbols in binary order:
	// 00->-3, 01->-1, 10->+1, 11->+3.
	Natural
)

// Ask4 is 4-level ASK over the constellation {-3,-1,+1,+3}, Es=5.
type Ask4 struct {
	Mapping Ask4BitMapping
}

func (m Ask4) Modulate(bits []int) float64 {
	val := (bits[0] << 1) | bits[1]
	if m.Mapping == Gray {
		switch val {
		case 0:
			return -3.0
		case 1:
			return -1.0
		case 3:
			return +1.0
		case 2:
			return +3.0
		}
	} else {
		switch val {
		case 0:
			return -3.0
		case 1:
			return -1.0
		case 2:
			return +1.0
		case 3:
			return +3.0
		}
	}
	return 0.0
}

func (m Ask4) Demodulate(r float64) []int {
	var sym int
	switch {
	case r < -2.0:
		sym = 0
	case r < 0.0:
		sym = 1
	case r < 2.0:
		sym = 2
	default:
		sym = 3
	}
	if m.Mapping == Gray {
		switch sym {
		case 0:
			return []int{0, 0}
		case 1:
			return []int{0, 1}
		case 2:
			return []int{1, 1}
		case 3:
			return []int{1, 0}
		}
	} else {
		switch sym {
		case 0:
			return []int{0, 0}
		case 1:
			return []int{0, 1}
		case 2:
			return []int{1, 0}
		case 3:
			return []int{1, 1}
		}
	}
	return []int{0, 0}
}

func (m Ask4) DemodulateLLR(r, sigma2 float64) []float64 {
	p0 := math.Exp(-(r + 3) * (r + 3) / (2 * sigma2))
	p1 := math.Exp(-(r + 1) * (r + 1) / (2 * sigma2))
	p2 := math.Exp(-(r - 1) * (r - 1) / (2 * sigma2))
	p3 := math.Exp(-(r - 3) * (r - 3) / (2 * sigma2))

	msb := math.Log((p0 + p1) / (p2 + p3))
	var lsb float64
	if m.Mapping == Gray {
		lsb = math.Log((p0 + p3) / (p1 + p2))
	} else {
		lsb = math.Log((p0 + p2) / (p1 + p3))
	}
	return []float64{msb, lsb}
}

func (m Ask4) BitsPerSymbol() int { return 2 }

func (m Ask4) SymbolEnergy() float64 { return 5.0 }
