package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknown(t *testing.T) {
	_, err := New("ask8")
	require.Error(t, err)
}

func TestAsk2RoundTrip(t *testing.T) {
	m := Ask2{}
	for _, b := range [][]int{{0}, {1}} {
		s := m.Modulate(b)
		got := m.Demodulate(s)
		assert.Equal(t, b, got)
	}
}

func TestAsk4RoundTrip(t *testing.T) {
	for _, mapping := range []Ask4BitMapping{Gray, Natural} {
		m := Ask4{Mapping: mapping}
		for b0 := 0; b0 < 2; b0++ {
			for b1 := 0; b1 < 2; b1++ {
				bits := []int{b0, b1}
				s := m.Modulate(bits)
				got := m.Demodulate(s)
				assert.Equal(t, bits, got, "mapping=%v bits=%v", mapping, bits)
			}
		}
	}
}

func TestAsk4Distinguishability(t *testing.T) {
	for _, mapping := range []Ask4BitMapping{Gray, Natural} {
		m := Ask4{Mapping: mapping}
		seen := map[float64]bool{}
		for b0 := 0; b0 < 2; b0++ {
			for b1 := 0; b1 < 2; b1++ {
				s := m.Modulate([]int{b0, b1})
				assert.False(t, seen[s], "duplicate symbol %v for mapping %v", s, mapping)
				seen[s] = true
			}
		}
		assert.Len(t, seen, 4)
	}
}

func bitFlips(a, b []int) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

func TestAsk4AdjacencyFlips(t *testing.T) {
	// Adjacent constellation points -1 and +1: Natural flips both bits,
	// Gray flips only one.
	natural := Ask4{Mapping: Natural}
	bitsNeg1 := natural.Demodulate(-1.0)
	bitsPos1 := natural.Demodulate(+1.0)
	assert.Equal(t, []int{0, 1}, bitsNeg1)
	assert.Equal(t, []int{1, 0}, bitsPos1)
	assert.Equal(t, 2, bitFlips(bitsNeg1, bitsPos1))

	gray := Ask4{Mapping: Gray}
	bitsNeg1 = gray.Demodulate(-1.0)
	bitsPos1 = gray.Demodulate(+1.0)
	assert.Equal(t, []int{0, 1}, bitsNeg1)
	assert.Equal(t, []int{1, 1}, bitsPos1)
	assert.Equal(t, 1, bitFlips(bitsNeg1, bitsPos1))
}
