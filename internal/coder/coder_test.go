package coder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknown(t *testing.T) {
	_, err := New("turbo")
	require.Error(t, err)
}

func TestUncodedIdentity(t *testing.T) {
	u := []int{1, 0, 1, 1, 0}
	c := Uncoded{}
	assert.Equal(t, u, c.Encode(u))
	assert.Equal(t, u, c.Decode(u))
	assert.Equal(t, 1.0, c.Rate())
}

func randomBits(rng *rand.Rand, n int) []int {
	u := make([]int, n)
	for i := range u {
		u[i] = rng.Intn(2)
	}
	return u
}

func TestConvRoundTripNoiseless(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := NewConvK7R12()
	for _, n := range []int{1, 2, 7, 50, 200} {
		u := randomBits(rng, n)
		enc := c.Encode(u)
		assert.Len(t, enc, 2*(n+convM))
		got := c.Decode(enc)
		assert.Equal(t, u, got, "n=%d", n)
	}
}

func TestConvRate(t *testing.T) {
	c := NewConvK7R12()
	assert.Equal(t, 0.5, c.Rate())
	assert.False(t, c.SupportsSoft())
}

func TestConvDecodeEmpty(t *testing.T) {
	c := NewConvK7R12()
	assert.Nil(t, c.Decode(nil))
}
