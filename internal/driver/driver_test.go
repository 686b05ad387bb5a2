package driver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/bersim-project/bersim/internal/bermock"
	"github.com/bersim-project/bersim/internal/channel"
	"github.com/bersim-project/bersim/internal/coder"
	"github.com/bersim-project/bersim/internal/modem"
)

func TestGrid(t *testing.T) {
	g := Grid(-2, 2, 1)
	assert.Equal(t, []float64{-2, -1, 0, 1, 2}, g)
}

func TestGridSinglePoint(t *testing.T) {
	g := Grid(5, 5, 0.5)
	assert.Equal(t, []float64{5}, g)
}

// TestSimulatePointStopsOnMaxBits uses a mocked channel that always returns
// the transmitted symbol unchanged (so the uncoded pipeline never errs) and
// checks the driver stops on the max_bits predicate without relying on
// statistical convergence. MinErrors is 1 so the CI predicate, which is
// trivially satisfied when CIAbs and CIRel are both zero, can never fire.
func TestSimulatePointStopsOnMaxBits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mc := bermock.NewMockChannel(ctrl)
	mc.EXPECT().Transmit(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(s float64, _ *rand.Rand, _ float64) channel.Output {
			return channel.Output{Y: s, Gain: 1.0}
		}).AnyTimes()

	cfg := PointConfig{
		SNRdB:     10,
		MinErrors: 1,
		MaxBits:   1000,
		FrameLen:  50,
		CILevel:   0.95,
		Threads:   1,
		CIMinBits: 0,
	}
	rng := rand.New(rand.NewSource(1))
	res := SimulatePoint(cfg, modem.Ask2{}, mc, coder.Uncoded{}, rng, nil)

	assert.GreaterOrEqual(t, res.Bits, uint64(1000))
	assert.Equal(t, uint64(0), res.Errs)
}

type countingObserver struct {
	calls int
}

func (c *countingObserver) Observe(_ float64, _, _ uint64) {
	c.calls++
}

func TestSimulatePointObserverIsCalled(t *testing.T) {
	obs := &countingObserver{}
	cfg := PointConfig{SNRdB: 10, MaxBits: 200, FrameLen: 20, Threads: 1}
	rng := rand.New(rand.NewSource(2))
	_ = SimulatePoint(cfg, modem.Ask2{}, channel.AWGN{}, coder.Uncoded{}, rng, obs)
	assert.Greater(t, obs.calls, 0)
}

func TestMonotoneCountersWithinWorker(t *testing.T) {
	// A single-threaded run's bits/errors are necessarily non-decreasing
	// since they are only ever added to; this pins that invariant down via
	// the observer callback sequence.
	var lastBits, lastErrs uint64
	obs := observerFunc(func(_ float64, bitsAfter, errsAfter uint64) {
		assert.GreaterOrEqual(t, bitsAfter, lastBits)
		assert.GreaterOrEqual(t, errsAfter, lastErrs)
		lastBits, lastErrs = bitsAfter, errsAfter
	})
	// MinErrors is out of reach so the run lasts until MaxBits (50 frames)
	// instead of stopping on the trivially satisfied CI predicate.
	cfg := PointConfig{SNRdB: 0, MinErrors: 1_000_000, MaxBits: 5000, FrameLen: 100, Threads: 1}
	rng := rand.New(rand.NewSource(3))
	_ = SimulatePoint(cfg, modem.Ask2{}, channel.AWGN{}, coder.Uncoded{}, rng, obs)
}

type observerFunc func(snrDB float64, bitsAfter, errsAfter uint64)

func (f observerFunc) Observe(snrDB float64, bitsAfter, errsAfter uint64) { f(snrDB, bitsAfter, errsAfter) }

func TestSeedDeterminism(t *testing.T) {
	cfg := PointConfig{SNRdB: 4, MaxBits: 5000, FrameLen: 64, Threads: 1}
	r1 := SimulatePoint(cfg, modem.Ask2{}, channel.AWGN{}, coder.Uncoded{}, rand.New(rand.NewSource(99)), nil)
	r2 := SimulatePoint(cfg, modem.Ask2{}, channel.AWGN{}, coder.Uncoded{}, rand.New(rand.NewSource(99)), nil)
	assert.Equal(t, r1, r2)
}

func TestRunSweepEarlyExitOnFloor(t *testing.T) {
	sc := SweepConfig{
		StartDB: -2, StopDB: 10, StepDB: 0.5,
		Point: PointConfig{
			MaxBits:   5_000_000,
			FrameLen:  1024,
			CILevel:   0.95,
			CIAbs:     0,
			CIRel:     0,
			CIMinBits: 50_000,
			Threads:   2,
			BerFloor:  1e-5,
			MinErrors: 0,
		},
	}
	rng := rand.New(rand.NewSource(123))
	results := RunSweep(sc, modem.Ask2{}, channel.AWGN{}, coder.Uncoded{}, rng, nil)
	assert.Less(t, len(results), len(Grid(sc.StartDB, sc.StopDB, sc.StepDB)))
	last := results[len(results)-1]
	berForStop := last.BER
	if last.CiHi > 0 {
		berForStop = last.CiHi
	}
	assert.LessOrEqual(t, berForStop, sc.Point.BerFloor)
}
