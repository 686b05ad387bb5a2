// Package driver implements the parallel Monte-Carlo driver for one SNR
// point and the SNR sweep that repeats it across a grid. Workers run the
// frame pipeline in a loop, accumulate bit/error counts in shared atomics
// under relaxed ordering, and stop as soon as any of three termination
// predicates fires.
package driver

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/bersim-project/bersim/internal/channel"
	"github.com/bersim-project/bersim/internal/coder"
	"github.com/bersim-project/bersim/internal/frame"
	"github.com/bersim-project/bersim/internal/modem"
	"github.com/bersim-project/bersim/internal/statkernel"
)

// goldenRatio64 is the fixed multiplier used to mix a per-worker index into
// the master-drawn base seed, giving independent-enough streams for
// Monte-Carlo without sharing a generator across workers.
const goldenRatio64 = 0x9E3779B97F4A7C15

// BerResult is the outcome of one SNR point: the point estimate plus a
// Wilson confidence interval (zero on both bounds when CI was not
// configured).
type BerResult struct {
	SNRdB float64
	BER   float64
	Bits  uint64
	Errs  uint64
	CiLo  float64
	CiHi  float64
}

// PointConfig holds everything SimulatePoint needs beyond the model
// components themselves.
type PointConfig struct {
	SNRdB     float64
	MinErrors uint64
	MaxBits   uint64
	FrameLen  int
	CILevel   float64
	CIAbs     float64
	CIRel     float64
	CIMinBits uint64
	Threads   int
	BerFloor  float64
}

// Observer receives a callback after every frame's shared counters are
// updated, for metrics export. Observe must be cheap and safe to call
// concurrently from any worker.
type Observer interface {
	Observe(snrDB float64, bitsAfter, errsAfter uint64)
}

// sharedState is the per-point mutable state all workers touch: two
// monotonic counters and a stop flag, all accessed with relaxed atomics.
// The only synchronization requirement is that errgroup.Wait's join
// establishes a synchronizes-with edge before the final read.
type sharedState struct {
	totalBits atomic.Uint64
	totalErrs atomic.Uint64
	stop      atomic.Bool
}

// SimulatePoint runs the parallel frame-pipeline driver for one SNR point
// and returns its BerResult. rng supplies exactly one 64-bit base seed per
// call; it is never touched again after that draw, so the same rng can be
// threaded through a whole sweep.
func SimulatePoint(cfg PointConfig, m modem.Modem, ch channel.Channel, cd coder.Coder, rng *rand.Rand, obs Observer) BerResult {
	rate := cd.Rate()
	mbs := m.BitsPerSymbol()
	es := m.SymbolEnergy()

	ebn0Lin := math.Pow(10, cfg.SNRdB/10)
	n0 := es / (rate * float64(mbs) * ebn0Lin)
	sigma := math.Sqrt(0.5 * n0)

	z := statkernel.ZForLevel(cfg.CILevel)

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	state := &sharedState{}

	ciGoalsMet := func(bits, errs uint64) bool {
		if cfg.CIAbs <= 0 && cfg.CIRel <= 0 {
			return true
		}
		if bits == 0 || bits < cfg.CIMinBits {
			return false
		}
		_, _, half := statkernel.WilsonCI(errs, bits, z)
		p := float64(errs) / float64(bits)
		okAbs := cfg.CIAbs <= 0 || half <= cfg.CIAbs
		okRel := cfg.CIRel <= 0 || half <= cfg.CIRel*math.Max(p, 1e-12)
		return okAbs && okRel
	}
	floorMet := func(bits, errs uint64) bool {
		if cfg.BerFloor <= 0 {
			return false
		}
		if bits == 0 || bits < cfg.CIMinBits {
			return false
		}
		_, hi, _ := statkernel.WilsonCI(errs, bits, z)
		return hi <= cfg.BerFloor
	}

	base := rng.Uint64()
	seeds := make([]uint64, threads)
	for t := 0; t < threads; t++ {
		seeds[t] = base ^ (goldenRatio64 * uint64(t+1))
	}

	g, _ := errgroup.WithContext(context.Background())
	for t := 0; t < threads; t++ {
		seed := seeds[t]
		g.Go(func() error {
			runWorker(cfg, m, ch, cd, seed, sigma, state, ciGoalsMet, floorMet, obs)
			return nil
		})
	}
	_ = g.Wait()

	totalBits := state.totalBits.Load()
	totalErrs := state.totalErrs.Load()

	var lo, hi float64
	if (cfg.CIAbs > 0 || cfg.CIRel > 0) && totalBits > 0 && z > 0 {
		lo, hi, _ = statkernel.WilsonCI(totalErrs, totalBits, z)
	}

	var ber float64
	if totalBits > 0 {
		ber = float64(totalErrs) / float64(totalBits)
	}

	return BerResult{SNRdB: cfg.SNRdB, BER: ber, Bits: totalBits, Errs: totalErrs, CiLo: lo, CiHi: hi}
}

// runWorker repeats the frame pipeline until the shared stop flag is
// raised, recovering from any internal panic so a single worker's failure
// never brings down the process — it aborts its own loop and raises stop,
// and the driver still reports the partial result.
func runWorker(
	cfg PointConfig,
	m modem.Modem,
	ch channel.Channel,
	cd coder.Coder,
	seed uint64,
	sigma float64,
	state *sharedState,
	ciGoalsMet, floorMet func(bits, errs uint64) bool,
	obs Observer,
) {
	defer func() {
		if r := recover(); r != nil {
			state.stop.Store(true)
		}
	}()

	trng := rand.New(rand.NewSource(int64(seed)))
	pipe := frame.NewPipeline(m, ch, cd, sigma, cfg.FrameLen)

	for !state.stop.Load() {
		res := pipe.Run(trng, cfg.FrameLen)

		bitsAfter := state.totalBits.Add(res.Bits)
		errsAfter := state.totalErrs.Add(res.Errs)

		if obs != nil {
			obs.Observe(cfg.SNRdB, bitsAfter, errsAfter)
		}

		stopByMax := cfg.MaxBits > 0 && bitsAfter >= cfg.MaxBits
		stopByFloor := floorMet(bitsAfter, errsAfter)
		stopByCI := (cfg.MinErrors == 0 || errsAfter >= cfg.MinErrors) && ciGoalsMet(bitsAfter, errsAfter)

		if stopByMax || stopByFloor || stopByCI {
			state.stop.Store(true)
			break
		}
	}
}
