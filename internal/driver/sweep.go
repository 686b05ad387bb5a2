package driver

import (
	"math"
	"math/rand"

	"github.com/bersim-project/bersim/internal/channel"
	"github.com/bersim-project/bersim/internal/coder"
	"github.com/bersim-project/bersim/internal/modem"
)

// Grid is the inclusive SNR grid start_db, start_db+step_db, ..., stop_db.
func Grid(startDB, stopDB, stepDB float64) []float64 {
	n := int(math.Round((stopDB-startDB)/stepDB)) + 1
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = startDB + float64(i)*stepDB
	}
	return out
}

// SweepConfig bundles the grid bounds with the rest of PointConfig, which is
// shared verbatim across every point in the sweep.
type SweepConfig struct {
	StartDB, StopDB, StepDB float64
	Point                   PointConfig // SNRdB is overwritten per grid point
}

// RunSweep iterates the SNR grid, running SimulatePoint at each point and
// stopping early once a point's BER-for-stop metric (the CI upper bound
// when computed, else the point estimate) falls at or below BerFloor.
// Exactly one 64-bit base seed is drawn from rng per point.
func RunSweep(cfg SweepConfig, m modem.Modem, ch channel.Channel, cd coder.Coder, rng *rand.Rand, obs Observer) []BerResult {
	grid := Grid(cfg.StartDB, cfg.StopDB, cfg.StepDB)
	results := make([]BerResult, 0, len(grid))

	for _, snrDB := range grid {
		pc := cfg.Point
		pc.SNRdB = snrDB
		r := SimulatePoint(pc, m, ch, cd, rng, obs)
		results = append(results, r)

		berForStop := r.BER
		if r.CiHi > 0 {
			berForStop = r.CiHi
		}
		if cfg.Point.BerFloor > 0 && berForStop <= cfg.Point.BerFloor {
			break
		}
	}
	return results
}
