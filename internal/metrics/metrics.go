// Package metrics exports the engine's per-point counters as Prometheus
// collectors, so a running bersim-agent can be scraped the way any other
// service is.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements driver.Observer and owns the collectors registered
// against the default Prometheus registry.
type Recorder struct {
	bitsTotal *prometheus.CounterVec
	errsTotal *prometheus.CounterVec
	pointBER  *prometheus.GaugeVec

	mu       sync.Mutex
	lastBits map[float64]uint64
	lastErrs map[float64]uint64
}

// NewRecorder registers the bersim_* collectors and returns a Recorder
// ready to observe a sweep.
func NewRecorder() *Recorder {
	return &Recorder{
		bitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bersim_bits_total",
				Help: "Total bits simulated, by SNR point in dB",
			},
			[]string{"snr_db"},
		),
		errsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bersim_errors_total",
				Help: "Total bit errors observed, by SNR point in dB",
			},
			[]string{"snr_db"},
		),
		pointBER: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bersim_point_ber",
				Help: "Running bit error rate estimate for the current SNR point",
			},
			[]string{"snr_db"},
		),
		lastBits: make(map[float64]uint64),
		lastErrs: make(map[float64]uint64),
	}
}

// Observe implements driver.Observer. Counter deltas are derived against
// the last seen cumulative total per SNR point, since SimulatePoint reports
// running totals rather than per-call increments. The driver fans this out
// to every worker goroutine concurrently, so the delta bookkeeping against
// lastBits/lastErrs is guarded by mu, and a total that arrives after a larger
// one for the same point adds nothing; the CounterVec/GaugeVec calls below
// are already safe for concurrent use on their own.
func (r *Recorder) Observe(snrDB float64, bitsAfter, errsAfter uint64) {
	label := snrLabel(snrDB)

	r.mu.Lock()
	var bitsDelta, errsDelta uint64
	if last := r.lastBits[snrDB]; bitsAfter > last {
		bitsDelta = bitsAfter - last
		r.lastBits[snrDB] = bitsAfter
	}
	if last := r.lastErrs[snrDB]; errsAfter > last {
		errsDelta = errsAfter - last
		r.lastErrs[snrDB] = errsAfter
	}
	r.mu.Unlock()

	if bitsDelta > 0 {
		r.bitsTotal.WithLabelValues(label).Add(float64(bitsDelta))
	}
	if errsDelta > 0 {
		r.errsTotal.WithLabelValues(label).Add(float64(errsDelta))
	}

	ber := float64(0)
	if bitsAfter > 0 {
		ber = float64(errsAfter) / float64(bitsAfter)
	}
	r.pointBER.WithLabelValues(label).Set(ber)
}

// Handler returns the HTTP handler serving the default registry in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func snrLabel(snrDB float64) string {
	return strconv.FormatFloat(snrDB, 'f', 2, 64)
}
