package report

import (
	"os"
	"strings"
	"time"

	"github.com/francoispqt/gojay"
	"github.com/google/uuid"

	"github.com/bersim-project/bersim/internal/config"
	"github.com/bersim-project/bersim/internal/driver"
)

// RunManifest is a diagnostic sidecar written next to the mandated CSV
// table: the run's identity, resolved configuration, and every point's
// BerResult. It is purely additive — the CSV table remains the canonical
// output and is unaffected by this file's presence or absence.
type RunManifest struct {
	RunID     string
	StartedAt time.Time
	FinishedAt time.Time
	Cfg       config.Config
	Points    []driver.BerResult
}

// NewRunManifest stamps a fresh run identity.
func NewRunManifest(cfg config.Config) *RunManifest {
	return &RunManifest{RunID: uuid.NewString(), Cfg: cfg}
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (m *RunManifest) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("run_id", m.RunID)
	enc.StringKey("started_at", m.StartedAt.Format(time.RFC3339Nano))
	enc.StringKey("finished_at", m.FinishedAt.Format(time.RFC3339Nano))
	enc.ObjectKey("config", (*configJSON)(&m.Cfg))
	enc.ArrayKey("points", pointsJSON(m.Points))
}

// IsNil implements gojay.MarshalerJSONObject.
func (m *RunManifest) IsNil() bool { return m == nil }

type configJSON config.Config

func (c *configJSON) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("snr_start_db", c.SNRStartDB)
	enc.Float64Key("snr_stop_db", c.SNRStopDB)
	enc.Float64Key("snr_step_db", c.SNRStepDB)
	enc.Uint64Key("min_errors", c.MinErrors)
	enc.Uint64Key("max_bits", c.MaxBits)
	enc.Float64Key("ber_floor", c.BerFloor)
	enc.StringKey("modem", c.Modem)
	enc.StringKey("channel", c.Channel)
	enc.StringKey("coder", c.Coder)
	enc.IntKey("frame_len", c.FrameLen)
	enc.Float64Key("ci_level", c.CILevel)
	enc.Float64Key("ci_abs", c.CIAbs)
	enc.Float64Key("ci_rel", c.CIRel)
	enc.Uint64Key("ci_min_bits", c.CIMinBits)
	enc.IntKey("threads", c.Threads)
}

func (c *configJSON) IsNil() bool { return c == nil }

type pointsJSON []driver.BerResult

func (p pointsJSON) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range p {
		enc.AddObject((*pointJSON)(&p[i]))
	}
}

func (p pointsJSON) IsNil() bool { return len(p) == 0 }

type pointJSON driver.BerResult

func (p *pointJSON) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("snr_db", p.SNRdB)
	enc.Float64Key("ber", p.BER)
	enc.Uint64Key("num_bits", p.Bits)
	enc.Uint64Key("num_errors", p.Errs)
	enc.Float64Key("ci_low", p.CiLo)
	enc.Float64Key("ci_high", p.CiHi)
}

func (p *pointJSON) IsNil() bool { return p == nil }

// WriteManifest writes m as the JSON sidecar next to csvPath, replacing its
// extension with ".manifest.json".
func WriteManifest(csvPath string, m *RunManifest) error {
	manifestPath := strings.TrimSuffix(csvPath, filepathExt(csvPath)) + ".manifest.json"
	f, err := os.Create(manifestPath)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := gojay.NewEncoder(f)
	return enc.EncodeObject(m)
}

func filepathExt(p string) string {
	for i := len(p) - 1; i >= 0 && p[i] != '/'; i-- {
		if p[i] == '.' {
			return p[i:]
		}
	}
	return ""
}
