// Package config loads and validates the engine's key-value configuration
// file: an INI-style format with "#"/";" comments, "[section]" headers, and
// "key = value" pairs, addressed by the fully-qualified key
// "section.name". Every key is required except the optional metrics.addr and
// grpc.health_addr; a missing or unparsable value is a fatal,
// key-identifying error.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config is the fully parsed, validated, immutable-per-run configuration.
type Config struct {
	SNRStartDB float64
	SNRStopDB  float64
	SNRStepDB  float64

	MinErrors uint64
	MaxBits   uint64
	BerFloor  float64

	OutFile string
	Seed    uint64

	Modem     string
	Channel   string
	Coder     string
	FrameLen  int

	CILevel   float64
	CIAbs     float64
	CIRel     float64
	CIMinBits uint64

	Threads int

	// MetricsAddr and HealthAddr are ambient additions consumed only by
	// cmd/bersim-agent; both default to "" (disabled) so existing config
	// files written against the required-key set keep working.
	MetricsAddr string
	HealthAddr  string
}

// KeyError reports a missing or unparsable configuration key, identifying
// the offending key and (when applicable) the observed string value.
type KeyError struct {
	Key   string
	Value string
	Err   error
}

func (e *KeyError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing required key: %s", e.Key)
	}
	return fmt.Sprintf("invalid value for key %q: %q (%v)", e.Key, e.Value, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot open config file: %w", err)
	}
	defer f.Close()
	kv, err := parseINI(f)
	if err != nil {
		return Config{}, err
	}
	return fromKV(kv)
}

// parseINI scans the INI-style grammar into a flat map keyed by
// "section.name" (or bare "name" outside any section).
func parseINI(r io.Reader) (map[string]string, error) {
	kv := make(map[string]string)
	section := ""
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if cut := strings.IndexAny(line, "#;"); cut >= 0 {
			line = line[:cut]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if key == "" || val == "" {
			continue
		}
		if section != "" {
			key = section + "." + key
		}
		kv[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return kv, nil
}

func requireString(kv map[string]string, key string) (string, error) {
	v, ok := kv[key]
	if !ok {
		return "", &KeyError{Key: key}
	}
	return v, nil
}

func requireFloat(kv map[string]string, key string) (float64, error) {
	s, err := requireString(kv, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &KeyError{Key: key, Value: s, Err: err}
	}
	return v, nil
}

func requireInt(kv map[string]string, key string) (int, error) {
	s, err := requireString(kv, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &KeyError{Key: key, Value: s, Err: err}
	}
	return v, nil
}

func requireUint64(kv map[string]string, key string) (uint64, error) {
	s, err := requireString(kv, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &KeyError{Key: key, Value: s, Err: err}
	}
	return v, nil
}

func fromKV(kv map[string]string) (Config, error) {
	var c Config
	var err error

	if c.SNRStartDB, err = requireFloat(kv, "snr.start_db"); err != nil {
		return Config{}, err
	}
	if c.SNRStopDB, err = requireFloat(kv, "snr.stop_db"); err != nil {
		return Config{}, err
	}
	if c.SNRStepDB, err = requireFloat(kv, "snr.step_db"); err != nil {
		return Config{}, err
	}

	if c.MinErrors, err = requireUint64(kv, "stopping.min_errors"); err != nil {
		return Config{}, err
	}
	if c.MaxBits, err = requireUint64(kv, "stopping.max_bits"); err != nil {
		return Config{}, err
	}
	if c.BerFloor, err = requireFloat(kv, "stopping.ber_floor"); err != nil {
		return Config{}, err
	}

	if c.OutFile, err = requireString(kv, "io.file"); err != nil {
		return Config{}, err
	}
	if c.Seed, err = requireUint64(kv, "rng.seed"); err != nil {
		return Config{}, err
	}

	if c.Modem, err = requireString(kv, "model.modem"); err != nil {
		return Config{}, err
	}
	if c.Channel, err = requireString(kv, "model.channel"); err != nil {
		return Config{}, err
	}
	if c.Coder, err = requireString(kv, "model.coder"); err != nil {
		return Config{}, err
	}
	if c.FrameLen, err = requireInt(kv, "model.frame_len"); err != nil {
		return Config{}, err
	}

	if c.CILevel, err = requireFloat(kv, "ci.level"); err != nil {
		return Config{}, err
	}
	if c.CIAbs, err = requireFloat(kv, "ci.abs"); err != nil {
		return Config{}, err
	}
	if c.CIRel, err = requireFloat(kv, "ci.rel"); err != nil {
		return Config{}, err
	}
	if c.CIMinBits, err = requireUint64(kv, "ci.min_bits"); err != nil {
		return Config{}, err
	}

	if c.Threads, err = requireInt(kv, "parallel.threads"); err != nil {
		return Config{}, err
	}

	// Ambient, optional keys: absent means disabled.
	c.MetricsAddr = kv["metrics.addr"]
	c.HealthAddr = kv["grpc.health_addr"]

	if err := validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func validate(c Config) error {
	if c.SNRStepDB <= 0 {
		return &KeyError{Key: "snr.step_db", Value: fmt.Sprint(c.SNRStepDB), Err: fmt.Errorf("must be > 0")}
	}
	if c.SNRStopDB < c.SNRStartDB {
		return &KeyError{Key: "snr.stop_db", Value: fmt.Sprint(c.SNRStopDB), Err: fmt.Errorf("must be >= snr.start_db")}
	}
	if c.BerFloor < 0 {
		return &KeyError{Key: "stopping.ber_floor", Value: fmt.Sprint(c.BerFloor), Err: fmt.Errorf("must be >= 0")}
	}
	if c.FrameLen <= 0 {
		return &KeyError{Key: "model.frame_len", Value: fmt.Sprint(c.FrameLen), Err: fmt.Errorf("must be > 0")}
	}
	if !(c.CILevel > 0 && c.CILevel < 1) {
		return &KeyError{Key: "ci.level", Value: fmt.Sprint(c.CILevel), Err: fmt.Errorf("must be in (0,1)")}
	}
	if c.CIAbs < 0 {
		return &KeyError{Key: "ci.abs", Value: fmt.Sprint(c.CIAbs), Err: fmt.Errorf("must be >= 0")}
	}
	if c.CIRel < 0 {
		return &KeyError{Key: "ci.rel", Value: fmt.Sprint(c.CIRel), Err: fmt.Errorf("must be >= 0")}
	}
	return nil
}
