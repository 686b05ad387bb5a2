// Command bersim-agent runs the same sweep engine as bersim but as a
// long-running process, exposing Prometheus metrics and a gRPC health
// endpoint while the sweep is in progress.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/bersim-project/bersim/internal/channel"
	"github.com/bersim-project/bersim/internal/coder"
	"github.com/bersim-project/bersim/internal/config"
	"github.com/bersim-project/bersim/internal/driver"
	"github.com/bersim-project/bersim/internal/health"
	"github.com/bersim-project/bersim/internal/metrics"
	"github.com/bersim-project/bersim/internal/modem"
	"github.com/bersim-project/bersim/internal/progress"
	"github.com/bersim-project/bersim/internal/report"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "path to the run config file (required)")
		metricsAddr = flag.String("metrics-addr", "", "address to serve /metrics on, overrides config's metrics.addr")
		healthAddr  = flag.String("health-addr", "", "address to serve the gRPC health service on, overrides config's grpc.health_addr")
	)
	flag.Parse()

	if *cfgPath == "" {
		fatalf("missing -config")
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *healthAddr != "" {
		cfg.HealthAddr = *healthAddr
	}

	m, err := modem.New(cfg.Modem)
	if err != nil {
		fatalf("%v", err)
	}
	ch, err := channel.New(cfg.Channel)
	if err != nil {
		fatalf("%v", err)
	}
	cd, err := coder.New(cfg.Coder)
	if err != nil {
		fatalf("%v", err)
	}

	outPath, err := report.ResolveOutputPath(cfg.OutFile, cfg.Coder, cfg.Modem, cfg.Channel, "csv")
	if err != nil {
		fatalf("resolve output path: %v", err)
	}

	var healthSrv *health.Server
	if cfg.HealthAddr != "" {
		healthSrv, err = health.Listen(cfg.HealthAddr)
		if err != nil {
			fatalf("health listen: %v", err)
		}
		go func() {
			if err := healthSrv.Serve(); err != nil {
				log.Printf("health server stopped: %v", err)
			}
		}()
	}

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	recorder := metrics.NewRecorder()
	printer := progress.New(os.Stdout)
	obs := multiObserver{recorder, printer}

	rng := rand.New(rand.NewSource(int64(masterSeed(cfg.Seed))))
	sweepCfg := driver.SweepConfig{
		StartDB: cfg.SNRStartDB,
		StopDB:  cfg.SNRStopDB,
		StepDB:  cfg.SNRStepDB,
		Point: driver.PointConfig{
			MinErrors: cfg.MinErrors,
			MaxBits:   cfg.MaxBits,
			FrameLen:  cfg.FrameLen,
			CILevel:   cfg.CILevel,
			CIAbs:     cfg.CIAbs,
			CIRel:     cfg.CIRel,
			CIMinBits: cfg.CIMinBits,
			Threads:   cfg.Threads,
			BerFloor:  cfg.BerFloor,
		},
	}

	if healthSrv != nil {
		healthSrv.SetServing(true)
	}

	startedAt := time.Now()
	results := driver.RunSweep(sweepCfg, m, ch, cd, rng, obs)
	for _, r := range results {
		printer.Done(r)
	}

	if healthSrv != nil {
		healthSrv.SetServing(false)
	}

	if err := report.WriteCSV(outPath, results); err != nil {
		fatalf("write csv: %v", err)
	}
	manifest := report.NewRunManifest(cfg)
	manifest.StartedAt = startedAt
	manifest.FinishedAt = time.Now()
	manifest.Points = results
	if err := report.WriteManifest(outPath, manifest); err != nil {
		fatalf("write manifest: %v", err)
	}

	fmt.Printf("wrote %s (%d points)\n", outPath, len(results))

	if healthSrv != nil {
		healthSrv.Stop()
	}
}

// multiObserver fans one Observe call out to every wrapped observer, in
// order, so the metrics recorder and the console printer can both ride
// along on the same driver.Observer hook.
type multiObserver []driver.Observer

func (m multiObserver) Observe(snrDB float64, bitsAfter, errsAfter uint64) {
	for _, o := range m {
		o.Observe(snrDB, bitsAfter, errsAfter)
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

// masterSeed resolves the configured seed per spec: 0 means draw one from
// the clock rather than use a fixed, reproducible stream.
func masterSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}
