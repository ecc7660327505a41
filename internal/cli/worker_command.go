package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fxwatch/fxwatch/internal/worker"
)

// runWorkerControl handles `worker <name> <on|off>`. "on" blocks for the
// worker's whole run; "off" signals a process started elsewhere.
func (a *App) runWorkerControl(ctx context.Context, s *serviceSet, args []string) error {
	if len(args) < 2 {
		return usageErrorf("worker requires <name> and <on|off>")
	}
	name, action := args[0], args[1]

	fs := flag.NewFlagSet("worker", flag.ContinueOnError)
	iterations := fs.Int("iterations", 0, "number of iterations to run (0 = until stopped)")
	interval := fs.Int("interval", 0, "seconds between iterations")
	if err := fs.Parse(args[2:]); err != nil {
		return usageErrorf("worker: %v", err)
	}

	registry := a.buildWorkerRegistry(s)
	w, ok := registry.Get(name)
	if !ok {
		available := strings.Join(registry.Names(), ", ")
		if available == "" {
			available = "none"
		}
		return usageErrorf("worker %q not found, available workers: %s", name, available)
	}

	runner := worker.NewRunner(a.cfg.WorkerLockDir, a.logger)

	switch action {
	case "on":
		if *interval > 0 {
			if configurable, ok := w.(interface{ SetSleepInterval(time.Duration) }); ok {
				configurable.SetSleepInterval(time.Duration(*interval) * time.Second)
			}
		}
		a.serveMetrics()
		return runner.Start(ctx, w, *iterations)
	case "off":
		if !runner.IsRunning(name) {
			fmt.Printf("Worker %q is not running\n", name)
			return nil
		}
		if err := runner.Stop(name); err != nil {
			return err
		}
		fmt.Printf("Worker %q has been stopped\n", name)
		return nil
	default:
		return usageErrorf("invalid action %q, valid actions are: on, off", action)
	}
}

func (a *App) buildWorkerRegistry(s *serviceSet) *worker.Registry {
	registry := worker.NewRegistry()

	metrics := worker.NewMetrics(prometheus.DefaultRegisterer)
	rateWorker := worker.NewExchangeRateWorker(s.pairRepo, s.fetch, a.logger, metrics)
	rateWorker.SetSleepInterval(a.cfg.WorkerSleepInterval)
	registry.Register(rateWorker)

	return registry
}

// serveMetrics exposes prometheus counters while a worker runs. Disabled
// when METRICS_ADDR is empty.
func (a *App) serveMetrics() {
	if a.cfg.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		a.logger.Info("serving metrics", slog.String("addr", a.cfg.MetricsAddr))
		if err := http.ListenAndServe(a.cfg.MetricsAddr, mux); err != nil {
			a.logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
}
