package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fxwatch/fxwatch/internal/apperrors"
)

// Runner drives the start/stop lifecycle for any Worker using a filesystem
// lock file and a cooperative stop-file signal.
//
// The lock file is the single source of truth for "is this worker running":
// it is written before the first tick and removed only after the loop exits.
// A worker that crashes between those points leaves a stale lock and is
// misreported as running until the lock is manually cleared. That is a known
// limitation of the protocol, kept on purpose.
type Runner struct {
	lockDir string
	logger  *slog.Logger

	// stop() waits up to stopTimeout, polling every pollInterval, for the
	// running loop to notice the stop file and clean up its lock.
	stopTimeout  time.Duration
	pollInterval time.Duration
}

func NewRunner(lockDir string, logger *slog.Logger) *Runner {
	return &Runner{
		lockDir:      lockDir,
		logger:       logger,
		stopTimeout:  5 * time.Second,
		pollInterval: time.Second,
	}
}

// Start runs the worker loop until a stop signal appears or the iteration
// budget (0 = unbounded) is exhausted. If the worker is already running the
// call is a logged no-op. Lock-file I/O failures are fatal; errors returned
// by a tick are logged and the loop continues.
func (r *Runner) Start(ctx context.Context, w Worker, iterations int) error {
	name := w.Name()
	if r.IsRunning(name) {
		r.logger.Info("worker is already running", slog.String("worker", name))
		return nil
	}

	if err := os.MkdirAll(r.lockDir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create lock directory: %v", apperrors.ErrInfrastructure, err)
	}
	lockFile := r.lockPath(name)
	if err := os.WriteFile(lockFile, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write lock file: %v", apperrors.ErrInfrastructure, err)
	}

	r.logger.Info("starting worker", slog.String("worker", name), slog.Int("pid", os.Getpid()))

	count := 0
	for r.shouldContinue(name) && (iterations <= 0 || count < iterations) {
		if err := w.Process(ctx); err != nil {
			r.logger.Error("worker iteration failed", slog.String("worker", name), slog.String("error", err.Error()))
		}
		count++
		if iterations > 0 {
			r.logger.Info("completed iteration",
				slog.String("worker", name), slog.Int("iteration", count), slog.Int("of", iterations))
		}

		if r.shouldContinue(name) && (iterations <= 0 || count < iterations) {
			select {
			case <-ctx.Done():
				r.logger.Info("context cancelled, stopping worker", slog.String("worker", name))
				return r.releaseLock(name)
			case <-time.After(w.SleepInterval()):
			}
		}
	}

	if err := r.releaseLock(name); err != nil {
		return err
	}
	r.logger.Info("worker stopped", slog.String("worker", name))
	return nil
}

// Stop requests a graceful stop via the stop file and waits (bounded) for the
// running loop to remove its lock. Without a lock file there is nothing to
// stop and no stop file is created. The stop file is removed regardless of
// whether the worker exited in time.
func (r *Runner) Stop(name string) error {
	if !r.IsRunning(name) {
		r.logger.Info("worker is not running", slog.String("worker", name))
		return nil
	}

	stopFile := r.stopPath(name)
	if err := os.WriteFile(stopFile, []byte(strconv.FormatInt(time.Now().Unix(), 10)), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write stop file: %v", apperrors.ErrInfrastructure, err)
	}
	r.logger.Info("stop signal sent", slog.String("worker", name))

	waited := time.Duration(0)
	for r.IsRunning(name) && waited < r.stopTimeout {
		time.Sleep(r.pollInterval)
		waited += r.pollInterval
	}

	if r.IsRunning(name) {
		r.logger.Warn("worker did not stop in time",
			slog.String("worker", name), slog.Duration("waited", waited))
	} else {
		r.logger.Info("worker has been stopped", slog.String("worker", name))
	}

	if err := os.Remove(stopFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to remove stop file: %v", apperrors.ErrInfrastructure, err)
	}
	return nil
}

// IsRunning reports whether the lock file for the worker name exists.
func (r *Runner) IsRunning(name string) bool {
	_, err := os.Stat(r.lockPath(name))
	return err == nil
}

// shouldContinue checks for the cooperative stop signal at the top of each
// loop iteration.
func (r *Runner) shouldContinue(name string) bool {
	if _, err := os.Stat(r.stopPath(name)); err == nil {
		r.logger.Info("stop signal detected", slog.String("worker", name))
		return false
	}
	return true
}

func (r *Runner) releaseLock(name string) error {
	if err := os.Remove(r.lockPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to remove lock file: %v", apperrors.ErrInfrastructure, err)
	}
	return nil
}

func (r *Runner) lockPath(name string) string {
	return filepath.Join(r.lockDir, name+".lock")
}

func (r *Runner) stopPath(name string) string {
	return filepath.Join(r.lockDir, name+".stop")
}
