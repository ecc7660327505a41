// Package worker implements long-running pollable workers and their
// lock/stop-file lifecycle protocol.
package worker

import (
	"context"
	"sort"
	"time"
)

// Worker is a pollable unit of background work. Process performs one tick;
// the runner drives the loop, sleeping SleepInterval between ticks.
type Worker interface {
	Name() string
	Process(ctx context.Context) error
	SleepInterval() time.Duration
}

// Registry maps worker names to implementations. Registration is explicit
// and static; there is no tag scanning or reflection.
type Registry struct {
	workers map[string]Worker
}

func NewRegistry() *Registry {
	return &Registry{workers: make(map[string]Worker)}
}

func (r *Registry) Register(w Worker) {
	r.workers[w.Name()] = w
}

// Get returns the worker registered under name, or false.
func (r *Registry) Get(name string) (Worker, bool) {
	w, ok := r.workers[name]
	return w, ok
}

// Names returns the registered worker names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.workers))
	for name := range r.workers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
