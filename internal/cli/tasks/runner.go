// Package tasks runs fire-and-forget side effects of mutations
// (notification scheduling, sync triggers) so their failures are
// observable without ever failing the mutation itself.
package tasks

import (
	"sync"

	"go.uber.org/zap"
)

// Runner executes background tasks and tracks them so tests and
// shutdown can wait for the queue to drain.
type Runner struct {
	log *zap.SugaredLogger
	wg  sync.WaitGroup

	mu       sync.Mutex
	failures []error
}

// NewRunner builds a runner logging task failures through log.
func NewRunner(log *zap.SugaredLogger) *Runner {
	return &Runner{log: log}
}

// Go schedules fn in the background. A returned error is logged and
// recorded, never propagated: the operation that spawned the task has
// already succeeded.
func (r *Runner) Go(name string, fn func() error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := fn(); err != nil {
			r.log.Warnw("background task failed", "task", name, "error", err)
			r.mu.Lock()
			r.failures = append(r.failures, err)
			r.mu.Unlock()
		}
	}()
}

// Wait blocks until all scheduled tasks have finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Failures returns the errors collected so far.
func (r *Runner) Failures() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.failures...)
}
