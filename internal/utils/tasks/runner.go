package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Runner executes named background jobs detached from the request cycle.
// Failures are logged rather than surfaced to the caller; Wait blocks until
// every job in flight has returned.
type Runner struct {
	timeout time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

func NewRunner(timeout time.Duration, log zerolog.Logger) *Runner {
	return &Runner{timeout: timeout, log: log}
}

func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error().Str("task", name).Msg(fmt.Sprintf("background task panicked: %v", rec))
			}
		}()

		if err := fn(ctx); err != nil {
			r.log.Error().Err(err).Str("task", name).Msg("background task failed")
		}
	}()
}

// Wait blocks until all scheduled tasks have finished. Used on shutdown and
// in tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}
