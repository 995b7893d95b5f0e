package fetchz

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Dispatcher runs all batch jobs of one round. The executor itself never
// creates goroutines; the dispatcher owns the scheduling policy. Dispatch
// must run every job exactly once and return only after all of them
// finished, combining their errors. Jobs of one round are independent and
// must not be cancelled because a sibling failed.
type Dispatcher interface {
	Dispatch(ctx context.Context, jobs []func(context.Context) error) error
}

// GroupDispatcher runs jobs concurrently on an errgroup, optionally bounded
// by a concurrency limit. It is the default dispatcher.
type GroupDispatcher struct {
	// Limit bounds the number of concurrently running jobs. Zero means
	// unbounded.
	Limit int
}

func (d *GroupDispatcher) Dispatch(ctx context.Context, jobs []func(context.Context) error) error {
	var g errgroup.Group
	if d.Limit > 0 {
		g.SetLimit(d.Limit)
	}
	errs := make([]error, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			errs[i] = job(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return multierr.Combine(errs...)
}

// SerialDispatcher runs jobs one after the other on the calling goroutine.
// Useful for deterministic tests and single-threaded environments.
type SerialDispatcher struct{}

func (SerialDispatcher) Dispatch(ctx context.Context, jobs []func(context.Context) error) error {
	var err error
	for _, job := range jobs {
		err = multierr.Append(err, job(ctx))
	}
	return err
}
