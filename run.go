package fetchz

import (
	"context"
	"fmt"
	"log/slog"
)

type runner struct {
	cache      Cache
	dispatcher Dispatcher
	log        *slog.Logger
}

func newRunner(opts ...Option) *runner {
	r := &runner{
		cache:      NewMemoryCache(),
		dispatcher: &GroupDispatcher{},
		log:        NullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the fetch and returns its result. The bookkeeping Env is
// discarded; use RunEnv to inspect it.
func Run[A any](ctx context.Context, f Fetch[A], opts ...Option) (A, error) {
	v, _, err := RunEnv(ctx, f, opts...)
	return v, err
}

// RunEnv executes the fetch and returns its result together with the Env
// bookkeeping artifact. The Env is also populated on failure, up to and
// including the round that failed.
func RunEnv[A any](ctx context.Context, f Fetch[A], opts ...Option) (A, *Env, error) {
	var zero A
	r := newRunner(opts...)
	env := &Env{Cache: r.cache}

	out, err := r.execute(ctx, f.node, env)
	if err != nil {
		return zero, env, err
	}

	v, ok := out.(A)
	if !ok {
		if out == nil {
			return zero, env, nil
		}
		return zero, env, fmt.Errorf("fetchz: result has unexpected type %T", out)
	}
	return v, env, nil
}

// roundView overlays one round's results on the run cache so the tree can
// be advanced even when the cache is forgetful.
type roundView struct {
	results map[Key]any
	cache   Cache
}

func (v roundView) Get(key Key) (any, bool, error) {
	if val, ok := v.results[key]; ok {
		return val, true, nil
	}
	return v.cache.Get(key)
}

func (v roundView) Put(key Key, value any) error {
	return v.cache.Put(key, value)
}

// execute drives the round loop: advance the tree against the cache, plan
// the frontier, compile one batch per source, dispatch the round, merge
// results, repeat until the tree is terminal. Every dispatched round
// consumes at least one frontier request, so the loop terminates.
func (r *runner) execute(ctx context.Context, n node, env *Env) (any, error) {
	n, err := rewrite(n, r.cache)
	if err != nil {
		return nil, err
	}

	for round := 1; ; round++ {
		switch t := n.(type) {
		case pureNode:
			return t.value, nil
		case failNode:
			return nil, &UnhandledError{Env: env, Err: t.err}
		}

		batches, err := compileRound(frontier(n), r.cache)
		if err != nil {
			return nil, err
		}
		if len(batches) == 0 {
			return nil, ErrNoProgress
		}

		r.log.Debug("dispatching round",
			slog.Int("round", round),
			slog.Int("batches", len(batches)))

		results, err := r.runRound(ctx, batches, env)
		if err != nil {
			return nil, err
		}

		r.log.Debug("round complete",
			slog.Int("round", round),
			slog.Int("items", len(results)))

		n, err = rewrite(n, roundView{results: results, cache: r.cache})
		if err != nil {
			return nil, err
		}
	}
}

// runRound dispatches all batches of one round through the dispatcher and
// merges the gathered results into the cache from this single goroutine.
// Batches that succeeded are merged and recorded even if a sibling batch
// failed, so error diagnostics carry complete state.
func (r *runner) runRound(ctx context.Context, batches []*batch, env *Env) (map[Key]any, error) {
	results := make([]map[any]any, len(batches))
	jobs := make([]func(context.Context) error, len(batches))
	for i, b := range batches {
		i, b := i, b
		jobs[i] = func(ctx context.Context) error {
			if b.kind() == RequestOne {
				v, ok, err := b.source.getOne(ctx, b.ids[0])
				if err != nil {
					return err
				}
				m := make(map[any]any, 1)
				if ok {
					m[b.ids[0]] = v
				}
				results[i] = m
				return nil
			}
			m, err := b.source.getMany(ctx, b.ids)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		}
	}

	dispatchErr := r.dispatcher.Dispatch(ctx, jobs)

	merged := make(map[Key]any)
	queries := make([]Query, 0, len(batches))
	missing := make(map[string][]any)
	missingFromOne := false
	for i, b := range batches {
		queries = append(queries, Query{Source: b.source.name, Kind: b.kind(), Identities: b.ids})
		res := results[i]
		if res == nil {
			continue
		}
		for _, id := range b.ids {
			v, ok := res[id]
			if !ok {
				missing[b.source.name] = append(missing[b.source.name], id)
				if b.kind() == RequestOne {
					missingFromOne = true
				}
				continue
			}
			key := Key{Source: b.source.name, Identity: id}
			if err := r.cache.Put(key, v); err != nil {
				return nil, err
			}
			merged[key] = v
		}
	}
	env.Rounds = append(env.Rounds, Round{Queries: queries})

	if dispatchErr != nil {
		return nil, dispatchErr
	}
	if len(missing) > 0 {
		total := 0
		for _, ids := range missing {
			total += len(ids)
		}
		if total == 1 && missingFromOne {
			for name, ids := range missing {
				return nil, &NotFoundError{Env: env, Source: name, Identity: ids[0]}
			}
		}
		return nil, &MissingIdentitiesError{Env: env, Missing: missing}
	}
	return merged, nil
}
