package fetchz

import "log/slog"

// Option is a function that configures a run
type Option func(*runner)

// WithCache sets the cache for the run. The default is a fresh MemoryCache
// per run. Pass the cache returned in a previous run's Env to suppress
// refetching across runs, or NopCache{} to disable caching.
var WithCache = func(c Cache) Option {
	return func(r *runner) {
		r.cache = c
	}
}

// WithDispatcher sets the dispatcher that executes each round's batches
var WithDispatcher = func(d Dispatcher) Option {
	return func(r *runner) {
		r.dispatcher = d
	}
}

// WithLog sets the logger for the run
var WithLog = func(log *slog.Logger) Option {
	return func(r *runner) {
		r.log = log
	}
}

// NullWriter is a writer that discards all data
type NullWriter struct{}

func (NullWriter) Write([]byte) (int, error) { return 0, nil }

// NullLogger creates a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(NullWriter{}, nil))
}
