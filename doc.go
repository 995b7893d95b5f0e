// Package fetchz is a data-fetch scheduler. Callers describe data
// dependencies as a composable Fetch value; Run executes the description
// with automatic per-run deduplication, per-source batching and parallel
// fan-out across independent sources.
//
// # Overview
//
// A Fetch is a purely descriptive tree built from Pure, Request, Map,
// FlatMap, Product, Traverse, Sequence and Fail. Construction performs no
// I/O. The executor repeatedly plans the frontier of requests that are
// executable without crossing a data dependency, compiles it into one
// deduplicated batch per source, dispatches all batches of the round in
// parallel, and advances the tree with the fetched values.
//
// Product is the only parallel constructor; FlatMap's continuation is a
// function of the left value and therefore opaque to the planner. This
// distinction is the entire basis for batching: the planner can see through
// Product but not through FlatMap.
//
// # Basic Usage
//
//	users := myUserSource{} // implements fetchz.Source[int64, User]
//
//	f := fetchz.FlatMap(
//	    fetchz.Request[int64, User](users, 1),
//	    func(u User) fetchz.Fetch[[]User] {
//	        return fetchz.Many[int64, User](users, u.FriendIDs)
//	    },
//	)
//
//	friends, err := fetchz.Run(ctx, f)
//
// The two requests above are data-dependent and execute in two rounds. Had
// they been combined with Product instead, both would have been batched into
// a single call to the source.
//
// RunEnv additionally returns the Env bookkeeping artifact: the per-run
// cache and the ordered rounds of queries that were dispatched, which tests
// use to assert round counts, batch counts and items fetched.
package fetchz
