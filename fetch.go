package fetchz

// Fetch describes one or more deferred fetches yielding a value of type A.
// A Fetch is immutable once constructed; building one performs no I/O.
// The same Fetch value may be passed to Run multiple times.
type Fetch[A any] struct {
	node node
}

// node is the type-erased tree the planner and executor operate on. Generic
// type information is captured in closures (combine, cont) at construction
// time, so the runtime never needs to carry type parameters.
type node interface {
	isNode()
}

type pureNode struct {
	value any
}

type reqNode struct {
	source   *sourceHandle
	identity any
}

type joinNode struct {
	left    node
	right   node
	combine func(l, r any) any
}

type bindNode struct {
	left node
	cont func(v any) node
}

type failNode struct {
	err error
}

func (pureNode) isNode() {}
func (reqNode) isNode()  {}
func (joinNode) isNode() {}
func (bindNode) isNode() {}
func (failNode) isNode() {}

// Pure lifts an already-known value into a Fetch. Running it dispatches no
// rounds.
func Pure[A any](v A) Fetch[A] {
	return Fetch[A]{node: pureNode{value: v}}
}

// Fail lifts an error into a Fetch. Reducing it fails the run with an
// UnhandledError wrapping err.
func Fail[A any](err error) Fetch[A] {
	return Fetch[A]{node: failNode{err: err}}
}

// Request describes fetching a single identity from a source. Identities
// for the same source name are deduplicated and batched across the whole
// round the request ends up in.
func Request[K comparable, V any](src Source[K, V], id K) Fetch[V] {
	return Fetch[V]{node: reqNode{source: handleFor(src), identity: id}}
}

// Map transforms the result of a Fetch with a pure function.
func Map[A, B any](f Fetch[A], fn func(A) B) Fetch[B] {
	return FlatMap(f, func(a A) Fetch[B] {
		return Pure(fn(a))
	})
}

// FlatMap sequences two fetches: the continuation receives the result of f
// and returns the next Fetch. The continuation is opaque to the planner, so
// requests inside it never share a round with requests in f.
func FlatMap[A, B any](f Fetch[A], fn func(A) Fetch[B]) Fetch[B] {
	return Fetch[B]{node: bindNode{
		left: f.node,
		cont: func(v any) node {
			return fn(v.(A)).node
		},
	}}
}

// Pair holds the results of the two sides of a Product.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Product combines two independent fetches. Both sides are planned into the
// same rounds; requests to the same source are merged into one batch.
func Product[A, B any](l Fetch[A], r Fetch[B]) Fetch[Pair[A, B]] {
	return Fetch[Pair[A, B]]{node: joinNode{
		left:  l.node,
		right: r.node,
		combine: func(lv, rv any) any {
			return Pair[A, B]{First: lv.(A), Second: rv.(B)}
		},
	}}
}

// Traverse applies fn to every item and collects the results in input
// order. All produced fetches are independent and batch together.
func Traverse[T, A any](items []T, fn func(T) Fetch[A]) Fetch[[]A] {
	out := Fetch[[]A]{node: pureNode{value: []A(nil)}}
	for _, item := range items {
		out = Fetch[[]A]{node: joinNode{
			left:  out.node,
			right: fn(item).node,
			combine: func(acc, v any) any {
				prev := acc.([]A)
				next := make([]A, len(prev), len(prev)+1)
				copy(next, prev)
				return append(next, v.(A))
			},
		}}
	}
	return out
}

// Sequence collects a slice of fetches into a Fetch of a slice, preserving
// order. All elements are independent and batch together.
func Sequence[A any](fs []Fetch[A]) Fetch[[]A] {
	return Traverse(fs, func(f Fetch[A]) Fetch[A] { return f })
}

// Many fetches several identities from one source, preserving the order of
// ids in the result. Duplicates are fetched once.
func Many[K comparable, V any](src Source[K, V], ids []K) Fetch[[]V] {
	return Traverse(ids, func(id K) Fetch[V] {
		return Request(src, id)
	})
}
