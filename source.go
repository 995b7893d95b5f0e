package fetchz

import "context"

// Source is implemented by user data sources. Name is the cache and batch
// discriminator: two sources with the same name are treated as the same
// source, so names must be disjoint across a program.
//
// Both methods must be referentially transparent with respect to identity
// equality: within one run, fetching the same identity twice must yield the
// same value. The executor picks either method per batch; implementations
// that cannot batch natively may implement GetMany with GetManyFromGet.
type Source[K comparable, V any] interface {
	// Name returns the stable source name.
	Name() string

	// Get fetches a single identity. ok is false if the identity is
	// unknown to the source.
	Get(ctx context.Context, id K) (v V, ok bool, err error)

	// GetMany fetches a batch of pairwise-distinct identities. The
	// returned map may be partial; absent keys mean "not found".
	GetMany(ctx context.Context, ids []K) (map[K]V, error)
}

// GetManyFromGet implements the GetMany contract as a loop over get. Meant
// for sources with no native batch capability.
func GetManyFromGet[K comparable, V any](ctx context.Context, ids []K, get func(ctx context.Context, id K) (V, bool, error)) (map[K]V, error) {
	out := make(map[K]V, len(ids))
	for _, id := range ids {
		v, ok, err := get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out[id] = v
		}
	}
	return out, nil
}

// sourceHandle is the type-erased per-request view of a Source. The name is
// the discriminator for caching and batching, so handles built from
// different constructions of the same source are interchangeable.
type sourceHandle struct {
	name    string
	getOne  func(ctx context.Context, id any) (any, bool, error)
	getMany func(ctx context.Context, ids []any) (map[any]any, error)
	valueOK func(v any) bool
}

func handleFor[K comparable, V any](src Source[K, V]) *sourceHandle {
	return &sourceHandle{
		name: src.Name(),
		getOne: func(ctx context.Context, id any) (any, bool, error) {
			return src.Get(ctx, id.(K))
		},
		getMany: func(ctx context.Context, ids []any) (map[any]any, error) {
			typed := make([]K, 0, len(ids))
			for _, id := range ids {
				typed = append(typed, id.(K))
			}
			res, err := src.GetMany(ctx, typed)
			if err != nil {
				return nil, err
			}
			out := make(map[any]any, len(res))
			for k, v := range res {
				out[k] = v
			}
			return out, nil
		},
		valueOK: func(v any) bool {
			_, ok := v.(V)
			return ok
		},
	}
}
