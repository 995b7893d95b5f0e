package fetchz

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrNoProgress is returned when a non-terminal fetch has no dispatchable
// requests left. It indicates a broken Cache implementation (one that
// acknowledges a key during compilation but cannot serve it afterwards).
var ErrNoProgress = errors.New("fetchz: no executable requests in a non-terminal fetch")

// NotFoundError is returned when a single-identity query resolves but the
// source reports the identity as unknown.
type NotFoundError struct {
	Env      *Env
	Source   string
	Identity any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fetchz: identity %v not found in source %q", e.Identity, e.Source)
}

// MissingIdentitiesError is returned when batched queries resolve with some
// identities absent. Missing maps source name to the absent identities, in
// query order.
type MissingIdentitiesError struct {
	Env     *Env
	Missing map[string][]any
}

func (e *MissingIdentitiesError) Error() string {
	total := 0
	for _, ids := range e.Missing {
		total += len(ids)
	}
	names := maps.Keys(e.Missing)
	slices.Sort(names)
	return fmt.Sprintf("fetchz: %d identities missing from sources %v", total, names)
}

// UnhandledError is returned when a fetch built with Fail is reduced. It
// wraps the user payload.
type UnhandledError struct {
	Env *Env
	Err error
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("fetchz: unhandled failure: %v", e.Err)
}

func (e *UnhandledError) Unwrap() error {
	return e.Err
}

// WrongTypeError is returned when a cache lookup yields a value whose
// dynamic type does not match the source's value type. It indicates either
// colliding source names or a cache seeded with the wrong type.
type WrongTypeError struct {
	Source   string
	Identity any
	Value    any
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("fetchz: cached value for identity %v of source %q has unexpected type %T", e.Identity, e.Source, e.Value)
}
