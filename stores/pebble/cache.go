// Package pebble provides a durable fetchz.Cache backed by a pebble
// database. Unlike the in-memory cache, entries survive the process, so a
// pre-warmed cache can suppress fetches across runs and restarts.
package pebble

import (
	"errors"
	"fmt"

	"github.com/birdayz/fetchz"
	"github.com/cockroachdb/pebble"
	"go.uber.org/multierr"
)

type Cache struct {
	db       *pebble.DB
	bindings map[string]Binding
	ownsDB   bool
}

// NewCache wraps an existing pebble database. The caller keeps ownership of
// the database; Close flushes but does not close it.
func NewCache(db *pebble.DB, bindings map[string]Binding) *Cache {
	return &Cache{db: db, bindings: bindings}
}

// Open opens (or creates) a pebble database at dir and returns a cache
// owning it. Close closes the database.
func Open(dir string, bindings map[string]Binding) (*Cache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, bindings: bindings, ownsDB: true}, nil
}

func (c *Cache) Get(key fetchz.Key) (any, bool, error) {
	bind, kb, err := c.keyBytes(key)
	if err != nil {
		return nil, false, err
	}

	raw, closer, err := c.db.Get(kb)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer closer.Close()

	buf := make([]byte, len(raw))
	copy(buf, raw)

	v, err := bind.DecodeValue(buf)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Cache) Put(key fetchz.Key, value any) error {
	bind, kb, err := c.keyBytes(key)
	if err != nil {
		return err
	}
	vb, err := bind.EncodeValue(value)
	if err != nil {
		return err
	}
	return c.db.Set(kb, vb, &pebble.WriteOptions{Sync: false})
}

// keyBytes lays out the cache key as "source \x00 identity-bytes". Source
// names must not contain NUL.
func (c *Cache) keyBytes(key fetchz.Key) (Binding, []byte, error) {
	bind, ok := c.bindings[key.Source]
	if !ok {
		return Binding{}, nil, fmt.Errorf("pebble: no binding for source %q", key.Source)
	}
	ib, err := bind.EncodeIdentity(key.Identity)
	if err != nil {
		return Binding{}, nil, err
	}
	kb := make([]byte, 0, len(key.Source)+1+len(ib))
	kb = append(kb, key.Source...)
	kb = append(kb, 0)
	kb = append(kb, ib...)
	return bind, kb, nil
}

func (c *Cache) Flush() error {
	return c.db.Flush()
}

func (c *Cache) Close() error {
	err := c.db.Flush()
	if c.ownsDB {
		err = multierr.Append(err, c.db.Close())
	}
	return err
}
