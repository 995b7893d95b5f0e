package pebble

import (
	"encoding/json"

	"github.com/birdayz/fetchz/codec"
)

// Binding tells the cache how to move one source's identities and values
// between their Go representation and bytes. Bindings are keyed by source
// name; a lookup for a source without a binding is an error, not a miss.
type Binding struct {
	EncodeIdentity func(id any) ([]byte, error)
	EncodeValue    func(v any) ([]byte, error)
	DecodeValue    func(b []byte) (any, error)
}

// JSONBinding builds a Binding for a source with identity type K and value
// type V using JSON for both.
func JSONBinding[K comparable, V any]() Binding {
	valueCodec := codec.JSON[V]()
	return Binding{
		EncodeIdentity: func(id any) ([]byte, error) {
			return json.Marshal(id.(K))
		},
		EncodeValue: func(v any) ([]byte, error) {
			return valueCodec.Encoder(v.(V))
		},
		DecodeValue: func(b []byte) (any, error) {
			return valueCodec.Decoder(b)
		},
	}
}

// NewBinding builds a Binding from explicit codecs for identity and value.
func NewBinding[K comparable, V any](identity codec.Codec[K], value codec.Codec[V]) Binding {
	return Binding{
		EncodeIdentity: func(id any) ([]byte, error) {
			return identity.Encoder(id.(K))
		},
		EncodeValue: func(v any) ([]byte, error) {
			return value.Encoder(v.(V))
		},
		DecodeValue: func(b []byte) (any, error) {
			return value.Decoder(b)
		},
	}
}
