package codec

import (
	"encoding/json"
)

func JSONEncoder[T any]() Encoder[T] {
	return func(t T) ([]byte, error) {
		encoded, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		return encoded, nil
	}
}

func JSONDecoder[T any]() Decoder[T] {
	return func(b []byte) (T, error) {
		var decoded T
		if err := json.Unmarshal(b, &decoded); err != nil {
			return *new(T), err
		}
		return decoded, nil
	}
}

func JSON[T any]() Codec[T] {
	return Codec[T]{
		Encoder: JSONEncoder[T](),
		Decoder: JSONDecoder[T](),
	}
}
