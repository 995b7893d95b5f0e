package codec

import (
	"encoding/binary"
	"fmt"
)

// Int64Encoder encodes int64 to big-endian bytes
var Int64Encoder = func(data int64) ([]byte, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(data))
	return buf, nil
}

// Int64Decoder decodes big-endian bytes to int64
var Int64Decoder = func(data []byte) (int64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("int64 decoding requires exactly 8 bytes, got %d", len(data))
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

// Int64 is a Codec for int64 values
var Int64 = Codec[int64]{
	Encoder: Int64Encoder,
	Decoder: Int64Decoder,
}

// Int32Encoder encodes int32 to big-endian bytes
var Int32Encoder = func(data int32) ([]byte, error) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(data))
	return buf, nil
}

// Int32Decoder decodes big-endian bytes to int32
var Int32Decoder = func(data []byte) (int32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("int32 decoding requires exactly 4 bytes, got %d", len(data))
	}
	return int32(binary.BigEndian.Uint32(data)), nil
}

// Int32 is a Codec for int32 values
var Int32 = Codec[int32]{
	Encoder: Int32Encoder,
	Decoder: Int32Decoder,
}
