package codec

var StringEncoder = func(data string) ([]byte, error) {
	return []byte(data), nil
}

var StringDecoder = func(data []byte) (string, error) {
	return string(data), nil
}

var String = Codec[string]{
	Encoder: StringEncoder,
	Decoder: StringDecoder,
}
