package encoding

// NotSupportedEncoder is an implementation of the value methods of the
// Encoder interface which all return ErrNotSupported. It is intended to be
// embedded by encoders that only support a subset of the contract.
type NotSupportedEncoder struct{}

func (NotSupportedEncoder) EncodeBoolean([]bool) error {
	return errNotSupported("BOOLEAN")
}

func (NotSupportedEncoder) EncodeInt32([]int32) error {
	return errNotSupported("INT32")
}

func (NotSupportedEncoder) EncodeInt64([]int64) error {
	return errNotSupported("INT64")
}

func (NotSupportedEncoder) EncodeInt96([][12]byte) error {
	return errNotSupported("INT96")
}

func (NotSupportedEncoder) EncodeFloat([]float32) error {
	return errNotSupported("FLOAT")
}

func (NotSupportedEncoder) EncodeDouble([]float64) error {
	return errNotSupported("DOUBLE")
}

func (NotSupportedEncoder) EncodeByteArray([][]byte) error {
	return errNotSupported("BYTE_ARRAY")
}

func (NotSupportedEncoder) EncodeFixedLenByteArray(int, []byte) error {
	return errNotSupported("FIXED_LEN_BYTE_ARRAY")
}

// NotSupportedDecoder is the decoding counterpart of NotSupportedEncoder.
type NotSupportedDecoder struct{}

func (NotSupportedDecoder) DecodeBoolean([]bool) (int, error) {
	return 0, errNotSupported("BOOLEAN")
}

func (NotSupportedDecoder) DecodeInt32([]int32) (int, error) {
	return 0, errNotSupported("INT32")
}

func (NotSupportedDecoder) DecodeInt64([]int64) (int, error) {
	return 0, errNotSupported("INT64")
}

func (NotSupportedDecoder) DecodeInt96([][12]byte) (int, error) {
	return 0, errNotSupported("INT96")
}

func (NotSupportedDecoder) DecodeFloat([]float32) (int, error) {
	return 0, errNotSupported("FLOAT")
}

func (NotSupportedDecoder) DecodeDouble([]float64) (int, error) {
	return 0, errNotSupported("DOUBLE")
}

func (NotSupportedDecoder) DecodeByteArray([][]byte) (int, error) {
	return 0, errNotSupported("BYTE_ARRAY")
}

func (NotSupportedDecoder) DecodeFixedLenByteArray(int, []byte) (int, error) {
	return 0, errNotSupported("FIXED_LEN_BYTE_ARRAY")
}
