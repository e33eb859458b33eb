// Package encoding defines the contracts implemented by the value and level
// codecs of the shred package.
//
// Encoders and decoders are parameterized by the physical type of the values
// they operate on; implementations support a subset of the contract and report
// ErrNotSupported for the rest.
package encoding

import (
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/shred/format"
)

var (
	// ErrNotSupported is an error returned when the underlying encoding does
	// not support the type of values being encoded or decoded.
	//
	// This error may be wrapped with type information, applications must use
	// errors.Is rather than equality comparisons to test the error values
	// returned by encoders and decoders.
	ErrNotSupported = errors.New("encoding not supported")

	// ErrUnexpectedEndOfStream is an error returned when decoding needs more
	// bytes than remain in the input.
	//
	// As with ErrNotSupported, this error may be wrapped with specific
	// information about the problem and applications are expected to use
	// errors.Is for comparisons.
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")

	// ErrInvalidArgument is an error returned when one or more arguments
	// passed to the encoding functions are incorrect.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Encoding represents one serialization format for values or levels.
type Encoding interface {
	fmt.Stringer

	// Returns the wire-level identifier of the encoding.
	Encoding() format.Encoding

	// Creates a decoder reading encoded values from r.
	NewDecoder(io.Reader) Decoder

	// Creates an encoder writing encoded values to w.
	NewEncoder(io.Writer) Encoder
}

// Encoder serializes batches of values of a single physical type.
type Encoder interface {
	// Changes the output of the encoder, resetting any buffered state.
	Reset(io.Writer)

	Encoding() format.Encoding

	EncodeBoolean(data []bool) error

	EncodeInt32(data []int32) error

	EncodeInt64(data []int64) error

	EncodeInt96(data [][12]byte) error

	EncodeFloat(data []float32) error

	EncodeDouble(data []float64) error

	EncodeByteArray(data [][]byte) error

	EncodeFixedLenByteArray(size int, data []byte) error

	// Encodes a sequence of definition or repetition levels. The bit width
	// of the levels must have been configured with SetBitWidth first.
	EncodeLevels(data []byte) error

	// Sets the bit width of levels processed by EncodeLevels. Encodings that
	// do not carry levels ignore the value.
	SetBitWidth(bitWidth int)
}

// Decoder reads batches of values of a single physical type. The decode
// methods return the number of values read, and io.EOF after the last value
// of the input has been consumed.
type Decoder interface {
	// Changes the input of the decoder, resetting any buffered state.
	Reset(io.Reader)

	Encoding() format.Encoding

	DecodeBoolean(data []bool) (int, error)

	DecodeInt32(data []int32) (int, error)

	DecodeInt64(data []int64) (int, error)

	DecodeInt96(data [][12]byte) (int, error)

	DecodeFloat(data []float32) (int, error)

	DecodeDouble(data []float64) (int, error)

	DecodeByteArray(data [][]byte) (int, error)

	DecodeFixedLenByteArray(size int, data []byte) (int, error)

	DecodeLevels(data []byte) (int, error)

	SetBitWidth(bitWidth int)
}

func errNotSupported(typ string) error {
	return fmt.Errorf("%s: %w", typ, ErrNotSupported)
}
