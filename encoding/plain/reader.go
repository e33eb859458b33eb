package plain

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/segmentio/shred/encoding"
)

// Reader reads one PLAIN value at a time from an underlying io.Reader.
//
// The read methods return io.EOF when the input is exhausted at a value
// boundary, and an error wrapping encoding.ErrUnexpectedEndOfStream when the
// input ends in the middle of a value.
type Reader struct {
	reader io.Reader
	buffer [12]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{reader: r}
}

func (r *Reader) Reset(reader io.Reader) {
	r.reader = reader
}

func (r *Reader) ReadBoolean() (bool, error) {
	b, err := r.read(1, "BOOLEAN")
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.read(4, "INT32")
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.read(8, "INT64")
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadInt96() ([12]byte, error) {
	v := [12]byte{}
	b, err := r.read(12, "INT96")
	if err != nil {
		return v, err
	}
	copy(v[:], b)
	return v, nil
}

func (r *Reader) ReadFloat() (float32, error) {
	b, err := r.read(4, "FLOAT")
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadDouble() (float64, error) {
	b, err := r.read(8, "DOUBLE")
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadByteArray() ([]byte, error) {
	b, err := r.read(4, "BYTE_ARRAY")
	if err != nil {
		return nil, err
	}
	size := int(binary.BigEndian.Uint32(b))
	item := make([]byte, size)
	if size != 0 {
		if _, err := io.ReadFull(r.reader, item); err != nil {
			return nil, fmt.Errorf("reading %d bytes of PLAIN BYTE_ARRAY value: %w", size, encoding.ErrUnexpectedEndOfStream)
		}
	}
	return item, nil
}

func (r *Reader) ReadFixedLenByteArray(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("fixed length byte array has negative size %d: %w", size, encoding.ErrInvalidArgument)
	}
	item := make([]byte, size)
	if err := r.readFull(item, "FIXED_LEN_BYTE_ARRAY"); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Reader) read(n int, typ string) ([]byte, error) {
	b := r.buffer[:n]
	if err := r.readFull(b, typ); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Reader) readFull(b []byte, typ string) error {
	switch _, err := io.ReadFull(r.reader, b); err {
	case nil:
		return nil
	case io.EOF:
		return io.EOF
	case io.ErrUnexpectedEOF:
		return fmt.Errorf("reading %d bytes of PLAIN %s value: %w", len(b), typ, encoding.ErrUnexpectedEndOfStream)
	default:
		return err
	}
}
