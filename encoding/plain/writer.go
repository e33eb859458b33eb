package plain

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/segmentio/shred/encoding"
)

// Writer writes one PLAIN value at a time to an underlying io.Writer.
type Writer struct {
	writer io.Writer
	buffer [12]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: w}
}

func (w *Writer) Reset(writer io.Writer) {
	w.writer = writer
}

func (w *Writer) WriteBoolean(value bool) error {
	b := w.buffer[:1]
	b[0] = 0
	if value {
		b[0] = 1
	}
	_, err := w.writer.Write(b)
	return err
}

func (w *Writer) WriteInt32(value int32) error {
	binary.BigEndian.PutUint32(w.buffer[:4], uint32(value))
	_, err := w.writer.Write(w.buffer[:4])
	return err
}

func (w *Writer) WriteInt64(value int64) error {
	binary.BigEndian.PutUint64(w.buffer[:8], uint64(value))
	_, err := w.writer.Write(w.buffer[:8])
	return err
}

func (w *Writer) WriteInt96(value [12]byte) error {
	copy(w.buffer[:12], value[:])
	_, err := w.writer.Write(w.buffer[:12])
	return err
}

func (w *Writer) WriteFloat(value float32) error {
	binary.BigEndian.PutUint32(w.buffer[:4], math.Float32bits(value))
	_, err := w.writer.Write(w.buffer[:4])
	return err
}

func (w *Writer) WriteDouble(value float64) error {
	binary.BigEndian.PutUint64(w.buffer[:8], math.Float64bits(value))
	_, err := w.writer.Write(w.buffer[:8])
	return err
}

func (w *Writer) WriteByteArray(value []byte) error {
	if int64(len(value)) > math.MaxUint32 {
		return fmt.Errorf("byte array of length %d is too large to be encoded in PLAIN: %w", len(value), encoding.ErrInvalidArgument)
	}
	binary.BigEndian.PutUint32(w.buffer[:4], uint32(len(value)))
	if _, err := w.writer.Write(w.buffer[:4]); err != nil {
		return err
	}
	_, err := w.writer.Write(value)
	return err
}

func (w *Writer) WriteFixedLenByteArray(value []byte) error {
	_, err := w.writer.Write(value)
	return err
}
