package plain

import (
	"fmt"
	"io"

	"github.com/segmentio/shred/format"
)

type Encoder struct {
	plain Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{plain: Writer{writer: w}}
}

func (e *Encoder) Encoding() format.Encoding {
	return format.Plain
}

func (e *Encoder) Reset(w io.Writer) {
	e.plain.Reset(w)
}

func (e *Encoder) EncodeBoolean(data []bool) error {
	for _, v := range data {
		if err := e.plain.WriteBoolean(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeInt32(data []int32) error {
	for _, v := range data {
		if err := e.plain.WriteInt32(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeInt64(data []int64) error {
	for _, v := range data {
		if err := e.plain.WriteInt64(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeInt96(data [][12]byte) error {
	for _, v := range data {
		if err := e.plain.WriteInt96(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeFloat(data []float32) error {
	for _, v := range data {
		if err := e.plain.WriteFloat(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeDouble(data []float64) error {
	for _, v := range data {
		if err := e.plain.WriteDouble(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeByteArray(data [][]byte) error {
	for _, v := range data {
		if err := e.plain.WriteByteArray(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeFixedLenByteArray(size int, data []byte) error {
	if size <= 0 || (len(data)%size) != 0 {
		return fmt.Errorf("length of fixed byte array is not a multiple of its size: size=%d length=%d", size, len(data))
	}
	for i, j := 0, size; j <= len(data); i, j = i+size, j+size {
		if err := e.plain.WriteFixedLenByteArray(data[i:j]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) EncodeLevels(data []byte) error {
	return errNotSupported("LEVELS")
}

func (e *Encoder) SetBitWidth(bitWidth int) {}
