package plain

import (
	"fmt"
	"io"

	"github.com/segmentio/shred/format"
)

type Decoder struct {
	plain Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{plain: Reader{reader: r}}
}

func (d *Decoder) Encoding() format.Encoding {
	return format.Plain
}

func (d *Decoder) Reset(r io.Reader) {
	d.plain.Reset(r)
}

func (d *Decoder) DecodeBoolean(data []bool) (int, error) {
	for i := range data {
		v, err := d.plain.ReadBoolean()
		if err != nil {
			return i, err
		}
		data[i] = v
	}
	return len(data), nil
}

func (d *Decoder) DecodeInt32(data []int32) (int, error) {
	for i := range data {
		v, err := d.plain.ReadInt32()
		if err != nil {
			return i, err
		}
		data[i] = v
	}
	return len(data), nil
}

func (d *Decoder) DecodeInt64(data []int64) (int, error) {
	for i := range data {
		v, err := d.plain.ReadInt64()
		if err != nil {
			return i, err
		}
		data[i] = v
	}
	return len(data), nil
}

func (d *Decoder) DecodeInt96(data [][12]byte) (int, error) {
	for i := range data {
		v, err := d.plain.ReadInt96()
		if err != nil {
			return i, err
		}
		data[i] = v
	}
	return len(data), nil
}

func (d *Decoder) DecodeFloat(data []float32) (int, error) {
	for i := range data {
		v, err := d.plain.ReadFloat()
		if err != nil {
			return i, err
		}
		data[i] = v
	}
	return len(data), nil
}

func (d *Decoder) DecodeDouble(data []float64) (int, error) {
	for i := range data {
		v, err := d.plain.ReadDouble()
		if err != nil {
			return i, err
		}
		data[i] = v
	}
	return len(data), nil
}

func (d *Decoder) DecodeByteArray(data [][]byte) (int, error) {
	for i := range data {
		v, err := d.plain.ReadByteArray()
		if err != nil {
			return i, err
		}
		data[i] = v
	}
	return len(data), nil
}

func (d *Decoder) DecodeFixedLenByteArray(size int, data []byte) (int, error) {
	if size <= 0 || (len(data)%size) != 0 {
		return 0, fmt.Errorf("length of fixed byte array is not a multiple of its size: size=%d length=%d", size, len(data))
	}
	n := 0
	for i, j := 0, size; j <= len(data); i, j = i+size, j+size {
		if err := d.plain.readFull(data[i:j], "FIXED_LEN_BYTE_ARRAY"); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (d *Decoder) DecodeLevels(data []byte) (int, error) {
	return 0, errNotSupported("LEVELS")
}

func (d *Decoder) SetBitWidth(bitWidth int) {}
