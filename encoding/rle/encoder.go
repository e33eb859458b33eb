package rle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/segmentio/shred/encoding"
	"github.com/segmentio/shred/format"
)

type Encoder struct {
	encoding.NotSupportedEncoder
	writer   io.Writer
	data     []byte
	buffer   [binary.MaxVarintLen32]byte
	bitWidth uint
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

func (e *Encoder) Encoding() format.Encoding {
	return format.RLE
}

func (e *Encoder) Reset(w io.Writer) {
	e.writer = w
	e.data = e.data[:0]
}

func (e *Encoder) BitWidth() int {
	return int(e.bitWidth)
}

func (e *Encoder) SetBitWidth(bitWidth int) {
	e.bitWidth = uint(bitWidth)
}

// EncodeLevels writes one level section to the underlying writer. The section
// is self-delimiting, it starts with a 4 byte little-endian length prefix so
// readers can locate the values that follow without decoding the runs.
func (e *Encoder) EncodeLevels(data []byte) error {
	bitWidth := e.bitWidth
	if bitWidth == 0 || bitWidth > 8 {
		return fmt.Errorf("cannot encode levels with a bit width of %d: %w", bitWidth, encoding.ErrInvalidArgument)
	}

	e.data = e.data[:0]

	if count := len(data); count >= 8 && preferBitPack(data, bitWidth) {
		n := (count / 8) * 8
		e.encodeBitPack(data[:n], bitWidth)
		data = data[n:]
	}

	forEachRun(data, func(run []byte) {
		e.encodeRunLength(len(run), run[0])
	})

	binary.LittleEndian.PutUint32(e.buffer[:4], uint32(len(e.data)))
	if _, err := e.writer.Write(e.buffer[:4]); err != nil {
		return err
	}
	_, err := e.writer.Write(e.data)
	return err
}

func (e *Encoder) encodeRunLength(count int, value byte) {
	e.appendUvarint(uint64(count) << 1)
	e.data = append(e.data, value)
}

func (e *Encoder) encodeBitPack(data []byte, bitWidth uint) {
	e.appendUvarint(uint64(len(data)/8)<<1 | 1)

	for i := 0; i < len(data); i += 8 {
		chunk := [8]byte{}
		bitOffset := uint(0)

		for _, value := range data[i : i+8] {
			shift := bitOffset % 8
			chunk[bitOffset/8] |= value << shift
			if shift+bitWidth > 8 {
				chunk[bitOffset/8+1] |= value >> (8 - shift)
			}
			bitOffset += bitWidth
		}

		e.data = append(e.data, chunk[:bitWidth]...)
	}
}

func (e *Encoder) appendUvarint(u uint64) {
	n := binary.PutUvarint(e.buffer[:], u)
	e.data = append(e.data, e.buffer[:n]...)
}

// preferBitPack compares the estimated encoded sizes of the bit-packed and
// run-length representations of the levels and reports whether bit-packing
// is expected to produce the smaller output.
func preferBitPack(data []byte, bitWidth uint) bool {
	if bitWidth == 1 {
		return true
	}

	numberOfItems := int64(len(data))
	numberOfRuns := int64(0)

	forEachRun(data, func(run []byte) { numberOfRuns++ })

	estimatedSizeOfBitPack := numberOfItems * int64(bitWidth) / 8
	estimatedSizeOfRunLength := numberOfRuns * 2
	return estimatedSizeOfBitPack < estimatedSizeOfRunLength
}

func forEachRun(data []byte, do func(run []byte)) {
	for i := 0; i < len(data); {
		j := i + 1
		for j < len(data) && data[i] == data[j] {
			j++
		}
		do(data[i:j])
		i = j
	}
}
