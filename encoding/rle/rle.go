// Package rle implements the hybrid run-length/bit-packed codec used to
// serialize definition and repetition levels.
//
// Levels are framed as a 4 byte little-endian length prefix followed by a
// sequence of runs. Each run starts with a uvarint header whose low bit
// selects the run kind: run-length runs repeat a single level value, and
// bit-packed runs carry groups of 8 levels packed LSB first at the configured
// bit width.
package rle

import (
	"io"

	"github.com/segmentio/shred/encoding"
	"github.com/segmentio/shred/format"
)

type Encoding struct{}

func (e *Encoding) String() string {
	return "RLE"
}

func (e *Encoding) Encoding() format.Encoding {
	return format.RLE
}

func (e *Encoding) NewDecoder(r io.Reader) encoding.Decoder {
	return NewDecoder(r)
}

func (e *Encoding) NewEncoder(w io.Writer) encoding.Encoder {
	return NewEncoder(w)
}
