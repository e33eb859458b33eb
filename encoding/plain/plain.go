// Package plain implements the primitive value codec: scalars are stored in
// their fixed big-endian width, byte arrays carry a 4 byte big-endian length
// prefix, and fixed length byte arrays are stored raw.
package plain

import (
	"fmt"
	"io"

	"github.com/segmentio/shred/encoding"
	"github.com/segmentio/shred/format"
)

type Encoding struct{}

func (e *Encoding) String() string {
	return "PLAIN"
}

func (e *Encoding) Encoding() format.Encoding {
	return format.Plain
}

func (e *Encoding) NewDecoder(r io.Reader) encoding.Decoder {
	return NewDecoder(r)
}

func (e *Encoding) NewEncoder(w io.Writer) encoding.Encoder {
	return NewEncoder(w)
}

func errNotSupported(typ string) error {
	return fmt.Errorf("%s: %w", typ, encoding.ErrNotSupported)
}
