package rle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/segmentio/shred/encoding"
	"github.com/segmentio/shred/format"
)

type Decoder struct {
	encoding.NotSupportedDecoder
	data     io.LimitedReader
	init     bool
	buffer   [4]byte
	bitWidth uint

	// Decoding state carried across calls: the remainder of the current
	// run-length run, the number of values left in the current bit-packed
	// run, and the staged values of the last bit-packed group read.
	runCount   uint32
	runValue   byte
	bitCount   int
	chunk      [8]byte
	pending    [8]byte
	pendingOff int
	pendingLen int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{data: io.LimitedReader{R: r, N: 4}}
}

func (d *Decoder) Encoding() format.Encoding {
	return format.RLE
}

func (d *Decoder) Reset(r io.Reader) {
	d.data.R = r
	d.data.N = 4
	d.init = false
	d.runCount = 0
	d.bitCount = 0
	d.pendingOff = 0
	d.pendingLen = 0
}

func (d *Decoder) BitWidth() int {
	return int(d.bitWidth)
}

func (d *Decoder) SetBitWidth(bitWidth int) {
	d.bitWidth = uint(bitWidth)
}

func (d *Decoder) ReadByte() (byte, error) {
	_, err := d.data.Read(d.buffer[:1])
	return d.buffer[0], err
}

// DecodeLevels reads levels into data, returning the number of levels read.
// The method returns io.EOF when the level section has been fully consumed,
// and ErrUnexpectedEndOfStream if the input ends in the middle of a run.
func (d *Decoder) DecodeLevels(data []byte) (int, error) {
	bitWidth := d.bitWidth
	if bitWidth == 0 || bitWidth > 8 {
		return 0, fmt.Errorf("cannot decode levels with a bit width of %d: %w", bitWidth, encoding.ErrInvalidArgument)
	}

	if !d.init {
		switch _, err := io.ReadFull(&d.data, d.buffer[:4]); err {
		case nil:
		case io.EOF:
			return 0, io.EOF
		default:
			return 0, fmt.Errorf("decoding RLE level section length: %w", errEndOfStream(err))
		}
		d.data.N = int64(binary.LittleEndian.Uint32(d.buffer[:4]))
		d.init = true
	}

	decoded := 0
	for decoded < len(data) {
		switch {
		case d.pendingOff < d.pendingLen:
			n := copy(data[decoded:], d.pending[d.pendingOff:d.pendingLen])
			d.pendingOff += n
			decoded += n

		case d.runCount > 0:
			n := len(data) - decoded
			if int(d.runCount) < n {
				n = int(d.runCount)
			}
			for i := decoded; i < decoded+n; i++ {
				data[i] = d.runValue
			}
			d.runCount -= uint32(n)
			decoded += n

		case d.bitCount > 0:
			if _, err := io.ReadFull(&d.data, d.chunk[:bitWidth]); err != nil {
				return decoded, fmt.Errorf("decoding RLE bit-packed group: %w", errEndOfStream(err))
			}
			bitMask := byte(1<<bitWidth) - 1
			bitOffset := uint(0)
			for i := range d.pending {
				shift := bitOffset % 8
				value := d.chunk[bitOffset/8] >> shift
				if shift+bitWidth > 8 {
					value |= d.chunk[bitOffset/8+1] << (8 - shift)
				}
				d.pending[i] = value & bitMask
				bitOffset += bitWidth
			}
			d.pendingOff = 0
			d.pendingLen = 8
			d.bitCount -= 8

		default:
			u, err := binary.ReadUvarint(d)
			if err != nil {
				if err != io.EOF {
					err = fmt.Errorf("decoding RLE run header: %w", err)
				}
				return decoded, err
			}
			count, bitpack := uint32(u>>1), (u&1) != 0
			if bitpack {
				d.bitCount = 8 * int(count)
			} else {
				d.runCount = count
				if count > 0 {
					value, err := d.ReadByte()
					if err != nil {
						return decoded, fmt.Errorf("decoding RLE repeated value: %w", errEndOfStream(err))
					}
					d.runValue = value
				}
			}
		}
	}

	return decoded, nil
}

func errEndOfStream(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = encoding.ErrUnexpectedEndOfStream
	}
	return err
}
