package shred

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/shred/encoding"
	"github.com/segmentio/shred/encoding/plain"
	"github.com/segmentio/shred/encoding/rle"
	"github.com/segmentio/shred/format"
	"github.com/segmentio/shred/internal/bits"
)

// A PageReader decodes data pages produced by a PageWriter back into columns.
//
// The reader consumes pages from the underlying stream one at a time; each
// call to ReadColumn decodes the next page. When the stream has been fully
// consumed, ReadColumn returns io.EOF.
//
// PageReader values are not safe to use concurrently from multiple
// goroutines.
type PageReader struct {
	reader     io.Reader
	config     *ReaderConfig
	values     plain.Decoder
	levels     rle.Decoder
	protocol   thrift.CompactProtocol
	decoder    thrift.Decoder
	section    bytes.Reader
	compressed []byte
	page       []byte
}

// NewPageReader constructs a PageReader consuming pages from input.
//
// The function panics if the reader configuration is invalid.
func NewPageReader(input io.Reader, options ...ReaderOption) *PageReader {
	config := DefaultReaderConfig()
	config.Apply(options...)
	if err := config.Validate(); err != nil {
		panic(err)
	}
	r := &PageReader{
		reader:     input,
		config:     config,
		compressed: make([]byte, 0, config.PageBufferSize),
	}
	r.decoder.Reset(r.protocol.NewReader(input))
	return r
}

// Reset changes the input of r, allowing it to be reused to read pages from
// another stream.
func (r *PageReader) Reset(input io.Reader) {
	r.reader = input
	r.decoder.Reset(r.protocol.NewReader(input))
}

// ReadColumn decodes the next page of the stream into a column of the given
// field. The codec argument tells the reader how the page data was
// compressed; files record it in the column chunk metadata of their footer.
//
// The method returns io.EOF when all pages have been consumed.
func (r *PageReader) ReadColumn(field *Field, codec format.CompressionCodec) (*Column, error) {
	if field == nil {
		return nil, fmt.Errorf("reading a column with a nil field: %w", ErrInvalidArgument)
	}

	header := new(format.PageHeader)
	if err := r.decoder.Decode(header); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("decoding page header of column %q: %w", field.Name(), err)
	}

	dataHeader := header.DataPageHeader
	if header.Type != format.DataPage || dataHeader == nil {
		return nil, fmt.Errorf("column %q: cannot decode page of type %s: %w", field.Name(), header.Type, ErrCorrupted)
	}
	if dataHeader.Encoding != format.Plain {
		return nil, fmt.Errorf("column %q: values are encoded as %s: %w", field.Name(), dataHeader.Encoding, encoding.ErrNotSupported)
	}

	numValues := int(dataHeader.NumValues)
	numNulls := int(dataHeader.NumNulls)
	switch {
	case numValues < 0 || numNulls < 0 || numNulls > numValues:
		return nil, fmt.Errorf("column %q: page header counts %d values and %d nulls: %w", field.Name(), numValues, numNulls, ErrCorrupted)
	case numNulls > 0 && field.MaxDefinitionLevel() == 0:
		return nil, fmt.Errorf("column %q never holds nulls but the page header counts %d: %w", field.Name(), numNulls, ErrCorrupted)
	case header.CompressedPageSize < 0:
		return nil, fmt.Errorf("column %q: page header carries a compressed size of %d bytes: %w", field.Name(), header.CompressedPageSize, ErrCorrupted)
	}

	compressedPageSize := int(header.CompressedPageSize)
	if cap(r.compressed) < compressedPageSize {
		r.compressed = make([]byte, compressedPageSize)
	} else {
		r.compressed = r.compressed[:compressedPageSize]
	}
	if _, err := io.ReadFull(r.reader, r.compressed); err != nil {
		return nil, fmt.Errorf("reading %d bytes of page data of column %q: %w", compressedPageSize, field.Name(), errEndOfStream(err))
	}

	if header.CRC != 0 {
		headerChecksum := uint32(header.CRC)
		readerChecksum := crc32.ChecksumIEEE(r.compressed)
		if headerChecksum != readerChecksum {
			return nil, fmt.Errorf("crc32 checksum mismatch in page of column %q: 0x%08X != 0x%08X: %w", field.Name(), headerChecksum, readerChecksum, ErrCorrupted)
		}
	}

	compression, err := LookupCompressionCodec(codec)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", field.Name(), err)
	}
	page, err := compression.Decode(r.page[:0], r.compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing page of column %q: %w", field.Name(), err)
	}
	r.page = page

	repetitionLevelsByteLength := int(dataHeader.RepetitionLevelsByteLength)
	definitionLevelsByteLength := int(dataHeader.DefinitionLevelsByteLength)
	levelsByteLength := repetitionLevelsByteLength + definitionLevelsByteLength
	if repetitionLevelsByteLength < 0 || definitionLevelsByteLength < 0 || levelsByteLength > len(page) {
		return nil, fmt.Errorf("column %q: %d bytes of level sections in a page of %d bytes: %w", field.Name(), levelsByteLength, len(page), ErrCorrupted)
	}

	var repetitionLevels []byte
	var definitionLevels []byte

	if maxRepetitionLevel := field.MaxRepetitionLevel(); maxRepetitionLevel > 0 {
		repetitionLevels = make([]byte, numValues)
		section := page[:repetitionLevelsByteLength]
		if err := r.decodeLevels(repetitionLevels, section, maxRepetitionLevel); err != nil {
			return nil, fmt.Errorf("decoding repetition levels of column %q: %w", field.Name(), err)
		}
	}

	if maxDefinitionLevel := field.MaxDefinitionLevel(); maxDefinitionLevel > 0 {
		definitionLevels = make([]byte, numValues)
		section := page[repetitionLevelsByteLength:levelsByteLength]
		if err := r.decodeLevels(definitionLevels, section, maxDefinitionLevel); err != nil {
			return nil, fmt.Errorf("decoding definition levels of column %q: %w", field.Name(), err)
		}
	}

	numDefined := numValues - numNulls
	data := field.Type().NewArray(numDefined)
	r.section.Reset(page[levelsByteLength:])
	r.values.Reset(&r.section)
	if err := r.decodeValues(data, numDefined); err != nil {
		return nil, fmt.Errorf("decoding values of column %q: %w", field.Name(), err)
	}

	return NewShreddedColumn(field, data, definitionLevels, repetitionLevels)
}

func (r *PageReader) decodeLevels(levels, section []byte, maxLevel byte) error {
	r.section.Reset(section)
	r.levels.Reset(&r.section)
	r.levels.SetBitWidth(bits.Len8(maxLevel))
	n, err := r.levels.DecodeLevels(levels)
	if err != nil && err != io.EOF {
		return err
	}
	if n < len(levels) {
		return fmt.Errorf("decoded %d levels out of %d: %w", n, len(levels), encoding.ErrUnexpectedEndOfStream)
	}
	return nil
}

func (r *PageReader) decodeValues(data *Array, numValues int) error {
	var n int
	var err error

	switch data.kind {
	case Boolean:
		data.booleans = data.booleans[:numValues]
		n, err = r.values.DecodeBoolean(data.booleans)
	case Int32:
		data.int32s = data.int32s[:numValues]
		n, err = r.values.DecodeInt32(data.int32s)
	case Int64:
		data.int64s = data.int64s[:numValues]
		n, err = r.values.DecodeInt64(data.int64s)
	case Int96:
		data.int96s = data.int96s[:numValues]
		n, err = r.values.DecodeInt96(data.int96s)
	case Float:
		data.floats = data.floats[:numValues]
		n, err = r.values.DecodeFloat(data.floats)
	case Double:
		data.doubles = data.doubles[:numValues]
		n, err = r.values.DecodeDouble(data.doubles)
	case ByteArray:
		data.byteArrays = data.byteArrays[:numValues]
		n, err = r.values.DecodeByteArray(data.byteArrays)
	case FixedLenByteArray:
		data.fixedLenByteArrays = data.fixedLenByteArrays[:numValues*data.size]
		n, err = r.values.DecodeFixedLenByteArray(data.size, data.fixedLenByteArrays)
	default:
		return fmt.Errorf("cannot decode values of type %s: %w", data.kind, ErrInvalidArgument)
	}

	if err != nil && err != io.EOF {
		return err
	}
	if n < numValues {
		return fmt.Errorf("decoded %d values out of %d: %w", n, numValues, encoding.ErrUnexpectedEndOfStream)
	}
	return nil
}

func errEndOfStream(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = encoding.ErrUnexpectedEndOfStream
	}
	return err
}
