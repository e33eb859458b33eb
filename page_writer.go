package shred

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/shred/encoding/plain"
	"github.com/segmentio/shred/encoding/rle"
	"github.com/segmentio/shred/format"
	"github.com/segmentio/shred/internal/bits"
)

// A PageWriter serializes columns into self-describing data pages.
//
// Each page starts with a thrift-encoded page header, followed by the page
// data: the repetition levels, definition levels, and values of the column,
// concatenated in that order and compressed as a single unit with the codec
// the writer was configured with. The header records the byte length of each
// level section and a CRC32 checksum of the compressed page data, which is
// everything a reader needs to decode the page back into an equivalent
// column.
//
// PageWriter values are not safe to use concurrently from multiple
// goroutines.
type PageWriter struct {
	writer  io.Writer
	config  *WriterConfig
	values  plain.Encoder
	levels  rle.Encoder
	scratch []byte

	header struct {
		buffer   bytes.Buffer
		protocol thrift.CompactProtocol
		encoder  thrift.Encoder
	}

	page struct {
		buffer     bytes.Buffer
		compressed []byte
	}
}

// pageStats carries the counts and sizes of a page after it has been written,
// which the file writer aggregates into column chunk metadata.
type pageStats struct {
	numValues        int32
	numNulls         int32
	numRows          int32
	uncompressedSize int64
	compressedSize   int64
}

// NewPageWriter constructs a PageWriter serializing pages to output.
//
// The function panics if the writer configuration is invalid.
func NewPageWriter(output io.Writer, options ...WriterOption) *PageWriter {
	config := DefaultWriterConfig()
	config.Apply(options...)
	if err := config.Validate(); err != nil {
		panic(err)
	}
	w := &PageWriter{writer: output, config: config}
	w.page.buffer.Grow(config.PageBufferSize)
	return w
}

// Reset changes the output of w, allowing it to be reused to write pages to
// another stream.
func (w *PageWriter) Reset(output io.Writer) {
	w.writer = output
}

// WritePage writes the content of the given column as a single data page,
// and returns the number of bytes written to the underlying writer, header
// included.
//
// The page records the window of the column only; slicing a column before
// writing it is the intended way of splitting a large column across multiple
// pages.
func (w *PageWriter) WritePage(column *Column) (int64, error) {
	stats, err := w.writePage(column)
	if err != nil {
		return 0, err
	}
	return stats.compressedSize, nil
}

func (w *PageWriter) writePage(column *Column) (pageStats, error) {
	if column == nil {
		return pageStats{}, fmt.Errorf("writing a nil column: %w", ErrInvalidArgument)
	}

	field := column.Field()
	numValues := column.Len()
	numNulls := column.NumNulls()
	numRows := column.NumRows()

	w.page.buffer.Reset()

	repetitionLevelsByteLength := 0
	if maxRepetitionLevel := field.MaxRepetitionLevel(); maxRepetitionLevel > 0 {
		w.levels.Reset(&w.page.buffer)
		w.levels.SetBitWidth(bits.Len8(maxRepetitionLevel))
		if err := w.levels.EncodeLevels(column.RepetitionLevels()); err != nil {
			return pageStats{}, fmt.Errorf("encoding repetition levels of column %q: %w", field.Name(), err)
		}
		repetitionLevelsByteLength = w.page.buffer.Len()
	}

	definitionLevelsByteLength := 0
	if maxDefinitionLevel := field.MaxDefinitionLevel(); maxDefinitionLevel > 0 {
		definitionLevels := column.DefinitionLevels()
		if definitionLevels == nil {
			// Columns constructed from null-free values carry no definition
			// levels, but the page must still record one per value for the
			// reader to consume.
			w.scratch = appendLevel(w.scratch[:0], maxDefinitionLevel, numValues)
			definitionLevels = w.scratch
		}
		levelsOffset := w.page.buffer.Len()
		w.levels.Reset(&w.page.buffer)
		w.levels.SetBitWidth(bits.Len8(maxDefinitionLevel))
		if err := w.levels.EncodeLevels(definitionLevels); err != nil {
			return pageStats{}, fmt.Errorf("encoding definition levels of column %q: %w", field.Name(), err)
		}
		definitionLevelsByteLength = w.page.buffer.Len() - levelsOffset
	}

	w.values.Reset(&w.page.buffer)
	if err := w.encodeValues(column); err != nil {
		return pageStats{}, fmt.Errorf("encoding values of column %q: %w", field.Name(), err)
	}

	uncompressedPageSize := w.page.buffer.Len()
	compressed, err := w.config.Compression.Encode(w.page.compressed[:0], w.page.buffer.Bytes())
	if err != nil {
		return pageStats{}, fmt.Errorf("compressing page of column %q: %w", field.Name(), err)
	}
	w.page.compressed = compressed

	minValue, maxValue := column.Bounds()
	pageHeader := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: int32(uncompressedPageSize),
		CompressedPageSize:   int32(len(w.page.compressed)),
		CRC:                  int32(crc32.ChecksumIEEE(w.page.compressed)),
		DataPageHeader: &format.DataPageHeader{
			NumValues:                  int32(numValues),
			NumNulls:                   int32(numNulls),
			NumRows:                    int32(numRows),
			Encoding:                   format.Plain,
			DefinitionLevelsByteLength: int32(definitionLevelsByteLength),
			RepetitionLevelsByteLength: int32(repetitionLevelsByteLength),
			IsCompressed:               w.config.Compression.CompressionCodec() != format.Uncompressed,
			Statistics: format.Statistics{
				Min:       minValue.Bytes(),
				Max:       maxValue.Bytes(),
				NullCount: int64(numNulls),
			},
		},
	}

	w.header.buffer.Reset()
	w.header.encoder.Reset(w.header.protocol.NewWriter(&w.header.buffer))
	if err := w.header.encoder.Encode(pageHeader); err != nil {
		return pageStats{}, fmt.Errorf("encoding page header of column %q: %w", field.Name(), err)
	}

	headerSize := w.header.buffer.Len()
	if _, err := w.writer.Write(w.header.buffer.Bytes()); err != nil {
		return pageStats{}, err
	}
	if _, err := w.writer.Write(w.page.compressed); err != nil {
		return pageStats{}, err
	}

	return pageStats{
		numValues:        int32(numValues),
		numNulls:         int32(numNulls),
		numRows:          int32(numRows),
		uncompressedSize: int64(headerSize) + int64(uncompressedPageSize),
		compressedSize:   int64(headerSize) + int64(len(w.page.compressed)),
	}, nil
}

func (w *PageWriter) encodeValues(column *Column) error {
	i, j := column.denseWindow()
	data := column.data.Slice(i, j)

	switch data.kind {
	case Boolean:
		return w.values.EncodeBoolean(data.booleans)
	case Int32:
		return w.values.EncodeInt32(data.int32s)
	case Int64:
		return w.values.EncodeInt64(data.int64s)
	case Int96:
		return w.values.EncodeInt96(data.int96s)
	case Float:
		return w.values.EncodeFloat(data.floats)
	case Double:
		return w.values.EncodeDouble(data.doubles)
	case ByteArray:
		return w.values.EncodeByteArray(data.byteArrays)
	case FixedLenByteArray:
		return w.values.EncodeFixedLenByteArray(data.size, data.fixedLenByteArrays)
	default:
		return fmt.Errorf("cannot encode values of type %s: %w", data.kind, ErrInvalidArgument)
	}
}
