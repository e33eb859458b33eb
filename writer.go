package shred

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/shred/format"
	"github.com/segmentio/shred/internal/debug"
)

// magic is the four byte marker found at the beginning and the end of every
// file produced by this package.
const magic = "SHD1"

// A Writer produces a file of shredded columns to an io.Writer.
//
// Files start and end with the magic marker. Each column is written as a
// column chunk holding a single data page, and the footer records the schema
// and chunk locations as thrift-compact file metadata so the columns can be
// read back with OpenFile.
//
// This example showcases a typical use of writers:
//
//	writer := shred.NewWriter(output)
//
//	for _, column := range columns {
//		if err := writer.WriteColumn(column); err != nil {
//			...
//		}
//	}
//
//	if err := writer.Close(); err != nil {
//		...
//	}
//
// All columns of a file describe the same records, so they must hold the
// same number of rows.
type Writer struct {
	writer   offsetTrackingWriter
	config   *WriterConfig
	pages    *PageWriter
	schema   []format.SchemaElement
	columns  []format.ColumnChunk
	metadata []format.KeyValue
	numRows  int64
}

// NewWriter constructs a Writer producing a file to output.
//
// The function panics if the writer configuration is invalid.
func NewWriter(output io.Writer, options ...WriterOption) *Writer {
	config := DefaultWriterConfig()
	config.Apply(options...)
	if err := config.Validate(); err != nil {
		panic(err)
	}

	w := &Writer{
		config:   config,
		metadata: make([]format.KeyValue, 0, len(config.KeyValueMetadata)),
	}
	w.writer.Reset(output)
	w.pages = NewPageWriter(&w.writer, config)

	for k, v := range config.KeyValueMetadata {
		w.metadata = append(w.metadata, format.KeyValue{Key: k, Value: v})
	}
	format.SortKeyValueMetadata(w.metadata)
	return w
}

// Reset clears the state of the writer and changes its output to the given
// io.Writer, allowing it to be reused to produce another file.
//
// Reset may be called at any time, including after a writer was closed.
func (w *Writer) Reset(output io.Writer) {
	w.writer.Reset(output)
	w.pages.Reset(&w.writer)
	w.schema = w.schema[:0]
	w.columns = w.columns[:0]
	w.numRows = 0
}

// WriteColumn appends a column to the file, immediately writing its content
// as a single column chunk.
//
// The first column written determines the number of rows of the file; the
// method errors with ErrLevelCountMismatch if a later column holds a
// different number of rows, and with ErrInvalidArgument if the file already
// holds a column of the same name.
func (w *Writer) WriteColumn(column *Column) error {
	if w.writer.writer == nil {
		return io.ErrClosedPipe
	}
	if column == nil {
		return fmt.Errorf("writing a nil column: %w", ErrInvalidArgument)
	}

	field := column.Field()
	for i := range w.schema {
		if w.schema[i].Name == field.Name() {
			return fmt.Errorf("the file already holds a column named %q: %w", field.Name(), ErrInvalidArgument)
		}
	}

	numRows := int64(column.NumRows())
	if len(w.columns) > 0 && numRows != w.numRows {
		return fmt.Errorf("writing column %q of %d rows to a file holding %d rows per column: %w",
			field.Name(), numRows, w.numRows, ErrLevelCountMismatch)
	}

	if w.writer.offset == 0 {
		if _, err := w.writer.WriteString(magic); err != nil {
			return err
		}
	}

	dataPageOffset := w.writer.offset
	stats, err := w.pages.writePage(column)
	if err != nil {
		return err
	}
	debug.Format("wrote column %q: %d values in %d bytes at offset %d",
		field.Name(), stats.numValues, stats.compressedSize, dataPageOffset)

	typ := field.Type()
	typeLength := int32(0)
	if typ.Kind() == FixedLenByteArray {
		typeLength = int32(typ.Length())
	}

	w.schema = append(w.schema, format.SchemaElement{
		Type:               typ.PhysicalType(),
		TypeLength:         typeLength,
		RepetitionType:     field.repetitionType(),
		Name:               field.Name(),
		ConvertedType:      typ.ConvertedType(),
		MaxDefinitionLevel: int32(field.MaxDefinitionLevel()),
		MaxRepetitionLevel: int32(field.MaxRepetitionLevel()),
	})

	minValue, maxValue := column.Bounds()
	w.columns = append(w.columns, format.ColumnChunk{
		FileOffset: dataPageOffset,
		MetaData: format.ColumnMetaData{
			Type:                  typ.PhysicalType(),
			Encoding:              format.Plain,
			PathInSchema:          []string{field.Name()},
			Codec:                 w.config.Compression.CompressionCodec(),
			NumValues:             int64(stats.numValues),
			TotalUncompressedSize: stats.uncompressedSize,
			TotalCompressedSize:   stats.compressedSize,
			DataPageOffset:        dataPageOffset,
			Statistics: format.Statistics{
				Min:       minValue.Bytes(),
				Max:       maxValue.Bytes(),
				NullCount: int64(stats.numNulls),
			},
		},
	})

	w.numRows = numRows
	return nil
}

// Close writes the file footer and trailing magic marker. The file is not
// readable until Close has been called.
//
// Closing a writer twice is a no-op; writing a column after Close errors
// with io.ErrClosedPipe.
func (w *Writer) Close() error {
	if w.writer.writer == nil {
		return nil // already closed
	}
	defer func() {
		w.writer.writer = nil
	}()

	// Files with no columns still carry the leading magic marker so readers
	// can tell an empty file from a torn write.
	if w.writer.offset == 0 {
		if _, err := w.writer.WriteString(magic); err != nil {
			return err
		}
	}

	rowGroups := []format.RowGroup(nil)
	if len(w.columns) > 0 {
		totalByteSize := int64(0)
		for i := range w.columns {
			totalByteSize += w.columns[i].MetaData.TotalUncompressedSize
		}
		rowGroups = []format.RowGroup{{
			Columns:       w.columns,
			TotalByteSize: totalByteSize,
			NumRows:       w.numRows,
		}}
	}

	footer, err := thrift.Marshal(new(thrift.CompactProtocol), &format.FileMetaData{
		Version:          1,
		Schema:           w.schema,
		NumRows:          w.numRows,
		RowGroups:        rowGroups,
		KeyValueMetadata: w.metadata,
		CreatedBy:        w.config.CreatedBy,
	})
	if err != nil {
		return err
	}

	length := len(footer)
	footer = append(footer, 0, 0, 0, 0)
	footer = append(footer, magic...)
	binary.LittleEndian.PutUint32(footer[length:], uint32(length))

	_, err = w.writer.Write(footer)
	return err
}

type offsetTrackingWriter struct {
	writer io.Writer
	offset int64
}

func (w *offsetTrackingWriter) Reset(writer io.Writer) {
	w.writer = writer
	w.offset = 0
}

func (w *offsetTrackingWriter) Write(b []byte) (int, error) {
	n, err := w.writer.Write(b)
	w.offset += int64(n)
	return n, err
}

func (w *offsetTrackingWriter) WriteString(s string) (int, error) {
	n, err := io.WriteString(w.writer, s)
	w.offset += int64(n)
	return n, err
}
