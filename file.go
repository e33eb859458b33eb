package shred

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/shred/format"
	"github.com/segmentio/shred/internal/debug"
)

// File represents a file of shredded columns opened for reading.
type File struct {
	metadata format.FileMetaData
	protocol thrift.CompactProtocol
	reader   io.ReaderAt
	size     int64
	config   *ReaderConfig
	buffer   [8]byte
	fields   []*Field
	chunks   []*format.ColumnChunk
}

// OpenFile opens a file from the content between offset 0 and the given size
// in r.
//
// Only the magic markers and the footer are read; column chunks are left
// untouched until ReadColumn is called, so successfully opening a file does
// not validate that its pages are intact.
func OpenFile(r io.ReaderAt, size int64, options ...ReaderOption) (*File, error) {
	config, err := NewReaderConfig(options...)
	if err != nil {
		return nil, err
	}

	f := &File{
		reader: r,
		size:   size,
		config: config,
	}

	if size < 12 {
		return nil, fmt.Errorf("file of size %d is too small to hold a shredded file: %w", size, ErrCorrupted)
	}

	if _, err := r.ReadAt(f.buffer[:4], 0); err != nil {
		return nil, fmt.Errorf("reading magic header of shredded file: %w", err)
	}
	if string(f.buffer[:4]) != magic {
		return nil, fmt.Errorf("invalid magic header of shredded file: %q: %w", f.buffer[:4], ErrCorrupted)
	}

	if _, err := r.ReadAt(f.buffer[:8], size-8); err != nil {
		return nil, fmt.Errorf("reading magic footer of shredded file: %w", err)
	}
	if string(f.buffer[4:8]) != magic {
		return nil, fmt.Errorf("invalid magic footer of shredded file: %q: %w", f.buffer[4:8], ErrCorrupted)
	}

	footerSize := int64(binary.LittleEndian.Uint32(f.buffer[:4]))
	if footerSize > size-12 {
		return nil, fmt.Errorf("footer of %d bytes does not fit in a file of %d bytes: %w", footerSize, size, ErrCorrupted)
	}
	footerData := io.NewSectionReader(r, size-(footerSize+8), footerSize)

	buffer := acquireBufioReader(footerData)
	defer releaseBufioReader(buffer)

	if err := thrift.NewDecoder(f.protocol.NewReader(buffer)).Decode(&f.metadata); err != nil {
		return nil, fmt.Errorf("reading metadata of shredded file: %w", err)
	}

	for i := range f.metadata.RowGroups {
		rowGroup := &f.metadata.RowGroups[i]
		for j := range rowGroup.Columns {
			f.chunks = append(f.chunks, &rowGroup.Columns[j])
		}
	}
	if len(f.chunks) != len(f.metadata.Schema) {
		return nil, fmt.Errorf("file holds %d schema elements but %d column chunks: %w",
			len(f.metadata.Schema), len(f.chunks), ErrCorrupted)
	}

	f.fields = make([]*Field, len(f.metadata.Schema))
	for i := range f.metadata.Schema {
		field, err := openField(&f.metadata.Schema[i])
		if err != nil {
			return nil, fmt.Errorf("opening column %d of shredded file: %w", i, err)
		}
		f.fields[i] = field
	}

	debug.Format("opened shredded file of %d bytes: %d columns, %d rows",
		size, len(f.fields), f.metadata.NumRows)
	return f, nil
}

// openField reconstructs the field described by a schema element of the file
// footer.
func openField(el *format.SchemaElement) (*Field, error) {
	typ, err := openFieldType(el)
	if err != nil {
		return nil, err
	}
	if el.MaxRepetitionLevel < 0 || el.MaxRepetitionLevel > 255 ||
		el.MaxDefinitionLevel < 0 || el.MaxDefinitionLevel > 255 {
		return nil, fmt.Errorf("column %q declares levels up to R=%d/D=%d: %w",
			el.Name, el.MaxRepetitionLevel, el.MaxDefinitionLevel, ErrCorrupted)
	}
	return NewField(el.Name, typ, byte(el.MaxRepetitionLevel), byte(el.MaxDefinitionLevel))
}

func openFieldType(el *format.SchemaElement) (Type, error) {
	if el.ConvertedType != nil {
		switch convertedType := *el.ConvertedType; convertedType {
		case format.UTF8:
			if el.Type == format.ByteArray {
				return StringType, nil
			}
		case format.Date:
			if el.Type == format.Int32 {
				return DateType, nil
			}
		case format.TimestampMillis:
			if el.Type == format.Int64 {
				return TimestampMillisType, nil
			}
		case format.UUID:
			if el.Type == format.FixedLenByteArray && el.TypeLength == 16 {
				return UUIDType, nil
			}
		}
		return nil, fmt.Errorf("column %q cannot be annotated as %s when stored as %s: %w",
			el.Name, el.ConvertedType, el.Type, ErrCorrupted)
	}

	switch el.Type {
	case format.Boolean:
		return BooleanType, nil
	case format.Int32:
		return Int32Type, nil
	case format.Int64:
		return Int64Type, nil
	case format.Int96:
		return Int96Type, nil
	case format.Float:
		return FloatType, nil
	case format.Double:
		return DoubleType, nil
	case format.ByteArray:
		return ByteArrayType, nil
	case format.FixedLenByteArray:
		if el.TypeLength <= 0 {
			return nil, fmt.Errorf("column %q is a fixed length byte array of %d bytes: %w",
				el.Name, el.TypeLength, ErrCorrupted)
		}
		return FixedLenByteArrayType(int(el.TypeLength)), nil
	default:
		return nil, fmt.Errorf("column %q has unknown physical type %d: %w", el.Name, el.Type, ErrCorrupted)
	}
}

// Metadata returns the file metadata decoded from the footer.
func (f *File) Metadata() *format.FileMetaData { return &f.metadata }

// Schema returns the schema elements of the file footer, one per column.
func (f *File) Schema() []format.SchemaElement { return f.metadata.Schema }

// Fields returns the fields of the file columns, reconstructed from the
// schema of the footer.
//
// The returned slice and its fields are shared across calls and must be
// treated as read-only.
func (f *File) Fields() []*Field { return f.fields }

// NumRows returns the number of rows held by each column of the file.
func (f *File) NumRows() int64 { return f.metadata.NumRows }

// NumColumns returns the number of columns in the file.
func (f *File) NumColumns() int { return len(f.fields) }

// Lookup returns the value associated with the given key in the
// application-defined metadata of the file footer.
func (f *File) Lookup(key string) (value string, ok bool) {
	for i := range f.metadata.KeyValueMetadata {
		if f.metadata.KeyValueMetadata[i].Key == key {
			return f.metadata.KeyValueMetadata[i].Value, true
		}
	}
	return "", false
}

// ReadColumn reads the chunk of column i back into a Column.
//
// Each call decodes the chunk from the underlying reader anew; the returned
// columns are independent and owned by their callers.
func (f *File) ReadColumn(i int) (*Column, error) {
	if i < 0 || i >= len(f.fields) {
		return nil, fmt.Errorf("reading column %d of a file holding %d columns: %w", i, len(f.fields), ErrInvalidArgument)
	}

	chunk := f.chunks[i]
	section := io.NewSectionReader(f, chunk.MetaData.DataPageOffset, chunk.MetaData.TotalCompressedSize)
	pages := NewPageReader(section, f.config)
	return pages.ReadColumn(f.fields[i], chunk.MetaData.Codec)
}

// Size returns the size of f (in bytes).
func (f *File) Size() int64 { return f.size }

// ReadAt reads bytes into b from f at the given offset.
//
// The method satisfies the io.ReaderAt interface.
func (f *File) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 || off >= f.size {
		return 0, io.EOF
	}

	if limit := f.size - off; limit < int64(len(b)) {
		n, err := f.reader.ReadAt(b[:limit], off)
		if err == nil {
			err = io.EOF
		}
		return n, err
	}

	return f.reader.ReadAt(b, off)
}

var (
	_ io.ReaderAt = (*File)(nil)
)

var bufioReaders sync.Pool // *bufio.Reader

func acquireBufioReader(r io.Reader) *bufio.Reader {
	b, _ := bufioReaders.Get().(*bufio.Reader)
	if b == nil {
		b = bufio.NewReader(r)
	} else {
		b.Reset(r)
	}
	return b
}

func releaseBufioReader(b *bufio.Reader) {
	b.Reset(nil)
	bufioReaders.Put(b)
}
