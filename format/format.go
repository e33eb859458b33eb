// Package format defines the serialized representation of the metadata
// written alongside shredded columns: physical and converted type tags,
// page and file headers, and column statistics.
//
// The structures in this package are serialized with the thrift compact
// protocol of github.com/segmentio/encoding/thrift.
package format

import "sort"

// Type is the physical storage type of the values of a column.
type Type int32

const (
	Boolean           Type = 0
	Int32             Type = 1
	Int64             Type = 2
	Int96             Type = 3
	Float             Type = 4
	Double            Type = 5
	ByteArray         Type = 6
	FixedLenByteArray Type = 7
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "Type(?)"
	}
}

// ConvertedType refines the interpretation of a physical type, for example
// marking a BYTE_ARRAY column as holding UTF8 text.
type ConvertedType int32

const (
	UTF8            ConvertedType = 0
	Date            ConvertedType = 1
	TimestampMillis ConvertedType = 2
	UUID            ConvertedType = 3
)

func (t ConvertedType) String() string {
	switch t {
	case UTF8:
		return "UTF8"
	case Date:
		return "DATE"
	case TimestampMillis:
		return "TIMESTAMP_MILLIS"
	case UUID:
		return "UUID"
	default:
		return "ConvertedType(?)"
	}
}

// FieldRepetitionType states whether a field is required, optional, or
// repeated.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = 0
	Optional FieldRepetitionType = 1
	Repeated FieldRepetitionType = 2
)

func (t FieldRepetitionType) String() string {
	switch t {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return "FieldRepetitionType(?)"
	}
}

// Encoding identifies how the values of a page are serialized.
type Encoding int32

const (
	Plain Encoding = 0
	RLE   Encoding = 1
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case RLE:
		return "RLE"
	default:
		return "Encoding(?)"
	}
}

// CompressionCodec identifies the compression algorithm applied to page data.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	Brotli       CompressionCodec = 3
	Lz4          CompressionCodec = 4
	Zstd         CompressionCodec = 5
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Brotli:
		return "BROTLI"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	default:
		return "CompressionCodec(?)"
	}
}

// PageType identifies the kind of a page; only data pages exist today but
// the field is carried in headers so new page kinds can be added without
// breaking readers.
type PageType int32

const (
	DataPage PageType = 0
)

func (t PageType) String() string {
	switch t {
	case DataPage:
		return "DATA_PAGE"
	default:
		return "PageType(?)"
	}
}

// SchemaElement describes one leaf column of a file. The schema carried by
// files of this format is flat: nesting has already been shredded away and
// only the maximum levels remain.
type SchemaElement struct {
	Type               Type                `thrift:"1,required"`
	TypeLength         int32               `thrift:"2,optional"`
	RepetitionType     FieldRepetitionType `thrift:"3,required"`
	Name               string              `thrift:"4,required"`
	ConvertedType      *ConvertedType      `thrift:"5,optional"`
	MaxDefinitionLevel int32               `thrift:"6,required"`
	MaxRepetitionLevel int32               `thrift:"7,required"`
}

// Statistics of a page or column chunk. Min and Max hold plain-encoded
// values of the column's physical type; all fields are optional so that
// writers may omit what they did not compute.
type Statistics struct {
	Max           []byte `thrift:"1,optional"`
	Min           []byte `thrift:"2,optional"`
	NullCount     int64  `thrift:"3,optional"`
	DistinctCount int64  `thrift:"4,optional"`
}

// DataPageHeader describes a data page: the level and value counts needed
// to size decoding buffers, the value encoding, and the byte length of each
// level section so readers can locate the value stream.
type DataPageHeader struct {
	NumValues                  int32      `thrift:"1,required"`
	NumNulls                   int32      `thrift:"2,required"`
	NumRows                    int32      `thrift:"3,required"`
	Encoding                   Encoding   `thrift:"4,required"`
	DefinitionLevelsByteLength int32      `thrift:"5,required"`
	RepetitionLevelsByteLength int32      `thrift:"6,required"`
	IsCompressed               bool       `thrift:"7,optional"`
	Statistics                 Statistics `thrift:"8,optional"`
}

// PageHeader precedes every page in a column chunk.
type PageHeader struct {
	Type                 PageType        `thrift:"1,required"`
	UncompressedPageSize int32           `thrift:"2,required"`
	CompressedPageSize   int32           `thrift:"3,required"`
	CRC                  int32           `thrift:"4,optional"`
	DataPageHeader       *DataPageHeader `thrift:"5,optional"`
}

// KeyValue is an entry of the application-defined metadata of a file.
type KeyValue struct {
	Key   string `thrift:"1,required"`
	Value string `thrift:"2,optional"`
}

// ColumnMetaData describes the chunk of a column stored in a row group.
type ColumnMetaData struct {
	Type                  Type             `thrift:"1,required"`
	Encoding              Encoding         `thrift:"2,required"`
	PathInSchema          []string         `thrift:"3,required"`
	Codec                 CompressionCodec `thrift:"4,required"`
	NumValues             int64            `thrift:"5,required"`
	TotalUncompressedSize int64            `thrift:"6,required"`
	TotalCompressedSize   int64            `thrift:"7,required"`
	DataPageOffset        int64            `thrift:"8,required"`
	Statistics            Statistics       `thrift:"9,optional"`
}

// ColumnChunk binds a column's metadata to its position in the file.
type ColumnChunk struct {
	FileOffset int64          `thrift:"1,required"`
	MetaData   ColumnMetaData `thrift:"2,required"`
}

// RowGroup is a horizontal partition of the file's columns.
type RowGroup struct {
	Columns       []ColumnChunk `thrift:"1,required"`
	TotalByteSize int64         `thrift:"2,required"`
	NumRows       int64         `thrift:"3,required"`
}

// FileMetaData is the footer of a file.
type FileMetaData struct {
	Version          int32           `thrift:"1,required"`
	Schema           []SchemaElement `thrift:"2,required"`
	NumRows          int64           `thrift:"3,required"`
	RowGroups        []RowGroup      `thrift:"4,required"`
	KeyValueMetadata []KeyValue      `thrift:"5,optional"`
	CreatedBy        string          `thrift:"6,optional"`
}

// SortKeyValueMetadata sorts the slice of KeyValue entries by key, then by
// value, so the footer content is deterministic.
func SortKeyValueMetadata(kv []KeyValue) {
	sort.Slice(kv, func(i, j int) bool {
		switch {
		case kv[i].Key < kv[j].Key:
			return true
		case kv[i].Key > kv[j].Key:
			return false
		default:
			return kv[i].Value < kv[j].Value
		}
	})
}
