package format_test

import (
	"reflect"
	"testing"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/shred/format"
)

func TestMarshalUnmarshalFileMetaData(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	metadata := &format.FileMetaData{
		Version: 1,
		Schema: []format.SchemaElement{
			{
				Type:               format.Int64,
				RepetitionType:     format.Optional,
				Name:               "hello",
				MaxDefinitionLevel: 1,
			},
		},
		NumRows: 42,
		RowGroups: []format.RowGroup{
			{
				Columns: []format.ColumnChunk{
					{
						FileOffset: 4,
						MetaData: format.ColumnMetaData{
							Type:                  format.Int64,
							Encoding:              format.Plain,
							PathInSchema:          []string{"hello"},
							Codec:                 format.Snappy,
							NumValues:             42,
							TotalUncompressedSize: 1024,
							TotalCompressedSize:   512,
							DataPageOffset:        4,
						},
					},
				},
				TotalByteSize: 512,
				NumRows:       42,
			},
		},
		CreatedBy: "shred",
	}

	b, err := thrift.Marshal(protocol, metadata)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.FileMetaData{}
	if err := thrift.Unmarshal(protocol, b, &decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(metadata, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", metadata)
		t.Logf("found:\n%#v", decoded)
	}
}

func TestMarshalUnmarshalPageHeader(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	header := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: 100,
		CompressedPageSize:   60,
		CRC:                  1234,
		DataPageHeader: &format.DataPageHeader{
			NumValues:                  6,
			NumNulls:                   3,
			NumRows:                    6,
			Encoding:                   format.Plain,
			DefinitionLevelsByteLength: 8,
			RepetitionLevelsByteLength: 0,
			Statistics: format.Statistics{
				NullCount: 3,
			},
		},
	}

	b, err := thrift.Marshal(protocol, header)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.PageHeader{}
	if err := thrift.Unmarshal(protocol, b, &decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(header, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", header)
		t.Logf("found:\n%#v", decoded)
	}
}
