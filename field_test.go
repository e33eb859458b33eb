package shred_test

import (
	"errors"
	"testing"

	"github.com/segmentio/shred"
)

func TestNewField(t *testing.T) {
	field, err := shred.NewField("first_name", shred.StringType, 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	if name := field.Name(); name != "first_name" {
		t.Errorf("field name mismatch: want=%q got=%q", "first_name", name)
	}
	if path := field.Path(); path != "first_name" {
		t.Errorf("field path mismatch: want=%q got=%q", "first_name", path)
	}
	if typ := field.Type(); typ != shred.StringType {
		t.Errorf("field type mismatch: want=%v got=%v", shred.StringType, typ)
	}
	if max := field.MaxRepetitionLevel(); max != 1 {
		t.Errorf("max repetition level mismatch: want=%d got=%d", 1, max)
	}
	if max := field.MaxDefinitionLevel(); max != 2 {
		t.Errorf("max definition level mismatch: want=%d got=%d", 2, max)
	}
}

func TestNewFieldErrors(t *testing.T) {
	tests := []struct {
		scenario string
		name     string
		typ      shred.Type
	}{
		{
			scenario: "empty name",
			name:     "",
			typ:      shred.Int32Type,
		},

		{
			scenario: "nil type",
			name:     "age",
			typ:      nil,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			field, err := shred.NewField(test.name, test.typ, 0, 0)
			if !errors.Is(err, shred.ErrInvalidArgument) {
				t.Errorf("error mismatch: want=%v got=%v", shred.ErrInvalidArgument, err)
			}
			if field != nil {
				t.Errorf("expected no field on error but got %v", field)
			}
		})
	}
}

func TestFieldRepetition(t *testing.T) {
	tests := []struct {
		scenario           string
		maxRepetitionLevel byte
		maxDefinitionLevel byte
		required           bool
		optional           bool
		repeated           bool
	}{
		{
			scenario: "required",
			required: true,
		},

		{
			scenario:           "optional",
			maxDefinitionLevel: 1,
			optional:           true,
		},

		{
			scenario:           "repeated",
			maxRepetitionLevel: 1,
			maxDefinitionLevel: 1,
			optional:           true,
			repeated:           true,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			field, err := shred.NewField("x", shred.DoubleType, test.maxRepetitionLevel, test.maxDefinitionLevel)
			if err != nil {
				t.Fatal(err)
			}
			if required := field.Required(); required != test.required {
				t.Errorf("required mismatch: want=%t got=%t", test.required, required)
			}
			if optional := field.Optional(); optional != test.optional {
				t.Errorf("optional mismatch: want=%t got=%t", test.optional, optional)
			}
			if repeated := field.Repeated(); repeated != test.repeated {
				t.Errorf("repeated mismatch: want=%t got=%t", test.repeated, repeated)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	tests := []struct {
		scenario           string
		name               string
		typ                shred.Type
		maxRepetitionLevel byte
		maxDefinitionLevel byte
		want               string
	}{
		{
			scenario: "required int64",
			name:     "id",
			typ:      shred.Int64Type,
			want:     "id{INT64,REQUIRED,R=0,D=0}",
		},

		{
			scenario:           "optional string",
			name:               "name",
			typ:                shred.StringType,
			maxDefinitionLevel: 1,
			want:               "name{BYTE_ARRAY,OPTIONAL,R=0,D=1}",
		},

		{
			scenario:           "repeated uuid",
			name:               "ids",
			typ:                shred.UUIDType,
			maxRepetitionLevel: 1,
			maxDefinitionLevel: 1,
			want:               "ids{FIXED_LEN_BYTE_ARRAY(16),REPEATED,R=1,D=1}",
		},

		{
			scenario: "fixed length byte array",
			name:     "hash",
			typ:      shred.FixedLenByteArrayType(10),
			want:     "hash{FIXED_LEN_BYTE_ARRAY(10),REQUIRED,R=0,D=0}",
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			field, err := shred.NewField(test.name, test.typ, test.maxRepetitionLevel, test.maxDefinitionLevel)
			if err != nil {
				t.Fatal(err)
			}
			if s := field.String(); s != test.want {
				t.Errorf("want=%q got=%q", test.want, s)
			}
		})
	}
}
