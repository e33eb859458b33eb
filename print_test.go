package shred_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/segmentio/shred"
)

func printTestField(name string, typ shred.Type, maxRepetitionLevel, maxDefinitionLevel byte) *shred.Field {
	field, err := shred.NewField(name, typ, maxRepetitionLevel, maxDefinitionLevel)
	if err != nil {
		panic(err)
	}
	return field
}

func textdiff(want, got string) string {
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	return fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name   string
		fields []*shred.Field
		print  string
	}{
		{
			name:  "",
			print: `message {}`,
		},

		{
			name:  "test",
			print: `message test {}`,
		},

		{
			name: "test",
			fields: []*shred.Field{
				printTestField("on", shred.BooleanType, 0, 0),
			},
			print: `message test {
	required boolean on;
}`,
		},

		{
			name: "record",
			fields: []*shred.Field{
				printTestField("id", shred.Int64Type, 0, 0),
				printTestField("name", shred.StringType, 0, 1),
				printTestField("tags", shred.StringType, 1, 1),
				printTestField("date", shred.DateType, 0, 0),
				printTestField("time", shred.TimestampMillisType, 0, 0),
				printTestField("uuid", shred.UUIDType, 0, 0),
				printTestField("hash", shred.FixedLenByteArrayType(8), 0, 0),
				printTestField("legacy", shred.Int96Type, 0, 0),
				printTestField("score", shred.FloatType, 0, 0),
				printTestField("ratio", shred.DoubleType, 0, 0),
				printTestField("data", shred.ByteArrayType, 0, 0),
				printTestField("count", shred.Int32Type, 0, 1),
			},
			print: `message record {
	required int64 id;
	optional binary name (UTF8);
	repeated binary tags (UTF8);
	required int32 date (DATE);
	required int64 time (TIMESTAMP_MILLIS);
	required fixed_len_byte_array(16) uuid (UUID);
	required fixed_len_byte_array(8) hash;
	required int96 legacy;
	required float score;
	required double ratio;
	required binary data;
	optional int32 count;
}`,
		},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			buffer := new(strings.Builder)

			if err := shred.Print(buffer, test.name, test.fields); err != nil {
				t.Fatal(err)
			}

			if got := buffer.String(); got != test.print {
				t.Errorf("print mismatch:\n%s", textdiff(test.print, got))
			}
		})
	}
}

func TestPrintIndent(t *testing.T) {
	fields := []*shred.Field{
		printTestField("x", shred.Int32Type, 0, 0),
		printTestField("y", shred.Int32Type, 0, 0),
	}

	buffer := new(strings.Builder)
	if err := shred.PrintIndent(buffer, "point", fields, "", " "); err != nil {
		t.Fatal(err)
	}

	want := `message point { required int32 x; required int32 y; }`
	if got := buffer.String(); got != want {
		t.Errorf("print mismatch:\n%s", textdiff(want, got))
	}
}

func TestPrintColumn(t *testing.T) {
	words := shredTestColumn(t, "words", shred.StringType, 1, 2, []shred.Value{
		shred.ValueOf("a").Level(0, 2),
		shred.ValueOf("b").Level(1, 2),
		shred.Value{}.Level(0, 1),
		shred.ValueOf("c").Level(0, 2),
	})

	numbers := shredTestColumn(t, "numbers", shred.Int64Type, 0, 0, []shred.Value{
		shred.ValueOf(int64(1)),
		shred.ValueOf(int64(-42)),
		shred.ValueOf(int64(7)),
	})

	tests := []struct {
		scenario string
		column   *shred.Column
		print    string
	}{
		{
			scenario: "repeated strings with nulls",
			column:   words,
			print: `+-----+------------+------------+-------+
| ROW | REPETITION | DEFINITION | VALUE |
+-----+------------+------------+-------+
|   0 |          0 |          2 | a     |
|   0 |          1 |          2 | b     |
|   1 |          0 |          1 | NULL  |
|   2 |          0 |          2 | c     |
+-----+------------+------------+-------+
`,
		},

		{
			scenario: "required int64s",
			column:   numbers,
			print: `+-----+------------+------------+-------+
| ROW | REPETITION | DEFINITION | VALUE |
+-----+------------+------------+-------+
|   0 |          0 |          0 |     1 |
|   1 |          0 |          0 |   -42 |
|   2 |          0 |          0 |     7 |
+-----+------------+------------+-------+
`,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			buffer := new(strings.Builder)

			if err := shred.PrintColumn(buffer, test.column); err != nil {
				t.Fatal(err)
			}

			if got := buffer.String(); got != test.print {
				t.Errorf("print mismatch:\n%s", textdiff(test.print, got))
			}
		})
	}
}
