package encoding_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/segmentio/shred/encoding"
	"github.com/segmentio/shred/encoding/plain"
	"github.com/segmentio/shred/encoding/rle"
)

var booleanTests = [...][]bool{
	{},
	{true},
	{false},
	{true, false, true, false, true, true, true, false, false, true},
	{ // repeating 32x
		true, true, true, true, true, true, true, true,
		true, true, true, true, true, true, true, true,
		true, true, true, true, true, true, true, true,
		true, true, true, true, true, true, true, true,
	},
	{ // alternating 15x
		false, true, false, true, false, true, false, true,
		false, true, false, true, false, true, false,
	},
}

var int32Tests = [...][]int32{
	{},
	{0},
	{1},
	{-1, 0, 1, 0, -1, 0, 1, 0},
	{ // repeating 24x
		42, 42, 42, 42, 42, 42, 42, 42,
		42, 42, 42, 42, 42, 42, 42, 42,
		42, 42, 42, 42, 42, 42, 42, 42,
	},
	{ // never repeating
		0, 1, 2, 3, 4, 5, 6, 7,
		8, 9, 10, 11, 12, 13, 14, 15,
		16, 17, 18, 19, 20, 21, 22, 23,
	},
	{ // streaks of repeating values
		0, 0, 0, 0, 1, 1, 1, 1,
		2, 2, 2, 2, 3, 3, 3, 3,
		4, 4, 4, 4, 5, 5, 5, 5,
	},
	{math.MinInt32, math.MaxInt32},
}

var int64Tests = [...][]int64{
	{},
	{0},
	{1},
	{-1, 0, 1, 0, -1, 0, 1, 0},
	{ // repeating 24x
		42, 42, 42, 42, 42, 42, 42, 42,
		42, 42, 42, 42, 42, 42, 42, 42,
		42, 42, 42, 42, 42, 42, 42, 42,
	},
	{ // never repeating
		0, 1, 2, 3, 4, 5, 6, 7,
		8, 9, 10, 11, 12, 13, 14, 15,
		16, 17, 18, 19, 20, 21, 22, 23,
	},
	{math.MinInt64, math.MaxInt64},
}

var int96Tests = [...][][12]byte{
	{},
	{{}},
	{{0: 1}, {0: 2}, {0: 3}},
	{
		{0: 0xFF, 11: 0x80},
		{5: 0x01, 6: 0x01},
		{0: 0x01, 1: 0x02, 2: 0x03, 3: 0x04, 4: 0x05, 5: 0x06, 6: 0x07, 7: 0x08, 8: 0x09, 9: 0x0A, 10: 0x0B, 11: 0x0C},
	},
}

var floatTests = [...][]float32{
	{},
	{0},
	{1},
	{0, 1, 2, 3, 4, 5, 6, 7},
	{0.25, 0.5, 0.75, 1.0, -0.25, -0.5, -0.75, -1.0},
	{math.MaxFloat32, math.SmallestNonzeroFloat32},
}

var doubleTests = [...][]float64{
	{},
	{0},
	{1},
	{0, 1, 2, 3, 4, 5, 6, 7},
	{0.25, 0.5, 0.75, 1.0, -0.25, -0.5, -0.75, -1.0},
	{math.MaxFloat64, math.SmallestNonzeroFloat64},
}

var byteArrayTests = [...][][]byte{
	{},
	{[]byte("")},
	{[]byte("A"), []byte("B"), []byte("C")},
	{[]byte("hello world!"), bytes.Repeat([]byte("1234567890"), 100)},
}

var fixedLenByteArrayTests = [...]struct {
	size int
	data []byte
}{
	{size: 1, data: []byte("")},
	{size: 1, data: []byte("ABCDEFGH")},
	{size: 2, data: []byte("ABCDEFGH")},
	{size: 4, data: []byte("ABCDEFGH")},
	{size: 8, data: []byte("ABCDEFGH")},
	{size: 10, data: bytes.Repeat([]byte("123456789"), 100)},
	{size: 16, data: bytes.Repeat([]byte("1234567890"), 160)},
}

var levelsTests = [...]struct {
	bitWidth int
	data     []byte
}{
	{bitWidth: 1, data: []byte{}},
	{bitWidth: 1, data: []byte{0}},
	{bitWidth: 1, data: []byte{1}},
	{bitWidth: 1, data: []byte{0, 1, 0, 0, 1, 1}},
	{bitWidth: 1, data: bytes.Repeat([]byte{0}, 100)},
	{bitWidth: 1, data: bytes.Repeat([]byte{1}, 101)},
	{bitWidth: 2, data: []byte{0, 1, 2, 3, 3, 2, 1, 0, 2, 2, 2, 2}},
	{bitWidth: 3, data: []byte{0, 1, 2, 3, 4, 5, 6, 7}},
	{bitWidth: 3, data: bytes.Repeat([]byte{5}, 65)},
	{bitWidth: 5, data: []byte{31, 0, 15, 7, 3, 1, 0, 30, 29, 28, 27}},
	{bitWidth: 8, data: []byte{255, 0, 128, 64, 32, 3, 3, 3, 3, 3, 3, 3, 3}},
}

func TestEncoding(t *testing.T) {
	for _, test := range [...]struct {
		scenario string
		encoding encoding.Encoding
	}{
		{
			scenario: "PLAIN",
			encoding: new(plain.Encoding),
		},

		{
			scenario: "RLE",
			encoding: new(rle.Encoding),
		},
	} {
		t.Run(test.scenario, func(t *testing.T) { testEncoding(t, test.encoding) })
	}
}

func testEncoding(t *testing.T, e encoding.Encoding) {
	for _, test := range [...]struct {
		scenario string
		function func(*testing.T, encoding.Encoding)
	}{
		{
			scenario: "boolean",
			function: testBooleanEncoding,
		},

		{
			scenario: "int32",
			function: testInt32Encoding,
		},

		{
			scenario: "int64",
			function: testInt64Encoding,
		},

		{
			scenario: "int96",
			function: testInt96Encoding,
		},

		{
			scenario: "float",
			function: testFloatEncoding,
		},

		{
			scenario: "double",
			function: testDoubleEncoding,
		},

		{
			scenario: "byte array",
			function: testByteArrayEncoding,
		},

		{
			scenario: "fixed length byte array",
			function: testFixedLenByteArrayEncoding,
		},

		{
			scenario: "levels",
			function: testLevelsEncoding,
		},
	} {
		t.Run(test.scenario, func(t *testing.T) { test.function(t, e) })
	}
}

func testBooleanEncoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1]bool{}

	for _, test := range booleanTests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			if err := enc.EncodeBoolean(test); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test {
				n, err := dec.DecodeBoolean(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, len(test), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if tmp[0] != test[i] {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %#v\ngot  = %#v", i, test[i], tmp[0])
				}
			}

			if n, err := dec.DecodeBoolean(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testInt32Encoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1]int32{}

	for _, test := range int32Tests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			if err := enc.EncodeInt32(test); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test {
				n, err := dec.DecodeInt32(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, len(test), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if tmp[0] != test[i] {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %#v\ngot  = %#v", i, test[i], tmp[0])
				}
			}

			if n, err := dec.DecodeInt32(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testInt64Encoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1]int64{}

	for _, test := range int64Tests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			if err := enc.EncodeInt64(test); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test {
				n, err := dec.DecodeInt64(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, len(test), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if tmp[0] != test[i] {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %#v\ngot  = %#v", i, test[i], tmp[0])
				}
			}

			if n, err := dec.DecodeInt64(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testInt96Encoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1][12]byte{}

	for _, test := range int96Tests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			if err := enc.EncodeInt96(test); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test {
				n, err := dec.DecodeInt96(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, len(test), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if tmp[0] != test[i] {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %#v\ngot  = %#v", i, test[i], tmp[0])
				}
			}

			if n, err := dec.DecodeInt96(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testFloatEncoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1]float32{}

	for _, test := range floatTests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			if err := enc.EncodeFloat(test); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test {
				n, err := dec.DecodeFloat(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, len(test), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if tmp[0] != test[i] {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %#v\ngot  = %#v", i, test[i], tmp[0])
				}
			}

			if n, err := dec.DecodeFloat(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testDoubleEncoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1]float64{}

	for _, test := range doubleTests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			if err := enc.EncodeDouble(test); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test {
				n, err := dec.DecodeDouble(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, len(test), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if tmp[0] != test[i] {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %#v\ngot  = %#v", i, test[i], tmp[0])
				}
			}

			if n, err := dec.DecodeDouble(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testByteArrayEncoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1][]byte{}

	for _, test := range byteArrayTests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			if err := enc.EncodeByteArray(test); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test {
				n, err := dec.DecodeByteArray(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, len(test), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if !bytes.Equal(tmp[0], test[i]) {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %q\ngot  = %q", i, test[i], tmp[0])
				}
			}

			if n, err := dec.DecodeByteArray(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testFixedLenByteArrayEncoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)

	for _, test := range fixedLenByteArrayTests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			tmp := make([]byte, test.size)

			if err := enc.EncodeFixedLenByteArray(test.size, test.data); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			count := len(test.data) / test.size
			for i := 0; i < count; i++ {
				n, err := dec.DecodeFixedLenByteArray(test.size, tmp)
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d values: %v", i, count, err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of values: %d", n)
				}
				if want := test.data[i*test.size : (i+1)*test.size]; !bytes.Equal(tmp, want) {
					t.Fatalf("decoder decoded the wrong value at index %d:\nwant = %q\ngot  = %q", i, want, tmp)
				}
			}

			if n, err := dec.DecodeFixedLenByteArray(test.size, tmp); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the values:", n, err)
			}
		})
	}
}

func testLevelsEncoding(t *testing.T, e encoding.Encoding) {
	buf := new(bytes.Buffer)
	enc := e.NewEncoder(buf)
	dec := e.NewDecoder(buf)
	tmp := [1]byte{}

	for _, test := range levelsTests {
		t.Run("", func(t *testing.T) {
			defer buf.Reset()
			defer enc.Reset(buf)
			defer dec.Reset(buf)

			enc.SetBitWidth(test.bitWidth)
			dec.SetBitWidth(test.bitWidth)

			if err := enc.EncodeLevels(test.data); err != nil {
				if errors.Is(err, encoding.ErrNotSupported) {
					t.Skip(err)
				}
				t.Fatal(err)
			}

			for i := range test.data {
				n, err := dec.DecodeLevels(tmp[:])
				if err != nil {
					t.Fatalf("decoder returned an error after decoding %d/%d levels: %v", i, len(test.data), err)
				}
				if n != 1 {
					t.Fatalf("decoder decoded the wrong number of levels: %d", n)
				}
				if tmp[0] != test.data[i] {
					t.Fatalf("decoder decoded the wrong level at index %d:\nwant = %d\ngot  = %d", i, test.data[i], tmp[0])
				}
			}

			if n, err := dec.DecodeLevels(tmp[:]); err != io.EOF {
				t.Fatal("non-EOF error returned after decoding all the levels:", n, err)
			}
		})
	}
}
