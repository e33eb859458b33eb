package shred

import (
	"fmt"

	"github.com/google/uuid"
)

// Array is a dense sequence of values sharing the same physical kind. Arrays
// hold no nulls; a column pairs an array with definition levels to describe
// where nulls occur in the logical sequence.
//
// An Array holds one backing slice per kind but only the slice matching its
// kind is ever non-nil, values of fixed length byte arrays are packed
// back-to-back in a flat byte slice.
type Array struct {
	kind Kind
	size int

	booleans           []bool
	int32s             []int32
	int64s             []int64
	int96s             [][12]byte
	floats             []float32
	doubles            []float64
	byteArrays         [][]byte
	fixedLenByteArrays []byte
}

func newBooleanArray(capacity int) *Array {
	return &Array{kind: Boolean, booleans: make([]bool, 0, capacity)}
}

func newInt32Array(capacity int) *Array {
	return &Array{kind: Int32, int32s: make([]int32, 0, capacity)}
}

func newInt64Array(capacity int) *Array {
	return &Array{kind: Int64, int64s: make([]int64, 0, capacity)}
}

func newInt96Array(capacity int) *Array {
	return &Array{kind: Int96, int96s: make([][12]byte, 0, capacity)}
}

func newFloatArray(capacity int) *Array {
	return &Array{kind: Float, floats: make([]float32, 0, capacity)}
}

func newDoubleArray(capacity int) *Array {
	return &Array{kind: Double, doubles: make([]float64, 0, capacity)}
}

func newByteArrayArray(capacity int) *Array {
	return &Array{kind: ByteArray, byteArrays: make([][]byte, 0, capacity)}
}

func newFixedLenByteArrayArray(size, capacity int) *Array {
	return &Array{kind: FixedLenByteArray, size: size, fixedLenByteArrays: make([]byte, 0, size*capacity)}
}

// ArrayOf constructs an Array from a Go slice.
//
// The function supports slices of booleans, int32, int64, [12]byte (INT96),
// float32, float64, byte slices, strings, and uuid.UUID values. Like ValueOf,
// it panics when called with a Go value of an unsupported type.
func ArrayOf(v interface{}) *Array {
	switch values := v.(type) {
	case []bool:
		return &Array{kind: Boolean, booleans: values}
	case []int32:
		return &Array{kind: Int32, int32s: values}
	case []int64:
		return &Array{kind: Int64, int64s: values}
	case [][12]byte:
		return &Array{kind: Int96, int96s: values}
	case []float32:
		return &Array{kind: Float, floats: values}
	case []float64:
		return &Array{kind: Double, doubles: values}
	case [][]byte:
		return &Array{kind: ByteArray, byteArrays: values}
	case []string:
		byteArrays := make([][]byte, len(values))
		for i, s := range values {
			byteArrays[i] = []byte(s)
		}
		return &Array{kind: ByteArray, byteArrays: byteArrays}
	case []uuid.UUID:
		fixedLenByteArrays := make([]byte, 0, 16*len(values))
		for i := range values {
			fixedLenByteArrays = append(fixedLenByteArrays, values[i][:]...)
		}
		return &Array{kind: FixedLenByteArray, size: 16, fixedLenByteArrays: fixedLenByteArrays}
	default:
		panic(fmt.Sprintf("cannot create array from go value of type %T", v))
	}
}

// Kind returns the physical kind of values held by the array.
func (a *Array) Kind() Kind { return a.kind }

// Size returns the size of array elements (in bytes) when the array holds
// fixed length byte arrays, and zero otherwise.
func (a *Array) Size() int { return a.size }

// Len returns the number of values in the array.
func (a *Array) Len() int {
	switch a.kind {
	case Boolean:
		return len(a.booleans)
	case Int32:
		return len(a.int32s)
	case Int64:
		return len(a.int64s)
	case Int96:
		return len(a.int96s)
	case Float:
		return len(a.floats)
	case Double:
		return len(a.doubles)
	case ByteArray:
		return len(a.byteArrays)
	case FixedLenByteArray:
		if a.size == 0 {
			return 0
		}
		return len(a.fixedLenByteArrays) / a.size
	default:
		return 0
	}
}

// Index returns the value at index i in the array.
func (a *Array) Index(i int) Value {
	switch a.kind {
	case Boolean:
		return makeValueBoolean(a.booleans[i])
	case Int32:
		return makeValueInt32(a.int32s[i])
	case Int64:
		return makeValueInt64(a.int64s[i])
	case Int96:
		return makeValueInt96(a.int96s[i])
	case Float:
		return makeValueFloat(a.floats[i])
	case Double:
		return makeValueDouble(a.doubles[i])
	case ByteArray:
		return makeValueBytes(ByteArray, a.byteArrays[i])
	case FixedLenByteArray:
		return makeValueBytes(FixedLenByteArray, a.fixedLenByteArrays[i*a.size:(i+1)*a.size])
	default:
		return Value{}
	}
}

// Append adds a value at the end of the array. The value must be non-null
// and of the kind of the array or the method errors with ErrTypeMismatch.
func (a *Array) Append(v Value) error {
	if v.IsNull() {
		return fmt.Errorf("cannot append null value to array of type %s: %w", a.kind, ErrTypeMismatch)
	}
	if v.Kind() != a.kind {
		return fmt.Errorf("cannot append %s value to array of type %s: %w", v.Kind(), a.kind, ErrTypeMismatch)
	}
	switch a.kind {
	case Boolean:
		a.booleans = append(a.booleans, v.Boolean())
	case Int32:
		a.int32s = append(a.int32s, v.Int32())
	case Int64:
		a.int64s = append(a.int64s, v.Int64())
	case Int96:
		a.int96s = append(a.int96s, v.Int96())
	case Float:
		a.floats = append(a.floats, v.Float())
	case Double:
		a.doubles = append(a.doubles, v.Double())
	case ByteArray:
		a.byteArrays = append(a.byteArrays, append([]byte(nil), v.ByteArray()...))
	case FixedLenByteArray:
		b := v.ByteArray()
		if len(b) != a.size {
			return fmt.Errorf("cannot append fixed length byte array of size %d to array of element size %d: %w", len(b), a.size, ErrTypeMismatch)
		}
		a.fixedLenByteArrays = append(a.fixedLenByteArrays, b...)
	}
	return nil
}

// Slice returns a view of the values of the array between indexes i and j,
// sharing the underlying storage.
func (a *Array) Slice(i, j int) *Array {
	s := &Array{kind: a.kind, size: a.size}
	switch a.kind {
	case Boolean:
		s.booleans = a.booleans[i:j]
	case Int32:
		s.int32s = a.int32s[i:j]
	case Int64:
		s.int64s = a.int64s[i:j]
	case Int96:
		s.int96s = a.int96s[i:j]
	case Float:
		s.floats = a.floats[i:j]
	case Double:
		s.doubles = a.doubles[i:j]
	case ByteArray:
		s.byteArrays = a.byteArrays[i:j]
	case FixedLenByteArray:
		s.fixedLenByteArrays = a.fixedLenByteArrays[i*a.size : j*a.size]
	}
	return s
}

// Clone returns a deep copy of the array which does not share any storage
// with it.
func (a *Array) Clone() *Array {
	c := &Array{kind: a.kind, size: a.size}
	switch a.kind {
	case Boolean:
		c.booleans = append([]bool(nil), a.booleans...)
	case Int32:
		c.int32s = append([]int32(nil), a.int32s...)
	case Int64:
		c.int64s = append([]int64(nil), a.int64s...)
	case Int96:
		c.int96s = append([][12]byte(nil), a.int96s...)
	case Float:
		c.floats = append([]float32(nil), a.floats...)
	case Double:
		c.doubles = append([]float64(nil), a.doubles...)
	case ByteArray:
		c.byteArrays = make([][]byte, len(a.byteArrays))
		for i, b := range a.byteArrays {
			c.byteArrays[i] = append([]byte(nil), b...)
		}
	case FixedLenByteArray:
		c.fixedLenByteArrays = append([]byte(nil), a.fixedLenByteArrays...)
	}
	return c
}

func (a *Array) errTypeMismatch(want Kind) error {
	return fmt.Errorf("array holds values of type %s, not %s: %w", a.kind, want, ErrTypeMismatch)
}

// Booleans returns the backing slice of the array, or ErrTypeMismatch if the
// array does not hold BOOLEAN values.
func (a *Array) Booleans() ([]bool, error) {
	if a.kind != Boolean {
		return nil, a.errTypeMismatch(Boolean)
	}
	return a.booleans, nil
}

// Int32s returns the backing slice of the array, or ErrTypeMismatch if the
// array does not hold INT32 values.
func (a *Array) Int32s() ([]int32, error) {
	if a.kind != Int32 {
		return nil, a.errTypeMismatch(Int32)
	}
	return a.int32s, nil
}

// Int64s returns the backing slice of the array, or ErrTypeMismatch if the
// array does not hold INT64 values.
func (a *Array) Int64s() ([]int64, error) {
	if a.kind != Int64 {
		return nil, a.errTypeMismatch(Int64)
	}
	return a.int64s, nil
}

// Int96s returns the backing slice of the array, or ErrTypeMismatch if the
// array does not hold INT96 values.
func (a *Array) Int96s() ([][12]byte, error) {
	if a.kind != Int96 {
		return nil, a.errTypeMismatch(Int96)
	}
	return a.int96s, nil
}

// Floats returns the backing slice of the array, or ErrTypeMismatch if the
// array does not hold FLOAT values.
func (a *Array) Floats() ([]float32, error) {
	if a.kind != Float {
		return nil, a.errTypeMismatch(Float)
	}
	return a.floats, nil
}

// Doubles returns the backing slice of the array, or ErrTypeMismatch if the
// array does not hold DOUBLE values.
func (a *Array) Doubles() ([]float64, error) {
	if a.kind != Double {
		return nil, a.errTypeMismatch(Double)
	}
	return a.doubles, nil
}

// ByteArrays returns the backing slice of the array, or ErrTypeMismatch if
// the array does not hold BYTE_ARRAY values.
func (a *Array) ByteArrays() ([][]byte, error) {
	if a.kind != ByteArray {
		return nil, a.errTypeMismatch(ByteArray)
	}
	return a.byteArrays, nil
}

// FixedLenByteArrays returns the flat backing slice of the array, or
// ErrTypeMismatch if the array does not hold FIXED_LEN_BYTE_ARRAY values.
func (a *Array) FixedLenByteArrays() ([]byte, error) {
	if a.kind != FixedLenByteArray {
		return nil, a.errTypeMismatch(FixedLenByteArray)
	}
	return a.fixedLenByteArrays, nil
}
