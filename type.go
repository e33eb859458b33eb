package shred

import (
	"github.com/segmentio/shred/format"
)

// Kind is an enumeration type representing the physical types supported by the
// column type system.
type Kind int32

const (
	Boolean           Kind = Kind(format.Boolean)
	Int32             Kind = Kind(format.Int32)
	Int64             Kind = Kind(format.Int64)
	Int96             Kind = Kind(format.Int96)
	Float             Kind = Kind(format.Float)
	Double            Kind = Kind(format.Double)
	ByteArray         Kind = Kind(format.ByteArray)
	FixedLenByteArray Kind = Kind(format.FixedLenByteArray)
)

func (k Kind) String() string {
	return format.Type(k).String()
}

// The Type interface represents the types of columns, binding the physical
// representation of values to the metadata written to files.
type Type interface {
	// Returns the physical kind of values held by columns of this type.
	Kind() Kind

	// Returns the size of values of this type; in bits for fixed width kinds,
	// in bytes for FixedLenByteArray, zero for ByteArray.
	Length() int

	// Returns an estimate of the encoded size of numValues values of this
	// type, used to pre-size page buffers.
	EstimateSize(numValues int) int64

	// Returns the physical type written to column metadata.
	PhysicalType() format.Type

	// Returns the logical annotation of the type, nil for plain physical
	// types.
	ConvertedType() *format.ConvertedType

	// Returns a new array able to hold up to the given number of values of
	// this type.
	NewArray(capacity int) *Array
}

var physicalTypes = [...]format.Type{
	0: format.Boolean,
	1: format.Int32,
	2: format.Int64,
	3: format.Int96,
	4: format.Float,
	5: format.Double,
	6: format.ByteArray,
	7: format.FixedLenByteArray,
}

var convertedTypes = [...]format.ConvertedType{
	0: format.UTF8,
	1: format.Date,
	2: format.TimestampMillis,
	3: format.UUID,
}

type primitiveType struct{}

func (t primitiveType) ConvertedType() *format.ConvertedType { return nil }

type booleanType struct{ primitiveType }

func (t booleanType) Kind() Kind { return Boolean }

func (t booleanType) Length() int { return 1 }

func (t booleanType) EstimateSize(numValues int) int64 { return int64(numValues) }

func (t booleanType) PhysicalType() format.Type { return physicalTypes[Boolean] }

func (t booleanType) NewArray(capacity int) *Array { return newBooleanArray(capacity) }

type int32Type struct{ primitiveType }

func (t int32Type) Kind() Kind { return Int32 }

func (t int32Type) Length() int { return 32 }

func (t int32Type) EstimateSize(numValues int) int64 { return 4 * int64(numValues) }

func (t int32Type) PhysicalType() format.Type { return physicalTypes[Int32] }

func (t int32Type) NewArray(capacity int) *Array { return newInt32Array(capacity) }

type int64Type struct{ primitiveType }

func (t int64Type) Kind() Kind { return Int64 }

func (t int64Type) Length() int { return 64 }

func (t int64Type) EstimateSize(numValues int) int64 { return 8 * int64(numValues) }

func (t int64Type) PhysicalType() format.Type { return physicalTypes[Int64] }

func (t int64Type) NewArray(capacity int) *Array { return newInt64Array(capacity) }

type int96Type struct{ primitiveType }

func (t int96Type) Kind() Kind { return Int96 }

func (t int96Type) Length() int { return 96 }

func (t int96Type) EstimateSize(numValues int) int64 { return 12 * int64(numValues) }

func (t int96Type) PhysicalType() format.Type { return physicalTypes[Int96] }

func (t int96Type) NewArray(capacity int) *Array { return newInt96Array(capacity) }

type floatType struct{ primitiveType }

func (t floatType) Kind() Kind { return Float }

func (t floatType) Length() int { return 32 }

func (t floatType) EstimateSize(numValues int) int64 { return 4 * int64(numValues) }

func (t floatType) PhysicalType() format.Type { return physicalTypes[Float] }

func (t floatType) NewArray(capacity int) *Array { return newFloatArray(capacity) }

type doubleType struct{ primitiveType }

func (t doubleType) Kind() Kind { return Double }

func (t doubleType) Length() int { return 64 }

func (t doubleType) EstimateSize(numValues int) int64 { return 8 * int64(numValues) }

func (t doubleType) PhysicalType() format.Type { return physicalTypes[Double] }

func (t doubleType) NewArray(capacity int) *Array { return newDoubleArray(capacity) }

type byteArrayType struct{ primitiveType }

func (t byteArrayType) Kind() Kind { return ByteArray }

func (t byteArrayType) Length() int { return 0 }

func (t byteArrayType) EstimateSize(numValues int) int64 { return 16 * int64(numValues) }

func (t byteArrayType) PhysicalType() format.Type { return physicalTypes[ByteArray] }

func (t byteArrayType) NewArray(capacity int) *Array { return newByteArrayArray(capacity) }

type fixedLenByteArrayType struct {
	primitiveType
	length int
}

func (t *fixedLenByteArrayType) Kind() Kind { return FixedLenByteArray }

func (t *fixedLenByteArrayType) Length() int { return t.length }

func (t *fixedLenByteArrayType) EstimateSize(numValues int) int64 {
	return int64(t.length) * int64(numValues)
}

func (t *fixedLenByteArrayType) PhysicalType() format.Type {
	return physicalTypes[FixedLenByteArray]
}

func (t *fixedLenByteArrayType) NewArray(capacity int) *Array {
	return newFixedLenByteArrayArray(t.length, capacity)
}

var (
	BooleanType   Type = booleanType{}
	Int32Type     Type = int32Type{}
	Int64Type     Type = int64Type{}
	Int96Type     Type = int96Type{}
	FloatType     Type = floatType{}
	DoubleType    Type = doubleType{}
	ByteArrayType Type = byteArrayType{}
)

// FixedLenByteArrayType constructs a type for columns of fixed length byte
// arrays of the given size (in bytes).
func FixedLenByteArrayType(length int) Type {
	return &fixedLenByteArrayType{length: length}
}

type stringType struct{ byteArrayType }

func (t stringType) ConvertedType() *format.ConvertedType { return &convertedTypes[format.UTF8] }

type dateType struct{ int32Type }

func (t dateType) ConvertedType() *format.ConvertedType { return &convertedTypes[format.Date] }

type timestampMillisType struct{ int64Type }

func (t timestampMillisType) ConvertedType() *format.ConvertedType {
	return &convertedTypes[format.TimestampMillis]
}

type uuidType struct{ primitiveType }

func (t uuidType) Kind() Kind { return FixedLenByteArray }

func (t uuidType) Length() int { return 16 }

func (t uuidType) EstimateSize(numValues int) int64 { return 16 * int64(numValues) }

func (t uuidType) PhysicalType() format.Type { return physicalTypes[FixedLenByteArray] }

func (t uuidType) ConvertedType() *format.ConvertedType { return &convertedTypes[format.UUID] }

func (t uuidType) NewArray(capacity int) *Array { return newFixedLenByteArrayArray(16, capacity) }

// Logical types annotating the physical types they are stored as.
var (
	// StringType represents UTF8 encoded character strings, stored as byte
	// arrays.
	StringType Type = stringType{}

	// DateType represents a number of days since the unix epoch, stored as
	// 32 bits signed integers.
	DateType Type = dateType{}

	// TimestampMillisType represents a number of milliseconds since the unix
	// epoch, stored as 64 bits signed integers.
	TimestampMillisType Type = timestampMillisType{}

	// UUIDType represents RFC 4122 identifiers, stored as 16 bytes fixed
	// length byte arrays.
	UUIDType Type = uuidType{}
)
