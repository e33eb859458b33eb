package shred

import "github.com/segmentio/shred/internal/bits"

// Statistics bundles the values derived from a column window. All fields
// are recomputed from the column content each time they are requested;
// programs which need them repeatedly should hold on to the result.
type Statistics struct {
	NumValues int
	NumNulls  int
	NumRows   int
	Min       Value
	Max       Value
}

// Statistics returns the statistics of the column window.
func (c *Column) Statistics() Statistics {
	min, max := c.Bounds()
	return Statistics{
		NumValues: c.NumValues(),
		NumNulls:  c.NumNulls(),
		NumRows:   c.NumRows(),
		Min:       min,
		Max:       max,
	}
}

// NumValues returns the number of logical values in the column window,
// counting nulls.
func (c *Column) NumValues() int { return c.Len() }

// NumNulls returns the number of null values in the column window.
func (c *Column) NumNulls() int {
	if c.definitionLevels == nil {
		return 0
	}
	i, j := c.window()
	return countLevelsNotEqual(c.definitionLevels[i:j], c.field.MaxDefinitionLevel())
}

// NumDefined returns the number of non-null values in the column window.
func (c *Column) NumDefined() int { return c.Len() - c.NumNulls() }

// NumRows returns the number of records the column window spans: the count
// of values holding a repetition level of zero, or NumValues when the field
// never repeats. A repetition level of zero marks the first value of a
// record.
func (c *Column) NumRows() int {
	if c.repetitionLevels == nil {
		return c.Len()
	}
	i, j := c.window()
	return countLevelsEqual(c.repetitionLevels[i:j], 0)
}

// Bounds returns the minimum and maximum non-null values of the column
// window. The returned values are null when the window holds no non-null
// values.
func (c *Column) Bounds() (min, max Value) {
	i, j := c.denseWindow()
	data := c.data.Slice(i, j)

	switch data.kind {
	case Boolean:
		if len(data.booleans) > 0 {
			minBool, maxBool := bits.MinMaxBool(data.booleans)
			min = makeValueBoolean(minBool)
			max = makeValueBoolean(maxBool)
		}
	case Int32:
		if len(data.int32s) > 0 {
			minInt32, maxInt32 := bits.MinMaxInt32(data.int32s)
			min = makeValueInt32(minInt32)
			max = makeValueInt32(maxInt32)
		}
	case Int64:
		if len(data.int64s) > 0 {
			minInt64, maxInt64 := bits.MinMaxInt64(data.int64s)
			min = makeValueInt64(minInt64)
			max = makeValueInt64(maxInt64)
		}
	case Int96:
		if len(data.int96s) > 0 {
			minInt96, maxInt96 := minMaxInt96(data.int96s)
			min = makeValueInt96(minInt96)
			max = makeValueInt96(maxInt96)
		}
	case Float:
		if len(data.floats) > 0 {
			minFloat32, maxFloat32 := bits.MinMaxFloat32(data.floats)
			min = makeValueFloat(minFloat32)
			max = makeValueFloat(maxFloat32)
		}
	case Double:
		if len(data.doubles) > 0 {
			minFloat64, maxFloat64 := bits.MinMaxFloat64(data.doubles)
			min = makeValueDouble(minFloat64)
			max = makeValueDouble(maxFloat64)
		}
	case ByteArray:
		if len(data.byteArrays) > 0 {
			minBytes, maxBytes := bits.MinMaxByteArray(data.byteArrays)
			min = makeValueBytes(ByteArray, minBytes)
			max = makeValueBytes(ByteArray, maxBytes)
		}
	case FixedLenByteArray:
		if len(data.fixedLenByteArrays) > 0 {
			minBytes, maxBytes := bits.MinMaxFixedLenByteArray(data.size, data.fixedLenByteArrays)
			min = makeValueBytes(FixedLenByteArray, minBytes)
			max = makeValueBytes(FixedLenByteArray, maxBytes)
		}
	}

	return min, max
}

func minMaxInt96(data []int96) (min, max int96) {
	if len(data) > 0 {
		min = data[0]
		max = data[0]

		for _, v := range data[1:] {
			if lessInt96(v, min) {
				min = v
			}
			if lessInt96(max, v) {
				max = v
			}
		}
	}
	return min, max
}

// lessInt96 compares two 96 bits integers in their little-endian two's
// complement representation.
func lessInt96(a, b int96) bool {
	aNeg := a[11]&0x80 != 0
	bNeg := b[11]&0x80 != 0
	if aNeg != bNeg {
		return aNeg
	}
	for i := 11; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
