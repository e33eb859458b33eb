package shred

import (
	"fmt"

	"github.com/segmentio/shred/internal/bits"
)

// PackNulls splits a sequence of logical values into the two halves stored
// on disk: the dense slice of non-null values, in order, and one definition
// level per input slot. Slots holding a non-null value are given the
// maximum definition level of the column; null slots keep the definition
// level carried by the null value, which is zero for values constructed
// from nothing.
//
// The input is not modified. len(definitionLevels) equals len(values), and
// len(defined) equals len(values) minus the number of nulls.
func PackNulls(values []Value, maxDefinitionLevel byte) (defined []Value, definitionLevels []byte) {
	defined = make([]Value, 0, len(values))
	definitionLevels = make([]byte, 0, len(values))

	for _, v := range values {
		if v.IsNull() {
			definitionLevels = append(definitionLevels, v.DefinitionLevel())
		} else {
			defined = append(defined, v)
			definitionLevels = append(definitionLevels, maxDefinitionLevel)
		}
	}

	return defined, definitionLevels
}

// UnpackNulls reverses PackNulls: it expands the dense slice of non-null
// values back into a logical sequence of len(definitionLevels) values,
// reinserting a null at every slot whose definition level is lower than
// maxDefinitionLevel. Nulls carry the definition level read from the input,
// non-null values the maximum.
//
// The function errors with ErrLevelCountMismatch if the number of definition
// levels equal to maxDefinitionLevel differs from len(defined); no output is
// produced in that case.
func UnpackNulls(defined []Value, definitionLevels []byte, maxDefinitionLevel byte) ([]Value, error) {
	if numDefined := countLevelsEqual(definitionLevels, maxDefinitionLevel); numDefined != len(defined) {
		return nil, fmt.Errorf("unpacking %d values but %d of %d definition levels are at the maximum of %d: %w",
			len(defined), numDefined, len(definitionLevels), maxDefinitionLevel, ErrLevelCountMismatch)
	}

	values := make([]Value, len(definitionLevels))
	j := 0

	for i, d := range definitionLevels {
		if d == maxDefinitionLevel {
			v := defined[j]
			v.definitionLevel = maxDefinitionLevel
			values[i] = v
			j++
		} else {
			values[i] = Value{definitionLevel: d}
		}
	}

	return values, nil
}

// CountNulls returns the number of null values in the given slice.
func CountNulls(values []Value) int {
	numNulls := 0
	for i := range values {
		if values[i].IsNull() {
			numNulls++
		}
	}
	return numNulls
}

func countLevelsEqual(levels []byte, value byte) int {
	return bits.CountByte(levels, value)
}

func countLevelsNotEqual(levels []byte, value byte) int {
	return len(levels) - countLevelsEqual(levels, value)
}

func appendLevel(levels []byte, value byte, count int) []byte {
	i := len(levels)
	n := len(levels) + count

	if cap(levels) < n {
		newLevels := make([]byte, n, 2*n)
		copy(newLevels, levels)
		levels = newLevels
	} else {
		levels = levels[:n]
	}

	memset(levels[i:], value)
	return levels
}

func memset(dst []byte, src byte) {
	for i := range dst {
		dst[i] = src
	}
}
