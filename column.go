package shred

import (
	"fmt"
	"io"
)

// Column is the shredded representation of one field across a sequence of
// records: a dense array holding the non-null values, one definition level
// per logical value when the field is optional, and one repetition level
// per logical value when the field repeats.
//
// Columns address logical values: nulls occupy a slot even though they are
// absent from the dense array. A column may be a window over a larger
// column, in which case the underlying storage is shared.
//
// Columns are not safe to mutate concurrently, but all methods are pure and
// may be called concurrently once the column is constructed.
type Column struct {
	field            *Field
	data             *Array
	definitionLevels []byte
	repetitionLevels []byte
	offset           int
	count            int
}

// NewColumn constructs a column from a dense array holding one value per
// logical slot. No definition levels are recorded: either the field is
// required, or every value of an optional field is defined.
//
// The repetition levels may be nil if the field never repeats.
func NewColumn(field *Field, data *Array, repetitionLevels []byte) (*Column, error) {
	return NewShreddedColumn(field, data, nil, repetitionLevels)
}

// NewShreddedColumn constructs a column from the two halves produced by
// shredding: the dense array of non-null values and the definition levels
// recording where nulls go. Passing nil definition levels means the column
// has no nulls and the array holds one value per logical slot.
//
// The function validates the levels against the field: the number of
// definition levels equal to the field's maximum must match the array
// length (ErrLevelCountMismatch), repetition and definition levels must
// agree in count (ErrLevelCountMismatch), and no level may exceed its
// maximum (ErrInvalidArgument).
func NewShreddedColumn(field *Field, data *Array, definitionLevels, repetitionLevels []byte) (*Column, error) {
	if field == nil {
		return nil, fmt.Errorf("creating column with a nil field: %w", ErrInvalidArgument)
	}
	if data == nil {
		return nil, fmt.Errorf("creating column %q with no data: %w", field.Path(), ErrInvalidArgument)
	}
	if dataKind, fieldKind := data.Kind(), field.Type().Kind(); dataKind != fieldKind {
		return nil, fmt.Errorf("creating column %q of type %s from an array of type %s: %w",
			field.Path(), fieldKind, dataKind, ErrTypeMismatch)
	}

	numSlots := data.Len()

	if definitionLevels != nil {
		maxDefinitionLevel := field.MaxDefinitionLevel()
		if level := maxLevel(definitionLevels); level > maxDefinitionLevel {
			return nil, fmt.Errorf("column %q holds definition levels up to %d but the maximum is %d: %w",
				field.Path(), level, maxDefinitionLevel, ErrInvalidArgument)
		}
		if numDefined := countLevelsEqual(definitionLevels, maxDefinitionLevel); numDefined != data.Len() {
			return nil, fmt.Errorf("column %q holds %d values but %d of %d definition levels are at the maximum of %d: %w",
				field.Path(), data.Len(), numDefined, len(definitionLevels), maxDefinitionLevel, ErrLevelCountMismatch)
		}
		numSlots = len(definitionLevels)
	}

	if repetitionLevels != nil {
		if !field.Repeated() {
			return nil, fmt.Errorf("column %q never repeats but repetition levels were given: %w",
				field.Path(), ErrInvalidArgument)
		}
		if maxRepetitionLevel := field.MaxRepetitionLevel(); maxLevel(repetitionLevels) > maxRepetitionLevel {
			return nil, fmt.Errorf("column %q holds repetition levels up to %d but the maximum is %d: %w",
				field.Path(), maxLevel(repetitionLevels), maxRepetitionLevel, ErrInvalidArgument)
		}
		if len(repetitionLevels) != numSlots {
			return nil, fmt.Errorf("column %q holds %d values but %d repetition levels: %w",
				field.Path(), numSlots, len(repetitionLevels), ErrLevelCountMismatch)
		}
	} else if field.Repeated() && numSlots > 0 {
		return nil, fmt.Errorf("column %q repeats but no repetition levels were given: %w",
			field.Path(), ErrInvalidArgument)
	}

	return &Column{
		field:            field,
		data:             data,
		definitionLevels: definitionLevels,
		repetitionLevels: repetitionLevels,
		count:            -1,
	}, nil
}

// Shred constructs a column from a logical sequence of values: nulls are
// packed away into definition levels when the field is optional, repetition
// levels are collected from the values when the field repeats, and the
// non-null values are gathered into a dense array of the field's type.
//
// Values of the wrong kind, or nulls in a required field, error with
// ErrTypeMismatch.
func Shred(field *Field, values []Value) (*Column, error) {
	if field == nil {
		return nil, fmt.Errorf("shredding values with a nil field: %w", ErrInvalidArgument)
	}

	defined := values
	var definitionLevels []byte
	if field.Optional() {
		defined, definitionLevels = PackNulls(values, field.MaxDefinitionLevel())
	}

	var repetitionLevels []byte
	if field.Repeated() {
		repetitionLevels = make([]byte, len(values))
		for i, v := range values {
			repetitionLevels[i] = v.RepetitionLevel()
		}
	}

	data := field.Type().NewArray(len(defined))
	for _, v := range defined {
		if err := data.Append(v); err != nil {
			return nil, fmt.Errorf("shredding column %q: %w", field.Path(), err)
		}
	}

	return NewShreddedColumn(field, data, definitionLevels, repetitionLevels)
}

// Field returns the field descriptor of the column.
func (c *Column) Field() *Field { return c.field }

// Data returns the dense array backing the column, ignoring the window.
func (c *Column) Data() *Array { return c.data }

// Len returns the number of logical values in the column window, counting
// nulls.
func (c *Column) Len() int {
	if c.count >= 0 {
		return c.count
	}
	if c.definitionLevels != nil {
		return len(c.definitionLevels) - c.offset
	}
	return c.data.Len() - c.offset
}

// Offset returns the index of the first logical value of the window within
// the backing column.
func (c *Column) Offset() int { return c.offset }

// Slice returns a column windowed to the logical value range [i:j) relative
// to the window of c. The returned column shares the storage of c.
func (c *Column) Slice(i, j int) *Column {
	if i < 0 || j < i || j > c.Len() {
		panic(errColumnBoundsOutOfRange(i, j, c.Len()))
	}
	return &Column{
		field:            c.field,
		data:             c.data,
		definitionLevels: c.definitionLevels,
		repetitionLevels: c.repetitionLevels,
		offset:           c.offset + i,
		count:            j - i,
	}
}

// String returns a human-readable representation of the column.
func (c *Column) String() string {
	return fmt.Sprintf("%s{%d values,%d nulls,%d rows}", c.field, c.NumValues(), c.NumNulls(), c.NumRows())
}

// window returns the logical bounds of the column window.
func (c *Column) window() (i, j int) {
	i = c.offset
	j = c.offset + c.Len()
	return i, j
}

// denseWindow translates the logical window to the index range of the dense
// array, discounting the nulls found before and inside the window.
func (c *Column) denseWindow() (i, j int) {
	i, j = c.window()
	if c.definitionLevels == nil {
		return i, j
	}
	maxDefinitionLevel := c.field.MaxDefinitionLevel()
	numNulls1 := countLevelsNotEqual(c.definitionLevels[:i], maxDefinitionLevel)
	numNulls2 := countLevelsNotEqual(c.definitionLevels[i:j], maxDefinitionLevel)
	return i - numNulls1, j - (numNulls1 + numNulls2)
}

// DefinitionLevels returns the definition levels of the column window, or
// nil if the column records none. The returned slice shares the storage of
// the column and must be treated as read-only.
func (c *Column) DefinitionLevels() []byte {
	if c.definitionLevels == nil {
		return nil
	}
	i, j := c.window()
	return c.definitionLevels[i:j]
}

// RepetitionLevels returns the repetition levels of the column window, or
// nil if the field never repeats. The returned slice shares the storage of
// the column and must be treated as read-only.
func (c *Column) RepetitionLevels() []byte {
	if c.repetitionLevels == nil {
		return nil
	}
	i, j := c.window()
	return c.repetitionLevels[i:j]
}

// Booleans returns the non-null values of the column window as a dense
// slice, erroring with ErrTypeMismatch if the column is not boolean.
func (c *Column) Booleans() ([]bool, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).Booleans()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// Int32s returns the non-null values of the column window as a dense slice,
// erroring with ErrTypeMismatch if the column is not int32.
func (c *Column) Int32s() ([]int32, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).Int32s()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// Int64s returns the non-null values of the column window as a dense slice,
// erroring with ErrTypeMismatch if the column is not int64.
func (c *Column) Int64s() ([]int64, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).Int64s()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// Int96s returns the non-null values of the column window as a dense slice,
// erroring with ErrTypeMismatch if the column is not int96.
func (c *Column) Int96s() ([][12]byte, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).Int96s()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// Floats returns the non-null values of the column window as a dense slice,
// erroring with ErrTypeMismatch if the column is not float.
func (c *Column) Floats() ([]float32, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).Floats()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// Doubles returns the non-null values of the column window as a dense
// slice, erroring with ErrTypeMismatch if the column is not double.
func (c *Column) Doubles() ([]float64, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).Doubles()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// ByteArrays returns the non-null values of the column window as a dense
// slice, erroring with ErrTypeMismatch if the column is not byte array.
func (c *Column) ByteArrays() ([][]byte, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).ByteArrays()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// FixedLenByteArrays returns the non-null values of the column window as a
// flat dense slice, erroring with ErrTypeMismatch if the column is not
// fixed-length byte array.
func (c *Column) FixedLenByteArrays() ([]byte, error) {
	i, j := c.denseWindow()
	values, err := c.data.Slice(i, j).FixedLenByteArrays()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", c.field.Path(), err)
	}
	return values, nil
}

// Values materializes the logical sequence of the column window: the dense
// values with nulls reinserted at the slots recorded by the definition
// levels, each value carrying its repetition and definition levels.
func (c *Column) Values() []Value {
	values := make([]Value, c.Len())
	n, _ := c.reader().ReadValues(values)
	return values[:n]
}

// Reader returns a reader exposing the logical values of the column window,
// nulls included.
func (c *Column) Reader() ValueReader { return c.reader() }

func (c *Column) reader() *columnReader {
	i, j := c.window()
	k, l := c.denseWindow()
	r := &columnReader{
		data:               c.data.Slice(k, l),
		maxDefinitionLevel: c.field.MaxDefinitionLevel(),
		numValues:          j - i,
	}
	if c.definitionLevels != nil {
		r.definitionLevels = c.definitionLevels[i:j]
	}
	if c.repetitionLevels != nil {
		r.repetitionLevels = c.repetitionLevels[i:j]
	}
	return r
}

type columnReader struct {
	data               *Array
	definitionLevels   []byte
	repetitionLevels   []byte
	maxDefinitionLevel byte
	numValues          int
	offset             int
	index              int
}

func (r *columnReader) ReadValue() (Value, error) {
	var values [1]Value
	if n, err := r.ReadValues(values[:]); n == 0 {
		if err == nil {
			err = io.EOF
		}
		return Value{}, err
	}
	return values[0], nil
}

func (r *columnReader) ReadValues(values []Value) (n int, err error) {
	for n < len(values) && r.offset < r.numValues {
		if r.definitionLevels != nil && r.definitionLevels[r.offset] != r.maxDefinitionLevel {
			values[n] = Value{definitionLevel: r.definitionLevels[r.offset]}
		} else {
			v := r.data.Index(r.index)
			v.definitionLevel = r.maxDefinitionLevel
			values[n] = v
			r.index++
		}
		if r.repetitionLevels != nil {
			values[n].repetitionLevel = r.repetitionLevels[r.offset]
		}
		r.offset++
		n++
	}
	if r.offset == r.numValues {
		err = io.EOF
	}
	return n, err
}

func maxLevel(levels []byte) byte {
	level := byte(0)
	for _, l := range levels {
		if l > level {
			level = l
		}
	}
	return level
}

func errColumnBoundsOutOfRange(i, j, n int) error {
	return fmt.Errorf("column bounds out of range [%d:%d] with length %d", i, j, n)
}
