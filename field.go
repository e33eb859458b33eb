package shred

import (
	"fmt"

	"github.com/segmentio/shred/format"
)

// Field describes one shredded column: its name, its physical type, and the
// maximum repetition and definition levels that values of the column may
// carry. The maxima are properties of the record schema the column was
// shredded from; the field itself holds no nesting information beyond them.
//
// Methods of Field values are safe to call concurrently from multiple
// goroutines.
type Field struct {
	name               string
	typ                Type
	maxRepetitionLevel byte
	maxDefinitionLevel byte
}

// NewField constructs a field descriptor with the given name and type.
//
// The function errors with ErrInvalidArgument if the name is empty or the
// type is nil. The level maxima are not cross-validated here; columns check
// the levels they are constructed with against the field maxima.
func NewField(name string, typ Type, maxRepetitionLevel, maxDefinitionLevel byte) (*Field, error) {
	if name == "" {
		return nil, fmt.Errorf("creating field with an empty name: %w", ErrInvalidArgument)
	}
	if typ == nil {
		return nil, fmt.Errorf("creating field %q with a nil type: %w", name, ErrInvalidArgument)
	}
	return &Field{
		name:               name,
		typ:                typ,
		maxRepetitionLevel: maxRepetitionLevel,
		maxDefinitionLevel: maxDefinitionLevel,
	}, nil
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Type returns the physical type of the field.
func (f *Field) Type() Type { return f.typ }

// MaxRepetitionLevel returns the maximum repetition level of values of the
// field; zero means the field never repeats.
func (f *Field) MaxRepetitionLevel() byte { return f.maxRepetitionLevel }

// MaxDefinitionLevel returns the maximum definition level of values of the
// field; a value with a lower definition level is null.
func (f *Field) MaxDefinitionLevel() byte { return f.maxDefinitionLevel }

// Required returns true if the field is required, which is the case when no
// ancestor of the field (nor the field itself) is optional or repeated.
func (f *Field) Required() bool { return f.maxDefinitionLevel == 0 }

// Optional returns true if values of the field may be null.
func (f *Field) Optional() bool { return f.maxDefinitionLevel > 0 }

// Repeated returns true if the field may hold more than one value per record.
func (f *Field) Repeated() bool { return f.maxRepetitionLevel > 0 }

// Path returns the dotted path of the column in the record schema it was
// shredded from. The schemas handled by this package are flat, so the path
// is the field name.
func (f *Field) Path() string { return f.name }

// String returns a human-readable representation of the field.
func (f *Field) String() string {
	if f.typ.Kind() == FixedLenByteArray {
		return fmt.Sprintf("%s{%s(%d),%s,R=%d,D=%d}",
			f.name,
			f.typ.Kind(),
			f.typ.Length(),
			f.repetitionType(),
			f.maxRepetitionLevel,
			f.maxDefinitionLevel)
	}
	return fmt.Sprintf("%s{%s,%s,R=%d,D=%d}",
		f.name,
		f.typ.Kind(),
		f.repetitionType(),
		f.maxRepetitionLevel,
		f.maxDefinitionLevel)
}

func (f *Field) repetitionType() format.FieldRepetitionType {
	switch {
	case f.Repeated():
		return format.Repeated
	case f.Optional():
		return format.Optional
	default:
		return format.Required
	}
}
