package shred

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Print writes a textual description of the given fields to w, using the
// message syntax commonly used to document schemas of columnar files.
func Print(w io.Writer, name string, fields []*Field) error {
	return PrintIndent(w, name, fields, "\t", "\n")
}

// PrintIndent behaves like Print but lets the caller customize the
// indentation pattern and line separator.
func PrintIndent(w io.Writer, name string, fields []*Field, pattern, newline string) error {
	pw := &printWriter{writer: w}
	pw.WriteString("message ")

	if name == "" {
		pw.WriteString("{")
	} else {
		pw.WriteString(name)
		pw.WriteString(" {")
	}

	if len(fields) > 0 {
		pi := &printIndent{
			pattern: pattern,
			newline: newline,
			repeat:  1,
		}

		pi.writeNewLine(pw)

		for _, field := range fields {
			printField(pw, field, pi)
			pi.writeNewLine(pw)
		}
	}

	pw.WriteString("}")
	return pw.err
}

func printField(w io.StringWriter, field *Field, indent *printIndent) {
	indent.writeTo(w)

	switch {
	case field.Repeated():
		w.WriteString("repeated ")
	case field.Optional():
		w.WriteString("optional ")
	default:
		w.WriteString("required ")
	}

	typ := field.Type()
	switch typ.Kind() {
	case Boolean:
		w.WriteString("boolean ")
	case Int32:
		w.WriteString("int32 ")
	case Int64:
		w.WriteString("int64 ")
	case Int96:
		w.WriteString("int96 ")
	case Float:
		w.WriteString("float ")
	case Double:
		w.WriteString("double ")
	case ByteArray:
		w.WriteString("binary ")
	case FixedLenByteArray:
		w.WriteString("fixed_len_byte_array(")
		w.WriteString(strconv.Itoa(typ.Length()))
		w.WriteString(") ")
	default:
		w.WriteString("<?> ")
	}

	w.WriteString(field.Name())

	if convertedType := typ.ConvertedType(); convertedType != nil {
		w.WriteString(" (")
		w.WriteString(convertedType.String())
		w.WriteString(")")
	}

	w.WriteString(";")
}

// PrintColumn writes a table rendering of the column window to w, one line
// per value slot with its row number, levels, and value.
func PrintColumn(w io.Writer, column *Column) error {
	values := column.Values()

	pw := &printWriter{writer: w}
	table := tablewriter.NewWriter(pw)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ROW", "REPETITION", "DEFINITION", "VALUE"})

	row := -1
	for _, v := range values {
		if v.RepetitionLevel() == 0 {
			row++
		}
		table.Append([]string{
			strconv.Itoa(row),
			strconv.Itoa(int(v.RepetitionLevel())),
			strconv.Itoa(int(v.DefinitionLevel())),
			printValue(v),
		})
	}

	table.Render()
	return pw.err
}

func printValue(v Value) string {
	if v.IsNull() {
		return "NULL"
	}
	return v.String()
}

type printIndent struct {
	pattern string
	newline string
	repeat  int
}

func (i *printIndent) writeTo(w io.StringWriter) {
	if i.pattern != "" {
		for n := i.repeat; n > 0; n-- {
			w.WriteString(i.pattern)
		}
	}
}

func (i *printIndent) writeNewLine(w io.StringWriter) {
	if i.newline != "" {
		w.WriteString(i.newline)
	}
}

type printWriter struct {
	writer io.Writer
	err    error
}

func (w *printWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.writer.Write(b)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *printWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := io.WriteString(w.writer, s)
	if err != nil {
		w.err = err
	}
	return n, err
}

var (
	_ io.StringWriter = (*printWriter)(nil)
)
