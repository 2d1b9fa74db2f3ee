package csvio

import (
	"encoding/csv"
	"io"

	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type WriterOptions struct {
	Delimiter rune // default ','
	// Headers renames columns on the way out; unmapped names are written as is.
	Headers map[string]string
}

// WriteAll writes a Frame to a CSV file with headers. A .gz path is compressed.
func WriteAll(path string, f *j.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f as CSV. Cells use their column's text form; missing cells are empty.
func Write(out io.Writer, f *j.Frame, opt WriterOptions) error {
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	cols := f.Columns()
	if err := w.Write(Header(f, opt.Headers)); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			row[c], _ = col.Text(r)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Header returns the output names of f's columns after applying rename.
func Header(f *j.Frame, rename map[string]string) []string {
	names := f.Schema().Names()
	for i, n := range names {
		if to, ok := rename[n]; ok {
			names[i] = to
		}
	}
	return names
}
