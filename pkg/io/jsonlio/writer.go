package jsonlio

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"

	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type WriterOptions struct {
	// Headers renames keys on the way out; unmapped names are written as is.
	Headers map[string]string
}

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

// Write emits one object per row with keys in column order. Missing cells
// are written as null; times use their column's layout.
func Write(out io.Writer, f *j.Frame, opt WriterOptions) error {
	w := bufio.NewWriter(out)
	cols := f.Columns()
	keys := make([][]byte, len(cols))
	for i, c := range cols {
		name := c.Name()
		if to, ok := opt.Headers[name]; ok {
			name = to
		}
		b, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[i] = b
	}
	var line []byte
	for r := 0; r < f.Rows(); r++ {
		line = append(line[:0], '{')
		for i, c := range cols {
			if i > 0 {
				line = append(line, ',')
			}
			line = append(line, keys[i]...)
			line = append(line, ':')
			v, err := cellJSON(c, r)
			if err != nil {
				return err
			}
			line = append(line, v...)
		}
		line = append(line, '}', '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return w.Flush()
}

func cellJSON(c j.Column, r int) ([]byte, error) {
	if c.IsNull(r) {
		return []byte("null"), nil
	}
	switch col := c.(type) {
	case *j.FloatColumn:
		v, _ := col.Get(r)
		return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case *j.IntColumn:
		v, _ := col.Get(r)
		return []byte(strconv.FormatInt(v, 10)), nil
	case *j.BoolColumn:
		v, _ := col.Get(r)
		return []byte(strconv.FormatBool(v)), nil
	}
	s, _ := c.Text(r)
	return json.Marshal(s)
}
