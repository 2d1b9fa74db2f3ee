package janitor

import (
	"fmt"
	"strconv"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
	// Layout is the time layout used to render KindTime cells. Empty means RFC3339.
	Layout string
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		out[i] = cs.Name
	}
	return out
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Numeric reports whether the kind holds int or float values.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

const (
	LayoutDate  = "2006-01-02"
	LayoutClock = "15:04:05"
)

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	// Text renders a present cell in its canonical text form.
	Text(i int) (string, bool)

	renamed(name string) Column
	filtered(keep []bool, n int) Column
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: fill(n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *BoolColumn) Text(i int) (string, bool) {
	if c.nulls[i] {
		return "", false
	}
	return strconv.FormatBool(c.data[i]), true
}
func (c *BoolColumn) renamed(name string) Column {
	return &BoolColumn{name: name, data: append([]bool(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *BoolColumn) filtered(keep []bool, n int) Column {
	out := &BoolColumn{name: c.name, data: make([]bool, 0, n), nulls: make([]bool, 0, n)}
	for i, k := range keep {
		if k {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: fill(n)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *IntColumn) Text(i int) (string, bool) {
	if c.nulls[i] {
		return "", false
	}
	return strconv.FormatInt(c.data[i], 10), true
}
func (c *IntColumn) renamed(name string) Column {
	return &IntColumn{name: name, data: append([]int64(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *IntColumn) filtered(keep []bool, n int) Column {
	out := &IntColumn{name: c.name, data: make([]int64, 0, n), nulls: make([]bool, 0, n)}
	for i, k := range keep {
		if k {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: fill(n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *FloatColumn) Text(i int) (string, bool) {
	if c.nulls[i] {
		return "", false
	}
	return strconv.FormatFloat(c.data[i], 'f', -1, 64), true
}
func (c *FloatColumn) renamed(name string) Column {
	return &FloatColumn{name: name, data: append([]float64(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *FloatColumn) filtered(keep []bool, n int) Column {
	out := &FloatColumn{name: c.name, data: make([]float64, 0, n), nulls: make([]bool, 0, n)}
	for i, k := range keep {
		if k {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: fill(n)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *StringColumn) Text(i int) (string, bool) {
	if c.nulls[i] {
		return "", false
	}
	return c.data[i], true
}
func (c *StringColumn) renamed(name string) Column {
	return &StringColumn{name: name, data: append([]string(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *StringColumn) filtered(keep []bool, n int) Column {
	out := &StringColumn{name: c.name, data: make([]string, 0, n), nulls: make([]bool, 0, n)}
	for i, k := range keep {
		if k {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

type TimeColumn struct {
	name   string
	layout string
	data   []time.Time
	nulls  []bool
}

func NewTimeColumn(name string, n int) *TimeColumn {
	return &TimeColumn{name: name, data: make([]time.Time, n), nulls: fill(n)}
}

// NewTimeColumnLayout creates a time column rendered with layout (LayoutDate, LayoutClock, ...).
func NewTimeColumnLayout(name string, n int, layout string) *TimeColumn {
	c := NewTimeColumn(name, n)
	c.layout = layout
	return c
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return KindTime }
func (c *TimeColumn) Layout() string              { return c.layout }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}
func (c *TimeColumn) Append(v time.Time) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}
func (c *TimeColumn) Text(i int) (string, bool) {
	if c.nulls[i] {
		return "", false
	}
	layout := c.layout
	if layout == "" {
		layout = time.RFC3339
	}
	return c.data[i].Format(layout), true
}
func (c *TimeColumn) renamed(name string) Column {
	return &TimeColumn{name: name, layout: c.layout, data: append([]time.Time(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
func (c *TimeColumn) filtered(keep []bool, n int) Column {
	out := &TimeColumn{name: c.name, layout: c.layout, data: make([]time.Time, 0, n), nulls: make([]bool, 0, n)}
	for i, k := range keep {
		if k {
			out.data = append(out.data, c.data[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}
	return out
}

// fill returns n null markers; fresh columns start out missing.
func fill(n int) []bool {
	nulls := make([]bool, n)
	for i := range nulls {
		nulls[i] = true
	}
	return nulls
}

// Frame is a columnar container for tabular data.
type Frame struct {
	cols  []Column
	index map[string]int // name -> col index
	nrows int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Type {
		case KindBool:
			f.cols[i] = NewBoolColumn(cs.Name, 0)
		case KindInt:
			f.cols[i] = NewIntColumn(cs.Name, 0)
		case KindFloat:
			f.cols[i] = NewFloatColumn(cs.Name, 0)
		case KindString:
			f.cols[i] = NewStringColumn(cs.Name, 0)
		case KindTime:
			f.cols[i] = NewTimeColumnLayout(cs.Name, 0, cs.Layout)
		default:
			panic("invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

// FromColumns assembles a Frame from equally sized columns with unique names.
func FromColumns(cols ...Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int)}
	for i, c := range cols {
		if i == 0 {
			f.nrows = c.Len()
		}
		if err := f.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *Frame) Schema() Schema {
	s := Schema{Columns: make([]ColumnSchema, len(f.cols))}
	for i, c := range f.cols {
		cs := ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
		if tc, ok := c.(*TimeColumn); ok {
			cs.Layout = tc.layout
		}
		s.Columns[i] = cs
	}
	return s
}
func (f *Frame) Rows() int { return f.nrows }
func (f *Frame) Cols() int { return len(f.cols) }

// Columns returns the columns in schema order. The slice is a copy; the columns are not.
func (f *Frame) Columns() []Column { return append([]Column(nil), f.cols...) }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Has reports whether a column named name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// FirstPresent returns the first of names that exists in the frame.
func (f *Frame) FirstPresent(names ...string) (string, bool) {
	for _, n := range names {
		if f.Has(n) {
			return n, true
		}
	}
	return "", false
}

// Clone returns a deep copy; changes to the copy never reach f.
func (f *Frame) Clone() *Frame {
	out := &Frame{cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.cols)), nrows: f.nrows}
	for i, c := range f.cols {
		out.cols[i] = c.renamed(c.Name())
		out.index[c.Name()] = i
	}
	return out
}

// Filter returns a new frame holding the rows where keep is true.
func (f *Frame) Filter(keep []bool) *Frame {
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	out := &Frame{cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.cols)), nrows: n}
	for i, c := range f.cols {
		out.cols[i] = c.filtered(keep, n)
		out.index[c.Name()] = i
	}
	return out
}

// AddColumn appends c; its length must match the frame's row count.
func (f *Frame) AddColumn(c Column) error {
	if _, dup := f.index[c.Name()]; dup {
		return fmt.Errorf("duplicate column: %s", c.Name())
	}
	if len(f.cols) > 0 && c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
	}
	if len(f.cols) == 0 {
		f.nrows = c.Len()
	}
	f.index[c.Name()] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// ReplaceColumn swaps the column named c.Name() in place, keeping its position.
func (f *Frame) ReplaceColumn(c Column) error {
	i, ok := f.index[c.Name()]
	if !ok {
		return fmt.Errorf("unknown column: %s", c.Name())
	}
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
	}
	f.cols[i] = c
	return nil
}

// DropColumn removes a column; it reports whether the column existed.
func (f *Frame) DropColumn(name string) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	f.cols = append(f.cols[:i], f.cols[i+1:]...)
	f.reindex()
	return true
}

// RenameColumn gives the column old the name to.
func (f *Frame) RenameColumn(old, to string) error {
	i, ok := f.index[old]
	if !ok {
		return fmt.Errorf("unknown column: %s", old)
	}
	if old == to {
		return nil
	}
	if _, dup := f.index[to]; dup {
		return fmt.Errorf("duplicate column: %s", to)
	}
	f.cols[i] = f.cols[i].renamed(to)
	f.reindex()
	return nil
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.cols))
	for i, c := range f.cols {
		f.index[c.Name()] = i
	}
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// Value returns the raw Go value of a cell, or nil when missing.
func Value(c Column, i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		return col.data[i]
	case *IntColumn:
		return col.data[i]
	case *FloatColumn:
		return col.data[i]
	case *StringColumn:
		return col.data[i]
	case *TimeColumn:
		return col.data[i]
	}
	return nil
}

// NullCount returns the number of missing cells in c.
func NullCount(c Column) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			n++
		}
	}
	return n
}

// Distinct returns the number of distinct present values in c.
func Distinct(c Column) int {
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		if s, ok := c.Text(i); ok {
			seen[s] = struct{}{}
		}
	}
	return len(seen)
}
