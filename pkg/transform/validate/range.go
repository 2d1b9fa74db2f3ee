package validate

import (
	"context"
	"fmt"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// Range bounds a numeric column; nil bounds are open. Missing cells and
// non-numeric columns pass.
type Range struct {
	Column string
	Min    *float64
	Max    *float64
}

func (t *Range) Name() string { return "validate_range" }

func (t *Range) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok || !col.Kind().Numeric() {
		return f, nil
	}
	bad, first := 0, -1
	for i := 0; i < col.Len(); i++ {
		v, ok := number(col, i)
		if !ok || t.contains(v) {
			continue
		}
		if first < 0 {
			first = i
		}
		bad++
	}
	if bad == 0 {
		return f, nil
	}
	s, _ := col.Text(first)
	return f, fmt.Errorf("%w: column %s has %d out-of-range values (row %d: %s)", ErrViolation, t.Column, bad, first, s)
}

func (t *Range) contains(v float64) bool {
	return (t.Min == nil || v >= *t.Min) && (t.Max == nil || v <= *t.Max)
}

func number(c j.Column, i int) (float64, bool) {
	switch c := c.(type) {
	case *j.FloatColumn:
		return c.Get(i)
	case *j.IntColumn:
		v, ok := c.Get(i)
		return float64(v), ok
	}
	return 0, false
}
