package impute

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type Mean struct{ Column string }

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	if col, ok := out.ColumnByName(t.Column); ok {
		fillMean(col)
	}
	return out, nil
}

func present(c j.Column) []float64 {
	vals := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		switch col := c.(type) {
		case *j.FloatColumn:
			if v, ok := col.Get(i); ok {
				vals = append(vals, v)
			}
		case *j.IntColumn:
			if v, ok := col.Get(i); ok {
				vals = append(vals, float64(v))
			}
		}
	}
	return vals
}

// fillMean fills nulls with the column mean; int columns get it rounded.
func fillMean(c j.Column) {
	if v, ok := meanOf(c); ok {
		fillNumeric(c, v)
	}
}

func meanOf(c j.Column) (float64, bool) {
	vals := present(c)
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}

func fillNumeric(c j.Column, v float64) {
	switch col := c.(type) {
	case *j.FloatColumn:
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				col.Set(i, v)
			}
		}
	case *j.IntColumn:
		r := int64(math.Round(v))
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				col.Set(i, r)
			}
		}
	}
}
