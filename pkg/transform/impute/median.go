package impute

import (
	"context"
	"sort"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type Median struct{ Column string }

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	if col, ok := out.ColumnByName(t.Column); ok {
		fillMedian(col)
	}
	return out, nil
}

func fillMedian(c j.Column) {
	if v, ok := medianOf(c); ok {
		fillNumeric(c, v)
	}
}

func medianOf(c j.Column) (float64, bool) {
	vals := present(c)
	if len(vals) == 0 {
		return 0, false
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2, true
	}
	return vals[mid], true
}
