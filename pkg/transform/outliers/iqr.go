// Package outliers removes rows holding extreme numeric values using Tukey
// fences over the interquartile range.
package outliers

import (
	"context"
	"math"
	"sort"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// Fences are the inclusive bounds a value must fall within to be kept.
type Fences struct {
	Lower, Upper float64
}

func (b Fences) Contains(v float64) bool { return v >= b.Lower && v <= b.Upper }

// Filter drops rows whose value in any numeric column lies outside
// [Q1-Factor*IQR, Q3+Factor*IQR]. Columns are visited in schema order and each
// one sees only the rows the previous columns kept. Missing cells never
// remove a row.
type Filter struct {
	Factor  float64
	Exclude []string

	// Removed maps column name to rows it removed; filled by Apply.
	Removed map[string]int
}

func (t *Filter) Name() string { return "filter_outliers" }

// Order returns the columns Apply will visit, in visiting order.
func (t *Filter) Order(f *j.Frame) []string {
	skip := make(map[string]bool, len(t.Exclude))
	for _, n := range t.Exclude {
		skip[n] = true
	}
	var out []string
	for _, c := range f.Columns() {
		if c.Kind().Numeric() && !skip[c.Name()] {
			out = append(out, c.Name())
		}
	}
	return out
}

func (t *Filter) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	factor := t.Factor
	if factor <= 0 {
		factor = 1.5
	}
	t.Removed = make(map[string]int)
	out := f.Clone()
	for _, name := range t.Order(f) {
		col, _ := out.ColumnByName(name)
		vals := numbers(col)
		if len(vals) == 0 {
			continue
		}
		fences := Tukey(vals, factor)
		keep := make([]bool, col.Len())
		n := 0
		for i := range keep {
			v, ok := number(col, i)
			keep[i] = !ok || fences.Contains(v)
			if keep[i] {
				n++
			}
		}
		if n == out.Rows() {
			continue
		}
		t.Removed[name] = out.Rows() - n
		out = out.Filter(keep)
	}
	return out, nil
}

// Tukey computes the fences for vals; vals is sorted in place.
func Tukey(vals []float64, factor float64) Fences {
	sort.Float64s(vals)
	q1 := Quantile(vals, 0.25)
	q3 := Quantile(vals, 0.75)
	iqr := q3 - q1
	return Fences{Lower: q1 - factor*iqr, Upper: q3 + factor*iqr}
}

// Quantile interpolates linearly between closest ranks at position (n-1)p
// of the sorted slice. It returns NaN for an empty slice.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

func numbers(c j.Column) []float64 {
	vals := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := number(c, i); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

func number(c j.Column, i int) (float64, bool) {
	switch col := c.(type) {
	case *j.FloatColumn:
		return col.Get(i)
	case *j.IntColumn:
		v, ok := col.Get(i)
		return float64(v), ok
	}
	return 0, false
}
