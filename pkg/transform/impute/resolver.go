// Package impute fills missing cells. Resolver applies a column-wide missing
// budget; Mean, Median, Mode and Constant fill a single named column.
package impute

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

const (
	StrategyMean   = "mean"
	StrategyMedian = "median"
)

// Resolver drops every column whose missing ratio exceeds NullBudget and
// fills the rest: numeric columns by NumericStrategy, everything else by
// mode. String columns with nothing present get Fallback. Fills of the Money
// columns are rounded to cents.
type Resolver struct {
	NullBudget      float64
	NumericStrategy string
	Fallback        string
	Money           []string

	// Dropped lists the columns removed for exceeding the budget; filled by Apply.
	Dropped []string
}

func (t *Resolver) Name() string { return "resolve_nulls" }

func (t *Resolver) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	t.Dropped = nil
	rows := out.Rows()
	for _, col := range out.Columns() {
		nulls := j.NullCount(col)
		if nulls == 0 {
			continue
		}
		if float64(nulls)/float64(rows) > t.NullBudget {
			out.DropColumn(col.Name())
			t.Dropped = append(t.Dropped, col.Name())
			continue
		}
		if err := t.fill(out, col); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name(), err)
		}
	}
	return out, nil
}

func (t *Resolver) fill(f *j.Frame, col j.Column) error {
	if col.Kind().Numeric() {
		var v float64
		var ok bool
		switch t.NumericStrategy {
		case StrategyMedian:
			v, ok = medianOf(col)
		default:
			v, ok = meanOf(col)
		}
		if !ok {
			return nil
		}
		if slices.Contains(t.Money, col.Name()) {
			v, _ = decimal.NewFromFloat(v).Round(2).Float64()
		}
		fillNumeric(col, v)
		return nil
	}
	if col.Kind() == j.KindString && modeRow(col) < 0 {
		return fillConstant(f, col.Name(), t.Fallback)
	}
	return fillMode(f, col.Name())
}
