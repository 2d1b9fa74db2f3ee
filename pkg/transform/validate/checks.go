package validate

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// Postal requires every present cell to be exactly eight ASCII digits.
type Postal struct{ Column string }

func (t *Postal) Name() string { return "validate_postal" }

func (t *Postal) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	var bad int
	for i := 0; i < col.Len(); i++ {
		s, ok := col.Text(i)
		if ok && !eightDigits(s) {
			bad++
		}
	}
	if bad > 0 {
		return f, fmt.Errorf("%w: column %s has %d malformed postal codes", ErrViolation, t.Column, bad)
	}
	return f, nil
}

func eightDigits(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NullBudget requires every column's missing ratio to be at most Budget.
type NullBudget struct{ Budget float64 }

func (t *NullBudget) Name() string { return "validate_null_budget" }

func (t *NullBudget) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	if f.Rows() == 0 {
		return f, nil
	}
	for _, c := range f.Columns() {
		if r := float64(j.NullCount(c)) / float64(f.Rows()); r > t.Budget {
			return f, fmt.Errorf("%w: column %s is %.0f%% missing", ErrViolation, c.Name(), r*100)
		}
	}
	return f, nil
}

// UniqueKey requires Column to hold no repeated value. Missing cells count
// as one value.
type UniqueKey struct{ Column string }

func (t *UniqueKey) Name() string { return "validate_unique_key" }

func (t *UniqueKey) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	seen := make(map[string]struct{}, col.Len())
	nulls := 0
	for i := 0; i < col.Len(); i++ {
		s, ok := col.Text(i)
		if !ok {
			nulls++
			continue
		}
		if _, dup := seen[s]; dup {
			return f, fmt.Errorf("%w: key %s repeats value %q", ErrViolation, t.Column, s)
		}
		seen[s] = struct{}{}
	}
	if nulls > 1 {
		return f, fmt.Errorf("%w: key %s is missing on %d rows", ErrViolation, t.Column, nulls)
	}
	return f, nil
}

// Cents requires every present amount in a numeric column to carry at most
// two decimal places.
type Cents struct{ Column string }

func (t *Cents) Name() string { return "validate_cents" }

func (t *Cents) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	fc, ok := col.(*j.FloatColumn)
	if !ok {
		return f, nil
	}
	for i := 0; i < fc.Len(); i++ {
		v, ok := fc.Get(i)
		if !ok {
			continue
		}
		if d := decimal.NewFromFloat(v); !d.Equal(d.Round(2)) {
			return f, fmt.Errorf("%w: column %s holds %s at row %d, not rounded to cents", ErrViolation, t.Column, d.String(), i)
		}
	}
	return f, nil
}
