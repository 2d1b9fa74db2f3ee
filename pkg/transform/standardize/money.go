package standardize

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

var nonMoney = regexp.MustCompile(`[^\d.\-]`)

// Money converts each listed column to a float column rounded to cents.
// Unparsable cells become missing; rows with a negative amount are removed.
type Money struct {
	Columns []string

	// Removed counts rows dropped for negative amounts; filled by Apply.
	Removed int
}

func (t *Money) Name() string { return "parse_money" }

func (t *Money) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	keep := make([]bool, out.Rows())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range t.Columns {
		col, ok := out.ColumnByName(name)
		if !ok {
			continue
		}
		nc := j.NewFloatColumn(name, col.Len())
		for i := 0; i < col.Len(); i++ {
			v, ok := ParseMoney(j.Value(col, i))
			if !ok {
				continue
			}
			nc.Set(i, v)
			if v < 0 {
				keep[i] = false
			}
		}
		if err := out.ReplaceColumn(nc); err != nil {
			return nil, err
		}
	}
	res := out.Filter(keep)
	t.Removed = out.Rows() - res.Rows()
	return res, nil
}

// ParseMoney reads amounts like "1234,5", "R$ 10.99" or 7 and rounds them to
// two decimal places, half away from zero.
func ParseMoney(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = nonMoney.ReplaceAllString(s, "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	out, _ := d.Round(2).Float64()
	return out, true
}
