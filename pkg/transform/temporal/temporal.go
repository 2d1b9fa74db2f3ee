// Package temporal parses date and clock-time columns, enforces that
// deliveries never precede sales, and derives calendar fields.
package temporal

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/textnorm"
)

// DateLayouts are tried in order. Day-first layouts come before any
// month-first interpretation because the exports are Brazilian.
var DateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"20060102",
}

var (
	nonDigit = regexp.MustCompile(`\D`)
	hhmmss   = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})`)
)

// Validator converts date and time columns, drops rows delivered before they
// were sold and adds sale year/month columns.
type Validator struct {
	DateTokens   []string
	TimeTokens   []string
	SaleDate     []string
	DeliveryDate []string
	SaleYear     string
	SaleMonth    string

	// Removed counts rows dropped for delivery before sale; filled by Apply.
	Removed int
}

func (t *Validator) Name() string { return "validate_dates" }

func (t *Validator) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	for _, name := range out.Schema().Names() {
		col, _ := out.ColumnByName(name)
		var nc j.Column
		switch {
		case textnorm.ContainsAny(name, t.DateTokens):
			nc = parseDates(col)
		case textnorm.ContainsAny(name, t.TimeTokens):
			nc = parseClock(col)
		default:
			continue
		}
		if err := out.ReplaceColumn(nc); err != nil {
			return nil, err
		}
	}

	sale, hasSale := out.FirstPresent(t.SaleDate...)
	delivery, hasDelivery := out.FirstPresent(t.DeliveryDate...)
	rows := out.Rows()
	if hasSale && hasDelivery {
		out = out.Filter(deliveredInOrder(out, sale, delivery))
	}
	t.Removed = rows - out.Rows()

	if hasSale {
		if err := t.derive(out, sale); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func deliveredInOrder(f *j.Frame, sale, delivery string) []bool {
	sc := timeColumn(f, sale)
	dc := timeColumn(f, delivery)
	keep := make([]bool, f.Rows())
	for i := range keep {
		keep[i] = true
		if sc == nil || dc == nil {
			continue
		}
		s, okS := sc.Get(i)
		d, okD := dc.Get(i)
		if okS && okD && d.Before(s) {
			keep[i] = false
		}
	}
	return keep
}

func (t *Validator) derive(f *j.Frame, sale string) error {
	sc := timeColumn(f, sale)
	if sc == nil {
		return nil
	}
	year := j.NewIntColumn(t.SaleYear, f.Rows())
	month := j.NewIntColumn(t.SaleMonth, f.Rows())
	for i := 0; i < f.Rows(); i++ {
		if v, ok := sc.Get(i); ok {
			year.Set(i, int64(v.Year()))
			month.Set(i, int64(v.Month()))
		}
	}
	for _, c := range []j.Column{year, month} {
		if f.Has(c.Name()) {
			if err := f.ReplaceColumn(c); err != nil {
				return err
			}
			continue
		}
		if err := f.AddColumn(c); err != nil {
			return err
		}
	}
	return nil
}

func timeColumn(f *j.Frame, name string) *j.TimeColumn {
	col, _ := f.ColumnByName(name)
	tc, _ := col.(*j.TimeColumn)
	return tc
}

func parseDates(col j.Column) j.Column {
	if tc, ok := col.(*j.TimeColumn); ok {
		return tc
	}
	nc := j.NewTimeColumnLayout(col.Name(), col.Len(), j.LayoutDate)
	for i := 0; i < col.Len(); i++ {
		if d, ok := ParseDate(j.Value(col, i)); ok {
			nc.Set(i, d)
		}
	}
	return nc
}

func parseClock(col j.Column) j.Column {
	if tc, ok := col.(*j.TimeColumn); ok {
		return tc
	}
	nc := j.NewTimeColumnLayout(col.Name(), col.Len(), j.LayoutClock)
	for i := 0; i < col.Len(); i++ {
		if d, ok := ParseClock(j.Value(col, i)); ok {
			nc.Set(i, d)
		}
	}
	return nc
}

// ParseDate reads a calendar date in any of DateLayouts; the time-of-day part
// is discarded.
func ParseDate(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	if tv, ok := v.(time.Time); ok {
		return truncateDay(tv), true
	}
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return truncateDay(d), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseClock reads a time of day from the digits of v, left-padded to six
// (HHMMSS): "93000", "09:30:00" and 93000 all give 09:30:00.
func ParseClock(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	s := nonDigit.ReplaceAllString(cast.ToString(v), "")
	if s == "" {
		return time.Time{}, false
	}
	if len(s) < 6 {
		s = strings.Repeat("0", 6-len(s)) + s
	}
	m := hhmmss.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	c, err := time.Parse("150405", m[1]+m[2]+m[3])
	if err != nil {
		return time.Time{}, false
	}
	return c, true
}
