package standardize

import (
	"context"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

var postalPattern = regexp.MustCompile(`\d{5}-?\d{3}`)

// Postal rewrites a postal-code (CEP) column to exactly eight digits, or
// missing when no well-formed code is found.
type Postal struct{ Column string }

func (t *Postal) Name() string { return "parse_postal" }

func (t *Postal) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	col, ok := out.ColumnByName(t.Column)
	if !ok {
		return out, nil
	}
	nc := j.NewStringColumn(t.Column, col.Len())
	for i := 0; i < col.Len(); i++ {
		if code, ok := ParsePostal(j.Value(col, i)); ok {
			nc.Set(i, code)
		}
	}
	if err := out.ReplaceColumn(nc); err != nil {
		return nil, err
	}
	return out, nil
}

// ParsePostal extracts the first NNNNN-NNN or NNNNNNNN code from v.
func ParsePostal(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	m := postalPattern.FindString(s)
	if m == "" {
		return "", false
	}
	m = strings.ReplaceAll(m, "-", "")
	if n := len(m); n < 8 {
		m = strings.Repeat("0", 8-n) + m
	}
	if len(m) != 8 {
		return "", false
	}
	return m, true
}
