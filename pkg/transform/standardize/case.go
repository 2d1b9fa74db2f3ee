package standardize

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type Upper struct{ Column string }

func (t *Upper) Name() string { return "upper" }

func (t *Upper) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	return mapStrings(f, t.Column, strings.ToUpper), nil
}

// TitleCase capitalises the first letter of every word and lowercases the rest.
type TitleCase struct{ Column string }

func (t *TitleCase) Name() string { return "title_case" }

func (t *TitleCase) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	caser := cases.Title(language.Und)
	return mapStrings(f, t.Column, caser.String), nil
}

// mapStrings returns a copy of f with fn applied to every present cell of a
// string column. Missing or non-string columns come back as an unchanged copy.
func mapStrings(f *j.Frame, column string, fn func(string) string) *j.Frame {
	out := f.Clone()
	col, ok := out.ColumnByName(column)
	if !ok {
		return out
	}
	if c, ok := col.(*j.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, fn(v))
		}
	}
	return out
}
