package standardize

import (
	"context"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/textnorm"
	"github.com/wdm0006/salesjanitor/pkg/vocab"
)

// MapValues folds each cell (lowercase, trim) and resolves it through Table.
// When the table has a fallback, missing cells resolve to it as well.
type MapValues struct {
	Column string
	Table  vocab.Table
}

func (t *MapValues) Name() string { return "map_values" }

func (t *MapValues) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	col, ok := out.ColumnByName(t.Column)
	if !ok {
		return out, nil
	}
	if c, ok := col.(*j.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				if t.Table.Fallback != "" {
					c.Set(i, t.Table.Fallback)
				}
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, t.Table.Lookup(textnorm.Fold(v)))
		}
	}
	return out, nil
}
