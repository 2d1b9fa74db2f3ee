package standardize

import (
	"context"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/textnorm"
)

// CleanText strips accents and symbols from every string column except those
// in Skip. Cells that end up empty become missing.
type CleanText struct {
	Skip []string
}

func (t *CleanText) Name() string { return "clean_text" }

func (t *CleanText) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	skip := make(map[string]bool, len(t.Skip))
	for _, s := range t.Skip {
		skip[s] = true
	}
	out := f.Clone()
	for _, col := range out.Columns() {
		c, ok := col.(*j.StringColumn)
		if !ok || skip[c.Name()] {
			continue
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			if cleaned := textnorm.CleanText(v); cleaned != "" {
				c.Set(i, cleaned)
			} else {
				c.SetNull(i)
			}
		}
	}
	return out, nil
}
