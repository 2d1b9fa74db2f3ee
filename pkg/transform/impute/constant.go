package impute

import (
	"context"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type Constant struct {
	Column string
	// use any; will be coerced per column kind
	Value any
}

func (t *Constant) Name() string { return "impute_constant" }

func (t *Constant) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	if _, ok := out.ColumnByName(t.Column); ok {
		if err := fillConstant(out, t.Column, t.Value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func fillConstant(f *j.Frame, name string, v any) error {
	c, _ := f.ColumnByName(name)
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			if err := f.SetCell(i, name, v); err != nil {
				return err
			}
		}
	}
	return nil
}
