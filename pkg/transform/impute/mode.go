package impute

import (
	"context"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// Mode fills nulls with the most frequent present value. Ties go to the
// value whose text sorts first, so the choice never depends on row order.
type Mode struct{ Column string }

func (t *Mode) Name() string { return "impute_mode" }

func (t *Mode) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	if _, ok := out.ColumnByName(t.Column); ok {
		if err := fillMode(out, t.Column); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// modeRow returns a row holding the mode of c, or -1 when nothing is present.
func modeRow(c j.Column) int {
	counts := map[string]int{}
	first := map[string]int{}
	for i := 0; i < c.Len(); i++ {
		s, ok := c.Text(i)
		if !ok {
			continue
		}
		if _, seen := first[s]; !seen {
			first[s] = i
		}
		counts[s]++
	}
	best, bestc := "", 0
	for s, n := range counts {
		if n > bestc || (n == bestc && s < best) {
			best, bestc = s, n
		}
	}
	if bestc == 0 {
		return -1
	}
	return first[best]
}

func fillMode(f *j.Frame, name string) error {
	c, _ := f.ColumnByName(name)
	src := modeRow(c)
	if src < 0 {
		return nil
	}
	v := j.Value(c, src)
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			if err := f.SetCell(i, name, v); err != nil {
				return err
			}
		}
	}
	return nil
}
