package validate

import (
	"context"
	"fmt"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// InSet requires every present cell of Column to be one of a closed
// vocabulary, compared on its text form.
type InSet struct {
	Column string
	Values map[string]struct{}
}

func NewInSet(col string, vals []string) *InSet {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return &InSet{Column: col, Values: m}
}

func (t *InSet) Name() string { return "validate_in" }

func (t *InSet) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	unknown := map[string]int{}
	var firstBad string
	for i := 0; i < col.Len(); i++ {
		s, ok := col.Text(i)
		if !ok {
			continue
		}
		if _, ok := t.Values[s]; ok {
			continue
		}
		if len(unknown) == 0 {
			firstBad = s
		}
		unknown[s]++
	}
	if len(unknown) == 0 {
		return f, nil
	}
	return f, fmt.Errorf("%w: column %s has %d distinct values outside the vocabulary, e.g. %q", ErrViolation, t.Column, len(unknown), firstBad)
}
