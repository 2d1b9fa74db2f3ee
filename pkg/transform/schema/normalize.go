// Package schema standardises column identifiers and prunes columns that carry
// no analytical signal.
package schema

import (
	"context"
	"strconv"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/textnorm"
)

// Normalizer renames every column to a snake_case ASCII identifier and drops
// all-missing, constant and near-unique columns. Key is never dropped for
// being near-unique.
type Normalizer struct {
	Key string
	// UniquenessLimit is the distinct/rows ratio above which a column is
	// treated as an identifier. Zero means 0.9.
	UniquenessLimit float64

	// Renamed maps each raw header to its normalised name; filled by Apply.
	Renamed map[string]string
	// Dropped lists removed columns with the reason; filled by Apply.
	Dropped []Drop
}

// Drop records a removed column.
type Drop struct {
	Column string
	Reason string
}

const (
	ReasonEmpty      = "all values missing"
	ReasonConstant   = "single distinct value"
	ReasonIdentifier = "near-unique identifier"
)

func (t *Normalizer) Name() string { return "normalize_schema" }

func (t *Normalizer) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	out := f.Clone()
	t.Renamed = make(map[string]string, f.Cols())
	t.Dropped = nil

	taken := make(map[string]bool, f.Cols())
	for i, c := range f.Columns() {
		name := uniqueName(textnorm.Identifier(c.Name()), i, taken)
		taken[name] = true
		t.Renamed[c.Name()] = name
	}
	// Two passes: a raw header may equal another column's new name.
	tmp := make([]string, 0, f.Cols())
	for i, c := range f.Columns() {
		n := "\x00" + strconv.Itoa(i)
		if err := out.RenameColumn(c.Name(), n); err != nil {
			return nil, err
		}
		tmp = append(tmp, n)
	}
	for i, c := range f.Columns() {
		if err := out.RenameColumn(tmp[i], t.Renamed[c.Name()]); err != nil {
			return nil, err
		}
	}

	limit := t.UniquenessLimit
	if limit <= 0 {
		limit = 0.9
	}
	for _, c := range out.Columns() {
		if reason, drop := t.degenerate(c, out.Rows(), limit); drop {
			out.DropColumn(c.Name())
			t.Dropped = append(t.Dropped, Drop{Column: c.Name(), Reason: reason})
		}
	}
	return out, nil
}

func (t *Normalizer) degenerate(c j.Column, rows int, limit float64) (string, bool) {
	if j.NullCount(c) == c.Len() {
		return ReasonEmpty, true
	}
	distinct := j.Distinct(c)
	if distinct <= 1 {
		return ReasonConstant, true
	}
	if c.Name() != t.Key && rows > 0 && float64(distinct)/float64(rows) > limit {
		return ReasonIdentifier, true
	}
	return "", false
}

// uniqueName falls back to col_<i> for empty names and suffixes _2, _3, ...
// on collisions.
func uniqueName(name string, i int, taken map[string]bool) string {
	if name == "" {
		name = "col_" + strconv.Itoa(i)
	}
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		cand := name + "_" + strconv.Itoa(n)
		if !taken[cand] {
			return cand
		}
	}
}
