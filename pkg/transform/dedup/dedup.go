// Package dedup removes repeated records, keeping the first occurrence.
package dedup

import (
	"context"
	"strings"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// nullMark stands in for a missing cell when building row keys; all missing
// values compare equal to each other and to nothing else.
const nullMark = "\x00"

// Deduplicator keeps the first row for each Key value. When Key is empty or
// absent, rows are compared on every column instead.
type Deduplicator struct {
	Key string

	// Removed counts dropped rows; filled by Apply.
	Removed int
}

func (t *Deduplicator) Name() string { return "deduplicate" }

func (t *Deduplicator) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	var keyOf func(i int) string
	if col, ok := f.ColumnByName(t.Key); ok && t.Key != "" {
		keyOf = func(i int) string { return cellKey(col, i) }
	} else {
		cols := f.Columns()
		keyOf = func(i int) string { return rowKey(cols, i) }
	}
	seen := make(map[string]struct{}, f.Rows())
	keep := make([]bool, f.Rows())
	for i := range keep {
		k := keyOf(i)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep[i] = true
	}
	out := f.Filter(keep)
	t.Removed = f.Rows() - out.Rows()
	return out, nil
}

func cellKey(c j.Column, i int) string {
	if s, ok := c.Text(i); ok {
		return s
	}
	return nullMark
}

func rowKey(cols []j.Column, i int) string {
	var b strings.Builder
	for n, c := range cols {
		if n > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(cellKey(c, i))
	}
	return b.String()
}
