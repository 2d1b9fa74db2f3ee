// Package profile summarises the columns of a frame: counts, missing cells,
// numeric range and the most frequent values.
package profile

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type NumStats struct {
	Count int     `json:"count"`
	Nulls int     `json:"nulls"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
}

func (s *NumStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

type BoolStats struct {
	Count int `json:"count"`
	Nulls int `json:"nulls"`
	True  int `json:"true"`
	False int `json:"false"`
}

type StringStats struct {
	Count int
	Nulls int
	TopK  int
	Freqs map[string]int
}

// ValueCount is one entry of a frequency ranking.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Top returns the k most frequent values, count descending then value
// ascending. k <= 0 returns all of them.
func (s *StringStats) Top(k int) []ValueCount {
	arr := make([]ValueCount, 0, len(s.Freqs))
	for v, n := range s.Freqs {
		arr = append(arr, ValueCount{v, n})
	}
	sort.Slice(arr, func(a, b int) bool {
		if arr[a].Count != arr[b].Count {
			return arr[a].Count > arr[b].Count
		}
		return arr[a].Value < arr[b].Value
	})
	if k > 0 && k < len(arr) {
		arr = arr[:k]
	}
	return arr
}

type ColumnProfile struct {
	Name string
	Kind j.Kind
	Num  *NumStats
	Bool *BoolStats
	Str  *StringStats
}

// Counts returns present and missing cell counts whatever the kind.
func (cp ColumnProfile) Counts() (count, nulls int) {
	switch {
	case cp.Num != nil:
		return cp.Num.Count, cp.Num.Nulls
	case cp.Bool != nil:
		return cp.Bool.Count, cp.Bool.Nulls
	case cp.Str != nil:
		return cp.Str.Count, cp.Str.Nulls
	}
	return 0, 0
}

type Collector struct {
	cols  []ColumnProfile
	index map[string]int
	topK  int
}

func NewCollector(schema j.Schema, topK int) *Collector {
	c := &Collector{index: make(map[string]int), topK: topK}
	c.cols = make([]ColumnProfile, len(schema.Columns))
	for i, cs := range schema.Columns {
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type}
		switch cs.Type {
		case j.KindFloat, j.KindInt:
			cp.Num = &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
		case j.KindBool:
			cp.Bool = &BoolStats{}
		default:
			cp.Str = &StringStats{TopK: topK, Freqs: make(map[string]int)}
		}
		c.cols[i] = cp
		c.index[cs.Name] = i
	}
	return c
}

// Of profiles a whole frame in one call.
func Of(f *j.Frame, topK int) *Collector {
	c := NewCollector(f.Schema(), topK)
	c.ConsumeFrame(f)
	return c
}

// ConsumeFrame adds the cells of f; columns not in the collector's schema
// are ignored.
func (c *Collector) ConsumeFrame(f *j.Frame) {
	for _, col := range f.Columns() {
		idx, ok := c.index[col.Name()]
		if !ok {
			continue
		}
		cp := &c.cols[idx]
		for i := 0; i < col.Len(); i++ {
			switch typed := col.(type) {
			case *j.FloatColumn:
				v, ok := typed.Get(i)
				cp.Num.add(v, ok)
			case *j.IntColumn:
				v, ok := typed.Get(i)
				cp.Num.add(float64(v), ok)
			case *j.BoolColumn:
				v, ok := typed.Get(i)
				if !ok {
					cp.Bool.Nulls++
					continue
				}
				cp.Bool.Count++
				if v {
					cp.Bool.True++
				} else {
					cp.Bool.False++
				}
			default:
				s, ok := col.Text(i)
				if !ok {
					cp.Str.Nulls++
					continue
				}
				cp.Str.Count++
				cp.Str.Freqs[s]++
			}
		}
	}
}

func (s *NumStats) add(v float64, ok bool) {
	if !ok {
		s.Nulls++
		return
	}
	s.Count++
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
	s.Sum += v
}

// Columns returns the profiles in schema order.
func (c *Collector) Columns() []ColumnProfile { return append([]ColumnProfile(nil), c.cols...) }

// WriteTable renders one row per column.
func (c *Collector) WriteTable(w io.Writer) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"column", "kind", "count", "nulls", "distinct", "min", "max", "mean", "top"})
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, cp := range c.cols {
		count, nulls := cp.Counts()
		row := []string{cp.Name, cp.Kind.String(), strconv.Itoa(count), strconv.Itoa(nulls), "", "", "", "", ""}
		switch {
		case cp.Num != nil && cp.Num.Count > 0:
			row[5] = num(cp.Num.Min)
			row[6] = num(cp.Num.Max)
			row[7] = num(cp.Num.Mean())
		case cp.Bool != nil:
			row[8] = fmt.Sprintf("true=%d false=%d", cp.Bool.True, cp.Bool.False)
		case cp.Str != nil:
			row[4] = strconv.Itoa(len(cp.Str.Freqs))
			var parts []string
			for _, vc := range cp.Str.Top(c.topK) {
				parts = append(parts, fmt.Sprintf("%s (%d)", vc.Value, vc.Count))
			}
			row[8] = strings.Join(parts, ", ")
		}
		t.Append(row)
	}
	t.Render()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

type JSONProfile struct {
	Columns []JSONColumn `json:"columns"`
}

type JSONColumn struct {
	Name string     `json:"name"`
	Kind string     `json:"kind"`
	Num  *NumStats  `json:"num,omitempty"`
	Bool *BoolStats `json:"bool,omitempty"`
	Str  *JSONText  `json:"str,omitempty"`
}

type JSONText struct {
	Count    int          `json:"count"`
	Nulls    int          `json:"nulls"`
	Distinct int          `json:"distinct"`
	Top      []ValueCount `json:"top,omitempty"`
}

func (c *Collector) ReportJSON() JSONProfile {
	out := JSONProfile{Columns: make([]JSONColumn, 0, len(c.cols))}
	for _, cp := range c.cols {
		jc := JSONColumn{Name: cp.Name, Kind: cp.Kind.String(), Num: cp.Num, Bool: cp.Bool}
		if cp.Str != nil {
			jc.Str = &JSONText{Count: cp.Str.Count, Nulls: cp.Str.Nulls, Distinct: len(cp.Str.Freqs), Top: cp.Str.Top(c.topK)}
		}
		if jc.Num != nil && jc.Num.Count == 0 {
			// Inf does not encode
			jc.Num = &NumStats{Nulls: jc.Num.Nulls}
		}
		out.Columns = append(out.Columns, jc)
	}
	return out
}
