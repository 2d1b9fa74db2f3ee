package mining

import (
	"sort"
	"strconv"
	"strings"
)

// Itemset is a frequent itemset with its support (fraction of transactions).
type Itemset struct {
	Items   []string
	Support float64
}

func (s Itemset) key() string { return strings.Join(s.Items, "\x1f") }

// Apriori returns every itemset whose support is at least minSupport,
// ordered by size then items. Items inside a set are sorted.
func Apriori(m Matrix, minSupport float64) []Itemset {
	n := m.Rows()
	if n == 0 {
		return nil
	}
	items := m.Items()
	// tidsets[i] lists the rows holding item i
	tidsets := make([][]int, len(items))
	for r := 0; r < n; r++ {
		for i := range items {
			if m.Has(r, i) {
				tidsets[i] = append(tidsets[i], r)
			}
		}
	}

	type level struct {
		idx  []int
		rows []int
	}
	var out []Itemset
	var cur []level
	for i := range items {
		if sup := float64(len(tidsets[i])) / float64(n); sup >= minSupport {
			cur = append(cur, level{idx: []int{i}, rows: tidsets[i]})
			out = append(out, Itemset{Items: []string{items[i]}, Support: sup})
		}
	}
	for len(cur) > 1 {
		frequent := make(map[string]bool, len(cur))
		for _, l := range cur {
			frequent[idxKey(l.idx)] = true
		}
		var next []level
		for a := 0; a < len(cur); a++ {
			for b := a + 1; b < len(cur); b++ {
				x, y := cur[a].idx, cur[b].idx
				if !samePrefix(x, y) {
					continue
				}
				cand := append(append([]int(nil), x...), y[len(y)-1])
				if !allSubsetsFrequent(cand, frequent) {
					continue
				}
				rows := intersect(cur[a].rows, cur[b].rows)
				sup := float64(len(rows)) / float64(n)
				if sup < minSupport {
					continue
				}
				next = append(next, level{idx: cand, rows: rows})
				names := make([]string, len(cand))
				for k, i := range cand {
					names[k] = items[i]
				}
				out = append(out, Itemset{Items: names, Support: sup})
			}
		}
		cur = next
	}
	sort.SliceStable(out, func(a, b int) bool {
		if len(out[a].Items) != len(out[b].Items) {
			return len(out[a].Items) < len(out[b].Items)
		}
		return out[a].key() < out[b].key()
	})
	return out
}

// samePrefix reports whether x and y agree on all but their last element;
// both are sorted and x's last element is smaller than y's.
func samePrefix(x, y []int) bool {
	for k := 0; k < len(x)-1; k++ {
		if x[k] != y[k] {
			return false
		}
	}
	return x[len(x)-1] < y[len(y)-1]
}

func allSubsetsFrequent(cand []int, frequent map[string]bool) bool {
	sub := make([]int, 0, len(cand)-1)
	for skip := range cand {
		sub = sub[:0]
		for k, v := range cand {
			if k != skip {
				sub = append(sub, v)
			}
		}
		if !frequent[idxKey(sub)] {
			return false
		}
	}
	return true
}

func idxKey(idx []int) string {
	var b strings.Builder
	for _, i := range idx {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(',')
	}
	return b.String()
}

func intersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	for i, k := 0, 0; i < len(a) && k < len(b); {
		switch {
		case a[i] < b[k]:
			i++
		case a[i] > b[k]:
			k++
		default:
			out = append(out, a[i])
			i++
			k++
		}
	}
	return out
}
