package mining

import (
	"errors"
	"fmt"
	"sort"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

var (
	// ErrMissingColumn reports that the product or purchase-id column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoItemsets reports that no itemset reached the minimum support.
	ErrNoItemsets = errors.New("no frequent itemsets")
)

// ProductCount is one line of the product ranking.
type ProductCount struct {
	Product string
	Count   int
}

// Basket is one row-level purchase: its position in the input, its
// purchase id (empty when missing) and the product.
type Basket struct {
	Row     int
	ID      string
	Product string
}

// Baskets reads the product and purchase-id columns. Rows with no product
// are skipped.
func Baskets(f *j.Frame, productCol, idCol string) ([]Basket, error) {
	pc, ok := f.ColumnByName(productCol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, productCol)
	}
	ic, ok := f.ColumnByName(idCol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, idCol)
	}
	out := make([]Basket, 0, f.Rows())
	for i := 0; i < f.Rows(); i++ {
		p, ok := pc.Text(i)
		if !ok {
			continue
		}
		id, _ := ic.Text(i)
		out = append(out, Basket{Row: i, ID: id, Product: p})
	}
	return out, nil
}

// Rank counts rows per product, most sold first; ties sort by name.
func Rank(bs []Basket) []ProductCount {
	counts := map[string]int{}
	for _, b := range bs {
		counts[b.Product]++
	}
	out := make([]ProductCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, ProductCount{p, n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Product < out[b].Product
	})
	return out
}

// DropRare keeps the baskets whose product appears in at least min rows.
func DropRare(bs []Basket, min int) []Basket {
	counts := map[string]int{}
	for _, b := range bs {
		counts[b.Product]++
	}
	out := bs[:0:0]
	for _, b := range bs {
		if counts[b.Product] >= min {
			out = append(out, b)
		}
	}
	return out
}

// GroupByID builds one transaction per purchase id, in order of first
// appearance, keeping those with more than one distinct product. Baskets
// without an id belong to no transaction.
func GroupByID(bs []Basket) [][]string {
	index := map[string]int{}
	var groups [][]string
	for _, b := range bs {
		if b.ID == "" {
			continue
		}
		i, ok := index[b.ID]
		if !ok {
			i = len(groups)
			index[b.ID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], b.Product)
	}
	out := groups[:0]
	for _, g := range groups {
		if len(distinct(g)) > 1 {
			out = append(out, g)
		}
	}
	return out
}

// Bucket groups baskets by input position, size rows to a bucket:
// rows 0..size-1 form the first transaction, and so on. Empty buckets are
// omitted.
func Bucket(bs []Basket, size int) [][]string {
	if size <= 0 {
		size = 5
	}
	index := map[int]int{}
	var out [][]string
	for _, b := range bs {
		k := b.Row / size
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], b.Product)
	}
	return out
}

func distinct(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if _, ok := seen[it]; !ok {
			seen[it] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}
