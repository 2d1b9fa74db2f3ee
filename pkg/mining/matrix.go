package mining

import "sort"

// Matrix is a boolean item-presence table: one row per transaction, one
// column per item, items sorted.
type Matrix interface {
	Items() []string
	Rows() int
	Has(row, item int) bool
}

// Encoder turns transactions into a Matrix.
type Encoder func(txs [][]string) (Matrix, error)

// Items returns the sorted distinct items across txs.
func Items(txs [][]string) []string {
	seen := map[string]struct{}{}
	for _, tx := range txs {
		for _, it := range tx {
			seen[it] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for it := range seen {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// BoolMatrix is the in-memory Matrix.
type BoolMatrix struct {
	items []string
	cells [][]bool
}

// Encode is the default Encoder.
func Encode(txs [][]string) (Matrix, error) {
	items := Items(txs)
	pos := make(map[string]int, len(items))
	for i, it := range items {
		pos[it] = i
	}
	m := &BoolMatrix{items: items, cells: make([][]bool, len(txs))}
	for r, tx := range txs {
		row := make([]bool, len(items))
		for _, it := range tx {
			row[pos[it]] = true
		}
		m.cells[r] = row
	}
	return m, nil
}

func (m *BoolMatrix) Items() []string        { return m.items }
func (m *BoolMatrix) Rows() int              { return len(m.cells) }
func (m *BoolMatrix) Has(row, item int) bool { return m.cells[row][item] }
