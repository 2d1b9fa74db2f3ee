// Package golearn provides a golearn-backed item matrix for association
// mining.
package golearn

import (
	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/salesjanitor/pkg/mining"
)

// ItemMatrix stores transaction item presence as 0/1 float attributes, one
// per item, in a DenseInstances grid.
type ItemMatrix struct {
	inst  *base.DenseInstances
	specs []base.AttributeSpec
	items []string
	rows  int
}

// EncodeTransactions is a mining.Encoder backed by golearn.
func EncodeTransactions(txs [][]string) (mining.Matrix, error) {
	items := mining.Items(txs)
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(items))
	pos := make(map[string]int, len(items))
	for i, it := range items {
		specs[i] = inst.AddAttribute(base.NewFloatAttribute(it))
		pos[it] = i
	}
	m := &ItemMatrix{inst: inst, specs: specs, items: items, rows: len(txs)}
	if len(items) == 0 {
		return m, nil
	}
	if err := inst.Extend(len(txs)); err != nil {
		return nil, err
	}
	one := base.PackFloatToBytes(1)
	zero := base.PackFloatToBytes(0)
	for r, tx := range txs {
		for i := range items {
			inst.Set(specs[i], r, zero)
		}
		for _, it := range tx {
			inst.Set(specs[pos[it]], r, one)
		}
	}
	return m, nil
}

func (m *ItemMatrix) Items() []string { return m.items }
func (m *ItemMatrix) Rows() int       { return m.rows }

func (m *ItemMatrix) Has(row, item int) bool {
	return base.UnpackBytesToFloat(m.inst.Get(m.specs[item], row)) == 1
}
