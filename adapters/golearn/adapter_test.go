package golearn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/salesjanitor/pkg/mining"
)

func TestItemMatrixMatchesNative(t *testing.T) {
	txs := [][]string{{"tv", "soundbar"}, {"mouse"}, {"tv", "mouse", "teclado"}, {"tv", "tv"}}
	native, err := mining.Encode(txs)
	require.NoError(t, err)
	gl, err := EncodeTransactions(txs)
	require.NoError(t, err)

	require.Equal(t, native.Items(), gl.Items())
	require.Equal(t, native.Rows(), gl.Rows())
	for r := 0; r < native.Rows(); r++ {
		for i := range native.Items() {
			assert.Equal(t, native.Has(r, i), gl.Has(r, i), "row %d item %s", r, native.Items()[i])
		}
	}
	assert.Equal(t, mining.Apriori(native, 0.5), mining.Apriori(gl, 0.5))
}

