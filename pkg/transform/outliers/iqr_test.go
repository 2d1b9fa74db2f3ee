package outliers

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

func numericFrame(valor []any, frete []any) *j.Frame {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{
		{Name: "produto", Type: j.KindString},
		{Name: "valor", Type: j.KindFloat},
		{Name: "frete", Type: j.KindInt},
	}})
	for i := range valor {
		f.AppendNullRow()
		_ = f.SetCell(i, "produto", "tv")
		_ = f.SetCell(i, "valor", valor[i])
		_ = f.SetCell(i, "frete", frete[i])
	}
	return f
}

func TestQuantileLinear(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, Quantile(s, 0.25), 1e-12)
	assert.InDelta(t, 3.25, Quantile(s, 0.75), 1e-12)
	assert.Equal(t, 4.0, Quantile(s, 1))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.25))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestFilterRemovesExtremeRows(t *testing.T) {
	f := numericFrame(
		[]any{10.0, 11.0, 12.0, 13.0, 1000.0, nil},
		[]any{int64(5), int64(5), int64(5), int64(5), int64(5), int64(5)},
	)
	flt := &Filter{Factor: 1.5}
	out, err := flt.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Rows(), "null valor must survive")
	assert.Equal(t, 1, flt.Removed["valor"])
	assert.Equal(t, 6, f.Rows())
}

func TestFilterIsSequential(t *testing.T) {
	// frete fences are computed after valor removed row 4, so the 9 in row 3
	// is judged against {1,1,1,9,1}: Q1=Q3=1 and 9 goes.
	f := numericFrame(
		[]any{10.0, 10.0, 10.0, 10.0, 500.0, 10.0},
		[]any{int64(1), int64(1), int64(1), int64(9), int64(1), int64(1)},
	)
	flt := &Filter{Factor: 1.5}
	out, err := flt.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"valor", "frete"}, flt.Order(f))
	assert.Equal(t, 4, out.Rows())
	assert.Equal(t, map[string]int{"valor": 1, "frete": 1}, flt.Removed)
}

func TestFilterExclude(t *testing.T) {
	f := numericFrame([]any{1.0, 1.0, 1.0, 99.0}, []any{int64(1), int64(1), int64(1), int64(1)})
	flt := &Filter{Factor: 1.5, Exclude: []string{"valor"}}
	out, err := flt.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Rows())
	assert.Equal(t, []string{"frete"}, flt.Order(f))
}

func TestSurvivorsWithinFences(t *testing.T) {
	vals := []any{}
	ints := []any{}
	for i := 0; i < 50; i++ {
		vals = append(vals, float64((i*37)%101))
		ints = append(ints, int64(i%7))
	}
	vals[3], vals[9] = 5000.0, -4000.0
	f := numericFrame(vals, ints)
	out, err := (&Filter{Factor: 1.5}).Apply(context.Background(), f)
	require.NoError(t, err)

	col, _ := out.ColumnByName("valor")
	got := numbers(col)
	for _, v := range got {
		assert.NotEqual(t, 5000.0, v)
		assert.NotEqual(t, -4000.0, v)
	}
}
