package profile

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

func salesFrame() *j.Frame {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{
		{Name: "produto", Type: j.KindString},
		{Name: "valor", Type: j.KindFloat},
		{Name: "empty", Type: j.KindInt},
	}})
	rows := [][2]any{{"tv", 10.0}, {"mouse", 2.0}, {"tv", nil}, {"laptop", 30.0}}
	for i, r := range rows {
		f.AppendNullRow()
		_ = f.SetCell(i, "produto", r[0])
		_ = f.SetCell(i, "valor", r[1])
	}
	return f
}

func TestCollector(t *testing.T) {
	c := Of(salesFrame(), 2)
	cols := c.Columns()
	require.Len(t, cols, 3)

	assert.Equal(t, 3, cols[1].Num.Count)
	assert.Equal(t, 1, cols[1].Num.Nulls)
	assert.Equal(t, 2.0, cols[1].Num.Min)
	assert.Equal(t, 30.0, cols[1].Num.Max)
	assert.InDelta(t, 14.0, cols[1].Num.Mean(), 1e-9)

	assert.Equal(t, []ValueCount{{"tv", 2}, {"laptop", 1}}, cols[0].Str.Top(2))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	Of(salesFrame(), 3).WriteTable(&buf)
	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "COLUMN")
	assert.Contains(t, out, "tv (2)")
	assert.Contains(t, out, "14.00")
}

func TestReportJSONEncodes(t *testing.T) {
	b, err := json.Marshal(Of(salesFrame(), 1).ReportJSON())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name":"empty"`)
}
