package cleaning

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/salesjanitor/pkg/config"
	"github.com/wdm0006/salesjanitor/pkg/io/csvio"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/report"
	"github.com/wdm0006/salesjanitor/pkg/synth"
)

// rawExport round-trips a generated export through CSV so column kinds are
// inferred the way a real file would be.
func rawExport(t testing.TB, rows int) *j.Frame {
	var buf bytes.Buffer
	require.NoError(t, csvio.Write(&buf, synth.Generate(synth.DefaultOptions(rows, 42)), csvio.WriterOptions{}))
	opt := csvio.ReaderOptions{HasHeader: true, KeepText: KeepText(config.Default())}
	f, err := csvio.NewReaderFrom(&buf, opt).ReadFrame()
	require.NoError(t, err)
	return f
}

func TestCleanGeneratedExport(t *testing.T) {
	cfg := config.Default()
	raw := rawExport(t, 600)
	st := New(cfg)
	out, err := st.Pipeline().Run(context.Background(), raw)
	require.NoError(t, err)
	_, err = Audit(cfg).Run(context.Background(), out)
	require.NoError(t, err)

	assert.Less(t, out.Rows(), raw.Rows())
	assert.Positive(t, st.Dedup.Removed)
	assert.Positive(t, st.Sanitize.MoneyRemoved)
	assert.Positive(t, st.Temporal.Removed)
	assert.True(t, out.Has("ano_venda"))
	assert.True(t, out.Has("id_da_compra"))

	dropped := map[string]string{}
	for _, d := range st.Dropped() {
		dropped[d.Column] = d.Reason
	}
	assert.Contains(t, dropped, "pais")
	assert.Equal(t, ReasonNullBudget, dropped["observacao"])
	for _, c := range out.Columns() {
		assert.Zero(t, j.NullCount(c), c.Name())
	}
}

func TestLateRawFormatsSurviveInference(t *testing.T) {
	cfg := config.Default()
	var b strings.Builder
	b.WriteString("id_da_compra;valor;data_venda\n")
	for i := 0; i < 120; i++ {
		valor, data := "10.5", "20230105"
		if i == 110 {
			valor, data = "R$ 12,34", "2023-01-06"
		}
		fmt.Fprintf(&b, "%04d;%s;%s\n", i, valor, data)
	}
	opt := csvio.ReaderOptions{HasHeader: true, Delimiter: ';', KeepText: KeepText(cfg)}
	raw, err := csvio.NewReaderFrom(strings.NewReader(b.String()), opt).ReadFrame()
	require.NoError(t, err)

	st := New(cfg)
	out, err := j.NewPipeline().Add(st.Sanitize).Add(st.Temporal).Run(context.Background(), raw)
	require.NoError(t, err)

	valor, _ := out.ColumnByName("valor")
	assert.Equal(t, 10.5, j.Value(valor, 0))
	assert.Equal(t, 12.34, j.Value(valor, 110))
	assert.Zero(t, j.NullCount(valor))

	col, _ := out.ColumnByName("data_venda")
	data, ok := col.(*j.TimeColumn)
	require.True(t, ok)
	d, ok := data.Get(110)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC), d)
	assert.Zero(t, j.NullCount(data))
}

func TestKeepText(t *testing.T) {
	keep := KeepText(config.Default())
	for _, h := range []string{"ID da Compra", "CEP", "Valor", "Frete", "Data da Venda", "Hora Entrega"} {
		assert.True(t, keep(h), h)
	}
	for _, h := range []string{"Quantidade", "Produto"} {
		assert.False(t, keep(h), h)
	}
}

// cleanOnce runs the full pipeline and renders the table and report.
func cleanOnce(t *testing.T, cfg *config.Config, raw *j.Frame) (table, summary []byte) {
	t.Helper()
	st := New(cfg)
	rec := report.NewRecorder(raw)
	out, err := st.Pipeline().Observe(rec.Hook).Run(context.Background(), raw)
	require.NoError(t, err)

	var tb, rb bytes.Buffer
	require.NoError(t, csvio.Write(&tb, out, csvio.WriterOptions{}))
	sum := &report.Summary{
		RawColumns:  raw.Schema().Names(),
		Normalized:  st.Normalize.Renamed,
		Final:       out,
		InitialRows: raw.Rows(),
		Stages:      rec.Stages,
		Dropped:     st.Dropped(),
		Key:         cfg.Columns.Key,
		ProfileTopK: 3,
	}
	_, err = sum.WriteTo(&rb)
	require.NoError(t, err)
	return tb.Bytes(), rb.Bytes()
}

func TestCleanIsDeterministic(t *testing.T) {
	cfg := config.Default()
	raw := rawExport(t, 400)
	table1, report1 := cleanOnce(t, cfg, raw)
	table2, report2 := cleanOnce(t, cfg, raw)
	require.NotEmpty(t, table1)
	assert.True(t, bytes.Equal(table1, table2), "cleaned tables differ")
	assert.True(t, bytes.Equal(report1, report2), "reports differ")
}

func TestPipelineStageOrder(t *testing.T) {
	got := New(config.Default()).Pipeline().Steps()
	assert.Equal(t, []string{
		"normalize_schema", "sanitize_values", "validate_dates",
		"resolve_nulls", "deduplicate", "filter_outliers",
	}, got)
}

func BenchmarkClean(b *testing.B) {
	cfg := config.Default()
	raw := rawExport(b, 20000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(cfg).Pipeline().Run(context.Background(), raw); err != nil {
			b.Fatal(err)
		}
	}
}
