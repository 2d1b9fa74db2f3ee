package parquetio

import (
	"path/filepath"
	"testing"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

func makeFrame(rows int) *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "a", Type: j.KindFloat, Nullable: true}, {Name: "b", Type: j.KindInt, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "a", float64(i%100))
		_ = f.SetCell(i, "b", int64(i%10))
	}
	return f
}

func BenchmarkParquetWrite(b *testing.B) {
	f := makeFrame(50000)
	path := filepath.Join(b.TempDir(), "bench.parquet")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := WriteAll(path, f, WriterOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
