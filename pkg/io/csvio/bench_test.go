package csvio

import (
	"bytes"
	"fmt"
	"testing"
)

func BenchmarkReadSales(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString("id_da_compra,produto,valor,cep\n")
	for i := 0; i < 10000; i++ {
		fmt.Fprintf(&buf, "%05d,tv,%d.%02d,0131%04d\n", i, i%500, i%100, i)
	}
	data := buf.Bytes()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r := NewReaderFrom(bytes.NewReader(data), ReaderOptions{HasHeader: true})
		fr, err := r.ReadFrame()
		if err != nil {
			b.Fatal(err)
		}
		if fr.Rows() == 0 {
			b.Fatal("no rows")
		}
	}
}
