package jsonlio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

func TestJSONLInferAndRead(t *testing.T) {
	in := `{"id":"A1","valor":10.5,"qtd":2,"ok":true}
{"id":"A2","valor":3,"qtd":null,"ok":false,"extra":"x"}
{"id":"A3","valor":null,"qtd":1}
`
	r := NewReaderFrom(strings.NewReader(in), ReaderOptions{SampleRows: 2})
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(schema.Names(), ","); got != "id,valor,qtd,ok,extra" {
		t.Fatalf("keys = %s", got)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", fr.Rows())
	}
	valor, _ := fr.ColumnByName("valor")
	if valor.Kind() != j.KindFloat || !valor.IsNull(2) {
		t.Fatalf("valor kind %s null=%v", valor.Kind(), valor.IsNull(2))
	}
}

func TestWriteThenRead(t *testing.T) {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{
		{Name: "id_da_compra", Type: j.KindString},
		{Name: "valor", Type: j.KindFloat},
		{Name: "data_venda", Type: j.KindTime, Layout: j.LayoutDate},
	}})
	f.AppendNullRow()
	_ = f.SetCell(0, "id_da_compra", "007")
	_ = f.SetCell(0, "valor", 10.5)
	_ = f.SetCell(0, "data_venda", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC))
	f.AppendNullRow()
	_ = f.SetCell(1, "id_da_compra", "008")

	var buf bytes.Buffer
	if err := Write(&buf, f, WriterOptions{Headers: map[string]string{"id_da_compra": "Id_da_compra"}}); err != nil {
		t.Fatal(err)
	}
	want := `{"Id_da_compra":"007","valor":10.5,"data_venda":"2023-01-05"}
{"Id_da_compra":"008","valor":null,"data_venda":null}
`
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}

	r := NewReaderFrom(&buf, ReaderOptions{KeepText: func(k string) bool { return k == "Id_da_compra" }})
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	back, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := back.ColumnByName("Id_da_compra")
	if s, _ := id.Text(0); s != "007" {
		t.Fatalf("id = %q", s)
	}
}
