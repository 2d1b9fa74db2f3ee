package standardize

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/vocab"
)

func stringFrame(cols map[string][]any, order ...string) *j.Frame {
	s := j.Schema{}
	for _, n := range order {
		s.Columns = append(s.Columns, j.ColumnSchema{Name: n, Type: j.KindString, Nullable: true})
	}
	f := j.NewFrame(s)
	rows := len(cols[order[0]])
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		for _, n := range order {
			_ = f.SetCell(i, n, cols[n][i])
		}
	}
	return f
}

func stringsOf(t *testing.T, f *j.Frame, name string) []any {
	t.Helper()
	col, ok := f.ColumnByName(name)
	if !ok {
		t.Fatalf("missing column %s", name)
	}
	out := make([]any, col.Len())
	for i := range out {
		out[i] = j.Value(col, i)
	}
	return out
}

func defaultOptions() Options {
	return Options{
		Names:        []string{"cliente", "vendedor"},
		Status:       "status",
		Product:      "produto",
		Payment:      []string{"forma_pagamento"},
		State:        "estado",
		Postal:       "cep",
		Money:        []string{"valor", "frete"},
		DateTokens:   []string{"data"},
		TimeTokens:   []string{"hora"},
		StatusTable:  vocab.Status(),
		ProductTable: vocab.Product(),
		PaymentTable: vocab.Payment(),
	}
}

func TestSanitizerScenarios(t *testing.T) {
	f := stringFrame(map[string][]any{
		"status":          {"APROVADO ", "ap", "xyz", nil},
		"produto":         {"TV LED", "Notebooks", "  Mouse!! ", "Impresora"},
		"cliente":         {"  joão   da SILVA", "maria", nil, "ANA-LUÍSA"},
		"forma_pagamento": {"Cartão de Crédito", "PIX", "cheque", "Transferência Bancária"},
		"estado":          {"sp", "rj", "mg", nil},
		"cep":             {"12345678", "1234", "01310-100", "cep: 04567-000 apto 3"},
		"valor":           {"10,505", "R$ 99.99", "abc", "7"},
		"data_venda":      {"2023-01-05", "05/01/2023", "", "x"},
	}, "status", "produto", "cliente", "forma_pagamento", "estado", "cep", "valor", "data_venda")

	st := &Sanitizer{Opt: defaultOptions()}
	out, err := st.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}

	check := func(col string, want ...any) {
		t.Helper()
		got := stringsOf(t, out, col)
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Fatalf("%s = %v, want %v", col, got, want)
		}
	}
	check("status", "Approved", "Approved", "Unknown", "Unknown")
	check("produto", "tv", "laptop", "mouse", "impressora")
	check("cliente", "Joao Da Silva", "Maria", nil, "Analuisa")
	check("forma_pagamento", "card", "pix", "other", "transfer")
	check("estado", "SP", "RJ", "MG", nil)
	check("cep", "12345678", nil, "01310100", "04567000")
	check("valor", 10.51, 99.99, nil, 7.0)
	// date columns are left raw for the temporal stage
	check("data_venda", "2023-01-05", "05/01/2023", "", "x")
}

func TestMoneyDropsNegativeRows(t *testing.T) {
	f := stringFrame(map[string][]any{
		"valor": {"10", "-5,00", "3.333", nil},
		"frete": {"1", "2", "-0,01", "4"},
	}, "valor", "frete")
	m := &Money{Columns: []string{"valor", "frete", "total"}}
	out, err := m.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 2 || m.Removed != 2 {
		t.Fatalf("rows = %d removed = %d", out.Rows(), m.Removed)
	}
	got := fmt.Sprint(stringsOf(t, out, "valor"))
	if got != "[10 <nil>]" {
		t.Fatalf("valor = %s", got)
	}
	if f.Rows() != 4 {
		t.Fatal("input frame was mutated")
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"1234,5", 1234.5, true},
		{"R$ 10.994", 10.99, true},
		{"2.345", 2.35, true},
		{int64(7), 7, true},
		{3.14159, 3.14, true},
		{"-1,2", -1.2, true},
		{"", 0, false},
		{"1.234,56", 0, false},
		{nil, 0, false},
	}
	for _, c := range cases {
		got, ok := ParseMoney(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseMoney(%v) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestPostalIsEightDigitsOrMissing(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	alphabet := []byte("0123456789- ab")
	for n := 0; n < 2000; n++ {
		b := make([]byte, rnd.Intn(14))
		for i := range b {
			b[i] = alphabet[rnd.Intn(len(alphabet))]
		}
		code, ok := ParsePostal(string(b))
		if !ok {
			continue
		}
		if len(code) != 8 {
			t.Fatalf("ParsePostal(%q) = %q", b, code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("ParsePostal(%q) = %q", b, code)
			}
		}
	}
}

func TestCaseTransforms(t *testing.T) {
	f := stringFrame(map[string][]any{"s": {"Foo bar", nil}}, "s")
	up, _ := (&Upper{Column: "s"}).Apply(context.Background(), f)
	title, _ := (&TitleCase{Column: "s"}).Apply(context.Background(), up)
	if v := j.Value(mustCol(up, "s"), 0); v != "FOO BAR" {
		t.Fatalf("upper = %v", v)
	}
	if v := j.Value(mustCol(title, "s"), 0); v != "Foo Bar" {
		t.Fatalf("title = %v", v)
	}
	if v := j.Value(mustCol(f, "s"), 0); v != "Foo bar" {
		t.Fatal("input frame was mutated")
	}
}

func mustCol(f *j.Frame, name string) j.Column {
	c, _ := f.ColumnByName(name)
	return c
}
