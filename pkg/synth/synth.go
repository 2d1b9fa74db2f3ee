// Package synth generates dirty sales exports for demos and benchmarks: mixed
// date formats, spelling variants, stray symbols, negative and extreme
// amounts, out-of-order deliveries, duplicates and missing cells.
package synth

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

// Headers are the raw column names of a generated export, in order.
var Headers = []string{
	"ID da Compra", "Data Venda", "Data Entrega", "Hora", "Cliente", "Vendedor",
	"Produto", "Quantidade", "Valor", "Frete", "Status", "Forma de Pagamento",
	"Cidade", "Estado", "País", "CEP", "Observação",
}

type Options struct {
	Rows int
	Seed int64
	// DuplicateRate is the chance a row repeats an earlier one verbatim.
	DuplicateRate float64
	// MissingRate is the chance any non-key cell is blank.
	MissingRate float64
	// NegativeRate and OutlierRate shape the Valor column.
	NegativeRate float64
	OutlierRate  float64
}

// DefaultOptions returns rates that exercise every cleaning stage.
func DefaultOptions(rows int, seed int64) Options {
	return Options{
		Rows:          rows,
		Seed:          seed,
		DuplicateRate: 0.05,
		MissingRate:   0.03,
		NegativeRate:  0.03,
		OutlierRate:   0.01,
	}
}

var (
	clients  = []string{"joão da silva", "MARIA SOUZA", "  ana  luísa ", "Pedro Álvares", "carla  dias", "José-Antônio"}
	sellers  = []string{"bruno", "FERNANDA lima", "Otávio  ", "luiza reis"}
	products = []string{"TV LED", "tv", "Notebook", "notebooks", "Impresora", "Mouse!!", "mouse", "celulares", "Smartphone", "Teclado"}
	prices   = map[string]float64{"tv": 2500, "notebook": 4200, "impresora": 900, "mouse": 60, "celulares": 1800, "smartphone": 1800, "teclado": 150}
	statuses = []string{"Aprovado", "APROVADO ", "ap", "pendente", "Reprovado", "???"}
	payments = []string{"Cartão de Crédito", "PIX", "boleto", "Dinheiro", "transferência", "Débito"}
	cities   = []string{"São Paulo", "rio de janeiro", "Belo Horizonte", "curitiba"}
	states   = []string{"sp", "RJ", "mg", "Pr"}
	notes    = []string{"entregar após 18h", "cliente vip", "presente"}
	freights = []string{"9,99", "15,90", "22,50", "30,00", "R$ 45,00"}
	dateFmts = []string{"2006-01-02", "02/01/2006", "20060102", "2006/01/02"}
	epoch    = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Generate builds an all-text frame with Headers as columns. The same
// options always yield the same frame.
func Generate(opt Options) *j.Frame {
	rnd := rand.New(rand.NewSource(opt.Seed))
	cols := make([]j.ColumnSchema, len(Headers))
	for i, h := range Headers {
		cols[i] = j.ColumnSchema{Name: h, Type: j.KindString, Nullable: true}
	}
	f := j.NewFrame(j.Schema{Columns: cols})
	rows := make([][]string, 0, opt.Rows)
	for i := 0; i < opt.Rows; i++ {
		var rec []string
		if i > 0 && rnd.Float64() < opt.DuplicateRate {
			rec = rows[rnd.Intn(len(rows))]
		} else {
			rec = record(rnd, len(rows)+1, opt)
		}
		rows = append(rows, rec)
		f.AppendNullRow()
		for c, v := range rec {
			if v != "" {
				_ = f.SetCell(i, Headers[c], v)
			}
		}
	}
	return f
}

func record(rnd *rand.Rand, id int, opt Options) []string {
	pick := func(vals []string) string { return vals[rnd.Intn(len(vals))] }
	sale := epoch.AddDate(0, 0, rnd.Intn(180))
	delivery := sale.AddDate(0, 0, rnd.Intn(13)-2)
	product := pick(products)

	rec := []string{
		fmt.Sprintf("%05d", id),
		sale.Format(pick(dateFmts)),
		delivery.Format("2006-01-02"),
		clock(rnd),
		pick(clients),
		pick(sellers),
		product,
		strconv.Itoa(1 + rnd.Intn(5)),
		amount(rnd, product, opt),
		pick(freights),
		pick(statuses),
		pick(payments),
		pick(cities),
		pick(states),
		"Brasil",
		postal(rnd),
		"",
	}
	if rnd.Float64() < 0.2 {
		rec[len(rec)-1] = pick(notes)
	}
	for c := 1; c < len(rec); c++ {
		if rnd.Float64() < opt.MissingRate {
			rec[c] = ""
		}
	}
	return rec
}

// clock writes a quarter hour either as HH:MM:SS or as the bare HHMMSS
// integer, which loses the leading zero before ten o'clock.
func clock(rnd *rand.Rand) string {
	h, m, s := rnd.Intn(24), 15*rnd.Intn(4), 0
	if rnd.Intn(2) == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return strconv.Itoa(h*10000 + m*100 + s)
}

func amount(rnd *rand.Rand, product string, opt Options) string {
	base, ok := prices[strings.ToLower(strings.Trim(product, "!"))]
	if !ok {
		base = 500
	}
	// list prices move in 5% steps
	v := base * (0.8 + 0.05*float64(rnd.Intn(9)))
	switch r := rnd.Float64(); {
	case r < opt.NegativeRate:
		v = -v
	case r < opt.NegativeRate+opt.OutlierRate:
		v *= 100
	}
	s := fmt.Sprintf("%.3f", v)
	switch rnd.Intn(3) {
	case 0:
		return strings.Replace(s, ".", ",", 1)
	case 1:
		return "R$ " + s
	default:
		return s
	}
}

func postal(rnd *rand.Rand) string {
	d := fmt.Sprintf("%05d%03d", 1000+rnd.Intn(40)*1717, rnd.Intn(4)*250)
	switch rnd.Intn(5) {
	case 0:
		return d[:5] + "-" + d[5:]
	case 1:
		return "cep " + d[:5] + "-" + d[5:]
	case 2:
		return d[:3]
	default:
		return d
	}
}
