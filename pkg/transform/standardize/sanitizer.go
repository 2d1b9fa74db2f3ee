// Package standardize cleans cell values: free text, names, categorical
// vocabularies, postal codes and monetary amounts.
package standardize

import (
	"context"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/textnorm"
	"github.com/wdm0006/salesjanitor/pkg/vocab"
)

// Options names the columns each rule applies to. Absent columns are skipped
// one by one.
type Options struct {
	Names   []string
	Status  string
	Product string
	Payment []string
	State   string
	Postal  string
	Money   []string

	// Columns whose names contain these tokens hold dates or times and are
	// left for the temporal stage.
	DateTokens []string
	TimeTokens []string

	StatusTable  vocab.Table
	ProductTable vocab.Table
	PaymentTable vocab.Table
}

// Sanitizer runs the value-level rules in a fixed order: money, postal code,
// free text, names, status, product, payment, state.
type Sanitizer struct {
	Opt Options

	// MoneyRemoved is the number of rows dropped for negative amounts.
	MoneyRemoved int
}

func (t *Sanitizer) Name() string { return "sanitize_values" }

func (t *Sanitizer) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	money := &Money{Columns: t.Opt.Money}
	steps := []j.Transform{
		money,
		&Postal{Column: t.Opt.Postal},
		&CleanText{Skip: t.skipped(f)},
	}
	for _, n := range t.Opt.Names {
		steps = append(steps, &TitleCase{Column: n})
	}
	steps = append(steps,
		&MapValues{Column: t.Opt.Status, Table: t.Opt.StatusTable},
		&MapValues{Column: t.Opt.Product, Table: t.Opt.ProductTable},
	)
	for _, p := range t.Opt.Payment {
		steps = append(steps, &MapValues{Column: p, Table: t.Opt.PaymentTable})
	}
	steps = append(steps, &Upper{Column: t.Opt.State})

	p := j.NewPipeline()
	for _, s := range steps {
		p.Add(s)
	}
	out, err := p.Run(ctx, f)
	if err != nil {
		return nil, err
	}
	t.MoneyRemoved = money.Removed
	return out, nil
}

// skipped lists the columns free-text cleaning must not touch because a
// field-specific parser owns them.
func (t *Sanitizer) skipped(f *j.Frame) []string {
	skip := append([]string{t.Opt.Postal}, t.Opt.Money...)
	for _, name := range f.Schema().Names() {
		if textnorm.ContainsAny(name, t.Opt.DateTokens) || textnorm.ContainsAny(name, t.Opt.TimeTokens) {
			skip = append(skip, name)
		}
	}
	return skip
}
