// Package validate holds read-only checks over a cleaned frame. Each check is
// a janitor.Transform that returns its input unchanged, or an error wrapping
// ErrViolation.
package validate

import (
	"errors"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/vocab"
)

var ErrViolation = errors.New("invariant violated")

// AuditOptions names the columns the audit checks. Empty names and absent
// columns are skipped.
type AuditOptions struct {
	Money      []string
	Status     string
	Payment    []string
	Postal     string
	Key        string
	NullBudget float64

	StatusTable  vocab.Table
	PaymentTable vocab.Table
}

// Audit builds the pipeline of checks a cleaned sales frame must pass.
func Audit(o AuditOptions) *j.Pipeline {
	p := j.NewPipeline()
	zero := 0.0
	for _, m := range o.Money {
		p.Add(&Range{Column: m, Min: &zero})
		p.Add(&Cents{Column: m})
	}
	if vals, closed := o.StatusTable.Canonical(); closed && o.Status != "" {
		p.Add(NewInSet(o.Status, vals))
	}
	if vals, closed := o.PaymentTable.Canonical(); closed {
		for _, c := range o.Payment {
			p.Add(NewInSet(c, vals))
		}
	}
	if o.Postal != "" {
		p.Add(&Postal{Column: o.Postal})
	}
	p.Add(&NullBudget{Budget: o.NullBudget})
	if o.Key != "" {
		p.Add(&UniqueKey{Column: o.Key})
	}
	return p
}
