// Package cleaning assembles the sales-cleaning stages from a Config and
// exposes their counters once the pipeline has run.
package cleaning

import (
	"log/slog"
	"slices"

	"github.com/wdm0006/salesjanitor/pkg/config"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/report"
	"github.com/wdm0006/salesjanitor/pkg/textnorm"
	"github.com/wdm0006/salesjanitor/pkg/transform/dedup"
	"github.com/wdm0006/salesjanitor/pkg/transform/impute"
	"github.com/wdm0006/salesjanitor/pkg/transform/outliers"
	"github.com/wdm0006/salesjanitor/pkg/transform/schema"
	"github.com/wdm0006/salesjanitor/pkg/transform/standardize"
	"github.com/wdm0006/salesjanitor/pkg/transform/temporal"
	"github.com/wdm0006/salesjanitor/pkg/transform/validate"
)

const ReasonNullBudget = "missing ratio above budget"

// Stages holds one instance of every cleaning transform, in run order.
type Stages struct {
	Normalize *schema.Normalizer
	Sanitize  *standardize.Sanitizer
	Temporal  *temporal.Validator
	Resolve   *impute.Resolver
	Dedup     *dedup.Deduplicator
	Outliers  *outliers.Filter
}

func New(cfg *config.Config) *Stages {
	c := cfg.Columns
	return &Stages{
		Normalize: &schema.Normalizer{Key: c.Key, UniquenessLimit: cfg.Cleaning.UniquenessLimit},
		Sanitize: &standardize.Sanitizer{Opt: standardize.Options{
			Names:        c.Names,
			Status:       c.Status,
			Product:      c.Product,
			Payment:      c.Payment,
			State:        c.State,
			Postal:       c.Postal,
			Money:        c.Money,
			DateTokens:   c.DateTokens,
			TimeTokens:   c.TimeTokens,
			StatusTable:  cfg.Vocab.Status,
			ProductTable: cfg.Vocab.Product,
			PaymentTable: cfg.Vocab.Payment,
		}},
		Temporal: &temporal.Validator{
			DateTokens:   c.DateTokens,
			TimeTokens:   c.TimeTokens,
			SaleDate:     c.SaleDate,
			DeliveryDate: c.DeliveryDate,
			SaleYear:     c.SaleYear,
			SaleMonth:    c.SaleMonth,
		},
		Resolve: &impute.Resolver{
			NullBudget:      cfg.Cleaning.NullBudget,
			NumericStrategy: cfg.Cleaning.NumericStrategy,
			Fallback:        cfg.Cleaning.TextFallback,
			Money:           c.Money,
		},
		Dedup:    &dedup.Deduplicator{Key: c.Key},
		Outliers: &outliers.Filter{Factor: cfg.Cleaning.IQRFactor, Exclude: cfg.Cleaning.OutlierExclude},
	}
}

// KeepText reports which raw headers a reader must load as text: the key and
// postal code keep leading zeros, and money, date and time columns are parsed
// by their own stages in formats type inference would reject.
func KeepText(cfg *config.Config) func(header string) bool {
	c := cfg.Columns
	return func(header string) bool {
		n := textnorm.Identifier(header)
		return n == c.Key || n == c.Postal ||
			slices.Contains(c.Money, n) ||
			textnorm.ContainsAny(n, c.DateTokens) ||
			textnorm.ContainsAny(n, c.TimeTokens)
	}
}

// Pipeline chains the stages. Counters on s are filled as it runs.
func (s *Stages) Pipeline() *j.Pipeline {
	return j.NewPipeline().
		Add(s.Normalize).
		Add(s.Sanitize).
		Add(s.Temporal).
		Add(s.Resolve).
		Add(s.Dedup).
		Add(s.Outliers)
}

// Dropped lists every column removed by the schema and null-budget stages.
func (s *Stages) Dropped() []report.Dropped {
	var out []report.Dropped
	for _, d := range s.Normalize.Dropped {
		out = append(out, report.Dropped{Column: d.Column, Reason: d.Reason})
	}
	for _, c := range s.Resolve.Dropped {
		out = append(out, report.Dropped{Column: c, Reason: ReasonNullBudget})
	}
	return out
}

func (s *Stages) LogRemovals(log *slog.Logger) {
	log.Info("rows removed",
		"negative_amount", s.Sanitize.MoneyRemoved,
		"delivery_before_sale", s.Temporal.Removed,
		"duplicate", s.Dedup.Removed,
	)
	for col, n := range s.Outliers.Removed {
		log.Debug("outliers removed", "column", col, "rows", n)
	}
	for _, d := range s.Dropped() {
		log.Info("column dropped", "column", d.Column, "reason", d.Reason)
	}
}

// Audit builds the post-cleaning checks for cfg.
func Audit(cfg *config.Config) *j.Pipeline {
	return validate.Audit(validate.AuditOptions{
		Money:        cfg.Columns.Money,
		Status:       cfg.Columns.Status,
		Payment:      cfg.Columns.Payment,
		Postal:       cfg.Columns.Postal,
		Key:          cfg.Columns.Key,
		NullBudget:   cfg.Cleaning.NullBudget,
		StatusTable:  cfg.Vocab.Status,
		PaymentTable: cfg.Vocab.Payment,
	})
}
