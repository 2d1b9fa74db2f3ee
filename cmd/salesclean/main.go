// Command salesclean turns a raw sales export into an analysis-ready table
// and a plain-text cleaning report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wdm0006/salesjanitor/pkg/cleaning"
	"github.com/wdm0006/salesjanitor/pkg/config"
	"github.com/wdm0006/salesjanitor/pkg/io/csvio"
	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	"github.com/wdm0006/salesjanitor/pkg/io/jsonlio"
	"github.com/wdm0006/salesjanitor/pkg/io/parquetio"
	"github.com/wdm0006/salesjanitor/pkg/io/xlsxio"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/logging"
	"github.com/wdm0006/salesjanitor/pkg/profile"
	"github.com/wdm0006/salesjanitor/pkg/report"
)

var version = "0.1.0-dev"

type options struct {
	configPath string
	in         string
	out        string
	report     string
	format     string
	profile    bool
}

func main() {
	var o options
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.StringVar(&o.configPath, "config", "", "Path to config file (yaml, toml or json)")
	flag.StringVar(&o.in, "in", "", "Raw export (csv, csv.gz or xlsx); overrides input.path")
	flag.StringVar(&o.out, "out", "", "Cleaned table path; overrides output.path")
	flag.StringVar(&o.report, "report", "", "Cleaning report path; overrides output.report")
	flag.StringVar(&o.format, "format", "", "Output format: csv, parquet or jsonl; overrides output.format")
	flag.BoolVar(&o.profile, "profile", false, "Print a column profile of the cleaned table to stdout")
	flag.Parse()

	if *showVersion {
		fmt.Println("salesclean", version)
		return
	}
	if err := run(context.Background(), o, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, iox.ErrNoInput) {
			fmt.Fprintln(os.Stderr, "input file not found; check -in or input.path")
		}
		slog.Error("cleaning failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, o)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	log := logging.Init(stderr, cfg.Logging, "salesclean")

	raw, notes, err := readInput(cfg)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input.Path, err)
	}
	log.Info("input loaded", "path", cfg.Input.Path, "rows", raw.Rows(), "cols", raw.Cols())

	st := cleaning.New(cfg)
	rec := report.NewRecorder(raw)
	p := st.Pipeline().
		Observe(rec.Hook).
		Observe(func(stage string, out *j.Frame) {
			log.Info("stage done", "stage", stage, "rows", out.Rows(), "cols", out.Cols())
		})
	clean, err := p.Run(ctx, raw)
	if err != nil {
		return err
	}
	st.LogRemovals(log)

	if _, err := cleaning.Audit(cfg).Run(ctx, clean); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if err := writeOutput(cfg, clean); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Path, err)
	}
	log.Info("table written", "path", cfg.Output.Path, "format", cfg.Output.Format, "rows", clean.Rows(), "cols", clean.Cols())

	sum := &report.Summary{
		RawColumns:  raw.Schema().Names(),
		Normalized:  st.Normalize.Renamed,
		Final:       clean,
		InitialRows: raw.Rows(),
		Stages:      rec.Stages,
		Dropped:     st.Dropped(),
		Key:         keyDisplay(cfg, clean),
		Notes:       notes,
		ProfileTopK: 3,
	}
	if err := sum.WriteFile(cfg.Output.Report); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Report, err)
	}
	log.Info("report written", "path", cfg.Output.Report)

	if o.profile {
		profile.Of(clean, 5).WriteTable(stdout)
	}
	return nil
}

func applyFlags(cfg *config.Config, o options) {
	if o.in != "" {
		cfg.Input.Path = o.in
	}
	if o.out != "" {
		cfg.Output.Path = o.out
	}
	if o.report != "" {
		cfg.Output.Report = o.report
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	} else if o.out != "" {
		switch filepath.Ext(iox.TrimCompression(o.out)) {
		case ".parquet":
			cfg.Output.Format = "parquet"
		case ".jsonl":
			cfg.Output.Format = "jsonl"
		}
	}
}

// keyDisplay names the dedup key as it appears in the exported table, or ""
// when the key column did not survive.
func keyDisplay(cfg *config.Config, f *j.Frame) string {
	if !f.Has(cfg.Columns.Key) {
		return ""
	}
	if d, ok := cfg.Headers[cfg.Columns.Key]; ok {
		return d
	}
	return cfg.Columns.Key
}

// readInput loads the export chosen by extension.
func readInput(cfg *config.Config) (*j.Frame, []string, error) {
	keep := cleaning.KeepText(cfg)
	path := cfg.Input.Path
	switch strings.ToLower(filepath.Ext(iox.TrimCompression(path))) {
	case ".xlsx", ".xlsm":
		f, err := xlsxio.ReadFile(path, xlsxio.ReaderOptions{Sheet: cfg.Input.Sheet, KeepText: keep})
		return f, nil, err
	case ".jsonl", ".ndjson":
		f, err := jsonlio.ReadFile(path, jsonlio.ReaderOptions{KeepText: keep})
		return f, nil, err
	default:
		r, c, err := csvio.Open(path, csvio.ReaderOptions{
			HasHeader: true,
			Delimiter: config.DelimiterRune(cfg.Input.Delimiter),
			KeepText:  keep,
		})
		if err != nil {
			return nil, nil, err
		}
		defer func() { _ = c.Close() }()
		f, err := r.ReadFrame()
		if err != nil {
			return nil, nil, err
		}
		var notes []string
		if w := r.Warnings(); w != "" {
			notes = append(notes, "input repaired: "+w)
		}
		return f, notes, nil
	}
}

func writeOutput(cfg *config.Config, f *j.Frame) error {
	path := cfg.Output.Path
	switch cfg.Output.Format {
	case "parquet":
		return parquetio.WriteAll(path, f, parquetio.WriterOptions{Headers: cfg.Headers, Parallel: 4})
	case "jsonl":
		return jsonlio.WriteAll(path, f, jsonlio.WriterOptions{Headers: cfg.Headers})
	default:
		return csvio.WriteAll(path, f, csvio.WriterOptions{
			Delimiter: config.DelimiterRune(cfg.Output.Delimiter),
			Headers:   cfg.Headers,
		})
	}
}
