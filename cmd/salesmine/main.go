// Command salesmine reads a cleaned sales table, finds products bought
// together and writes an association-rule report.
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

	golearnadapter "github.com/wdm0006/salesjanitor/adapters/golearn"
	"github.com/wdm0006/salesjanitor/pkg/config"
	"github.com/wdm0006/salesjanitor/pkg/io/csvio"
	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	"github.com/wdm0006/salesjanitor/pkg/io/jsonlio"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/logging"
	"github.com/wdm0006/salesjanitor/pkg/mining"
)

var version = "0.1.0-dev"

type options struct {
	configPath string
	in         string
	report     string
}

func main() {
	var o options
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.StringVar(&o.configPath, "config", "", "Path to config file (yaml, toml or json)")
	flag.StringVar(&o.in, "in", "", "Cleaned table (csv or jsonl, optionally .gz); overrides mining.input")
	flag.StringVar(&o.report, "report", "", "Analysis report path; overrides mining.report")
	flag.Parse()

	if *showVersion {
		fmt.Println("salesmine", version)
		return
	}
	err := run(context.Background(), o, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, mining.ErrNoItemsets):
		fmt.Fprintln(os.Stdout, "no frequent itemsets; report not written")
	case errors.Is(err, iox.ErrNoInput):
		fmt.Fprintln(os.Stderr, "cleaned file not found; run salesclean first or pass -in")
		os.Exit(1)
	default:
		slog.Error("mining failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.in != "" {
		cfg.Mining.Input = o.in
	}
	if o.report != "" {
		cfg.Mining.Report = o.report
	}
	log := logging.Init(stderr, cfg.Logging, "salesmine")
	mc := cfg.Mining

	f, err := readTable(mc.Input, mc.TransactionColumn)
	if err != nil {
		return fmt.Errorf("read %s: %w", mc.Input, err)
	}
	log.Info("input loaded", "path", mc.Input, "rows", f.Rows())
	if err := ctx.Err(); err != nil {
		return err
	}

	opt := mining.Options{
		ProductColumn:     mc.ProductColumn,
		TransactionColumn: mc.TransactionColumn,
		MinProductCount:   mc.MinProductCount,
		MinSupportCount:   mc.MinSupportCount,
		MinConfidence:     mc.MinConfidence,
		BucketSize:        mc.BucketSize,
	}
	if mc.Matrix == "golearn" {
		opt.Encode = golearnadapter.EncodeTransactions
	}
	res, err := mining.Mine(f, opt)
	if err != nil {
		if res != nil {
			log.Warn("mining stopped", "transactions", res.Transactions, "bucketed", res.Bucketed, "err", err)
		}
		return err
	}
	log.Info("rules mined",
		"transactions", res.Transactions,
		"bucketed", res.Bucketed,
		"itemsets", len(res.Itemsets),
		"rules", len(res.Rules),
		"matrix", mc.Matrix,
	)

	out, err := iox.CreateMaybeCompressed(mc.Report)
	if err != nil {
		return err
	}
	if err := mining.WriteReport(out, res, mc.TopN); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", mc.Report, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	log.Info("report written", "path", mc.Report)
	fmt.Fprintf(stdout, "%d rules written to %s\n", len(res.Rules), mc.Report)
	return nil
}

// readTable loads the cleaned table; the transaction id is kept as text.
func readTable(path, idColumn string) (*j.Frame, error) {
	keep := func(h string) bool { return h == idColumn }
	switch strings.ToLower(filepath.Ext(iox.TrimCompression(path))) {
	case ".jsonl", ".ndjson":
		return jsonlio.ReadFile(path, jsonlio.ReaderOptions{KeepText: keep})
	default:
		return csvio.ReadFile(path, csvio.ReaderOptions{HasHeader: true, KeepText: keep})
	}
}
