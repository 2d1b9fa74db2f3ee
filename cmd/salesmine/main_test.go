package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	"github.com/wdm0006/salesjanitor/pkg/mining"
)

// cleanedTable writes six TV+Mouse and six Teclado+Cabo purchases.
func cleanedTable(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Id_da_compra,Produto,Valor\n")
	for i := 1; i <= 12; i++ {
		pair := [2]string{"tv", "mouse"}
		if i > 6 {
			pair = [2]string{"teclado", "cabo"}
		}
		for _, p := range pair {
			fmt.Fprintf(&b, "%04d,%s,10.5\n", i, p)
		}
	}
	path := filepath.Join(t.TempDir(), "vendas_limpo.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestRunWritesReport(t *testing.T) {
	in := cleanedTable(t)
	rep := filepath.Join(filepath.Dir(in), "relatorio_analise.txt")
	var stdout strings.Builder
	require.NoError(t, run(context.Background(), options{in: in, report: rep}, &stdout, io.Discard))

	b, err := os.ReadFile(rep)
	require.NoError(t, err)
	text := string(b)
	assert.Contains(t, text, "Transactions: 12\n")
	assert.Contains(t, text, "mouse")
	assert.Contains(t, stdout.String(), "4 rules written")
}

func TestRunGolearnMatrix(t *testing.T) {
	in := cleanedTable(t)
	dir := filepath.Dir(in)
	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("mining:\n  matrix: golearn\n"), 0o644))

	native := filepath.Join(dir, "native.txt")
	viaGolearn := filepath.Join(dir, "golearn.txt")
	require.NoError(t, run(context.Background(), options{in: in, report: native}, io.Discard, io.Discard))
	require.NoError(t, run(context.Background(), options{configPath: cfgPath, in: in, report: viaGolearn}, io.Discard, io.Discard))

	a, _ := os.ReadFile(native)
	b, _ := os.ReadFile(viaGolearn)
	assert.Equal(t, string(a), string(b))
}

func TestRunNoItemsetsSkipsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendas_limpo.csv")
	require.NoError(t, os.WriteFile(path, []byte("Id_da_compra,Produto\n0001,tv\n0001,mouse\n"), 0o644))
	rep := filepath.Join(filepath.Dir(path), "r.txt")

	err := run(context.Background(), options{in: path, report: rep}, io.Discard, io.Discard)
	assert.True(t, errors.Is(err, mining.ErrNoItemsets))
	_, statErr := os.Stat(rep)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	rep := filepath.Join(dir, "r.txt")
	err := run(context.Background(), options{in: filepath.Join(dir, "nope.csv"), report: rep}, io.Discard, io.Discard)
	assert.True(t, errors.Is(err, iox.ErrNoInput))
	_, statErr := os.Stat(rep)
	assert.True(t, os.IsNotExist(statErr))
}
