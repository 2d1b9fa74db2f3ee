package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadYAMLMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	body := `
cleaning:
  null_budget: 0.3
vocab:
  product:
    entries:
      "tv 4k": tv
headers:
  observacao: Observacao
`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Cleaning.NullBudget)
	assert.Equal(t, 0.9, cfg.Cleaning.UniquenessLimit)
	assert.Equal(t, "tv", cfg.Vocab.Product.Lookup("tv 4k"))
	assert.Equal(t, "tv", cfg.Vocab.Product.Lookup("tv led"))
	assert.Equal(t, "Observacao", cfg.Headers["observacao"])
	assert.Equal(t, "Id_da_compra", cfg.Headers["id_da_compra"])
}

func TestLoadYAMLReplacesVocabulary(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	body := `
vocab:
  payment:
    replace: true
    entries:
      pix: pix
      dinheiro: dinheiro
`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pix": "pix", "dinheiro": "dinheiro"}, cfg.Vocab.Payment.Entries)
	assert.Equal(t, Default().Vocab.Payment.Fallback, cfg.Vocab.Payment.Fallback)
	assert.Equal(t, Default().Vocab.Status.Entries, cfg.Vocab.Status.Entries)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.toml")
	body := "[mining]\nmin_support_count = 3\nmatrix = \"golearn\"\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Mining.MinSupportCount)
	assert.Equal(t, "golearn", cfg.Mining.Matrix)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SALESJANITOR_CLEANING_IQR_FACTOR", "3")
	t.Setenv("SALESJANITOR_OUTPUT_FORMAT", "parquet")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Cleaning.IQRFactor)
	assert.Equal(t, "parquet", cfg.Output.Format)
	assert.Equal(t, "vendas_modificado.csv", cfg.Input.Path)
}

func TestValidationRejectsBadBudget(t *testing.T) {
	cfg := Default()
	cfg.Cleaning.NullBudget = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.ini")
	require.NoError(t, os.WriteFile(p, []byte("x=1"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, rune(0), DelimiterRune(""))
	assert.Equal(t, ';', DelimiterRune(";"))
	assert.Equal(t, '\t', DelimiterRune(`\t`))
}
