// Package config loads run settings for the cleaning and mining commands.
//
// Sources, later ones winning: built-in defaults, a config file (YAML, TOML
// or JSON chosen by extension), a .env file in the working directory, and
// SALESJANITOR_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/wdm0006/salesjanitor/pkg/vocab"
)

// EnvPrefix prefixes every environment override, e.g. SALESJANITOR_CLEANING_NULL_BUDGET.
const EnvPrefix = "SALESJANITOR"

type Config struct {
	Input    InputConfig       `yaml:"input" toml:"input" json:"input" split_words:"true"`
	Output   OutputConfig      `yaml:"output" toml:"output" json:"output" split_words:"true"`
	Logging  LoggingConfig     `yaml:"logging" toml:"logging" json:"logging" split_words:"true"`
	Columns  ColumnsConfig     `yaml:"columns" toml:"columns" json:"columns" split_words:"true"`
	Cleaning CleaningConfig    `yaml:"cleaning" toml:"cleaning" json:"cleaning" split_words:"true"`
	Mining   MiningConfig      `yaml:"mining" toml:"mining" json:"mining" split_words:"true"`
	Vocab    VocabConfig       `yaml:"vocab" toml:"vocab" json:"vocab" ignored:"true"`
	Headers  map[string]string `yaml:"headers" toml:"headers" json:"headers" ignored:"true"`
}

type InputConfig struct {
	Path      string `yaml:"path" toml:"path" json:"path" split_words:"true"`
	Delimiter string `yaml:"delimiter" toml:"delimiter" json:"delimiter" split_words:"true" validate:"max=2"`
	Sheet     string `yaml:"sheet" toml:"sheet" json:"sheet" split_words:"true"`
}

type OutputConfig struct {
	Path      string `yaml:"path" toml:"path" json:"path" split_words:"true"`
	Format    string `yaml:"format" toml:"format" json:"format" split_words:"true" validate:"oneof=csv parquet jsonl"`
	Delimiter string `yaml:"delimiter" toml:"delimiter" json:"delimiter" split_words:"true" validate:"max=2"`
	Report    string `yaml:"report" toml:"report" json:"report" split_words:"true"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level" split_words:"true" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" json:"format" split_words:"true" validate:"oneof=json text"`
}

// ColumnsConfig names the roles canonical columns play. Roles given as lists
// are candidates; every present candidate (or the first, for dates) is used.
type ColumnsConfig struct {
	Key          string   `yaml:"key" toml:"key" json:"key" split_words:"true"`
	Names        []string `yaml:"names" toml:"names" json:"names" split_words:"true"`
	Status       string   `yaml:"status" toml:"status" json:"status" split_words:"true"`
	Product      string   `yaml:"product" toml:"product" json:"product" split_words:"true"`
	Payment      []string `yaml:"payment" toml:"payment" json:"payment" split_words:"true"`
	State        string   `yaml:"state" toml:"state" json:"state" split_words:"true"`
	Postal       string   `yaml:"postal" toml:"postal" json:"postal" split_words:"true"`
	Money        []string `yaml:"money" toml:"money" json:"money" split_words:"true"`
	SaleDate     []string `yaml:"sale_date" toml:"sale_date" json:"sale_date" split_words:"true"`
	DeliveryDate []string `yaml:"delivery_date" toml:"delivery_date" json:"delivery_date" split_words:"true"`
	SaleYear     string   `yaml:"sale_year" toml:"sale_year" json:"sale_year" split_words:"true" validate:"required"`
	SaleMonth    string   `yaml:"sale_month" toml:"sale_month" json:"sale_month" split_words:"true" validate:"required"`
	DateTokens   []string `yaml:"date_tokens" toml:"date_tokens" json:"date_tokens" split_words:"true"`
	TimeTokens   []string `yaml:"time_tokens" toml:"time_tokens" json:"time_tokens" split_words:"true"`
}

type CleaningConfig struct {
	UniquenessLimit float64  `yaml:"uniqueness_limit" toml:"uniqueness_limit" json:"uniqueness_limit" split_words:"true" validate:"gt=0,lte=1"`
	NullBudget      float64  `yaml:"null_budget" toml:"null_budget" json:"null_budget" split_words:"true" validate:"gte=0,lte=1"`
	NumericStrategy string   `yaml:"numeric_strategy" toml:"numeric_strategy" json:"numeric_strategy" split_words:"true" validate:"oneof=mean median"`
	TextFallback    string   `yaml:"text_fallback" toml:"text_fallback" json:"text_fallback" split_words:"true" validate:"required"`
	IQRFactor       float64  `yaml:"iqr_factor" toml:"iqr_factor" json:"iqr_factor" split_words:"true" validate:"gt=0"`
	OutlierExclude  []string `yaml:"outlier_exclude" toml:"outlier_exclude" json:"outlier_exclude" split_words:"true"`
}

type MiningConfig struct {
	Input             string  `yaml:"input" toml:"input" json:"input" split_words:"true"`
	Report            string  `yaml:"report" toml:"report" json:"report" split_words:"true"`
	ProductColumn     string  `yaml:"product_column" toml:"product_column" json:"product_column" split_words:"true" validate:"required"`
	TransactionColumn string  `yaml:"transaction_column" toml:"transaction_column" json:"transaction_column" split_words:"true" validate:"required"`
	MinProductCount   int     `yaml:"min_product_count" toml:"min_product_count" json:"min_product_count" split_words:"true" validate:"gte=0"`
	MinSupportCount   int     `yaml:"min_support_count" toml:"min_support_count" json:"min_support_count" split_words:"true" validate:"gte=1"`
	MinConfidence     float64 `yaml:"min_confidence" toml:"min_confidence" json:"min_confidence" split_words:"true" validate:"gte=0,lte=1"`
	BucketSize        int     `yaml:"bucket_size" toml:"bucket_size" json:"bucket_size" split_words:"true" validate:"gte=2"`
	TopN              int     `yaml:"top_n" toml:"top_n" json:"top_n" split_words:"true" validate:"gte=1"`
	Matrix            string  `yaml:"matrix" toml:"matrix" json:"matrix" split_words:"true" validate:"oneof=native golearn"`
}

type VocabConfig struct {
	Status  vocab.Table `yaml:"status" toml:"status" json:"status"`
	Product vocab.Table `yaml:"product" toml:"product" json:"product"`
	Payment vocab.Table `yaml:"payment" toml:"payment" json:"payment"`
}

// Default returns the settings used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Input:   InputConfig{Path: "vendas_modificado.csv"},
		Output:  OutputConfig{Path: "vendas_limpo.csv", Format: "csv", Report: "relatorio_limpeza.txt"},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Columns: ColumnsConfig{
			Key:          "id_da_compra",
			Names:        []string{"cliente", "vendedor"},
			Status:       "status",
			Product:      "produto",
			Payment:      []string{"forma_pagamento", "forma_de_pagamento", "pagamento"},
			State:        "estado",
			Postal:       "cep",
			Money:        []string{"valor", "total", "frete"},
			SaleDate:     []string{"data_venda", "sale_date"},
			DeliveryDate: []string{"data_entrega", "delivery_date"},
			SaleYear:     "ano_venda",
			SaleMonth:    "mes_venda",
			DateTokens:   []string{"data", "date"},
			TimeTokens:   []string{"hora", "time"},
		},
		Cleaning: CleaningConfig{
			UniquenessLimit: 0.9,
			NullBudget:      0.5,
			NumericStrategy: "mean",
			TextFallback:    "unknown",
			IQRFactor:       1.5,
		},
		Mining: MiningConfig{
			Input:             "vendas_limpo.csv",
			Report:            "relatorio_analise.txt",
			ProductColumn:     "Produto",
			TransactionColumn: "Id_da_compra",
			MinProductCount:   5,
			MinSupportCount:   5,
			MinConfidence:     0.2,
			BucketSize:        5,
			TopN:              10,
			Matrix:            "native",
		},
		Vocab: VocabConfig{
			Status:  vocab.Status(),
			Product: vocab.Product(),
			Payment: vocab.Payment(),
		},
		Headers: vocab.DisplayHeaders(),
	}
}

// Load builds a Config from defaults, the optional file at path, .env and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var decode func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = yaml.Unmarshal
	case ".toml":
		decode = toml.Unmarshal
	case ".json":
		decode = json.Unmarshal
	default:
		return fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
	if err := decode(b, cfg); err != nil {
		return err
	}
	// Decoding into cfg merges maps; tables marked replace take the file's
	// entries alone.
	var file struct {
		Vocab VocabConfig `yaml:"vocab" toml:"vocab" json:"vocab"`
	}
	if err := decode(b, &file); err != nil {
		return err
	}
	replaceEntries(&cfg.Vocab.Status, file.Vocab.Status)
	replaceEntries(&cfg.Vocab.Product, file.Vocab.Product)
	replaceEntries(&cfg.Vocab.Payment, file.Vocab.Payment)
	return nil
}

func replaceEntries(dst *vocab.Table, file vocab.Table) {
	if file.Replace {
		dst.Entries = file.Entries
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// DelimiterRune returns the first rune of s, or 0 (sniff) when empty.
func DelimiterRune(s string) rune {
	if s == "" {
		return 0
	}
	if s == `\t` {
		return '\t'
	}
	return []rune(s)[0]
}
