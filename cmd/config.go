package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/wacc"
	"github.com/etnz/wacc/agent"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// DefaultConfigFile is read when no -config flag is given. It is optional.
const DefaultConfigFile = "wacc.toml"

// Environment variables overriding the configuration file. EnvConfig
// replaces the default configuration file.
const (
	EnvConfig                 = "WACC_CONFIG"
	EnvCurrency               = "WACC_CURRENCY"
	EnvLogLevel               = "WACC_LOG_LEVEL"
	EnvDropTrailingSummaryRow = "WACC_DROP_TRAILING_SUMMARY_ROW"
)

// Config holds all configuration for wacc.
type Config struct {
	Currency               string        `toml:"currency"` // Display currency, an ISO 4217 code
	LogLevel               string        `toml:"log_level"`
	DropTrailingSummaryRow bool          `toml:"drop_trailing_summary_row"`
	SummaryMarker          string        `toml:"summary_marker"`
	Schema                 SchemaConfig  `toml:"schema"`
	Explain                ExplainConfig `toml:"explain"`
}

// SchemaConfig lists the accepted column names of each source, in order of
// preference.
type SchemaConfig struct {
	Holdings  HoldingsSchema  `toml:"holdings"`
	CostBasis CostBasisSchema `toml:"cost_basis"`
}

type HoldingsSchema struct {
	Scrip            []string `toml:"scrip"`
	Quantity         []string `toml:"quantity"`
	LastTradedPrice  []string `toml:"last_traded_price"`
	LastClosingPrice []string `toml:"last_closing_price"`
	ValueAtLTP       string   `toml:"value_at_ltp"`
}

type CostBasisSchema struct {
	Scrip []string `toml:"scrip"`
	Rate  []string `toml:"rate"`
}

// ExplainConfig holds the settings of the explain command.
type ExplainConfig struct {
	Model string `toml:"model"`
}

// NewDefaultConfig returns the configuration matching the usual broker
// exports.
func NewDefaultConfig() *Config {
	s := wacc.DefaultSchema()
	return &Config{
		Currency:               wacc.DefaultCurrency,
		LogLevel:               "warn",
		DropTrailingSummaryRow: true,
		SummaryMarker:          wacc.DefaultSummaryMarker,
		Schema: SchemaConfig{
			Holdings: HoldingsSchema{
				Scrip:            s.Holdings.Scrip,
				Quantity:         s.Holdings.Quantity,
				LastTradedPrice:  s.Holdings.LastTradedPrice,
				LastClosingPrice: s.Holdings.LastClosingPrice,
				ValueAtLTP:       s.Holdings.ValueAtLTP,
			},
			CostBasis: CostBasisSchema{
				Scrip: s.CostBasis.Scrip,
				Rate:  s.CostBasis.Rate,
			},
		},
		Explain: ExplainConfig{Model: agent.DefaultModel},
	}
}

// LoadConfig loads the configuration from the given files over the
// defaults, then applies the environment overrides.
// Missing files are skipped, later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	config.normalize()
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) error {
	if c := os.Getenv(EnvCurrency); c != "" {
		config.Currency = c
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		config.LogLevel = level
	}

	if v := os.Getenv(EnvDropTrailingSummaryRow); v != "" {
		drop, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDropTrailingSummaryRow, v, err)
		}
		config.DropTrailingSummaryRow = drop
	}
	return nil
}

func (c *Config) normalize() {
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error
	if err := wacc.ValidCurrency(c.Currency); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if err := c.schema().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) schema() wacc.Schema {
	h, cb := c.Schema.Holdings, c.Schema.CostBasis
	return wacc.Schema{
		Holdings: wacc.HoldingColumns{
			Scrip:            h.Scrip,
			Quantity:         h.Quantity,
			LastTradedPrice:  h.LastTradedPrice,
			LastClosingPrice: h.LastClosingPrice,
			ValueAtLTP:       h.ValueAtLTP,
		},
		CostBasis: wacc.CostBasisColumns{
			Scrip: cb.Scrip,
			Rate:  cb.Rate,
		},
	}
}

// Options returns the reconciliation options described by c.
func (c *Config) Options(log *zerolog.Logger) wacc.Options {
	opts := wacc.DefaultOptions()
	opts.Schema = c.schema()
	opts.DropTrailingSummaryRow = c.DropTrailingSummaryRow
	if c.SummaryMarker != "" {
		opts.SummaryMarker = c.SummaryMarker
	}
	opts.Log = log
	return opts
}
