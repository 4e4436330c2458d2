// Package config provides configuration utilities for the application.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/sheets"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable overrides, e.g.
// STATEMENT_API_BASE_URL.
const EnvPrefix = "STATEMENT"

// Defaults.
const (
	DefaultBaseURL        = "http://localhost:8000/api/v1"
	DefaultTimeout        = 2 * time.Minute
	DefaultExportName     = "transactions"
	DefaultCurrencySymbol = "RM"
	DefaultOFXCurrency    = "MYR"
)

// Config is the resolved application configuration.
type Config struct {
	API     APIConfig
	Export  ExportConfig
	Format  FormatConfig
	OFX     OFXConfig
	Logging LoggingConfig
	Sheets  sheets.Config
}

// APIConfig locates the extraction service.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ExportConfig controls where exports go.
type ExportConfig struct {
	Dir     string
	Name    string
	Formats string
}

// FormatConfig controls amount rendering.
type FormatConfig struct {
	CurrencySymbol string
}

// OFXConfig identifies the account written into OFX exports.
type OFXConfig struct {
	Currency  string
	BankID    string
	AccountID string
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.name", DefaultExportName)
	v.SetDefault("export.formats", "xlsx")
	v.SetDefault("format.currency_symbol", DefaultCurrencySymbol)
	v.SetDefault("ofx.currency", DefaultOFXCurrency)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init points v at the config file and environment. A missing config file
// is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".config", "statement"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("api.base_url")),
			Timeout: v.GetDuration("api.timeout"),
		},
		Export: ExportConfig{
			Dir:     ExpandPath(v.GetString("export.dir")),
			Name:    v.GetString("export.name"),
			Formats: v.GetString("export.formats"),
		},
		Format: FormatConfig{
			CurrencySymbol: v.GetString("format.currency_symbol"),
		},
		OFX: OFXConfig{
			Currency:  strings.ToUpper(v.GetString("ofx.currency")),
			BankID:    v.GetString("ofx.bank_id"),
			AccountID: v.GetString("ofx.account_id"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Sheets: LoadSheetsConfig(v),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every command depends on. Sheets credentials
// are only checked when a Sheets export is requested.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: api.base_url must be an absolute http(s) URL, got %q", common.ErrInvalidConfig, c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}

	if c.Export.Dir == "" {
		return fmt.Errorf("%w: export.dir must not be empty", common.ErrInvalidConfig)
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	return nil
}
