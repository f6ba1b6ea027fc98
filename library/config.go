package library

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the runtime settings. Values come from defaults, then an
// optional yaml file, then environment variables prefixed LIBRADESK.
type Config struct {
	DBPath       string        `yaml:"db_path" envconfig:"DB_PATH"`
	InvoiceDir   string        `yaml:"invoice_dir" envconfig:"INVOICE_DIR"`
	LoanDays     int           `yaml:"loan_days" envconfig:"LOAN_DAYS"`
	FinePerDay   int64         `yaml:"fine_per_day" envconfig:"FINE_PER_DAY"`
	TaxRate      float64       `yaml:"tax_rate" envconfig:"TAX_RATE"`
	LogLevel     zapcore.Level `yaml:"log_level" envconfig:"LOG_LEVEL"`
	IsProduction bool          `yaml:"is_production" envconfig:"IS_PRODUCTION"`
}

// DefaultConfig mirrors the stock deployment: local database file, weekly
// loans, 5 per day fines, zero tax.
func DefaultConfig() Config {
	return Config{
		DBPath:     "libradesk.db",
		InvoiceDir: "invoices",
		LoanDays:   7,
		FinePerDay: 5,
		TaxRate:    0,
		LogLevel:   zapcore.InfoLevel,
	}
}

// LoadConfig builds the configuration. configFile may be empty, in which
// case ./libradesk.yml is used when present and skipped otherwise.
func LoadConfig(configFile string) (Config, error) {
	cfg := DefaultConfig()

	explicit := configFile != ""
	if configFile == "" {
		configFile = "libradesk.yml"
	}
	if err := loadConfigFile(configFile, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := envconfig.Process("LIBRADESK", &cfg); err != nil {
		return cfg, fmt.Errorf("load config from environment: %w", err)
	}

	if cfg.LoanDays <= 0 {
		return cfg, errors.New("loan_days must be positive")
	}
	if cfg.FinePerDay < 0 || cfg.TaxRate < 0 {
		return cfg, errors.New("fine_per_day and tax_rate must not be negative")
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
