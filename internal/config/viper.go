// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LogConfig controls the logging adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// SMSConfig tunes SMS import.
type SMSConfig struct {
	// RecentWindow is how many recent sms transactions are checked for duplicates.
	RecentWindow int `mapstructure:"recent_window" yaml:"recent_window"`
	// DuplicateWindow is the maximum age of a matching transaction for it to count as a duplicate.
	DuplicateWindow time.Duration `mapstructure:"duplicate_window" yaml:"duplicate_window"`
}

// ReceiptsConfig selects where uploaded receipts are stored.
type ReceiptsConfig struct {
	Backend       string `mapstructure:"backend" yaml:"backend"`
	Directory     string `mapstructure:"directory" yaml:"directory"`
	PublicBaseURL string `mapstructure:"public_base_url" yaml:"public_base_url"`
	Bucket        string `mapstructure:"bucket" yaml:"bucket"`
}

// CSVConfig controls CSV input and output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// FileConfig points at a YAML data file.
type FileConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig      `mapstructure:"log" yaml:"log"`
	Database   DatabaseConfig `mapstructure:"database" yaml:"database"`
	SMS        SMSConfig      `mapstructure:"sms" yaml:"sms"`
	Receipts   ReceiptsConfig `mapstructure:"receipts" yaml:"receipts"`
	CSV        CSVConfig      `mapstructure:"csv" yaml:"csv"`
	Categories FileConfig     `mapstructure:"categories" yaml:"categories"`
	Budgets    FileConfig     `mapstructure:"budgets" yaml:"budgets"`
	Report     ReportConfig   `mapstructure:"report" yaml:"report"`
}

// Receipt storage backends
const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load builds the configuration from defaults, an optional config file and
// BUDGET_* environment variables, in increasing order of precedence. When
// configFile is empty the standard locations are searched.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.budget-tracker")
		v.AddConfigPath(".budget-tracker")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.path", "data/budget.db")

	v.SetDefault("sms.recent_window", 100)
	v.SetDefault("sms.duplicate_window", 5*time.Minute)

	v.SetDefault("receipts.backend", BackendLocal)
	v.SetDefault("receipts.directory", "data/receipts")
	v.SetDefault("receipts.public_base_url", "http://localhost:8080/receipts")
	v.SetDefault("receipts.bucket", "")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("categories.file", "categories.yaml")
	v.SetDefault("budgets.file", "budgets.yaml")

	v.SetDefault("report.format", "text")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	if config.SMS.RecentWindow < 1 || config.SMS.RecentWindow > 10000 {
		return fmt.Errorf("sms.recent_window must be between 1 and 10000, got: %d", config.SMS.RecentWindow)
	}

	if config.SMS.DuplicateWindow <= 0 {
		return fmt.Errorf("sms.duplicate_window must be positive, got: %s", config.SMS.DuplicateWindow)
	}

	switch config.Receipts.Backend {
	case BackendLocal:
		if config.Receipts.Directory == "" {
			return fmt.Errorf("receipts.directory required for the local backend")
		}
		if _, err := url.Parse(config.Receipts.PublicBaseURL); err != nil {
			return fmt.Errorf("invalid receipts.public_base_url: %w", err)
		}
	case BackendGCS:
		if config.Receipts.Bucket == "" {
			return fmt.Errorf("receipts.bucket required for the gcs backend")
		}
	default:
		return fmt.Errorf("invalid receipts.backend: %s (must be 'local' or 'gcs')", config.Receipts.Backend)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch config.Report.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid report.format: %s (must be 'text', 'json' or 'yaml')", config.Report.Format)
	}

	return nil
}
