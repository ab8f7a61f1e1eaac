package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/contact-pipeline/")
	v.AddConfigPath("$HOME/.contact-pipeline")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("CONTACT_PIPELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Store defaults
	v.SetDefault("store.backend", "sheets")

	// Google Sheets defaults
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.credentials_file", "service-account.json")
	v.SetDefault("sheets.contacts_tab", "Extract")
	v.SetDefault("sheets.staging_tab", "Generated")
	v.SetDefault("sheets.validation_tab", "Validation")
	v.SetDefault("sheets.history_tab", "History")
	v.SetDefault("sheets.patterns_tab", "Email Patterns")

	// Local CSV store defaults
	v.SetDefault("csv.dir", "./data")

	// History ledger defaults
	v.SetDefault("ledger.backend", "store")
	v.SetDefault("ledger.sqlite_path", "/data/verification_history.db")
	v.SetDefault("ledger.mysql_dsn", "user:password@tcp(localhost:3306)/contact_pipeline")

	// Verifier defaults
	v.SetDefault("hunter.api_key", "")
	v.SetDefault("hunter.base_url", "https://api.hunter.io")
	v.SetDefault("hunter.timeout", "30s")
	v.SetDefault("hunter.rate_limit_delay", "1s")

	// Matcher defaults
	v.SetDefault("matcher.threshold", 80)

	// Trigger defaults
	v.SetDefault("trigger.type", "http")
	v.SetDefault("trigger.listen_address", "0.0.0.0:8080")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
