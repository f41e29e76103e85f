package hisaab

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application settings. Values come from a YAML config
// file, HISAAB_* environment variables, and an optional .env file, in that
// order of increasing precedence.
type Config struct {
	// DBPath is the SQLite database file. Empty means in-memory only.
	DBPath string `mapstructure:"db_path"`

	// Currency is the ISO code applied to amounts entered without one.
	Currency string `mapstructure:"currency"`

	// TopN bounds the debtor/creditor rankings on dashboards.
	TopN int `mapstructure:"top_n"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		DBPath:   "hisaab.db",
		Currency: "INR",
		TopN:     5,
	}
}

// LoadConfig reads the configuration from the given file (optional) on top
// of the defaults.
func LoadConfig(path string) (Config, error) {
	// .env is optional, missing files are fine.
	_ = godotenv.Load()

	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("currency", def.Currency)
	v.SetDefault("top_n", def.TopN)
	v.SetDefault("verbose", def.Verbose)

	v.SetEnvPrefix("HISAAB")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("currency must not be empty")
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", c.Currency)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	return nil
}
