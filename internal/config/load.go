package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SCRY_SERVER_PORT.
const EnvPrefix = "SCRY"

// DefaultUserAgent is sent when fetching articles.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.log_format":               "json",
	"server.shutdown_timeout_seconds": 10,
	"database.url":                    "",
	"database.max_open_conns":         10,
	"pack.min_input_length":           20,
	"pack.retention_count":            10,
	"pack.default_title":              "Lite Pack",
	"extract.max_chars":               5000,
	"extract.timeout_seconds":         15,
	"extract.user_agent":              DefaultUserAgent,
	"extract.cache_ttl_minutes":       60,
	"extract.redis_url":               "",
	"telegram.bot_token":              "",
	"telegram.app_url":                "",
	"telegram.api_base_url":           "https://api.telegram.org",
	"telegram.max_message_length":     3800,
	"telegram.worker_count":           2,
	"telegram.queue_size":             64,
	"export.font_dir":                 "",
	"export.app_url":                  "",
}

// Load reads configuration from defaults, an optional config.yaml in the
// working directory and SCRY_ environment variables, in increasing order of
// precedence, then validates every section.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for config.yaml and tolerates its absence.
func LoadFile(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// LoadTooling loads the configuration for command line tools, which need no
// database or chat transport. Only the pack, extract and export sections are
// validated.
func LoadTooling(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(cfg.Pack); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validate.Struct(cfg.Extract); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validate.Struct(cfg.Export); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}
