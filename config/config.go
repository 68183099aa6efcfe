package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// path is given.
const DefaultConfigFile = "pipeline.yaml"

// envPrefix namespaces the pipeline's environment overrides.
const envPrefix = "BANKETL_"

// DatabaseConfig holds the connection settings for one MySQL database.
type DatabaseConfig struct {
	Driver   string `koanf:"driver"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
}

// DSN renders the go-sql-driver connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// PipelineConfig is the full pipeline configuration.
type PipelineConfig struct {
	// Staging holds the staged (bronze) wide tables produced upstream.
	Staging DatabaseConfig `koanf:"staging"`

	// Mart holds the normalized entity tables this pipeline writes.
	Mart DatabaseConfig `koanf:"mart"`

	// RunInterval is the scheduler interval in scheduled mode.
	RunInterval time.Duration `koanf:"run_interval"`

	// CombinationStrategy selects how independently delimited multi-value
	// account fields are combined: "positional" or "cross_product".
	CombinationStrategy string `koanf:"combination_strategy"`

	// ArchiveDir receives compressed snapshots of extracted batches.
	// Empty disables archiving.
	ArchiveDir string `koanf:"archive_dir"`

	// StatusAddr is the listen address of the status server in serve mode.
	StatusAddr string `koanf:"status_addr"`

	// EnableDetailedLogging turns on debug-level log output.
	EnableDetailedLogging bool `koanf:"verbose"`
}

// Load builds the configuration by layering, lowest to highest precedence:
// built-in defaults, the yaml config file (when present), then BANKETL_*
// environment variables. A .env file in the working directory is read
// first so local development overrides work without exported variables.
func Load(cfgFile string) (*PipelineConfig, error) {
	// Best effort; a missing .env is normal.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"staging.driver":       "mysql",
		"staging.host":         "localhost",
		"staging.port":         3306,
		"staging.user":         "root",
		"staging.dbname":       "banking_staging",
		"mart.driver":          "mysql",
		"mart.host":            "localhost",
		"mart.port":            3306,
		"mart.user":            "root",
		"mart.dbname":          "banking_mart",
		"run_interval":         "24h",
		"combination_strategy": "positional",
		"archive_dir":          "",
		"status_addr":          ":8090",
		"verbose":              true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	if cfgFile == "" {
		cfgFile = DefaultConfigFile
	}
	if _, err := os.Stat(cfgFile); err == nil {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	// BANKETL_MART__DBNAME -> mart.dbname
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg PipelineConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.CombinationStrategy != "positional" && cfg.CombinationStrategy != "cross_product" {
		return nil, fmt.Errorf("unknown combination_strategy %q (want positional or cross_product)", cfg.CombinationStrategy)
	}

	return &cfg, nil
}
