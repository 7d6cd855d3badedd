package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Dir is the migraph state directory relative to the project root.
const Dir = ".migraph"

// Config represents the complete migraph configuration
type Config struct {
	Version     int    `json:"version" mapstructure:"version"`
	ProjectRoot string `json:"projectRoot" mapstructure:"projectRoot"`

	Facts    FactsConfig    `json:"facts" mapstructure:"facts"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Storage  StorageConfig  `json:"storage" mapstructure:"storage"`
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Export   ExportConfig   `json:"export" mapstructure:"export"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// FactsConfig locates the parser output consumed by the graph stage
type FactsConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// AnalysisConfig tunes the risk stage
type AnalysisConfig struct {
	// Workers bounds the scoring worker pool; 0 means GOMAXPROCS
	Workers int `json:"workers" mapstructure:"workers"`
}

// StorageConfig contains run store configuration
type StorageConfig struct {
	// Directory holds migraph.db; defaults to the .migraph directory
	Directory string `json:"directory" mapstructure:"directory"`
}

// ServerConfig contains HTTP API configuration
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port string `json:"port" mapstructure:"port"`
	// AuthRequired gates every non-health endpoint behind bearer tokens
	AuthRequired bool `json:"authRequired" mapstructure:"authRequired"`
}

// ExportConfig contains export defaults
type ExportConfig struct {
	Format   string `json:"format" mapstructure:"format"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		ProjectRoot: ".",
		Facts: FactsConfig{
			Path: "facts.json",
		},
		Analysis: AnalysisConfig{
			Workers: 0,
		},
		Storage: StorageConfig{
			Directory: Dir,
		},
		Server: ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			AuthRequired: false,
		},
		Export: ExportConfig{
			Format:   "json",
			Compress: false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .migraph/config.json
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", 1)
	v.SetDefault("projectRoot", ".")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, Dir))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills fields a partial config file left empty
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Facts.Path == "" {
		cfg.Facts.Path = def.Facts.Path
	}
	if cfg.Storage.Directory == "" {
		cfg.Storage.Directory = def.Storage.Directory
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = def.Export.Format
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// Save writes the configuration to .migraph/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Analysis.Workers < 0 {
		return &ConfigError{Field: "analysis.workers", Message: "must be zero or positive"}
	}
	switch c.Export.Format {
	case "json", "yaml":
	default:
		return &ConfigError{Field: "export.format", Message: "must be json or yaml"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
