package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string        `mapstructure:"port"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Port: "8000",
		Storage: StorageConfig{
			Driver: "file",
			Path:   "data/slots",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads .env (when present) into the environment, then resolves the
// config through v: flags bound on v, WEIGHTLOG_* variables, weightlog.yaml
// from the working directory or $XDG_CONFIG_HOME/weightlog, defaults.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(v)
}

// LoadFrom resolves the config through v. Values already set on v win.
func LoadFrom(v *viper.Viper) (*Config, error) {
	def := DefaultConfig()
	v.SetDefault("port", def.Port)
	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.path", "")
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	// An explicit SetConfigFile skips the search
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("weightlog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "weightlog"))
		}
	}

	v.SetEnvPrefix("WEIGHTLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultPath(cfg.Storage.Driver)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath is the storage location used when none is configured.
func DefaultPath(driver string) string {
	if driver == "sqlite" {
		return "data/weightlog.db"
	}
	return "data/slots"
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("config: storage.driver %q must be file, sqlite or memory", c.Storage.Driver)
	}
	if c.Port == "" {
		return fmt.Errorf("config: port is required")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("config: log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// SetupLogging applies the log settings to the standard logrus logger.
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
