// Package config loads application configuration from layered sources:
// built-in defaults, an optional YAML file and CMDB_-prefixed environment
// variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Storage backends selectable at startup. The chosen backend is resolved
// once in main into concrete store instances; nothing re-reads this per call.
const (
	BackendFile    = "file"
	BackendSurreal = "surreal"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CMDB_CONFIG_PATH"

// envPrefix namespaces every environment override, e.g. CMDB_STORE_BACKEND.
const envPrefix = "CMDB_"

// defaultConfigPaths lists where a config file is searched, in order.
var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cmdb/config.yaml",
}

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Store   StoreConfig   `koanf:"store"`
	Catalog CatalogConfig `koanf:"catalog"`
	Log     LogConfig     `koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `koanf:"addr"`
	ReadTimeout    time.Duration `koanf:"readtimeout"`
	WriteTimeout   time.Duration `koanf:"writetimeout"`
	AllowedOrigins []string      `koanf:"allowedorigins"`
}

// StoreConfig selects and parameterizes the storage backend.
type StoreConfig struct {
	Backend string        `koanf:"backend"`
	File    FileStore     `koanf:"file"`
	Surreal SurrealConfig `koanf:"surreal"`
}

// FileStore holds file-backed store settings.
type FileStore struct {
	Dir string `koanf:"dir"`
}

// SurrealConfig holds SurrealDB connection settings.
type SurrealConfig struct {
	Host      string `koanf:"host"`
	Port      string `koanf:"port"`
	User      string `koanf:"user"`
	Password  string `koanf:"password"`
	Namespace string `koanf:"namespace"`
	Database  string `koanf:"database"`
}

// CatalogConfig holds the external movie catalog settings.
type CatalogConfig struct {
	BaseURL string        `koanf:"baseurl"`
	APIKey  string        `koanf:"apikey"`
	Timeout time.Duration `koanf:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Backend: BackendFile,
			File:    FileStore{Dir: "./data"},
			Surreal: SurrealConfig{
				Host:      "localhost",
				Port:      "8000",
				User:      "root",
				Password:  "root",
				Namespace: "cmdb",
				Database:  "main",
			},
		},
		Catalog: CatalogConfig{
			BaseURL: "https://imdb-api.com/en/API",
			APIKey:  "",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration with precedence env > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// CMDB_STORE_BACKEND -> store.backend
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for structural problems once, at startup.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.File.Dir == "" {
			return fmt.Errorf("store.file.dir must not be empty")
		}
	case BackendSurreal:
		if c.Store.Surreal.Host == "" || c.Store.Surreal.Port == "" {
			return fmt.Errorf("store.surreal.host and store.surreal.port must not be empty")
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendFile, BackendSurreal, c.Store.Backend)
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.baseurl must not be empty")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
