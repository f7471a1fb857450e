package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "automata.yaml"

// Config holds the settings shared by the serve and mcp commands.
type Config struct {
	// Machines is the directory of definitions (files or a Loam vault).
	Machines string `yaml:"machines"`
	// Loam reads Machines as a Loam vault of markdown documents.
	Loam bool `yaml:"loam"`
	// MaxSteps bounds every run. Zero means unbounded.
	MaxSteps int `yaml:"max_steps"`

	HTTP    HTTPConfig    `yaml:"http"`
	MCP     MCPConfig     `yaml:"mcp"`
	Redis   RedisConfig   `yaml:"redis"`
	Reports ReportsConfig `yaml:"reports"`
}

// HTTPConfig configures the HTTP API.
type HTTPConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	// Transport is "stdio" or "sse".
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
	BaseURL   string `yaml:"base_url"`
}

// RedisConfig enables the Redis report store and distributed locks when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// ReportsConfig selects the report store when Redis is not configured.
type ReportsConfig struct {
	// Dir stores reports as JSON files. Empty keeps them in memory.
	Dir string `yaml:"dir"`
	// EncryptionKey is a base64 AES-256 key. When set, reports are sealed at rest.
	EncryptionKey string `yaml:"encryption_key"`
	// Redact lists patterns of memory names masked in stored reports ("input" masks the input).
	Redact []string `yaml:"redact"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		Machines: ".",
		MaxSteps: 10000,
		HTTP:     HTTPConfig{Addr: ":8080", Metrics: true},
		MCP:      MCPConfig{Transport: "stdio", Addr: ":8081", BaseURL: "http://localhost:8081"},
	}
}

// LoadConfig reads path on top of DefaultConfig. An empty path falls back to
// DefaultConfigFile, which may be absent.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
