// Package config provides YAML-based configuration for the CardioMate
// ECG backend. A missing config file yields the defaults, so the server
// runs with no configuration at all.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Records  RecordsConfig  `yaml:"records"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bindAddress"`
	BodyLimit    string `yaml:"bodyLimit"` // upload ceiling, echo syntax e.g. "15M"
	EnableCORS   bool   `yaml:"enableCors"`
	AllowOrigins string `yaml:"allowOrigins"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
}

// PipelineConfig contains the caller-side pipeline knobs. The default
// sample rate is applied by the HTTP layer before parsing; the parsers
// themselves never hold a default.
type PipelineConfig struct {
	DefaultSampleRateHz float64 `yaml:"defaultSampleRateHz"`
	PreviewSamples      int     `yaml:"previewSamples"`
}

// RecordsConfig bounds the in-memory analysis record store.
type RecordsConfig struct {
	MaxRecords int `yaml:"maxRecords"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8089,
			BindAddress:  "0.0.0.0",
			BodyLimit:    "15M",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
		},
		Pipeline: PipelineConfig{
			DefaultSampleRateHz: 250,
			PreviewSamples:      2000,
		},
		Records: RecordsConfig{
			MaxRecords: 100,
		},
	}
}

// Load reads the configuration from path, falling back to defaults when
// the file does not exist. Unset fields keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline or server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	r := c.Pipeline.DefaultSampleRateHz
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return fmt.Errorf("pipeline.defaultSampleRateHz must be a positive finite number, got %v", r)
	}
	if c.Pipeline.PreviewSamples < 0 {
		return fmt.Errorf("pipeline.previewSamples must not be negative, got %d", c.Pipeline.PreviewSamples)
	}
	if c.Records.MaxRecords < 1 {
		return fmt.Errorf("records.maxRecords must be at least 1, got %d", c.Records.MaxRecords)
	}
	return nil
}

// ServerAddr returns the listen address in host:port form.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}
