package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the matching tunables.
const (
	DefaultAddressThreshold = 0.7
	DefaultFieldThreshold   = 0.8
	DefaultDirectIDShare    = 0.2
)

// Config holds all runtime configuration for a loclink run.
type Config struct {
	DSN        string
	FilePath   string
	OutPath    string
	CatalogURL string
	LogFormat  string // "text" or "json"

	Force       bool
	KeepStaging bool

	// AbbreviateAddresses rewrites directionals and street suffixes to
	// postal abbreviations before matching.
	AbbreviateAddresses bool

	// Matching tunables; zero values are replaced by the defaults.
	AddressThreshold float64 `yaml:"address_threshold"`
	FieldThreshold   float64 `yaml:"field_threshold"`
	DirectIDShare    float64 `yaml:"direct_id_share"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	AddressThreshold float64 `yaml:"address_threshold"`
	FieldThreshold   float64 `yaml:"field_threshold"`
	DirectIDShare    float64 `yaml:"direct_id_share"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.AddressThreshold != 0 {
		c.AddressThreshold = yc.AddressThreshold
	}
	if yc.FieldThreshold != 0 {
		c.FieldThreshold = yc.FieldThreshold
	}
	if yc.DirectIDShare != 0 {
		c.DirectIDShare = yc.DirectIDShare
	}
	return c.validateTunables()
}

// ApplyDefaults fills zero-valued tunables with the defaults.
func (c *Config) ApplyDefaults() {
	if c.AddressThreshold == 0 {
		c.AddressThreshold = DefaultAddressThreshold
	}
	if c.FieldThreshold == 0 {
		c.FieldThreshold = DefaultFieldThreshold
	}
	if c.DirectIDShare == 0 {
		c.DirectIDShare = DefaultDirectIDShare
	}
}

func (c *Config) validateTunables() error {
	check := func(name string, v float64) error {
		if v != 0 && (v <= 0 || v > 1) {
			return fmt.Errorf("%s must be in (0, 1], got %v", name, v)
		}
		return nil
	}
	if err := check("address_threshold", c.AddressThreshold); err != nil {
		return err
	}
	if err := check("field_threshold", c.FieldThreshold); err != nil {
		return err
	}
	if c.DirectIDShare < 0 || c.DirectIDShare >= 1 {
		return fmt.Errorf("direct_id_share must be in [0, 1), got %v", c.DirectIDShare)
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return c.validateTunables()
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}

// ValidateForRun checks everything a full pipeline run needs.
func (c *Config) ValidateForRun() error {
	if err := c.ValidateWithDSN(); err != nil {
		return err
	}
	if c.CatalogURL == "" {
		return fmt.Errorf("--catalog-url or CATALOG_BASE_URL is required")
	}
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}
