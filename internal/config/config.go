// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config defines the settings of the xmlrec command-line tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creachadair/xmlrec"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for xmlrec
type Config struct {
	SchemaPath string `yaml:"schema_path"`
	Format     string `yaml:"format"`
	Indent     int    `yaml:"indent"`
	KeyCase    string `yaml:"key_case"`
	Path       string `yaml:"path"`
	Jobs       int    `yaml:"jobs"`
	Debug      bool   `yaml:"debug"`
}

// Supported values of Config.Format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// keyCases maps Config.KeyCase values to field name conversions.
var keyCases = map[string]func(string) string{
	"none":        nil,
	"snake":       strcase.ToSnake,
	"camel":       strcase.ToCamel,
	"lower-camel": strcase.ToLowerCamel,
	"kebab":       strcase.ToKebab,
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format:  FormatJSON,
		Indent:  0,
		KeyCase: "none",
		Jobs:    1,
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".xmlrec.yml", ".xmlrec.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return ""
}

// Validate reports an error if the settings in c are not usable.
func (c *Config) Validate() error {
	if c.SchemaPath == "" {
		return fmt.Errorf("no schema path is set")
	}
	if c.Format != FormatJSON && c.Format != FormatYAML {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if c.Indent < 0 {
		return fmt.Errorf("invalid indent %d", c.Indent)
	}
	if _, ok := keyCases[c.KeyCase]; !ok {
		return fmt.Errorf("unknown key case %q", c.KeyCase)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	return nil
}

// EncodeOptions returns record encoding options matching c.
func (c *Config) EncodeOptions() *xmlrec.EncodeOptions {
	opts := &xmlrec.EncodeOptions{
		Format:  xmlrec.JSON,
		Indent:  c.Indent,
		KeyName: keyCases[c.KeyCase],
	}
	if c.Format == FormatYAML {
		opts.Format = xmlrec.YAML
	}
	return opts
}
