// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/xmlrec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 0, cfg.Indent)
	assert.Equal(t, "none", cfg.KeyCase)
	assert.Equal(t, 1, cfg.Jobs)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.SchemaPath)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
schema_path: "catalog.avsc"
format: "yaml"
indent: 2
key_case: "snake"
path: "cd.0"
jobs: 4
debug: true
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "catalog.avsc", cfg.SchemaPath)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "snake", cfg.KeyCase)
	assert.Equal(t, "cd.0", cfg.Path)
	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`schema_path: "x.avsc"`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed array\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".xmlrec.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`format: "found"`), 0o644))

	t.Chdir(nestedDir)

	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `format: "found"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Empty(t, FindConfigFile())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := NewConfig()
		cfg.SchemaPath = "s.avsc"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"NoSchema", func(c *Config) { c.SchemaPath = "" }, "no schema path"},
		{"Format", func(c *Config) { c.Format = "xml" }, "unknown output format"},
		{"Indent", func(c *Config) { c.Indent = -1 }, "invalid indent"},
		{"KeyCase", func(c *Config) { c.KeyCase = "shouty" }, "unknown key case"},
		{"Jobs", func(c *Config) { c.Jobs = 0 }, "jobs must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_EncodeOptions(t *testing.T) {
	cfg := NewConfig()
	opts := cfg.EncodeOptions()
	assert.Equal(t, xmlrec.JSON, opts.Format)
	assert.Nil(t, opts.KeyName)

	cfg.Format = FormatYAML
	cfg.Indent = 3
	cfg.KeyCase = "camel"
	opts = cfg.EncodeOptions()
	assert.Equal(t, xmlrec.YAML, opts.Format)
	assert.Equal(t, 3, opts.Indent)
	require.NotNil(t, opts.KeyName)
	assert.Equal(t, "FirstName", opts.KeyName("first_name"))

	cfg.KeyCase = "kebab"
	assert.Equal(t, "first-name", cfg.EncodeOptions().KeyName("firstName"))
}
