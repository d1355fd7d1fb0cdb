package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBrokenTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no indicators", func(c *Config) { c.Indicators = nil }},
		{"empty key", func(c *Config) { c.Indicators[0].Key = "" }},
		{"duplicate key", func(c *Config) { c.Indicators[1].Key = c.Indicators[0].Key }},
		{"zero weight", func(c *Config) { c.Indicators[0].Weight = 0 }},
		{"no options", func(c *Config) { c.Indicators[0].Options = nil }},
		{"descending options", func(c *Config) {
			c.Indicators[0].Options[1].Value = c.Indicators[0].Options[0].Value
		}},
		{"negative option", func(c *Config) { c.Indicators[0].Options[0].Value = -1 }},
		{"no bands", func(c *Config) { c.Bands = nil }},
		{"first band above zero", func(c *Config) { c.Bands[0].Min = 1 }},
		{"gap between bands", func(c *Config) { c.Bands[1].Min++ }},
		{"overlapping bands", func(c *Config) { c.Bands[1].Min-- }},
		{"last band below max score", func(c *Config) { c.Bands[len(c.Bands)-1].Max = 30 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsBoundedLastBand(t *testing.T) {
	cfg := Default()
	cfg.Bands[len(cfg.Bands)-1].Max = cfg.MaxScore()
	assert.NoError(t, cfg.Validate())
}

func TestLoadRoundTrip(t *testing.T) {
	data, err := Default().Export()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indicators: []\nbands: []\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
