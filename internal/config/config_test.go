package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3, cfg.ManyParametersThreshold)
	assert.Equal(t, 20, cfg.ManyLinesThreshold)
	assert.Equal(t, 20, cfg.ManyChildrenThreshold)
	assert.Equal(t, 0.0, cfg.MinScore)
	assert.Equal(t, 100.0, cfg.MaxScore)
	assert.Equal(t, Grades{A: 80, B: 50, C: 0}, cfg.Grades)
	assert.Contains(t, cfg.Exclude, "vendor/")
	require.NoError(t, cfg.Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".docgrade.yml")
	require.NoError(t, os.WriteFile(path, []byte("many_lines_threshold: 40\ngrades:\n  a: 90\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.ManyLinesThreshold)
	assert.Equal(t, 3, cfg.ManyParametersThreshold)
	assert.Equal(t, 90.0, cfg.Grades.A)
	assert.Equal(t, 50.0, cfg.Grades.B)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("min_score: [\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)

	inverted := filepath.Join(dir, "inverted.yml")
	require.NoError(t, os.WriteFile(inverted, []byte("min_score: 60\nmax_score: 40\n"), 0o644))
	_, err = Load(inverted)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero thresholds", func(c *Config) { c.ManyParametersThreshold = 0 }, true},
		{"negative parameters", func(c *Config) { c.ManyParametersThreshold = -1 }, false},
		{"negative lines", func(c *Config) { c.ManyLinesThreshold = -1 }, false},
		{"negative children", func(c *Config) { c.ManyChildrenThreshold = -5 }, false},
		{"inverted bounds", func(c *Config) { c.MinScore, c.MaxScore = 10, 5 }, false},
		{"equal bounds", func(c *Config) { c.MinScore, c.MaxScore, c.Grades = 50, 50, Grades{50, 50, 50} }, true},
		{"grade above max", func(c *Config) { c.Grades.A = 120 }, false},
		{"grade below min", func(c *Config) { c.MinScore = 10; c.Grades.C = 0 }, false},
		{"grades ascending", func(c *Config) { c.Grades.B = 90 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", Find(dir))

	path := filepath.Join(dir, ".docgrade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	assert.Equal(t, path, Find(dir))

	preferred := filepath.Join(dir, ".docgrade.yml")
	require.NoError(t, os.WriteFile(preferred, []byte("{}\n"), 0o644))
	assert.Equal(t, preferred, Find(dir))
}
