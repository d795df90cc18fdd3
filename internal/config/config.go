// Package config holds the thresholds and score bounds of an evaluation run.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames are the project config files looked up by Find, in order.
var FileNames = []string{".docgrade.yml", ".docgrade.yaml"}

// ErrInvalidConfig is returned when thresholds or bounds are inconsistent.
var ErrInvalidConfig = errors.New("invalid config")

//go:embed default.yaml
var defaultYAML []byte

// Grades holds the minimum score for each letter grade.
type Grades struct {
	A float64 `yaml:"a" json:"a"`
	B float64 `yaml:"b" json:"b"`
	C float64 `yaml:"c" json:"c"`
}

// Config is the run configuration passed to roles and the engine.
type Config struct {
	ManyParametersThreshold int `yaml:"many_parameters_threshold" json:"many_parameters_threshold"`
	ManyLinesThreshold      int `yaml:"many_lines_threshold" json:"many_lines_threshold"`
	ManyChildrenThreshold   int `yaml:"many_children_threshold" json:"many_children_threshold"`

	MinScore float64 `yaml:"min_score" json:"min_score"`
	MaxScore float64 `yaml:"max_score" json:"max_score"`

	Grades Grades `yaml:"grades" json:"grades"`

	// Exclude lists gitignore-style patterns skipped during discovery.
	Exclude []string `yaml:"exclude" json:"exclude,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return cfg
}

// Load reads path on top of the defaults and validates the result. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the project config file in root, or "" if there is none.
func Find(root string) string {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Validate checks thresholds, bounds and grade cut-offs.
func (c Config) Validate() error {
	switch {
	case c.ManyParametersThreshold < 0:
		return invalid("many_parameters_threshold must not be negative, got %d", c.ManyParametersThreshold)
	case c.ManyLinesThreshold < 0:
		return invalid("many_lines_threshold must not be negative, got %d", c.ManyLinesThreshold)
	case c.ManyChildrenThreshold < 0:
		return invalid("many_children_threshold must not be negative, got %d", c.ManyChildrenThreshold)
	case c.MinScore > c.MaxScore:
		return invalid("min_score %g exceeds max_score %g", c.MinScore, c.MaxScore)
	}

	for _, g := range []struct {
		name  string
		value float64
	}{{"a", c.Grades.A}, {"b", c.Grades.B}, {"c", c.Grades.C}} {
		if g.value < c.MinScore || g.value > c.MaxScore {
			return invalid("grade %s threshold %g outside [%g, %g]", g.name, g.value, c.MinScore, c.MaxScore)
		}
	}
	if c.Grades.A < c.Grades.B || c.Grades.B < c.Grades.C {
		return invalid("grade thresholds must descend from a to c, got %g/%g/%g",
			c.Grades.A, c.Grades.B, c.Grades.C)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
