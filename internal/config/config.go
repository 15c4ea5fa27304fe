package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Module declares one TypeScript runtime module to extract and bundle.
type Module struct {
	Path      string   `yaml:"path"`
	Namespace string   `yaml:"namespace"`
	Functions []string `yaml:"functions"`
}

type Bundler struct {
	Strategy string `yaml:"strategy"` // single, split
	Outfile  string `yaml:"outfile"`
	Outdir   string `yaml:"outdir"`
}

type Config struct {
	Name       string   `yaml:"name"`
	RuntimeDir string   `yaml:"runtime-dir"`
	Modules    []Module `yaml:"modules"`
	Bundler    Bundler  `yaml:"bundler"`
	Dialect    string   `yaml:"dialect"` // subshell, interpolated
}

const (
	StrategySingle = "single"
	StrategySplit  = "split"

	DialectSubshell     = "subshell"
	DialectInterpolated = "interpolated"
)

// Load reads a YAML config file and returns a validated Config.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}
