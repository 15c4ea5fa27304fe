package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jorge-barreto/loom/internal/extract"
)

var namespaceRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the config for errors and sets defaults. Module
// namespaces left empty are derived from the file name; the resolved
// set must be unique.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}

	if cfg.RuntimeDir == "" {
		cfg.RuntimeDir = "runtime"
	}
	if cfg.Bundler.Strategy == "" {
		cfg.Bundler.Strategy = StrategySingle
	}
	if cfg.Bundler.Outfile == "" {
		cfg.Bundler.Outfile = "dist/runtime.js"
	}
	if cfg.Bundler.Outdir == "" {
		cfg.Bundler.Outdir = "dist"
	}
	if cfg.Dialect == "" {
		cfg.Dialect = DialectSubshell
	}

	switch cfg.Bundler.Strategy {
	case StrategySingle, StrategySplit:
	default:
		return fmt.Errorf("config: bundler.strategy %q (must be single or split)", cfg.Bundler.Strategy)
	}
	switch cfg.Dialect {
	case DialectSubshell, DialectInterpolated:
	default:
		return fmt.Errorf("config: dialect %q (must be subshell or interpolated)", cfg.Dialect)
	}

	seen := make(map[string]string) // namespace -> module path
	for i := range cfg.Modules {
		m := &cfg.Modules[i]

		if m.Path == "" {
			return fmt.Errorf("config: module %d: 'path' is required", i+1)
		}
		if filepath.IsAbs(m.Path) {
			return fmt.Errorf("config: module %q: path must be relative to the project root", m.Path)
		}
		full := filepath.Join(projectRoot, m.Path)
		if _, err := os.Stat(full); err != nil {
			return fmt.Errorf("config: module %q: file not found at %s", m.Path, full)
		}

		if m.Namespace == "" {
			m.Namespace = extract.NamespaceFor(m.Path)
		}
		if !namespaceRe.MatchString(m.Namespace) {
			return fmt.Errorf("config: module %q: namespace %q is not a valid identifier", m.Path, m.Namespace)
		}
		if prev, dup := seen[m.Namespace]; dup {
			return fmt.Errorf("config: namespace %q used by both %q and %q", m.Namespace, prev, m.Path)
		}
		seen[m.Namespace] = m.Path

		for _, fn := range m.Functions {
			if strings.TrimSpace(fn) == "" {
				return fmt.Errorf("config: module %q: 'functions' entries must be non-empty", m.Path)
			}
		}
	}

	return nil
}
