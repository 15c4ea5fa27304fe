package pipeline

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ModuleManifest records one bundled runtime module.
type ModuleManifest struct {
	Path      string   `json:"path"`
	Namespace string   `json:"namespace"`
	Functions []string `json:"functions"`
}

// Manifest is the durable record of one build, written next to the
// bundler outputs.
type Manifest struct {
	Name        string           `json:"name"`
	Strategy    string           `json:"strategy"`
	Dialect     string           `json:"dialect"`
	GeneratedAt time.Time        `json:"generated_at"`
	DurationMS  int64            `json:"duration_ms"`
	Modules     []ModuleManifest `json:"modules"`
	Outputs     []string         `json:"outputs"`
	Warnings    []string         `json:"warnings,omitempty"`
}

func manifestPath(outDir string) string {
	return filepath.Join(outDir, "manifest.json")
}

// LoadManifest reads the manifest from a previous build. Returns nil
// without error when no build has run yet.
func LoadManifest(outDir string) (*Manifest, error) {
	data, err := os.ReadFile(manifestPath(outDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes the manifest to the output directory.
func (m *Manifest) Save(outDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(manifestPath(outDir), append(data, '\n'), 0644)
}
