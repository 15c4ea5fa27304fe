package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/loom/internal/config"
)

func TestInit_CreatesProjectFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, path := range []string{
		"loom.yaml",
		filepath.Join("runtime", "example.ts"),
	} {
		full := filepath.Join(dir, path)
		info, err := os.Stat(full)
		if err != nil {
			t.Fatalf("%s not created: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}

func TestInit_GeneratedConfigValidates(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, "loom.yaml"), dir)
	if err != nil {
		t.Fatalf("generated config does not validate: %v", err)
	}
	if cfg.Modules[0].Namespace != "example" {
		t.Fatalf("namespace: %q", cfg.Modules[0].Namespace)
	}
}

func TestInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "loom.yaml"), []byte("name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir); err == nil {
		t.Fatal("expected error for existing loom.yaml")
	}
}
