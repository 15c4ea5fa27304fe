package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/loom/internal/ux"
)

var configTemplate = `name: my-workflows

# Modules are discovered under runtime-dir when this list is omitted.
modules:
  - path: runtime/example.ts

bundler:
  strategy: single
  outfile: dist/runtime.js

dialect: subshell
`

var moduleTemplate = `// Example runtime module. Every exported function becomes invocable
// as example_<name> through the bundled runtime script.

export async function greet(name: string): Promise<{ message: string }> {
  return { message: "hello, " + name };
}

export const DEFAULTS = {
  name: "world",
};
`

// Init creates a loom.yaml and an example runtime module.
func Init(targetDir string) error {
	configPath := filepath.Join(targetDir, "loom.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("loom.yaml already exists in %s", targetDir)
	}

	runtimeDir := filepath.Join(targetDir, "runtime")
	if err := os.MkdirAll(runtimeDir, 0755); err != nil {
		return fmt.Errorf("creating runtime/: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing loom.yaml: %w", err)
	}

	modulePath := filepath.Join(runtimeDir, "example.ts")
	if err := os.WriteFile(modulePath, []byte(moduleTemplate), 0644); err != nil {
		return fmt.Errorf("writing example.ts: %w", err)
	}

	fmt.Printf("\n%s%s✓ Initialized loom project%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Printf("  Created:\n")
	fmt.Printf("    %sloom.yaml%s           build configuration\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %sruntime/example.ts%s  example runtime module\n\n", ux.Cyan, ux.Reset)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    1. Add runtime functions under %sruntime/%s\n", ux.Cyan, ux.Reset)
	fmt.Printf("    2. Run %sloom doctor%s to check the environment\n", ux.Cyan, ux.Reset)
	fmt.Printf("    3. Run %sloom build%s\n\n", ux.Cyan, ux.Reset)

	return nil
}
