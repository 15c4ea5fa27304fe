// Package doctor verifies the local environment can run a build: a
// recent node, the esbuild binary, a valid config, and a writable
// output directory.
package doctor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jorge-barreto/loom/internal/config"
	"github.com/jorge-barreto/loom/internal/ux"
)

const minNodeMajor = 18

// Check is one diagnostic result.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Run executes all checks against the project root and prints the
// report. It returns false when any check fails.
func Run(ctx context.Context, root string) bool {
	checks := []Check{
		checkNode(ctx),
		checkEsbuild(ctx),
	}

	cfgCheck, cfg := checkConfig(root)
	checks = append(checks, cfgCheck)

	outDir := "dist"
	if cfg != nil {
		outDir = cfg.Bundler.Outdir
	}
	checks = append(checks, checkOutputDir(filepath.Join(root, outDir)))

	ok := true
	fmt.Printf("\n%s%s══ loom doctor ══%s\n\n", ux.Bold, ux.Cyan, ux.Reset)
	for _, c := range checks {
		if c.OK {
			fmt.Printf("  %s✓%s %-16s %s\n", ux.Green, ux.Reset, c.Name, c.Detail)
		} else {
			ok = false
			fmt.Printf("  %s✗%s %-16s %s\n", ux.Red, ux.Reset, c.Name, c.Detail)
		}
	}
	fmt.Println()
	if !ok {
		ux.Hint("fix the failing checks above, then run: loom build")
	}
	return ok
}

func checkNode(ctx context.Context) Check {
	out, err := commandOutput(ctx, "node", "--version")
	if err != nil {
		return Check{Name: "node", Detail: "not found on PATH"}
	}
	major, err := parseNodeMajor(out)
	if err != nil {
		return Check{Name: "node", Detail: fmt.Sprintf("unparseable version %q", out)}
	}
	if major < minNodeMajor {
		return Check{Name: "node", Detail: fmt.Sprintf("%s (need >= %d)", out, minNodeMajor)}
	}
	return Check{Name: "node", OK: true, Detail: out}
}

func checkEsbuild(ctx context.Context) Check {
	out, err := commandOutput(ctx, "esbuild", "--version")
	if err != nil {
		return Check{Name: "esbuild", Detail: "not found on PATH (npm install -g esbuild)"}
	}
	return Check{Name: "esbuild", OK: true, Detail: out}
}

func checkConfig(root string) (Check, *config.Config) {
	path := filepath.Join(root, "loom.yaml")
	cfg, err := config.Load(path, root)
	if err != nil {
		return Check{Name: "loom.yaml", Detail: err.Error()}, nil
	}
	detail := fmt.Sprintf("%s (%d module(s), %s strategy)", cfg.Name, len(cfg.Modules), cfg.Bundler.Strategy)
	return Check{Name: "loom.yaml", OK: true, Detail: detail}, cfg
}

func checkOutputDir(dir string) Check {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Check{Name: "output dir", Detail: fmt.Sprintf("%s: %v", dir, err)}
	}
	probe := filepath.Join(dir, ".loom-doctor")
	if err := os.WriteFile(probe, []byte("ok\n"), 0644); err != nil {
		return Check{Name: "output dir", Detail: fmt.Sprintf("%s not writable: %v", dir, err)}
	}
	os.Remove(probe)
	return Check{Name: "output dir", OK: true, Detail: dir}
}

func commandOutput(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

// parseNodeMajor extracts the major version from node's "v18.19.0" form.
func parseNodeMajor(version string) (int, error) {
	v := strings.TrimPrefix(version, "v")
	head, _, _ := strings.Cut(v, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("doctor: bad node version %q", version)
	}
	return major, nil
}
