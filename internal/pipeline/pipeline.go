// Package pipeline drives a full build: extract runtime functions,
// apply namespaces, bundle per the configured strategy, and write the
// outputs plus a durable manifest and registry document.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/loom/internal/bundle"
	"github.com/jorge-barreto/loom/internal/config"
	"github.com/jorge-barreto/loom/internal/emit"
	"github.com/jorge-barreto/loom/internal/extract"
	"github.com/jorge-barreto/loom/internal/settings"
)

// Options tunes one Build call.
type Options struct {
	// Esbuild overrides the bundler binary. Empty means "esbuild" on PATH.
	Esbuild string
	Logger  *zap.Logger
}

// BuildResult is what Build hands back to the CLI layer.
type BuildResult struct {
	Manifest *Manifest
	Outputs  []string
	Warnings []string
}

// Build runs the whole pipeline for one project. Extraction and bundler
// problems that do not prevent producing output are collected as
// warnings; anything else aborts with an error.
func Build(ctx context.Context, cfg *config.Config, root string, opts Options) (*BuildResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	modules, err := resolveModules(cfg, root)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("pipeline: no runtime modules configured and none found under %s", cfg.RuntimeDir)
	}

	bin := opts.Esbuild
	if bin == "" {
		bin = "esbuild"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("pipeline: bundler binary not found: %w", err)
	}

	var (
		warnings []string
		files    []bundle.RuntimeFileInfo
		mods     []ModuleManifest
	)
	for _, m := range modules {
		full := filepath.Join(root, m.Path)
		log.Info("extracting runtime module",
			zap.String("path", m.Path),
			zap.String("namespace", m.Namespace))

		res, err := extract.Extract(full, m.Functions, len(m.Functions) == 0)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", m.Path, err)
		}
		warnings = append(warnings, res.Warnings...)

		named := extract.ApplyNamespace(m.Namespace, res.Functions)
		fns := make([]string, 0, len(named))
		for name := range named {
			fns = append(fns, name)
		}
		sort.Strings(fns)

		exported := make([]string, 0, len(res.Functions))
		for name := range res.Functions {
			exported = append(exported, name)
		}
		sort.Strings(exported)

		mods = append(mods, ModuleManifest{Path: m.Path, Namespace: m.Namespace, Functions: fns})
		files = append(files, bundle.RuntimeFileInfo{
			SourcePath:        full,
			Namespace:         m.Namespace,
			ExportedFunctions: exported,
		})
	}

	outDir := filepath.Join(root, cfg.Bundler.Outdir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	log.Info("bundling", zap.String("strategy", cfg.Bundler.Strategy), zap.Int("modules", len(files)))

	var outputs []string
	switch cfg.Bundler.Strategy {
	case config.StrategySplit:
		res, err := bundle.Split(ctx, files, bundle.Options{Esbuild: bin})
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, res.Warnings...)
		for ns, chunk := range res.Chunks {
			if chunk == "" {
				continue
			}
			p := filepath.Join(outDir, ns+".js")
			if err := writeFileAtomic(p, []byte(chunk), 0644); err != nil {
				return nil, err
			}
			outputs = append(outputs, p)
		}
		dispatcher := filepath.Join(outDir, "runtime.js")
		if err := writeFileAtomic(dispatcher, []byte(res.Dispatcher), 0644); err != nil {
			return nil, err
		}
		outputs = append(outputs, dispatcher)

	default:
		res, err := bundle.Single(ctx, files, bundle.Options{Esbuild: bin})
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, res.Warnings...)
		if res.Script != "" {
			outfile := filepath.Join(root, cfg.Bundler.Outfile)
			if err := os.MkdirAll(filepath.Dir(outfile), 0755); err != nil {
				return nil, err
			}
			if err := writeFileAtomic(outfile, []byte(res.Script), 0644); err != nil {
				return nil, err
			}
			outputs = append(outputs, outfile)
		}
	}

	// Record where workflows should find the runtime script.
	script := cfg.Bundler.Outfile
	if cfg.Bundler.Strategy == config.StrategySplit {
		script = filepath.ToSlash(filepath.Join(cfg.Bundler.Outdir, "runtime.js"))
	}
	if err := settings.Merge(filepath.Join(root, ".loom", "settings.json"), "runtimeScript", script); err != nil {
		return nil, fmt.Errorf("updating settings: %w", err)
	}

	em := &emit.Emitter{Dialect: emitDialect(cfg.Dialect)}
	registryPath := filepath.Join(outDir, "runtime.md")
	if err := writeFileAtomic(registryPath, []byte(em.Emit(registryDoc(cfg, mods))), 0644); err != nil {
		return nil, err
	}
	outputs = append(outputs, registryPath)
	sort.Strings(outputs)

	man := &Manifest{
		Name:        cfg.Name,
		Strategy:    cfg.Bundler.Strategy,
		Dialect:     cfg.Dialect,
		GeneratedAt: time.Now().UTC(),
		DurationMS:  time.Since(start).Milliseconds(),
		Modules:     mods,
		Outputs:     outputs,
		Warnings:    warnings,
	}
	if err := man.Save(outDir); err != nil {
		return nil, err
	}

	log.Info("build complete",
		zap.Int("outputs", len(outputs)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("elapsed", time.Since(start)))

	return &BuildResult{Manifest: man, Outputs: outputs, Warnings: warnings}, nil
}

// Plan describes what Build would do, for the dry-run flag.
func Plan(cfg *config.Config, root string) ([]string, error) {
	modules, err := resolveModules(cfg, root)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, m := range modules {
		scope := "all exported functions"
		if len(m.Functions) > 0 {
			scope = fmt.Sprintf("%d function(s)", len(m.Functions))
		}
		lines = append(lines, fmt.Sprintf("extract %s as %q (%s)", m.Path, m.Namespace, scope))
	}
	switch cfg.Bundler.Strategy {
	case config.StrategySplit:
		lines = append(lines, fmt.Sprintf("bundle %d chunk(s) + dispatcher into %s/", len(modules), cfg.Bundler.Outdir))
	default:
		lines = append(lines, fmt.Sprintf("bundle single script into %s", cfg.Bundler.Outfile))
	}
	lines = append(lines, fmt.Sprintf("write %s/runtime.md and %s/manifest.json", cfg.Bundler.Outdir, cfg.Bundler.Outdir))
	return lines, nil
}

// resolveModules returns the configured modules, or scans the runtime
// directory when none are declared. Scanned namespaces derive from file
// names and must not collide.
func resolveModules(cfg *config.Config, root string) ([]config.Module, error) {
	if len(cfg.Modules) > 0 {
		return cfg.Modules, nil
	}

	dir := filepath.Join(root, cfg.RuntimeDir)
	paths, err := extract.ProjectFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]string)
	var modules []config.Module
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, err
		}
		ns := extract.NamespaceFor(p)
		if prev, dup := seen[ns]; dup {
			return nil, fmt.Errorf("pipeline: namespace %q derived for both %s and %s; set explicit namespaces in loom.yaml", ns, prev, rel)
		}
		seen[ns] = rel
		modules = append(modules, config.Module{Path: rel, Namespace: ns})
	}
	return modules, nil
}
