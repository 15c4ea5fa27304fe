// Package bundle turns extracted runtime modules into CLI-invocable
// JavaScript: either one self-contained script or per-namespace chunks
// behind a lazy dispatcher. Bundling shells out to the esbuild binary;
// build problems are surfaced as warnings on the result so the caller
// decides whether a partial bundle is acceptable.
package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RuntimeFileInfo is the unit of bundling: one source module, its
// namespace, and the functions it exports. Namespaces must be unique
// within one bundling operation.
type RuntimeFileInfo struct {
	SourcePath        string
	Namespace         string
	ExportedFunctions []string
}

// Options configures a bundling operation.
type Options struct {
	// Esbuild is the bundler binary. Empty means "esbuild" on PATH.
	Esbuild string
	// WorkDir receives the generated entry files. Empty means a fresh
	// temporary directory.
	WorkDir string
}

// Result is the output of one bundling operation. Warnings collect
// bundler diagnostics and soft failures; they never abort the build.
type Result struct {
	Script     string            // single-entry bundle
	Chunks     map[string]string // code-split bundles keyed by namespace
	Dispatcher string            // lazy dispatcher for code-split output
	Warnings   []string
}

func (o Options) esbuild() string {
	if o.Esbuild != "" {
		return o.Esbuild
	}
	return "esbuild"
}

// Single bundles every runtime module into one self-contained CLI script.
// The generated entry file is removed on every exit path.
func Single(ctx context.Context, files []RuntimeFileInfo, opts Options) (*Result, error) {
	if err := checkNamespaces(files); err != nil {
		return nil, err
	}

	dir, cleanup, err := entryDir(opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	entryPath := filepath.Join(dir, "entry.ts")
	if err := os.WriteFile(entryPath, []byte(singleEntrySource(files)), 0644); err != nil {
		return nil, fmt.Errorf("writing entry file: %w", err)
	}
	defer os.Remove(entryPath)

	res := &Result{}
	bundled, warnings, err := runEsbuild(ctx, opts.esbuild(), entryPath)
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		return nil, err
	}
	if bundled == "" {
		return res, nil
	}

	body, warning := bindRegistry(bundled)
	if warning != "" {
		res.Warnings = append(res.Warnings, warning)
	}
	res.Script = body + "\n" + cliMain
	return res, nil
}

// Split bundles each namespace independently and in parallel, then
// generates a dispatcher that imports chunks on demand. Every namespace
// appears in Chunks regardless of completion order.
func Split(ctx context.Context, files []RuntimeFileInfo, opts Options) (*Result, error) {
	if err := checkNamespaces(files); err != nil {
		return nil, err
	}

	dir, cleanup, err := entryDir(opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	res := &Result{Chunks: make(map[string]string, len(files))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		f := f
		g.Go(func() error {
			entryPath := filepath.Join(dir, f.Namespace+".entry.ts")
			if err := os.WriteFile(entryPath, []byte(splitEntrySource(f)), 0644); err != nil {
				return fmt.Errorf("writing entry for %s: %w", f.Namespace, err)
			}
			defer os.Remove(entryPath)

			bundled, warnings, err := runEsbuild(gctx, opts.esbuild(), entryPath)
			mu.Lock()
			defer mu.Unlock()
			res.Warnings = append(res.Warnings, warnings...)
			if err != nil {
				return err
			}
			res.Chunks[f.Namespace] = bundled
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Dispatcher = dispatcherSource(files)
	return res, nil
}

func checkNamespaces(files []RuntimeFileInfo) error {
	if len(files) == 0 {
		return fmt.Errorf("bundle: no runtime modules")
	}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.Namespace == "" {
			return fmt.Errorf("bundle: %s has no namespace", f.SourcePath)
		}
		if seen[f.Namespace] {
			return fmt.Errorf("bundle: duplicate namespace %q", f.Namespace)
		}
		seen[f.Namespace] = true
	}
	return nil
}

// entryDir picks the directory for generated entries. When it creates a
// temporary directory, cleanup removes it; a caller-supplied WorkDir is
// left in place (only the entry files themselves are deleted).
func entryDir(opts Options) (string, func(), error) {
	if opts.WorkDir != "" {
		return opts.WorkDir, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "loom-entry-*")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.Remove(dir) }, nil
}
