package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Function is an extracted, type-erased function.
type Function struct {
	Name       string
	Body       string
	Params     []string
	IsAsync    bool
	SourcePath string
}

// Constant is an extracted top-level literal constant.
type Constant struct {
	Name       string
	Value      string
	SourcePath string
}

// Result collects everything extracted from one entry file and the
// relative imports reachable from it. Soft failures (missing required
// names, unresolvable imports) land in Warnings; extraction continues.
type Result struct {
	Functions map[string]Function
	Constants map[string]Constant
	Warnings  []string
}

// Extract reads the file at path and extracts the named functions and
// constants. With all=true every exported declaration is taken and
// required is ignored. Files reached through relative imports are
// extracted in full.
func Extract(path string, required []string, all bool) (*Result, error) {
	res := &Result{
		Functions: make(map[string]Function),
		Constants: make(map[string]Constant),
	}
	visited := make(map[string]bool)
	if err := extractFile(path, res, visited, true); err != nil {
		return nil, err
	}

	if !all {
		want := make(map[string]bool, len(required))
		for _, name := range required {
			want[name] = true
		}
		for name := range res.Functions {
			if !want[name] {
				delete(res.Functions, name)
			}
		}
		for name := range res.Constants {
			if !want[name] {
				delete(res.Constants, name)
			}
		}
		for _, name := range required {
			if _, ok := res.Functions[name]; ok {
				continue
			}
			if _, ok := res.Constants[name]; ok {
				continue
			}
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s: required name %q not found", path, name))
		}
	}
	return res, nil
}

// extractFile scans one file and recurses into its relative imports.
// Only the entry file's own extraction is filtered later; imported files
// always contribute everything they export.
func extractFile(path string, res *Result, visited map[string]bool, entry bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if visited[abs] {
		return nil
	}
	visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		if entry {
			return fmt.Errorf("reading source: %w", err)
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf("unresolvable import %q", path))
		return nil
	}

	sf := ScanSource(abs, string(data))
	for _, fn := range sf.Functions {
		res.Functions[fn.Name] = Function{
			Name:       fn.Name,
			Body:       fn.Source,
			Params:     fn.Params,
			IsAsync:    fn.IsAsync,
			SourcePath: abs,
		}
	}
	for _, c := range sf.Constants {
		res.Constants[c.Name] = Constant{Name: c.Name, Value: c.Value, SourcePath: abs}
	}

	dir := filepath.Dir(abs)
	for _, spec := range sf.Imports {
		if !strings.HasPrefix(spec, ".") {
			continue // node module or bare specifier: no module graph to resolve it
		}
		resolved := resolveImport(dir, spec)
		if err := extractFile(resolved, res, visited, false); err != nil {
			return err
		}
	}
	return nil
}

// resolveImport turns a relative specifier into an absolute .ts path.
// Compiled specifiers use .js extensions; they map back to the .ts source.
func resolveImport(fromDir, spec string) string {
	p := filepath.Join(fromDir, spec)
	switch {
	case strings.HasSuffix(p, ".js"):
		p = strings.TrimSuffix(p, ".js") + ".ts"
	case strings.HasSuffix(p, ".ts"):
		// already explicit
	default:
		p += ".ts"
	}
	return p
}
