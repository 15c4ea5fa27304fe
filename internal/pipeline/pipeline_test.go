package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/loom/internal/config"
)

func fakeEsbuild(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub bundler script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "esbuild")
	script := "#!/bin/sh\nprintf 'var registry = {};\\nexport {\\n  registry\\n};\\n'\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func projectRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	src := `export async function commitAll(message: string): Promise<void> {
  await run("git commit -am " + message);
}

async function run(cmd: string): Promise<void> {}
`
	require.NoError(t, os.MkdirAll(filepath.Join(root, "runtime"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "runtime", "git-tools.ts"), []byte(src), 0644))
	return root
}

func validated(t *testing.T, cfg *config.Config, root string) *config.Config {
	t.Helper()
	require.NoError(t, config.Validate(cfg, root))
	return cfg
}

func TestBuild_SingleStrategy(t *testing.T) {
	root := projectRoot(t)
	cfg := validated(t, &config.Config{Name: "demo"}, root)

	res, err := Build(context.Background(), cfg, root, Options{Esbuild: fakeEsbuild(t)})
	require.NoError(t, err)

	script, err := os.ReadFile(filepath.Join(root, "dist", "runtime.js"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "Usage: node runtime.js")

	registry, err := os.ReadFile(filepath.Join(root, "dist", "runtime.md"))
	require.NoError(t, err)
	assert.Contains(t, string(registry), "# Runtime registry")
	assert.Contains(t, string(registry), "`git_tools_commitAll`")

	require.Len(t, res.Manifest.Modules, 1)
	assert.Equal(t, "git_tools", res.Manifest.Modules[0].Namespace)
	assert.Equal(t, []string{"git_tools_commitAll"}, res.Manifest.Modules[0].Functions)

	loaded, err := LoadManifest(filepath.Join(root, "dist"))
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "demo", loaded.Name)
	assert.Equal(t, res.Manifest.Outputs, loaded.Outputs)

	settings, err := os.ReadFile(filepath.Join(root, ".loom", "settings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(settings), `"runtimeScript": "dist/runtime.js"`)
}

func TestBuild_SplitStrategy(t *testing.T) {
	root := projectRoot(t)
	cfg := validated(t, &config.Config{
		Name:    "demo",
		Bundler: config.Bundler{Strategy: config.StrategySplit},
	}, root)

	_, err := Build(context.Background(), cfg, root, Options{Esbuild: fakeEsbuild(t)})
	require.NoError(t, err)

	if _, err := os.Stat(filepath.Join(root, "dist", "git_tools.js")); err != nil {
		t.Fatalf("chunk missing: %v", err)
	}
	dispatcher, err := os.ReadFile(filepath.Join(root, "dist", "runtime.js"))
	require.NoError(t, err)
	assert.Contains(t, string(dispatcher), `["git_tools"]`)
}

func TestBuild_MissingBundlerBinary(t *testing.T) {
	root := projectRoot(t)
	cfg := validated(t, &config.Config{Name: "demo"}, root)

	_, err := Build(context.Background(), cfg, root, Options{
		Esbuild: filepath.Join(t.TempDir(), "no-such-esbuild"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bundler binary not found")
}

func TestBuild_NoModules(t *testing.T) {
	root := t.TempDir()
	cfg := validated(t, &config.Config{Name: "demo"}, root)

	_, err := Build(context.Background(), cfg, root, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runtime modules")
}

func TestResolveModules_ScansRuntimeDir(t *testing.T) {
	root := projectRoot(t)
	cfg := validated(t, &config.Config{Name: "demo"}, root)

	modules, err := resolveModules(cfg, root)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, filepath.Join("runtime", "git-tools.ts"), modules[0].Path)
	assert.Equal(t, "git_tools", modules[0].Namespace)
}

func TestResolveModules_ExplicitWins(t *testing.T) {
	root := projectRoot(t)
	cfg := validated(t, &config.Config{
		Name: "demo",
		Modules: []config.Module{
			{Path: "runtime/git-tools.ts", Namespace: "git"},
		},
	}, root)

	modules, err := resolveModules(cfg, root)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "git", modules[0].Namespace)
}

func TestPlan(t *testing.T) {
	root := projectRoot(t)
	cfg := validated(t, &config.Config{Name: "demo"}, root)

	lines, err := Plan(cfg, root)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"git_tools"`)
	assert.Contains(t, lines[1], "dist/runtime.js")
	assert.True(t, strings.Contains(lines[2], "runtime.md"))
}

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m)
}
