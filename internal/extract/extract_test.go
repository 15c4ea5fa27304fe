package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtract_All(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `
export async function run(cmd: string): Promise<number> {
  return 0;
}

export const LIMITS = { max: 10 };
`)

	res, err := Extract(entry, nil, true)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Contains(t, res.Functions, "run")
	assert.True(t, res.Functions["run"].IsAsync)
	require.Contains(t, res.Constants, "LIMITS")
	assert.Equal(t, "{ max: 10 }", res.Constants["LIMITS"].Value)
}

func TestExtract_RequiredFiltersAndWarns(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `
export function keep(): void {}
export function drop(): void {}
`)

	res, err := Extract(entry, []string{"keep", "missing"}, false)
	require.NoError(t, err)
	assert.Contains(t, res.Functions, "keep")
	assert.NotContains(t, res.Functions, "drop")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `"missing"`)
}

func TestExtract_FollowsRelativeImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.ts", `
export function helper(x: number): number { return x + 1; }
`)
	// The compiled-specifier .js extension maps back to the .ts source.
	entry := writeFile(t, dir, "main.ts", `
import { helper } from "./util.js";

export function top(): number { return helper(1); }
`)

	res, err := Extract(entry, nil, true)
	require.NoError(t, err)
	assert.Contains(t, res.Functions, "top")
	assert.Contains(t, res.Functions, "helper")
	assert.Empty(t, res.Warnings)
}

func TestExtract_UnresolvableImportWarns(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `
import { gone } from "./missing";
import fs from "fs";

export function top(): void {}
`)

	res, err := Extract(entry, nil, true)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "unresolvable import")
	// Bare specifiers are skipped without a warning: they cannot be
	// resolved without a module graph.
	assert.NotContains(t, res.Warnings[0], "fs")
}

func TestExtract_ImportCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `
import { b } from "./b";
export function a(): void {}
`)
	entry := writeFile(t, dir, "b.ts", `
import { a } from "./a";
export function b(): void {}
`)

	res, err := Extract(entry, nil, true)
	require.NoError(t, err)
	assert.Contains(t, res.Functions, "a")
	assert.Contains(t, res.Functions, "b")
}

func TestExtract_MissingEntryFileErrors(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.ts"), nil, true)
	require.Error(t, err)
}

func TestProjectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.ts", "export function b(): void {}\n")
	writeFile(t, dir, "a.ts", "export function a(): void {}\n")
	writeFile(t, dir, "types.d.ts", "declare const x: number;\n")
	writeFile(t, dir, "notes.md", "readme\n")
	writeFile(t, dir, "node_modules/dep/index.ts", "export function dep(): void {}\n")

	files, err := ProjectFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.True(t, strings.HasSuffix(files[0], "a.ts"))
	assert.True(t, strings.HasSuffix(files[1], "b.ts"))
}
