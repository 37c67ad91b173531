package walk

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func collect(t *testing.T, results <-chan Result) []string {
	t.Helper()
	var paths []string
	for r := range results {
		require.NoError(t, r.Err)
		paths = append(paths, filepath.Base(r.Path))
	}
	sort.Strings(paths)
	return paths
}

func TestWalk_IncludeFiltersByGlob(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go":         "package a\n",
		"b.txt":        "text\n",
		"nested/c.go":  "package c\n",
		"nested/d.txt": "text\n",
	})

	w := New()
	results, err := w.Walk(context.Background(), Scope{Root: dir, Include: []string{"**/*.go"}})
	require.NoError(t, err)

	paths := collect(t, results)
	assert.Equal(t, []string{"a.go", "c.go"}, paths)
}

func TestWalk_ExcludeWins(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go":          "package a\n",
		"vendor/b.go":   "package b\n",
		"internal/c.go": "package c\n",
	})

	w := New()
	results, err := w.Walk(context.Background(), Scope{
		Root:    dir,
		Include: []string{"**/*.go"},
		Exclude: []string{"vendor/**"},
	})
	require.NoError(t, err)

	paths := collect(t, results)
	assert.Equal(t, []string{"a.go", "c.go"}, paths)
}

func TestWalk_NoIncludeMatchesEverything(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go":  "package a\n",
		"b.txt": "text\n",
	})

	w := New()
	results, err := w.Walk(context.Background(), Scope{Root: dir})
	require.NoError(t, err)

	paths := collect(t, results)
	assert.Equal(t, []string{"a.go", "b.txt"}, paths)
}

func TestWalk_MissingRootErrors(t *testing.T) {
	w := New()
	_, err := w.Walk(context.Background(), Scope{Root: "/does/not/exist"})
	assert.Error(t, err)
}
