package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_NewFileHasNoBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.go")

	w := NewWriter(DefaultWriteConfig())
	backup, err := w.WriteFile(path, "package main\n")
	require.NoError(t, err)
	assert.Empty(t, backup)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(got))
}

func TestWriteFile_ExistingFileIsBackedUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.go")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	w := NewWriter(DefaultWriteConfig())
	backup, err := w.WriteFile(path, "modified\n")
	require.NoError(t, err)
	require.NotEmpty(t, backup)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "modified\n", string(got))

	backed, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(backed))
}

func TestRestore_WithBackupRevertsContentAndRemovesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.go")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	w := NewWriter(DefaultWriteConfig())
	backup, err := w.WriteFile(path, "modified\n")
	require.NoError(t, err)

	require.NoError(t, w.Restore(path, backup))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(got))

	_, err = os.Stat(backup)
	assert.True(t, os.IsNotExist(err))
}

func TestRestore_NoBackupRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "created.go")

	w := NewWriter(DefaultWriteConfig())
	_, err := w.WriteFile(path, "new\n")
	require.NoError(t, err)

	require.NoError(t, w.Restore(path, ""))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestJournal_RollbackUndoesInReverseOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.go")
	b := filepath.Join(dir, "b.go")
	require.NoError(t, os.WriteFile(a, []byte("a-original\n"), 0o644))

	w := NewWriter(DefaultWriteConfig())
	var j Journal

	backupA, err := w.WriteFile(a, "a-modified\n")
	require.NoError(t, err)
	j.Record(a, backupA)

	backupB, err := w.WriteFile(b, "b-created\n")
	require.NoError(t, err)
	j.Record(b, backupB)

	require.NoError(t, j.Rollback(w))

	gotA, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "a-original\n", string(gotA))

	_, err = os.Stat(b)
	assert.True(t, os.IsNotExist(err))
}
