// Package apply implements atomic multi-file writing and rollback for
// cmd/sgrep's apply/rollback subcommands, adapted from the teacher's
// core.AtomicWriter: same temp-file-then-rename write, same optional
// backup-before-write, condensed to what a CLI needs (no in-process
// cross-goroutine file locking, since apply runs its writes
// sequentially after the walk has already completed).
package apply

import (
	"fmt"
	"os"
)

// WriteConfig controls atomic writing behavior, mirroring
// core.AtomicWriteConfig.
type WriteConfig struct {
	UseFsync     bool
	TempSuffix   string
	BackupSuffix string
}

// DefaultWriteConfig mirrors core.DefaultAtomicConfig's choices.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{
		UseFsync:     false,
		TempSuffix:   ".sgrep.tmp",
		BackupSuffix: ".sgrep.bak",
	}
}

// Writer performs atomic single-file writes with an optional backup of
// the previous contents, returning the backup path so the caller can
// record it in a Journal for later rollback.
type Writer struct {
	cfg WriteConfig
}

// NewWriter constructs a Writer.
func NewWriter(cfg WriteConfig) *Writer {
	return &Writer{cfg: cfg}
}

// WriteFile atomically replaces path's contents with content. If a file
// already existed at path, its original contents are preserved at the
// returned backup path; backupPath is empty when path didn't exist
// before this call.
func (w *Writer) WriteFile(path, content string) (backupPath string, err error) {
	originalInfo, statErr := os.Stat(path)
	mode := os.FileMode(0o644)
	if statErr == nil {
		mode = originalInfo.Mode()
		backupPath = path + w.cfg.BackupSuffix
		if err := copyFile(path, backupPath); err != nil {
			return "", fmt.Errorf("apply: backup %s: %w", path, err)
		}
	}

	tempPath := path + w.cfg.TempSuffix
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return "", fmt.Errorf("apply: create temp file for %s: %w", path, err)
	}
	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return "", fmt.Errorf("apply: write %s: %w", path, err)
	}
	if w.cfg.UseFsync {
		if err := tempFile.Sync(); err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return "", fmt.Errorf("apply: sync %s: %w", path, err)
		}
	}
	tempFile.Close()

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("apply: rename into place for %s: %w", path, err)
	}
	return backupPath, nil
}

// Restore overwrites path with backupPath's contents (used by rollback)
// and removes the backup file.
func (w *Writer) Restore(path, backupPath string) error {
	if backupPath == "" {
		return os.Remove(path)
	}
	if err := copyFile(backupPath, path); err != nil {
		return fmt.Errorf("apply: restore %s from backup: %w", path, err)
	}
	return os.Remove(backupPath)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(dst, data, mode)
}
