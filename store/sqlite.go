package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// connect opens a local sqlite database at dsn and runs migrations,
// adapted from the teacher's db.Connect. The teacher's remote-libsql
// branch (MORFX_LIBSQL_AUTH_TOKEN, "isURL(dsn)") is dropped: a run-history
// audit log has no need to live anywhere but next to the files it
// describes, so only the plain-file sqlite path survives (see DESIGN.md).
// glebarez/sqlite (pure Go, cgo-free via modernc.org/sqlite) replaces the
// teacher's gorm.io/driver/sqlite so cmd/sgrep stays a single static
// binary with no C toolchain required to build it.
func connect(dsn string, debug bool) (*gorm.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create database directory: %w", err)
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("store: connect %s: %w", dsn, err)
	}

	if err := db.AutoMigrate(&Run{}, &Stage{}, &Applied{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return db, nil
}
