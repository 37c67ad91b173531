package apply

// Entry records one file touched by a run: its path and where its
// pre-apply contents were backed up (empty if the file didn't exist
// before).
type Entry struct {
	Path       string
	BackupPath string
}

// Journal accumulates Entry records for one apply run so cmd/sgrep
// apply can undo every write it made, in reverse order, when a later
// write or store update in the same invocation fails. (The rollback
// subcommand works from the store's Applied records instead.)
type Journal struct {
	Entries []Entry
}

// Record appends one write's outcome to the journal.
func (j *Journal) Record(path, backupPath string) {
	j.Entries = append(j.Entries, Entry{Path: path, BackupPath: backupPath})
}

// Rollback restores every recorded file, most-recently-written first,
// using w to undo the write (or remove the file if it didn't exist
// before the run). It keeps going on a per-file error and returns the
// first one encountered, if any, after attempting every entry.
func (j *Journal) Rollback(w *Writer) error {
	var firstErr error
	for i := len(j.Entries) - 1; i >= 0; i-- {
		e := j.Entries[i]
		if err := w.Restore(e.Path, e.BackupPath); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
