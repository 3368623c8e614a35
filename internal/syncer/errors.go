package syncer

import "fmt"

// LoadError reports a manifest that could not be read or validated. Load
// recovers from it (backup, then empty catalog); it surfaces only inside
// warnings.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed atomic write. The canonical manifest is
// untouched; when a backup was already created it is left in place for
// manual recovery.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saving catalog %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// BackupError reports that the pre-write backup copy could not be
// created. It blocks the write sequence from proceeding.
type BackupError struct {
	Path string
	Err  error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backing up catalog %s: %v", e.Path, e.Err)
}

func (e *BackupError) Unwrap() error { return e.Err }
