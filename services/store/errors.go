package store

import "fmt"

// SyncError marks a transient store or network failure. Callers may retry
// the operation; nothing was committed.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync error during %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
