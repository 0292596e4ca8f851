package store

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned when a user, session, or agent identifier
// contains characters that cannot safely name a directory, or when a
// message role is not one of the recognized values.
var ErrInvalidID = errors.New("invalid identifier")

// StorageError wraps a filesystem or decoding failure in the session store.
// Handlers surface it as a server error, never as a client error.
type StorageError struct {
	Op   string // operation that failed, e.g. "load session"
	Path string // filesystem path involved
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}
