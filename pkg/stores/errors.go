package stores

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("item not found")

	// ErrAlreadyPersisted is returned when saving an item that already has an id.
	ErrAlreadyPersisted = errors.New("item already persisted")

	// ErrNotInitialized is returned when an operation runs before Init.
	ErrNotInitialized = errors.New("database not initialized")
)

// StorageError reports a failure to reach the database or to run a statement.
type StorageError struct {
	// Op is the store operation that failed.
	Op string

	// Err is the underlying driver or database/sql error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
