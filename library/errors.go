package library

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update or lookup names a member, book or
// transaction that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrUnavailable is returned by Borrow when the book does not exist or has
// no copies left to lend.
var ErrUnavailable = errors.New("book not available")

// ErrInvalidTransaction is returned by Return for an unknown or already
// closed transaction id.
var ErrInvalidTransaction = errors.New("invalid transaction or already returned")

// ErrDuplicateISBN is returned when an insert collides with the unique ISBN
// constraint.
var ErrDuplicateISBN = errors.New("isbn already registered")

// ErrForbidden is returned when the caller's role does not permit a
// catalog-mutating operation.
var ErrForbidden = errors.New("forbidden")

// ErrBadCredentials is returned by Authenticate for an unknown username or
// a wrong password. The two cases are deliberately indistinguishable.
var ErrBadCredentials = errors.New("invalid username or password")

// ValidationError reports malformed input. The caller corrects the input
// and retries; no state was touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps an underlying persistence failure. The failed
// operation rolled back and left no partial state.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage failure: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
