package service

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound is returned when an operation references an entry id that
// is not in the log.
var ErrEntryNotFound = errors.New("food entry not found")

// ErrInvalidCredentials covers both unknown-email and wrong-password, so a
// login failure does not reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("email already registered")

// PersistenceError wraps a failed call to the persistence collaborator.
// The failure is surfaced to the caller, never silently retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
