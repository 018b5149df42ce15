package services

import "fmt"

// The services layer reports failures through this closed set of error
// types. Controllers switch on them with errors.As to pick a status
// code; nobody matches on message text.

// ValidationError rejects malformed input before any store access.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DuplicateNameError surfaces a per-user uniqueness violation.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name %q already exists for this user", e.Entity, e.Name)
}

// NotFoundError means the referenced entity is absent or not owned by
// the calling user. The two cases are deliberately indistinguishable.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// StoreError wraps an I/O failure from the database or cache tier.
// It propagates unchanged to the caller boundary; retries, if any,
// belong to the transport layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// InvariantError marks a state that should be unreachable when
// transactions are correctly scoped, e.g. two ACTIVE goal plans for one
// user after a transition.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "invariant violated: " + e.Msg }
