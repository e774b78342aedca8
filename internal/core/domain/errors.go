package domain

import "errors"

// Not-found errors (404)
var (
	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
	ErrLoanNotFound = errors.New("loan not found")
)

// Precondition errors (400)
var (
	ErrBookAlreadyLoaned   = errors.New("book is already loaned")
	ErrLoanAlreadyReturned = errors.New("loan is already returned")
)

// Storage errors
var (
	// ErrDataIntegrity covers duplicate keys and foreign key violations (409)
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrLockWaitTimeout is returned when a transaction times out waiting for
	// the book row lock. Retryable, surfaced as a server error (503), never as
	// a domain error.
	ErrLockWaitTimeout = errors.New("timed out waiting for row lock")
)
