package core

import "errors"

// Failure taxonomy for ledger operations. Handlers translate these with
// errors.Is; every failed operation leaves all entities unchanged.
var (
	// ErrUnauthenticated is returned when the caller is the anonymous identity
	ErrUnauthenticated = errors.New("anonymous callers are not allowed")

	// ErrNotAuthority is returned when the caller is not in the authority registry
	ErrNotAuthority = errors.New("caller is not a recognized authority")

	// ErrNotFound is returned when an entity ID is unknown
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when a report is not in the state the
	// operation requires, e.g. settling an already-settled report
	ErrInvalidState = errors.New("invalid report state")

	// ErrInvalidStake is returned when the stake is below the configured minimum
	ErrInvalidStake = errors.New("invalid stake amount")

	// ErrInsufficientBalance is returned when the caller cannot cover the
	// stake or transfer amount
	ErrInsufficientBalance = errors.New("insufficient token balance")

	// ErrForbidden is returned on an identity mismatch for an owner-scoped write
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyAuthority is returned on duplicate authority registration
	ErrAlreadyAuthority = errors.New("principal is already an authority")
)
