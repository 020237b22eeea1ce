package seating

import "errors"

var (
	// ErrNoSeatAvailable means the resolver found no vacant or spare-capacity
	// seat for the target position. Recoverable by the caller (provision a
	// seat, pick another position); never retried automatically.
	ErrNoSeatAvailable = errors.New("No seat available for position")

	// ErrSeatNotFound means the seat id handed to the mutator does not exist.
	ErrSeatNotFound = errors.New("Seat not found")

	// ErrSeatAtCapacity means the seat already holds its maximum number of
	// open occupants (1 for non-shared seats, max_occupants for shared).
	ErrSeatAtCapacity = errors.New("Seat is at capacity")

	// ErrAssignmentFailed wraps a store failure during assign. Retrying is
	// unsafe without dedup: assign always inserts a new row.
	ErrAssignmentFailed = errors.New("Assignment failed")

	// ErrReleaseFailed wraps a store failure during release. Release is
	// idempotent, so retrying is safe.
	ErrReleaseFailed = errors.New("Release failed")

	// ErrUnsupportedTransactionType is a programmer/config error and should
	// be treated as fatal at the call site.
	ErrUnsupportedTransactionType = errors.New("Unsupported transaction type")

	// ErrReturnDateRequired means a secondment was requested without a
	// return date.
	ErrReturnDateRequired = errors.New("Secondment return date is required")
)
