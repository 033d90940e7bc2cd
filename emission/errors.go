package emission

import "errors"

var (
	// ErrNotAuthorized indicates a caller without the required role.
	ErrNotAuthorized = errors.New("emission: caller not authorized")

	// ErrZeroAddress indicates the null address where a real account is
	// required.
	ErrZeroAddress = errors.New("emission: zero address")

	// ErrRateOutOfBounds indicates a rate outside its allowed range.
	ErrRateOutOfBounds = errors.New("emission: rate out of bounds")

	// ErrTailInactive indicates a tail-only operation while the weekly
	// target is still at or above the tail threshold.
	ErrTailInactive = errors.New("emission: tail regime not active")

	// ErrAlreadyNudged indicates the current epoch's nudge was already
	// consumed.
	ErrAlreadyNudged = errors.New("emission: epoch already nudged")

	// ErrUnknownOutcome indicates an oracle outcome outside the enum.
	ErrUnknownOutcome = errors.New("emission: unknown proposal outcome")

	// ErrInvalidState indicates malformed or inconsistent persisted state.
	ErrInvalidState = errors.New("emission: invalid state data")

	// ErrStateNotFound indicates the store holds no scheduler state yet.
	ErrStateNotFound = errors.New("emission: state not found")

	// ErrEpochNotFound indicates a missing epoch record.
	ErrEpochNotFound = errors.New("emission: epoch record not found")

	// ErrNudgeNotFound indicates a missing nudge record.
	ErrNudgeNotFound = errors.New("emission: nudge record not found")

	// ErrNilParam indicates a nil required parameter.
	ErrNilParam = errors.New("emission: nil parameter")
)
