package domain

import "errors"

// Sentinel errors for the application. Callers classify failures with
// errors.Is; the HTTP layer maps them onto status codes.
var (
	// ErrUnauthenticated means an operation requiring a session user was
	// called without one.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound means a referenced entity does not exist. Login also
	// returns it for a wrong password: unknown user and bad credential are
	// deliberately indistinguishable.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidState means the auction is not open for bidding (not active,
	// or ended by the clock while the status was never transitioned).
	ErrInvalidState = errors.New("auction is not open for bidding")

	// ErrInvalidBid means the bid amount does not exceed the current bid.
	ErrInvalidBid = errors.New("bid must exceed the current bid")

	// ErrForbidden means the caller may not perform the action: bidding on
	// one's own auction, or touching a conversation one is not part of.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateIdentity means registration hit a taken username or email.
	ErrDuplicateIdentity = errors.New("username or email already registered")

	// ErrInvalidInput means a request was malformed before any rule applied.
	ErrInvalidInput = errors.New("invalid input")
)
