package token

import "errors"

// Token service errors. Balance and supply failures surface as the
// ledger package's sentinels (ledger.ErrInsufficientBalance,
// ledger.ErrCapExceeded, ledger.ErrInvalidRecipient) wrapped with call
// context, so callers can always tell the failure kinds apart.
var (
	// ErrUnauthorized means a non-owner attempted an owner-gated operation.
	ErrUnauthorized = errors.New("caller is not the owner")

	// ErrDestroyed means the token was torn down; no further operations.
	ErrDestroyed = errors.New("token destroyed")

	// ErrNotInitialized means an operation ran before Initialize.
	ErrNotInitialized = errors.New("token not initialized")

	// ErrAlreadyInitialized means Initialize ran twice.
	ErrAlreadyInitialized = errors.New("token already initialized")

	// ErrInvalidOwner means the owner address is zero.
	ErrInvalidOwner = errors.New("owner must not be the zero address")
)
