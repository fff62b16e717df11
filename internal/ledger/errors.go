package ledger

import "errors"

// Ledger errors.
var (
	// ErrInsufficientBalance means a transfer or burn source lacks funds.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidRecipient means the destination is the zero address.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrCapExceeded means a mint would push total supply past the cap.
	ErrCapExceeded = errors.New("cap exceeded")

	// ErrZeroCap means a supply controller was created with a zero cap.
	ErrZeroCap = errors.New("cap must be positive")

	// ErrSupplyUnderflow means a burn would drop total supply below zero.
	// Reaching it indicates corrupted state: sum(balances) > supply.
	ErrSupplyUnderflow = errors.New("total supply underflow")
)
