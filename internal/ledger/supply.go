package ledger

import (
	"fmt"

	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
)

// Supply gates every mint against an immutable cap. Total supply can
// only grow through Mint and shrink through Burn, so it never exceeds
// the cap and never goes negative.
type Supply struct {
	cap *uint256.Int
}

// NewSupply creates a supply controller with the given cap in base
// units. A zero cap is rejected: it could never admit the seed mint.
func NewSupply(cap *uint256.Int) (*Supply, error) {
	if cap == nil || cap.IsZero() {
		return nil, ErrZeroCap
	}
	return &Supply{cap: new(uint256.Int).Set(cap)}, nil
}

// Cap returns the immutable supply cap.
func (s *Supply) Cap() *uint256.Int {
	return new(uint256.Int).Set(s.cap)
}

// Mint stages a mint of amount to an account. It fails with
// ErrCapExceeded when the staged supply plus amount would pass the cap,
// and ErrInvalidRecipient for the zero address. Supply increase and
// balance credit land in the same changeset.
func (s *Supply) Mint(cs *Changeset, to types.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("mint to %s: %w", to, ErrInvalidRecipient)
	}
	sup, err := cs.Supply()
	if err != nil {
		return err
	}
	next := new(uint256.Int)
	if _, overflow := next.AddOverflow(sup, amount); overflow || next.Gt(s.cap) {
		return fmt.Errorf("mint %s with supply %s and cap %s: %w",
			amount, sup, s.cap, ErrCapExceeded)
	}
	return cs.mint(to, amount)
}

// Burn stages a burn of amount from a holder, lowering both the balance
// and total supply. Fails with ErrInsufficientBalance when the holder's
// staged balance is below amount.
func (s *Supply) Burn(cs *Changeset, from types.Address, amount *uint256.Int) error {
	return cs.burn(from, amount)
}
