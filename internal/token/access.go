package token

import (
	"fmt"

	"github.com/ember-labs/emberledger/pkg/types"
)

// AccessControl is the single-owner authorization gate. The owner is
// fixed at initialization; there is no ownership transfer.
type AccessControl struct {
	owner types.Address
}

// NewAccessControl creates a gate for the given owner.
func NewAccessControl(owner types.Address) *AccessControl {
	return &AccessControl{owner: owner}
}

// Owner returns the owner address.
func (a *AccessControl) Owner() types.Address {
	return a.owner
}

// RequireOwner fails with ErrUnauthorized unless caller is the owner.
func (a *AccessControl) RequireOwner(caller types.Address) error {
	if caller != a.owner {
		return fmt.Errorf("caller %s: %w", caller, ErrUnauthorized)
	}
	return nil
}
