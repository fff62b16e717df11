package ledger

import (
	"fmt"

	"github.com/ember-labs/emberledger/internal/storage"
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
)

// Changeset stages balance and supply mutations for one state-change
// unit. Reads fall through to the underlying store; writes stay in the
// overlay until Commit flushes them through a single storage batch.
// Dropping an uncommitted changeset leaves the store untouched.
type Changeset struct {
	store    *Store
	balances map[types.Address]*uint256.Int
	supply   *uint256.Int // nil until first touched
}

// Balance returns the staged balance of an account.
func (c *Changeset) Balance(addr types.Address) (*uint256.Int, error) {
	bal, err := c.balance(addr)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Set(bal), nil
}

// Supply returns the staged total supply.
func (c *Changeset) Supply() (*uint256.Int, error) {
	sup, err := c.loadSupply()
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Set(sup), nil
}

// Transfer moves amount from one account to another. It fails with
// ErrInvalidRecipient for a zero destination and ErrInsufficientBalance
// when the source balance is below amount. Total supply is unchanged.
func (c *Changeset) Transfer(from, to types.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("transfer to %s: %w", to, ErrInvalidRecipient)
	}
	if err := c.debit(from, amount); err != nil {
		return err
	}
	return c.credit(to, amount)
}

// mint credits an account and raises total supply by the same amount.
// The cap check belongs to Supply; this is the raw primitive.
func (c *Changeset) mint(to types.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("mint to %s: %w", to, ErrInvalidRecipient)
	}
	sup, err := c.loadSupply()
	if err != nil {
		return err
	}
	next := new(uint256.Int)
	if _, overflow := next.AddOverflow(sup, amount); overflow {
		return fmt.Errorf("mint %s: %w", amount, ErrCapExceeded)
	}
	if err := c.credit(to, amount); err != nil {
		return err
	}
	c.supply = next
	return nil
}

// burn debits an account and lowers total supply by the same amount.
func (c *Changeset) burn(from types.Address, amount *uint256.Int) error {
	sup, err := c.loadSupply()
	if err != nil {
		return err
	}
	if sup.Lt(amount) {
		return fmt.Errorf("burn %s with supply %s: %w", amount, sup, ErrSupplyUnderflow)
	}
	if err := c.debit(from, amount); err != nil {
		return err
	}
	c.supply = new(uint256.Int).Sub(sup, amount)
	return nil
}

// WriteTo stages all mutations onto an existing batch, letting callers
// commit ledger state together with their own writes as one unit.
// Zero balances are deleted to keep the book sparse.
func (c *Changeset) WriteTo(batch storage.Batch) {
	for addr, bal := range c.balances {
		if bal.IsZero() {
			batch.Delete(accountKey(addr))
		} else {
			batch.Put(accountKey(addr), encodeAmount(bal))
		}
	}
	if c.supply != nil {
		batch.Put(keySupply, encodeAmount(c.supply))
	}
}

// Commit flushes all staged mutations through one atomic batch.
func (c *Changeset) Commit() error {
	batch := c.store.db.NewBatch()
	c.WriteTo(batch)
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("ledger commit: %w", err)
	}
	return nil
}

// balance returns the staged (mutable) balance entry for an account,
// faulting it in from the store on first access.
func (c *Changeset) balance(addr types.Address) (*uint256.Int, error) {
	if bal, ok := c.balances[addr]; ok {
		return bal, nil
	}
	bal, err := c.store.Balance(addr)
	if err != nil {
		return nil, err
	}
	c.balances[addr] = bal
	return bal, nil
}

func (c *Changeset) credit(addr types.Address, amount *uint256.Int) error {
	bal, err := c.balance(addr)
	if err != nil {
		return err
	}
	if _, overflow := bal.AddOverflow(bal, amount); overflow {
		return fmt.Errorf("credit %s to %s: balance overflow", amount, addr)
	}
	return nil
}

func (c *Changeset) debit(addr types.Address, amount *uint256.Int) error {
	bal, err := c.balance(addr)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return fmt.Errorf("debit %s from %s with balance %s: %w",
			amount, addr, bal, ErrInsufficientBalance)
	}
	bal.Sub(bal, amount)
	return nil
}

func (c *Changeset) loadSupply() (*uint256.Int, error) {
	if c.supply != nil {
		return c.supply, nil
	}
	sup, err := c.store.TotalSupply()
	if err != nil {
		return nil, err
	}
	c.supply = sup
	return sup, nil
}
