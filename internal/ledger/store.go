// Package ledger implements the balance book and supply accounting for
// the Ember token.
//
// Balances and total supply live in a storage.DB. All mutation goes
// through a Changeset: an in-memory overlay staged on top of the store
// that either commits as one batch or is dropped whole. The invariant
// sum(balances) == total supply holds in every committed state because
// the only staging primitives are transfer (conserving), mint (adds to
// both a balance and supply), and burn (removes from both).
package ledger

import (
	"fmt"

	"github.com/ember-labs/emberledger/internal/storage"
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
)

// Key prefixes and state keys for the ledger store.
var (
	prefixAccount = []byte("a/") // a/<addr(20)> -> balance (32 bytes, big-endian)
	keySupply     = []byte("s/supply")
)

// Store persists account balances and total supply.
type Store struct {
	db storage.DB
}

// NewStore creates a ledger store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// Balance returns the balance of an account. Unknown accounts have a
// zero balance; this never fails for a missing key.
func (s *Store) Balance(addr types.Address) (*uint256.Int, error) {
	return s.readAmount(accountKey(addr))
}

// TotalSupply returns the current total supply (zero on a fresh store).
func (s *Store) TotalSupply() (*uint256.Int, error) {
	return s.readAmount(keySupply)
}

// Begin starts a changeset on top of the current committed state.
func (s *Store) Begin() *Changeset {
	return &Changeset{
		store:    s,
		balances: make(map[types.Address]*uint256.Int),
	}
}

// ForEachBalance iterates over all accounts with a non-zero balance.
// Return a non-nil error from fn to stop iteration early.
func (s *Store) ForEachBalance(fn func(types.Address, *uint256.Int) error) error {
	return s.db.ForEach(prefixAccount, func(key, value []byte) error {
		// Key layout: "a/" + addr(20).
		if len(key) != len(prefixAccount)+types.AddressSize {
			return nil // Malformed key, skip.
		}
		var addr types.Address
		copy(addr[:], key[len(prefixAccount):])

		bal, err := decodeAmount(value)
		if err != nil {
			return fmt.Errorf("account %s: %w", addr, err)
		}
		return fn(addr, bal)
	})
}

func (s *Store) readAmount(key []byte) (*uint256.Int, error) {
	ok, err := s.db.Has(key)
	if err != nil {
		return nil, fmt.Errorf("ledger has: %w", err)
	}
	if !ok {
		return new(uint256.Int), nil
	}
	data, err := s.db.Get(key)
	if err != nil {
		return nil, fmt.Errorf("ledger get: %w", err)
	}
	return decodeAmount(data)
}

func decodeAmount(data []byte) (*uint256.Int, error) {
	if len(data) != 32 {
		return nil, fmt.Errorf("corrupt amount: got %d bytes, want 32", len(data))
	}
	v := new(uint256.Int)
	v.SetBytes32(data)
	return v, nil
}

func encodeAmount(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

func accountKey(addr types.Address) []byte {
	key := make([]byte, len(prefixAccount)+types.AddressSize)
	copy(key, prefixAccount)
	copy(key[len(prefixAccount):], addr[:])
	return key
}
