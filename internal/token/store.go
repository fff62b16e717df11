package token

import (
	"fmt"

	"github.com/ember-labs/emberledger/internal/storage"
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
)

// State keys for token metadata. Balances and supply live under the
// ledger package's keys in the same database.
var (
	keyOwner = []byte("m/owner") // owner address (20 bytes)
	keyCap   = []byte("m/cap")   // supply cap (32 bytes, big-endian)
	keyRate  = []byte("m/rate")  // block reward rate (32 bytes, big-endian)
	keyState = []byte("m/state") // lifecycle state (1 byte)
)

// Store persists token metadata: owner, cap, reward rate, and
// lifecycle state. Writes are staged on a storage.Batch so metadata
// commits atomically with the ledger changeset of the same call.
type Store struct {
	db storage.DB
}

// NewStore creates a token metadata store.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// State returns the persisted lifecycle state.
// A fresh database is Uninitialized.
func (s *Store) State() (State, error) {
	ok, err := s.db.Has(keyState)
	if err != nil {
		return Uninitialized, fmt.Errorf("state has: %w", err)
	}
	if !ok {
		return Uninitialized, nil
	}
	data, err := s.db.Get(keyState)
	if err != nil {
		return Uninitialized, fmt.Errorf("state get: %w", err)
	}
	if len(data) != 1 || data[0] > uint8(Destroyed) {
		return Uninitialized, fmt.Errorf("corrupt lifecycle state: %v", data)
	}
	return State(data[0]), nil
}

// Owner returns the persisted owner address.
func (s *Store) Owner() (types.Address, error) {
	data, err := s.db.Get(keyOwner)
	if err != nil {
		return types.Address{}, fmt.Errorf("owner get: %w", err)
	}
	if len(data) != types.AddressSize {
		return types.Address{}, fmt.Errorf("corrupt owner: got %d bytes, want %d", len(data), types.AddressSize)
	}
	var addr types.Address
	copy(addr[:], data)
	return addr, nil
}

// Cap returns the persisted supply cap.
func (s *Store) Cap() (*uint256.Int, error) {
	return s.readAmount(keyCap)
}

// Rate returns the persisted block reward rate.
func (s *Store) Rate() (*uint256.Int, error) {
	return s.readAmount(keyRate)
}

// StageInit stages owner, cap, rate, and the Active state on a batch.
func (s *Store) StageInit(batch storage.Batch, owner types.Address, cap, rate *uint256.Int) {
	batch.Put(keyOwner, owner.Bytes())
	capBytes := cap.Bytes32()
	batch.Put(keyCap, capBytes[:])
	s.StageRate(batch, rate)
	s.StageState(batch, Active)
}

// StageRate stages a reward rate write on a batch.
func (s *Store) StageRate(batch storage.Batch, rate *uint256.Int) {
	rateBytes := rate.Bytes32()
	batch.Put(keyRate, rateBytes[:])
}

// StageState stages a lifecycle state write on a batch.
func (s *Store) StageState(batch storage.Batch, state State) {
	batch.Put(keyState, []byte{uint8(state)})
}

func (s *Store) readAmount(key []byte) (*uint256.Int, error) {
	data, err := s.db.Get(key)
	if err != nil {
		return nil, fmt.Errorf("token meta get: %w", err)
	}
	if len(data) != 32 {
		return nil, fmt.Errorf("corrupt token meta: got %d bytes, want 32", len(data))
	}
	v := new(uint256.Int)
	v.SetBytes32(data)
	return v, nil
}
