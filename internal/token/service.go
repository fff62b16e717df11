// Package token implements the Ember capped token engine.
//
// The engine is a single logical state machine: every state-changing
// operation is serialized, stages its sub-effects (reward mint, then
// transfer) on one ledger changeset, and commits them through a single
// storage batch. A failure anywhere discards the changeset, so the
// database only ever holds fully applied operations. Events are
// emitted after commit, in sub-effect order.
package token

import (
	"fmt"
	"sync"

	"github.com/ember-labs/emberledger/config"
	"github.com/ember-labs/emberledger/internal/ledger"
	"github.com/ember-labs/emberledger/internal/log"
	"github.com/ember-labs/emberledger/internal/storage"
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

// Service composes the ledger, supply controller, reward policy, and
// access control into the public token operations.
type Service struct {
	mu      sync.Mutex
	db      storage.DB
	book    *ledger.Store
	meta    *Store
	supply  *ledger.Supply
	reward  *RewardPolicy
	access  *AccessControl
	state   State
	rate    *uint256.Int
	emitter Emitter
	log     zerolog.Logger
}

// Open loads the token service from a database. A fresh database
// yields an Uninitialized service; otherwise owner, cap, rate, and
// lifecycle state are restored, so a reopened ledger continues exactly
// where it left off.
func Open(db storage.DB, emitter Emitter) (*Service, error) {
	s := &Service{
		db:      db,
		book:    ledger.NewStore(db),
		meta:    NewStore(db),
		emitter: emitter,
		log:     log.Token,
	}

	state, err := s.meta.State()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	s.state = state
	if state == Uninitialized {
		return s, nil
	}

	owner, err := s.meta.Owner()
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	cap, err := s.meta.Cap()
	if err != nil {
		return nil, fmt.Errorf("load cap: %w", err)
	}
	rate, err := s.meta.Rate()
	if err != nil {
		return nil, fmt.Errorf("load rate: %w", err)
	}

	supply, err := ledger.NewSupply(cap)
	if err != nil {
		return nil, fmt.Errorf("load supply: %w", err)
	}
	s.supply = supply
	s.reward = NewRewardPolicy(supply)
	s.access = NewAccessControl(owner)
	s.rate = rate
	return s, nil
}

// Initialize creates the token: sets cap, reward rate, and owner, and
// mints the fixed seed allocation to the owner. The seed mint itself
// passes the cap check, so a cap below the seed allocation fails with
// ledger.ErrCapExceeded and leaves the database untouched. Returns the
// resulting total supply and owner balance. Amounts are in base units.
func (s *Service) Initialize(cap, rate *uint256.Int, owner types.Address) (*uint256.Int, *uint256.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Destroyed:
		return nil, nil, ErrDestroyed
	case Active:
		return nil, nil, ErrAlreadyInitialized
	}
	if owner.IsZero() {
		return nil, nil, ErrInvalidOwner
	}

	supply, err := ledger.NewSupply(cap)
	if err != nil {
		return nil, nil, err
	}
	rate = amountOrZero(rate)
	seed := types.Coins(config.SeedAllocationTokens)

	cs := s.book.Begin()
	if err := supply.Mint(cs, owner, seed); err != nil {
		return nil, nil, fmt.Errorf("seed mint: %w", err)
	}

	batch := s.db.NewBatch()
	cs.WriteTo(batch)
	s.meta.StageInit(batch, owner, supply.Cap(), rate)
	if err := batch.Commit(); err != nil {
		return nil, nil, err
	}

	s.supply = supply
	s.reward = NewRewardPolicy(supply)
	s.access = NewAccessControl(owner)
	s.rate = new(uint256.Int).Set(rate)
	s.state = Active

	s.log.Info().
		Stringer("owner", owner).
		Str("cap", types.FormatAmount(cap)).
		Str("reward_rate", types.FormatAmount(rate)).
		Str("seed", types.FormatAmount(seed)).
		Msg("token initialized")
	s.emit(MintEvent{To: owner, Amount: new(uint256.Int).Set(seed)})

	return new(uint256.Int).Set(seed), seed, nil
}

// Transfer moves amount from the caller to another account. When a
// block proposer is supplied (non-zero) and is neither party, the
// current block reward is minted to it first; reward and transfer
// commit as one unit or not at all.
func (s *Service) Transfer(caller, to types.Address, amount *uint256.Int, proposer types.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireActive(); err != nil {
		return err
	}
	amount = amountOrZero(amount)

	cs := s.book.Begin()
	rewarded, err := s.reward.Apply(cs, caller, to, proposer, s.rate)
	if err != nil {
		return err
	}
	if err := cs.Transfer(caller, to, amount); err != nil {
		return err
	}
	if err := cs.Commit(); err != nil {
		return err
	}

	s.log.Info().
		Stringer("from", caller).
		Stringer("to", to).
		Str("amount", types.FormatAmount(amount)).
		Bool("rewarded", rewarded).
		Msg("transfer")
	if rewarded {
		s.emit(MintEvent{To: proposer, Amount: new(uint256.Int).Set(s.rate)})
	}
	s.emit(TransferEvent{From: caller, To: to, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// Burn destroys amount of the caller's balance, lowering total supply
// by the same amount. Burns never trigger a block reward.
func (s *Service) Burn(caller types.Address, amount *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireActive(); err != nil {
		return err
	}
	amount = amountOrZero(amount)

	cs := s.book.Begin()
	if err := s.supply.Burn(cs, caller, amount); err != nil {
		return err
	}
	if err := cs.Commit(); err != nil {
		return err
	}

	s.log.Info().
		Stringer("from", caller).
		Str("amount", types.FormatAmount(amount)).
		Msg("burn")
	s.emit(BurnEvent{From: caller, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// SetBlockReward overwrites the block reward rate. Owner only.
// The rate is in base units; there is no bound beyond non-negativity,
// though an unpayable rate simply makes future reward mints fail the
// cap check.
func (s *Service) SetBlockReward(caller types.Address, newRate *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireActive(); err != nil {
		return err
	}
	if err := s.access.RequireOwner(caller); err != nil {
		return err
	}
	newRate = amountOrZero(newRate)

	batch := s.db.NewBatch()
	s.meta.StageRate(batch, newRate)
	if err := batch.Commit(); err != nil {
		return err
	}

	old := s.rate
	s.rate = new(uint256.Int).Set(newRate)

	s.log.Info().
		Str("old", types.FormatAmount(old)).
		Str("new", types.FormatAmount(newRate)).
		Msg("block reward changed")
	s.emit(RewardRateChangedEvent{Old: old, New: new(uint256.Int).Set(newRate)})
	return nil
}

// Destroy tears the token down. Owner only, terminal: afterwards every
// state-changing operation fails with ErrDestroyed, while reads keep
// working so observers can settle. Reclaiming any native funds held by
// the hosting environment is the host's responsibility; the core only
// flips the lifecycle flag and emits the event.
func (s *Service) Destroy(caller types.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireActive(); err != nil {
		return err
	}
	if err := s.access.RequireOwner(caller); err != nil {
		return err
	}

	batch := s.db.NewBatch()
	s.meta.StageState(batch, Destroyed)
	if err := batch.Commit(); err != nil {
		return err
	}
	s.state = Destroyed

	s.log.Info().Stringer("owner", s.access.Owner()).Msg("token destroyed")
	s.emit(DestroyedEvent{Owner: s.access.Owner()})
	return nil
}

// BalanceOf returns the balance of an account in base units.
// Unknown accounts have a zero balance.
func (s *Service) BalanceOf(account types.Address) (*uint256.Int, error) {
	return s.book.Balance(account)
}

// TotalSupply returns the current total supply in base units.
func (s *Service) TotalSupply() (*uint256.Int, error) {
	return s.book.TotalSupply()
}

// Cap returns the supply cap, or zero before initialization.
func (s *Service) Cap() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.supply == nil {
		return new(uint256.Int)
	}
	return s.supply.Cap()
}

// BlockReward returns the current block reward rate, or zero before
// initialization.
func (s *Service) BlockReward() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rate == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(s.rate)
}

// Owner returns the owner address, or the zero address before
// initialization.
func (s *Service) Owner() types.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.access == nil {
		return types.Address{}
	}
	return s.access.Owner()
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) requireActive() error {
	switch s.state {
	case Destroyed:
		return ErrDestroyed
	case Uninitialized:
		return ErrNotInitialized
	}
	return nil
}

func (s *Service) emit(e Event) {
	if s.emitter != nil {
		s.emitter.Emit(e)
	}
}

func amountOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
