package ledger

import (
	"errors"
	"testing"

	"github.com/ember-labs/emberledger/internal/storage"
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
)

var (
	addrA = types.Address{0x0a}
	addrB = types.Address{0x0b}
	addrC = types.Address{0x0c}
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := storage.NewMemory()
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

// seedStore mints an initial balance to addrA through a committed
// changeset so tests start from a known state.
func seedStore(t *testing.T, s *Store, amount uint64) *Supply {
	t.Helper()
	supply, err := NewSupply(uint256.NewInt(1_000_000))
	if err != nil {
		t.Fatalf("NewSupply() error: %v", err)
	}
	cs := s.Begin()
	if err := supply.Mint(cs, addrA, uint256.NewInt(amount)); err != nil {
		t.Fatalf("seed mint error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("seed commit error: %v", err)
	}
	return supply
}

func TestStore_BalanceDefaultZero(t *testing.T) {
	s := newTestStore(t)

	bal, err := s.Balance(addrA)
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if !bal.IsZero() {
		t.Errorf("fresh account balance = %s, want 0", bal)
	}

	sup, err := s.TotalSupply()
	if err != nil {
		t.Fatalf("TotalSupply() error: %v", err)
	}
	if !sup.IsZero() {
		t.Errorf("fresh store supply = %s, want 0", sup)
	}
}

func TestChangeset_Transfer(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	if err := cs.Transfer(addrA, addrB, uint256.NewInt(30)); err != nil {
		t.Fatalf("Transfer() error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	balA, _ := s.Balance(addrA)
	balB, _ := s.Balance(addrB)
	if !balA.Eq(uint256.NewInt(70)) {
		t.Errorf("sender balance = %s, want 70", balA)
	}
	if !balB.Eq(uint256.NewInt(30)) {
		t.Errorf("recipient balance = %s, want 30", balB)
	}

	// Supply is conserved by transfers.
	sup, _ := s.TotalSupply()
	if !sup.Eq(uint256.NewInt(100)) {
		t.Errorf("supply after transfer = %s, want 100", sup)
	}
}

func TestChangeset_TransferInsufficient(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	err := cs.Transfer(addrA, addrB, uint256.NewInt(101))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Transfer() error = %v, want ErrInsufficientBalance", err)
	}
}

func TestChangeset_TransferZeroRecipient(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	err := cs.Transfer(addrA, types.ZeroAddress, uint256.NewInt(10))
	if !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("Transfer() error = %v, want ErrInvalidRecipient", err)
	}
}

func TestChangeset_TransferZeroAmount(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	if err := cs.Transfer(addrA, addrB, uint256.NewInt(0)); err != nil {
		t.Fatalf("zero-amount Transfer() error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	balA, _ := s.Balance(addrA)
	if !balA.Eq(uint256.NewInt(100)) {
		t.Errorf("balance after zero transfer = %s, want 100", balA)
	}
}

func TestChangeset_TransferSelf(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	if err := cs.Transfer(addrA, addrA, uint256.NewInt(40)); err != nil {
		t.Fatalf("self Transfer() error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	balA, _ := s.Balance(addrA)
	if !balA.Eq(uint256.NewInt(100)) {
		t.Errorf("balance after self transfer = %s, want 100", balA)
	}
}

func TestChangeset_UncommittedInvisible(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	if err := cs.Transfer(addrA, addrB, uint256.NewInt(50)); err != nil {
		t.Fatalf("Transfer() error: %v", err)
	}

	// Staged view sees the move, the store does not.
	staged, _ := cs.Balance(addrB)
	if !staged.Eq(uint256.NewInt(50)) {
		t.Errorf("staged recipient balance = %s, want 50", staged)
	}
	committed, _ := s.Balance(addrB)
	if !committed.IsZero() {
		t.Errorf("committed recipient balance = %s, want 0", committed)
	}
}

func TestChangeset_DroppedLeavesStoreUntouched(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	cs.Transfer(addrA, addrB, uint256.NewInt(50))
	// Changeset goes out of scope without Commit.

	balA, _ := s.Balance(addrA)
	if !balA.Eq(uint256.NewInt(100)) {
		t.Errorf("balance after dropped changeset = %s, want 100", balA)
	}
}

func TestChangeset_ZeroBalanceDeleted(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s, 100)

	cs := s.Begin()
	if err := cs.Transfer(addrA, addrB, uint256.NewInt(100)); err != nil {
		t.Fatalf("Transfer() error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	// Emptied accounts disappear from iteration.
	var seen []types.Address
	s.ForEachBalance(func(addr types.Address, bal *uint256.Int) error {
		seen = append(seen, addr)
		return nil
	})
	if len(seen) != 1 || seen[0] != addrB {
		t.Errorf("ForEachBalance() accounts = %v, want [%s]", seen, addrB)
	}
}

func TestSupply_ZeroCapRejected(t *testing.T) {
	_, err := NewSupply(uint256.NewInt(0))
	if !errors.Is(err, ErrZeroCap) {
		t.Fatalf("NewSupply(0) error = %v, want ErrZeroCap", err)
	}
	_, err = NewSupply(nil)
	if !errors.Is(err, ErrZeroCap) {
		t.Fatalf("NewSupply(nil) error = %v, want ErrZeroCap", err)
	}
}

func TestSupply_MintRespectsCap(t *testing.T) {
	s := newTestStore(t)
	supply, err := NewSupply(uint256.NewInt(100))
	if err != nil {
		t.Fatalf("NewSupply() error: %v", err)
	}

	cs := s.Begin()
	if err := supply.Mint(cs, addrA, uint256.NewInt(100)); err != nil {
		t.Fatalf("Mint() up to cap error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	// One more unit passes the cap.
	cs = s.Begin()
	err = supply.Mint(cs, addrA, uint256.NewInt(1))
	if !errors.Is(err, ErrCapExceeded) {
		t.Fatalf("Mint() over cap error = %v, want ErrCapExceeded", err)
	}
}

func TestSupply_MintZeroRecipient(t *testing.T) {
	s := newTestStore(t)
	supply, _ := NewSupply(uint256.NewInt(100))

	cs := s.Begin()
	err := supply.Mint(cs, types.ZeroAddress, uint256.NewInt(10))
	if !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("Mint() error = %v, want ErrInvalidRecipient", err)
	}
}

func TestSupply_Burn(t *testing.T) {
	s := newTestStore(t)
	supply := seedStore(t, s, 100)

	cs := s.Begin()
	if err := supply.Burn(cs, addrA, uint256.NewInt(40)); err != nil {
		t.Fatalf("Burn() error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	balA, _ := s.Balance(addrA)
	sup, _ := s.TotalSupply()
	if !balA.Eq(uint256.NewInt(60)) {
		t.Errorf("balance after burn = %s, want 60", balA)
	}
	if !sup.Eq(uint256.NewInt(60)) {
		t.Errorf("supply after burn = %s, want 60", sup)
	}
}

func TestSupply_BurnInsufficient(t *testing.T) {
	s := newTestStore(t)
	supply := seedStore(t, s, 100)

	// addrB holds nothing.
	cs := s.Begin()
	err := supply.Burn(cs, addrB, uint256.NewInt(1))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Burn() error = %v, want ErrInsufficientBalance", err)
	}
}

func TestSupply_BurnThenMintReopensHeadroom(t *testing.T) {
	s := newTestStore(t)
	supply, err := NewSupply(uint256.NewInt(100))
	if err != nil {
		t.Fatalf("NewSupply() error: %v", err)
	}

	cs := s.Begin()
	if err := supply.Mint(cs, addrA, uint256.NewInt(100)); err != nil {
		t.Fatalf("Mint() error: %v", err)
	}
	if err := supply.Burn(cs, addrA, uint256.NewInt(30)); err != nil {
		t.Fatalf("Burn() error: %v", err)
	}
	// Burned headroom can be minted again.
	if err := supply.Mint(cs, addrB, uint256.NewInt(30)); err != nil {
		t.Fatalf("Mint() into burned headroom error: %v", err)
	}
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	sup, _ := s.TotalSupply()
	if !sup.Eq(uint256.NewInt(100)) {
		t.Errorf("supply = %s, want 100", sup)
	}
}

func TestStore_SumEqualsSupply(t *testing.T) {
	s := newTestStore(t)
	supply := seedStore(t, s, 500)

	cs := s.Begin()
	cs.Transfer(addrA, addrB, uint256.NewInt(120))
	cs.Transfer(addrB, addrC, uint256.NewInt(20))
	supply.Burn(cs, addrA, uint256.NewInt(50))
	supply.Mint(cs, addrC, uint256.NewInt(10))
	if err := cs.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	sum := new(uint256.Int)
	s.ForEachBalance(func(_ types.Address, bal *uint256.Int) error {
		sum.Add(sum, bal)
		return nil
	})
	sup, _ := s.TotalSupply()
	if !sum.Eq(sup) {
		t.Errorf("sum of balances %s != total supply %s", sum, sup)
	}
}
