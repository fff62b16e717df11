package wallet

import (
	"bytes"
	"testing"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestSeedFromMnemonic(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if len(seed) != SeedSize {
		t.Errorf("seed length = %d, want %d", len(seed), SeedSize)
	}

	// Deterministic for the same inputs.
	again, err := SeedFromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	if !bytes.Equal(seed, again) {
		t.Error("same mnemonic produced different seeds")
	}
}

func TestSeedFromMnemonic_Passphrase(t *testing.T) {
	plain, err := SeedFromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	protected, err := SeedFromMnemonic(testMnemonic, "extra")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() with passphrase error: %v", err)
	}

	if bytes.Equal(plain, protected) {
		t.Error("passphrase should change the derived seed")
	}
}

func TestSeedFromMnemonic_Invalid(t *testing.T) {
	if _, err := SeedFromMnemonic("not a mnemonic", ""); err == nil {
		t.Error("SeedFromMnemonic() with invalid mnemonic should fail")
	}
}
