// Package config handles application configuration.
//
// Configuration is split into two categories:
//   - Token parameters: cap, reward rate, owner — consumed once at
//     ledger initialization and immutable afterwards (the cap and owner
//     forever, the rate only through the owner-gated operation)
//   - Node settings: data directory and logging, changeable per run
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
)

// Token protocol constants.
const (
	// TokenName and TokenSymbol identify the ledger's single token.
	TokenName   = "Ember"
	TokenSymbol = "EMB"

	// SeedAllocationTokens is the fixed allocation, in whole tokens,
	// minted to the owner at initialization.
	SeedAllocationTokens = 50_000_000
)

// TokenParams holds initialization parameters in whole tokens. They
// are scaled to base units exactly once, here; everything past this
// boundary works in base units.
type TokenParams struct {
	// CapTokens is the immutable maximum total supply, whole tokens.
	CapTokens uint64 `conf:"token.cap"`

	// BlockRewardTokens is the initial per-transfer block reward paid
	// to the proposer, whole tokens.
	BlockRewardTokens uint64 `conf:"token.reward"`

	// Owner is the 0x-hex address receiving the seed allocation.
	Owner string `conf:"token.owner"`
}

// Cap returns the supply cap in base units.
func (p TokenParams) Cap() *uint256.Int {
	return types.Coins(p.CapTokens)
}

// BlockReward returns the initial reward rate in base units.
func (p TokenParams) BlockReward() *uint256.Int {
	return types.Coins(p.BlockRewardTokens)
}

// OwnerAddress parses the configured owner address.
func (p TokenParams) OwnerAddress() (types.Address, error) {
	if p.Owner == "" {
		return types.Address{}, fmt.Errorf("token.owner is not set")
	}
	return types.ParseAddress(p.Owner)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	JSON  bool   `conf:"log.json"`
	File  string `conf:"log.file"`
}

// Config holds node-specific runtime configuration.
type Config struct {
	DataDir string `conf:"datadir"`

	Token TokenParams

	Log LogConfig
}

// DataDirName is the default data directory name.
const DataDirName = "emberledger"

// DefaultDataDir returns the platform-appropriate default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + DataDirName
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", DataDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, DataDirName)
		}
		return filepath.Join(home, DataDirName)
	default:
		return filepath.Join(home, "."+DataDirName)
	}
}

// DBPath returns the path of the ledger database inside the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "ledger")
}

// KeystorePath returns the path of the keystore inside the data dir.
func (c *Config) KeystorePath() string {
	return filepath.Join(c.DataDir, "keystore")
}
