package config

import (
	"fmt"

	"github.com/ember-labs/emberledger/pkg/types"
)

// Validate checks runtime config for obvious operator mistakes.
// The authoritative cap and seed checks live in the token engine; this
// only catches configurations that could never initialize.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if cfg.Token.CapTokens == 0 {
		return fmt.Errorf("token.cap must be positive")
	}
	if cfg.Token.CapTokens < SeedAllocationTokens {
		return fmt.Errorf("token.cap %d is below the %d-token seed allocation",
			cfg.Token.CapTokens, SeedAllocationTokens)
	}
	if cfg.Token.Owner != "" {
		if _, err := types.ParseAddress(cfg.Token.Owner); err != nil {
			return fmt.Errorf("token.owner: %w", err)
		}
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}
