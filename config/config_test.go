package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ember-labs/emberledger/pkg/types"
)

const testOwner = "0x0102030405060708090a0b0c0d0e0f1011121314"

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Token.CapTokens != DefaultCapTokens {
		t.Errorf("cap = %d, want %d", cfg.Token.CapTokens, DefaultCapTokens)
	}
	if cfg.Token.BlockRewardTokens != DefaultBlockRewardTokens {
		t.Errorf("reward = %d, want %d", cfg.Token.BlockRewardTokens, DefaultBlockRewardTokens)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestTokenParams_BaseUnits(t *testing.T) {
	p := TokenParams{CapTokens: 100, BlockRewardTokens: 2, Owner: testOwner}

	if !p.Cap().Eq(types.Coins(100)) {
		t.Errorf("Cap() = %s, want %s", p.Cap(), types.Coins(100))
	}
	if !p.BlockReward().Eq(types.Coins(2)) {
		t.Errorf("BlockReward() = %s, want %s", p.BlockReward(), types.Coins(2))
	}

	addr, err := p.OwnerAddress()
	if err != nil {
		t.Fatalf("OwnerAddress() error: %v", err)
	}
	if addr.String() != testOwner {
		t.Errorf("OwnerAddress() = %s, want %s", addr, testOwner)
	}

	if _, err := (TokenParams{}).OwnerAddress(); err == nil {
		t.Error("OwnerAddress() with empty owner should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"EmptyDataDir", func(c *Config) { c.DataDir = "" }, true},
		{"ZeroCap", func(c *Config) { c.Token.CapTokens = 0 }, true},
		{"CapBelowSeed", func(c *Config) { c.Token.CapTokens = SeedAllocationTokens - 1 }, true},
		{"CapAtSeed", func(c *Config) { c.Token.CapTokens = SeedAllocationTokens }, false},
		{"BadOwner", func(c *Config) { c.Token.Owner = "not-hex" }, true},
		{"GoodOwner", func(c *Config) { c.Token.Owner = testOwner }, false},
		{"BadLogLevel", func(c *Config) { c.Log.Level = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ember.conf")
	content := `# node settings
datadir = /var/lib/ember

token.cap = 60000000
token.reward = 10
token.owner = "` + testOwner + `"

log.level = debug
log.json = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	cfg := Default()
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}

	if cfg.DataDir != "/var/lib/ember" {
		t.Errorf("datadir = %q, want /var/lib/ember", cfg.DataDir)
	}
	if cfg.Token.CapTokens != 60_000_000 {
		t.Errorf("cap = %d, want 60000000", cfg.Token.CapTokens)
	}
	if cfg.Token.BlockRewardTokens != 10 {
		t.Errorf("reward = %d, want 10", cfg.Token.BlockRewardTokens)
	}
	if cfg.Token.Owner != testOwner {
		t.Errorf("owner = %q, want %q", cfg.Token.Owner, testOwner)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("log = %+v, want level=debug json=true", cfg.Log)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatalf("LoadFile() of missing file error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("missing file should yield no values, got %v", values)
	}
}

func TestApplyFileConfig_UnknownKey(t *testing.T) {
	cfg := Default()
	err := ApplyFileConfig(cfg, map[string]string{"token.capp": "1"})
	if err == nil {
		t.Error("unknown key should fail")
	}
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ember.conf")
	content := "token.cap = 60000000\ntoken.reward = 10\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, flags, err := Load([]string{
		"--config", path,
		"--datadir", dir,
		"--reward", "25",
		"--owner", testOwner,
		"balance",
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Token.CapTokens != 60_000_000 {
		t.Errorf("cap = %d, want file value 60000000", cfg.Token.CapTokens)
	}
	if cfg.Token.BlockRewardTokens != 25 {
		t.Errorf("reward = %d, want flag value 25", cfg.Token.BlockRewardTokens)
	}
	if cfg.Token.Owner != testOwner {
		t.Errorf("owner = %q, want %q", cfg.Token.Owner, testOwner)
	}
	if len(flags.Args) != 1 || flags.Args[0] != "balance" {
		t.Errorf("remaining args = %v, want [balance]", flags.Args)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	if _, _, err := Load([]string{"--datadir", t.TempDir(), "--cap", "0"}); err == nil {
		t.Error("Load() with zero cap should fail validation")
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	if got := cfg.DBPath(); got != filepath.Join("/data", "ledger") {
		t.Errorf("DBPath() = %q", got)
	}
	if got := cfg.KeystorePath(); got != filepath.Join("/data", "keystore") {
		t.Errorf("KeystorePath() = %q", got)
	}
}
