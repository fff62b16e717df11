package config

// Default token parameters, in whole tokens. The cap leaves room for
// 50,000,000 tokens of block rewards on top of the seed allocation.
const (
	DefaultCapTokens         = 100_000_000
	DefaultBlockRewardTokens = 50
)

// Default returns the default node configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Token: TokenParams{
			CapTokens:         DefaultCapTokens,
			BlockRewardTokens: DefaultBlockRewardTokens,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
