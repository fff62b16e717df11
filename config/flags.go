package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help bool

	// Core
	DataDir string
	Config  string

	// Token parameters (used by init)
	Cap    uint64
	Reward uint64
	Owner  string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args (subcommand and its arguments)
	Args []string

	// Explicitly-set flags (so defaults don't clobber file config).
	SetCap     bool
	SetReward  bool
	SetLogJSON bool
}

// ParseFlags parses command-line flags from args (excluding argv[0]).
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("ember", flag.ContinueOnError)

	fs.BoolVar(&f.Help, "help", false, "Show help")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory")
	fs.StringVar(&f.Config, "config", "", "Config file path")

	fs.Uint64Var(&f.Cap, "cap", 0, "Supply cap in whole tokens (init)")
	fs.Uint64Var(&f.Reward, "reward", 0, "Initial block reward in whole tokens (init)")
	fs.StringVar(&f.Owner, "owner", "", "Owner address (init)")

	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write JSON logs to this file")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Log JSON to stdout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "cap":
			f.SetCap = true
		case "reward":
			f.SetReward = true
		case "log-json":
			f.SetLogJSON = true
		}
	})

	f.Args = fs.Args()
	return f, nil
}

// Load builds the effective configuration: defaults, then config file,
// then explicit flags.
func Load(args []string) (*Config, *Flags, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := Default()

	path := flags.Config
	if path == "" {
		path = filepath.Join(cfg.DataDir, "ember.conf")
	}
	values, err := LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config file %s: %w", path, err)
	}
	if err := ApplyFileConfig(cfg, values); err != nil {
		return nil, nil, err
	}

	// Flags override the file.
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}
	if flags.SetCap {
		cfg.Token.CapTokens = flags.Cap
	}
	if flags.SetReward {
		cfg.Token.BlockRewardTokens = flags.Reward
	}
	if flags.Owner != "" {
		cfg.Token.Owner = flags.Owner
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		cfg.Log.File = flags.LogFile
	}
	if flags.SetLogJSON {
		cfg.Log.JSON = flags.LogJSON
	}

	if err := Validate(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, flags, nil
}

// Usage prints flag help to stderr.
func Usage() {
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  --datadir DIR     Data directory")
	fmt.Fprintln(os.Stderr, "  --config FILE     Config file (default <datadir>/ember.conf)")
	fmt.Fprintln(os.Stderr, "  --cap N           Supply cap in whole tokens (init)")
	fmt.Fprintln(os.Stderr, "  --reward N        Initial block reward in whole tokens (init)")
	fmt.Fprintln(os.Stderr, "  --owner ADDR      Owner address (init)")
	fmt.Fprintln(os.Stderr, "  --log-level LVL   debug, info, warn, error")
	fmt.Fprintln(os.Stderr, "  --log-json        Log JSON to stdout")
	fmt.Fprintln(os.Stderr, "  --log-file FILE   Also write JSON logs to a file")
}
