// ember-cli operates an Ember token ledger stored in a local database.
//
// Usage:
//
//	ember-cli [flags] wallet new <name>      Create a wallet and first account
//	ember-cli [flags] wallet accounts <name> List wallet accounts
//	ember-cli [flags] wallet derive <name>   Derive the next account
//	ember-cli [flags] init                   Initialize the token ledger
//	ember-cli [flags] info                   Show token state
//	ember-cli [flags] balance <addr>         Show an account balance
//	ember-cli [flags] supply                 Show total supply
//	ember-cli [flags] transfer <from> <to> <amount> [proposer]
//	ember-cli [flags] burn <from> <amount>
//	ember-cli [flags] set-reward <caller> <amount>
//	ember-cli [flags] destroy <caller>
//
// Amounts are whole-token decimal strings (e.g. "12.5").
package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/ember-labs/emberledger/config"
	"github.com/ember-labs/emberledger/internal/log"
	"github.com/ember-labs/emberledger/internal/storage"
	"github.com/ember-labs/emberledger/internal/token"
	"github.com/ember-labs/emberledger/internal/wallet"
	"github.com/ember-labs/emberledger/pkg/types"
	"github.com/holiman/uint256"
	"golang.org/x/term"
)

func main() {
	cfg, flags, err := config.Load(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}
	if flags.Help || len(flags.Args) == 0 {
		usage()
		if len(flags.Args) == 0 && !flags.Help {
			os.Exit(1)
		}
		return
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	cmd := flags.Args[0]
	cmdArgs := flags.Args[1:]

	switch cmd {
	case "wallet":
		cmdWallet(cfg, cmdArgs)
	case "init":
		cmdInit(cfg)
	case "info":
		cmdInfo(cfg)
	case "balance":
		cmdBalance(cfg, cmdArgs)
	case "supply":
		cmdSupply(cfg)
	case "transfer":
		cmdTransfer(cfg, cmdArgs)
	case "burn":
		cmdBurn(cfg, cmdArgs)
	case "set-reward":
		cmdSetReward(cfg, cmdArgs)
	case "destroy":
		cmdDestroy(cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

// openService opens the ledger database and loads the token service.
// The returned close function must run before process exit.
func openService(cfg *config.Config) (*token.Service, *token.Recorder, func()) {
	db, err := storage.NewBadger(cfg.DBPath())
	if err != nil {
		fatal("%v", err)
	}
	rec := &token.Recorder{}
	emitter := token.MultiEmitter{rec, &token.LogEmitter{Log: log.Token}}
	svc, err := token.Open(db, emitter)
	if err != nil {
		db.Close()
		fatal("open token service: %v", err)
	}
	return svc, rec, func() { db.Close() }
}

func cmdInit(cfg *config.Config) {
	owner, err := cfg.Token.OwnerAddress()
	if err != nil {
		fatal("%v (set --owner or token.owner)", err)
	}

	svc, rec, closeDB := openService(cfg)
	defer closeDB()

	supply, balance, err := svc.Initialize(cfg.Token.Cap(), cfg.Token.BlockReward(), owner)
	if err != nil {
		fatal("initialize: %v", err)
	}

	fmt.Printf("Token:        %s (%s)\n", config.TokenName, config.TokenSymbol)
	fmt.Printf("Owner:        %s\n", owner)
	fmt.Printf("Cap:          %s %s\n", types.FormatAmount(cfg.Token.Cap()), config.TokenSymbol)
	fmt.Printf("Block reward: %s %s\n", types.FormatAmount(cfg.Token.BlockReward()), config.TokenSymbol)
	fmt.Printf("Total supply: %s %s\n", types.FormatAmount(supply), config.TokenSymbol)
	fmt.Printf("Owner bal:    %s %s\n", types.FormatAmount(balance), config.TokenSymbol)
	printEvents(rec)
}

func cmdInfo(cfg *config.Config) {
	svc, _, closeDB := openService(cfg)
	defer closeDB()

	supply, err := svc.TotalSupply()
	if err != nil {
		fatal("total supply: %v", err)
	}
	fmt.Printf("State:        %s\n", svc.State())
	if svc.State() == token.Uninitialized {
		return
	}
	fmt.Printf("Owner:        %s\n", svc.Owner())
	fmt.Printf("Cap:          %s %s\n", types.FormatAmount(svc.Cap()), config.TokenSymbol)
	fmt.Printf("Block reward: %s %s\n", types.FormatAmount(svc.BlockReward()), config.TokenSymbol)
	fmt.Printf("Total supply: %s %s\n", types.FormatAmount(supply), config.TokenSymbol)
}

func cmdBalance(cfg *config.Config, args []string) {
	if len(args) != 1 {
		fatal("usage: balance <addr>")
	}
	addr := parseAddr(args[0])

	svc, _, closeDB := openService(cfg)
	defer closeDB()

	bal, err := svc.BalanceOf(addr)
	if err != nil {
		fatal("balance: %v", err)
	}
	fmt.Printf("%s %s\n", types.FormatAmount(bal), config.TokenSymbol)
}

func cmdSupply(cfg *config.Config) {
	svc, _, closeDB := openService(cfg)
	defer closeDB()

	supply, err := svc.TotalSupply()
	if err != nil {
		fatal("total supply: %v", err)
	}
	fmt.Printf("%s %s\n", types.FormatAmount(supply), config.TokenSymbol)
}

func cmdTransfer(cfg *config.Config, args []string) {
	if len(args) != 3 && len(args) != 4 {
		fatal("usage: transfer <from> <to> <amount> [proposer]")
	}
	from := parseAddr(args[0])
	to := parseAddr(args[1])
	amount := parseAmount(args[2])
	var proposer types.Address
	if len(args) == 4 {
		proposer = parseAddr(args[3])
	}

	svc, rec, closeDB := openService(cfg)
	defer closeDB()

	if err := svc.Transfer(from, to, amount, proposer); err != nil {
		fatal("transfer: %v", err)
	}
	printEvents(rec)
}

func cmdBurn(cfg *config.Config, args []string) {
	if len(args) != 2 {
		fatal("usage: burn <from> <amount>")
	}
	from := parseAddr(args[0])
	amount := parseAmount(args[1])

	svc, rec, closeDB := openService(cfg)
	defer closeDB()

	if err := svc.Burn(from, amount); err != nil {
		fatal("burn: %v", err)
	}
	printEvents(rec)
}

func cmdSetReward(cfg *config.Config, args []string) {
	if len(args) != 2 {
		fatal("usage: set-reward <caller> <amount>")
	}
	caller := parseAddr(args[0])
	rate := parseAmount(args[1])

	svc, rec, closeDB := openService(cfg)
	defer closeDB()

	if err := svc.SetBlockReward(caller, rate); err != nil {
		fatal("set-reward: %v", err)
	}
	printEvents(rec)
}

func cmdDestroy(cfg *config.Config, args []string) {
	if len(args) != 1 {
		fatal("usage: destroy <caller>")
	}
	caller := parseAddr(args[0])

	svc, rec, closeDB := openService(cfg)
	defer closeDB()

	if err := svc.Destroy(caller); err != nil {
		fatal("destroy: %v", err)
	}
	printEvents(rec)
}

// ── Wallet commands ─────────────────────────────────────────────────────

func cmdWallet(cfg *config.Config, args []string) {
	if len(args) < 2 {
		fatal("usage: wallet <new|accounts|derive> <name>")
	}
	sub, name := args[0], args[1]

	ks, err := wallet.NewKeystore(cfg.KeystorePath())
	if err != nil {
		fatal("%v", err)
	}

	switch sub {
	case "new":
		walletNew(ks, name)
	case "accounts":
		entries, err := ks.ListAccounts(name)
		if err != nil {
			fatal("%v", err)
		}
		for _, e := range entries {
			fmt.Printf("%d\t%s\t%s\n", e.Index, e.Name, e.Address)
		}
	case "derive":
		walletDerive(ks, name)
	default:
		fatal("unknown wallet command: %s", sub)
	}
}

func walletNew(ks *wallet.Keystore, name string) {
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		fatal("%v", err)
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		fatal("%v", err)
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("%v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("%v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}

	if err := ks.Create(name, seed, password, wallet.DefaultParams()); err != nil {
		fatal("%v", err)
	}

	addr := deriveAndRecord(ks, name, seed, 0)
	fmt.Println("Write down this mnemonic; it is shown only once:")
	fmt.Printf("\n  %s\n\n", mnemonic)
	fmt.Printf("Account 0: %s\n", addr)
}

func walletDerive(ks *wallet.Keystore, name string) {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("%v", err)
	}
	seed, err := ks.Load(name, password)
	if err != nil {
		fatal("%v", err)
	}
	index, err := ks.NextIndex(name)
	if err != nil {
		fatal("%v", err)
	}
	addr := deriveAndRecord(ks, name, seed, index)
	fmt.Printf("Account %d: %s\n", index, addr)
}

func deriveAndRecord(ks *wallet.Keystore, name string, seed []byte, index uint32) types.Address {
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		fatal("%v", err)
	}
	key, err := master.DeriveAccount(index)
	if err != nil {
		fatal("%v", err)
	}
	addr := key.Address()
	err = ks.AddAccount(name, wallet.AccountEntry{
		Index:   index,
		Name:    fmt.Sprintf("account-%d", index),
		Address: addr.String(),
	})
	if err != nil {
		fatal("%v", err)
	}
	return addr
}

// ── Helpers ─────────────────────────────────────────────────────────────

func parseAddr(s string) types.Address {
	addr, err := types.ParseAddress(s)
	if err != nil {
		fatal("%v", err)
	}
	return addr
}

func parseAmount(s string) *uint256.Int {
	v, err := types.ParseAmount(s)
	if err != nil {
		fatal("%v", err)
	}
	return v
}

func printEvents(rec *token.Recorder) {
	for _, e := range rec.Events {
		switch e := e.(type) {
		case token.TransferEvent:
			fmt.Printf("event %s: %s -> %s %s %s\n",
				e.Kind(), e.From, e.To, types.FormatAmount(e.Amount), config.TokenSymbol)
		case token.MintEvent:
			fmt.Printf("event %s: -> %s %s %s\n",
				e.Kind(), e.To, types.FormatAmount(e.Amount), config.TokenSymbol)
		case token.BurnEvent:
			fmt.Printf("event %s: %s -> %s %s\n",
				e.Kind(), e.From, types.FormatAmount(e.Amount), config.TokenSymbol)
		case token.RewardRateChangedEvent:
			fmt.Printf("event %s: %s -> %s %s\n",
				e.Kind(), types.FormatAmount(e.Old), types.FormatAmount(e.New), config.TokenSymbol)
		case token.DestroyedEvent:
			fmt.Printf("event %s: owner %s\n", e.Kind(), e.Owner)
		}
	}
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: ember-cli [flags] <command> [args]

Commands:
  wallet new <name>                       Create a wallet and first account
  wallet accounts <name>                  List wallet accounts
  wallet derive <name>                    Derive the next account
  init                                    Initialize the token ledger
  info                                    Show token state
  balance <addr>                          Show an account balance
  supply                                  Show total supply
  transfer <from> <to> <amount> [proposer]
  burn <from> <amount>
  set-reward <caller> <amount>
  destroy <caller>

Amounts are whole-token decimal strings (e.g. "12.5").

`)
	config.Usage()
}
