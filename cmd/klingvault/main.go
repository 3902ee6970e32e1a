// klingvault generates 24-word recovery phrases and re-derives Ed25519 and
// secp256k1 keypairs from them, optionally keeping phrases in an encrypted vault.
package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Klingon-tech/klingnet-vault/config"
	"github.com/Klingon-tech/klingnet-vault/internal/log"
	"github.com/Klingon-tech/klingnet-vault/internal/vault"
	"github.com/Klingon-tech/klingnet-vault/internal/wallet"
	"github.com/Klingon-tech/klingnet-vault/pkg/crypto"
)

const version = "0.1.0"

// env carries what every command needs.
type env struct {
	cfg     *config.Config
	deriver *wallet.Deriver
}

func main() {
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		os.Exit(1)
	}
	if flags.Help {
		usage()
		return
	}
	if flags.Version {
		fmt.Printf("klingvault version %s\n", version)
		return
	}

	args := flags.Args
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fatal("%v", err)
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	deriver, err := wallet.NewDeriver(wallet.Params{SeedKey: []byte(cfg.Derive.SeedKey)})
	if err != nil {
		fatal("init deriver: %v", err)
	}
	if cfg.Derive.SeedKey != wallet.DefaultSeedKey {
		log.CLI.Warn().Msg("Non-default derive.seedkey in use; derived keys will not match other installations")
	}

	e := &env{cfg: cfg, deriver: deriver}
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "new":
		cmdNew(e, cmdArgs)
	case "recover":
		cmdRecover(e, cmdArgs)
	case "validate":
		cmdValidate(e, cmdArgs)
	case "sign":
		cmdSign(e, cmdArgs)
	case "verify":
		cmdVerify(cmdArgs)
	case "vault":
		cmdVault(e, cmdArgs)
	case "version":
		fmt.Printf("klingvault version %s\n", version)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: klingvault [global flags] <command> [flags]

Global flags:
  --datadir <path>    Data directory (default: ~/.klingvault)
  --config <file>     Config file (default: <datadir>/klingvault.conf)
  --log-level <lvl>   debug, info, warn (default) or error
  --log-file <path>   Also write JSON logs to this file
  --log-json          Write logs to stderr as JSON

Commands:
  new [--save <name>]             Generate a new 24-word recovery phrase
  recover --algorithm <alg> [--mnemonic "..." | --name <n>] [--show-private]
                                  Re-derive a keypair (alg: ed25519, secp256k1)
  validate [--mnemonic "..."]     Check a phrase's words and checksum
  sign --algorithm <alg> --message <m> [--mnemonic "..." | --name <n>]
                                  Sign a message with a derived key
  verify --algorithm <alg> --pubkey <hex> --message <m> --signature <hex>
                                  Verify a signature

  vault list                      List stored phrases
  vault keys --name <n>           Show public keys recorded for a phrase
  vault delete --name <n>         Delete a stored phrase

Without --mnemonic or --name, the phrase is read from the terminal without echo.
`)
}

// ── new ────────────────────────────────────────────────────────────────

func cmdNew(e *env, args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	save := fs.String("save", "", "Store the phrase encrypted in the vault under this name")
	fs.Parse(args)

	if *save != "" {
		if err := vault.ValidateName(*save); err != nil {
			fatal("%v", err)
		}
	}

	m, err := e.deriver.NewMnemonic()
	if err != nil {
		fatal("generate phrase: %v", err)
	}
	defer m.Zero()

	fmt.Println("Recovery phrase (write this down!):")
	printPhrase(os.Stdout, m)

	if *save == "" {
		return
	}

	password := readNewPassword()
	defer zero(password)

	store := openVault(e)
	defer store.Close()

	if err := store.Create(*save, m, password); err != nil {
		fatal("save phrase: %v", err)
	}
	for _, alg := range crypto.Algorithms() {
		kp, err := e.deriver.RecoverKeypair(m, alg)
		if err != nil {
			log.CLI.Warn().Err(err).Str("algorithm", alg.String()).Msg("Could not derive key for vault record")
			continue
		}
		if err := store.AddKey(*save, kp); err != nil {
			kp.Zero()
			fatal("record key: %v", err)
		}
		kp.Zero()
	}

	fmt.Printf("\nSaved to vault as %q\n", *save)
}

// ── recover ────────────────────────────────────────────────────────────

func cmdRecover(e *env, args []string) {
	fs := flag.NewFlagSet("recover", flag.ExitOnError)
	algFlag := fs.String("algorithm", "", "Key algorithm: ed25519 or secp256k1")
	mnemonic := fs.String("mnemonic", "", "Recovery phrase (24 words)")
	name := fs.String("name", "", "Vault entry to recover from")
	showPrivate := fs.Bool("show-private", false, "Also print the private key")
	fs.Parse(args)

	if *algFlag == "" {
		fatal("Usage: klingvault recover --algorithm <ed25519|secp256k1> [--mnemonic \"...\" | --name <n>]")
	}
	alg, err := crypto.ParseAlgorithm(*algFlag)
	if err != nil {
		fatal("%v", err)
	}

	m := resolvePhrase(e, *mnemonic, *name)
	defer m.Zero()

	kp := recoverOrExplain(e, m, alg)
	defer kp.Zero()

	if *name != "" {
		recordKey(e, *name, kp)
	}

	printKeypair(os.Stdout, kp, *showPrivate)
}

// ── validate ───────────────────────────────────────────────────────────

func cmdValidate(e *env, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	mnemonic := fs.String("mnemonic", "", "Recovery phrase (24 words)")
	fs.Parse(args)

	m := resolvePhrase(e, *mnemonic, "")
	defer m.Zero()

	if err := e.deriver.Validate(m); err != nil {
		fatal("%s", explainPhraseError(e.deriver, m, err))
	}
	fmt.Println("Phrase is valid")
}

// ── sign / verify ──────────────────────────────────────────────────────

func cmdSign(e *env, args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	algFlag := fs.String("algorithm", "", "Key algorithm: ed25519 or secp256k1")
	message := fs.String("message", "", "Message to sign")
	mnemonic := fs.String("mnemonic", "", "Recovery phrase (24 words)")
	name := fs.String("name", "", "Vault entry to sign with")
	fs.Parse(args)

	if *algFlag == "" || *message == "" {
		fatal("Usage: klingvault sign --algorithm <alg> --message <m> [--mnemonic \"...\" | --name <n>]")
	}
	alg, err := crypto.ParseAlgorithm(*algFlag)
	if err != nil {
		fatal("%v", err)
	}

	m := resolvePhrase(e, *mnemonic, *name)
	defer m.Zero()

	kp := recoverOrExplain(e, m, alg)
	defer kp.Zero()

	sig, err := kp.Sign([]byte(*message))
	if err != nil {
		fatal("sign: %v", err)
	}

	fmt.Printf("Algorithm:  %s\n", kp.Algorithm)
	fmt.Printf("Public key: %s\n", hex.EncodeToString(kp.PublicKey))
	fmt.Printf("Signature:  %s\n", hex.EncodeToString(sig))
}

func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	algFlag := fs.String("algorithm", "", "Key algorithm: ed25519 or secp256k1")
	pubHex := fs.String("pubkey", "", "Public key (hex)")
	message := fs.String("message", "", "Signed message")
	sigHex := fs.String("signature", "", "Signature (hex)")
	fs.Parse(args)

	if *algFlag == "" || *pubHex == "" || *sigHex == "" {
		fatal("Usage: klingvault verify --algorithm <alg> --pubkey <hex> --message <m> --signature <hex>")
	}
	alg, err := crypto.ParseAlgorithm(*algFlag)
	if err != nil {
		fatal("%v", err)
	}
	pub, err := hex.DecodeString(*pubHex)
	if err != nil {
		fatal("invalid public key hex: %v", err)
	}
	sig, err := hex.DecodeString(*sigHex)
	if err != nil {
		fatal("invalid signature hex: %v", err)
	}

	if !crypto.VerifyMessage(alg, pub, []byte(*message), sig) {
		fatal("signature is NOT valid")
	}
	fmt.Println("Signature is valid")
}

// ── vault ──────────────────────────────────────────────────────────────

func cmdVault(e *env, args []string) {
	if len(args) < 1 {
		fatal("Usage: klingvault vault <list|keys|delete> [flags]")
	}

	switch args[0] {
	case "list":
		cmdVaultList(e)
	case "keys":
		cmdVaultKeys(e, args[1:])
	case "delete":
		cmdVaultDelete(e, args[1:])
	default:
		fatal("Unknown vault command: %s\nUsage: klingvault vault <list|keys|delete> [flags]", args[0])
	}
}

func cmdVaultList(e *env) {
	store := openVault(e)
	defer store.Close()

	infos, err := store.List()
	if err != nil {
		fatal("list vault: %v", err)
	}
	if len(infos) == 0 {
		fmt.Println("Vault is empty")
		return
	}

	fmt.Printf("%-24s %-20s %s\n", "NAME", "CREATED", "KEYS")
	for _, info := range infos {
		fmt.Printf("%-24s %-20s %d\n", info.Name, info.CreatedAt.Format("2006-01-02 15:04:05"), info.Keys)
	}
}

func cmdVaultKeys(e *env, args []string) {
	fs := flag.NewFlagSet("vault keys", flag.ExitOnError)
	name := fs.String("name", "", "Vault entry name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingvault vault keys --name <n>")
	}

	store := openVault(e)
	defer store.Close()

	keys, err := store.Keys(*name)
	if err != nil {
		fatal("%v", err)
	}
	if len(keys) == 0 {
		fmt.Println("No keys recorded")
		return
	}
	for _, k := range keys {
		fmt.Printf("%-10s %s  %s\n", k.Algorithm, k.KeyID.Short(), k.PublicKey)
	}
}

func cmdVaultDelete(e *env, args []string) {
	fs := flag.NewFlagSet("vault delete", flag.ExitOnError)
	name := fs.String("name", "", "Vault entry name")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: klingvault vault delete --name <n> [--yes]")
	}

	if !*yes {
		fmt.Fprintf(os.Stderr, "Delete %q? The phrase cannot be recovered from the vault afterwards. [y/N]: ", *name)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !confirmed(answer) {
			fmt.Println("Aborted")
			return
		}
	}

	store := openVault(e)
	defer store.Close()

	if err := store.Delete(*name); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Deleted %q\n", *name)
}

// ── helpers ────────────────────────────────────────────────────────────

func openVault(e *env) *vault.Store {
	if !e.cfg.Vault.Enabled {
		fatal("vault is disabled (vault.enabled = false)")
	}
	store, err := vault.Open(e.cfg.VaultDir(), e.cfg.Vault.Argon.KDFParams())
	if err != nil {
		fatal("open vault: %v", err)
	}
	return store
}

// resolvePhrase returns the phrase from --mnemonic, from the vault entry
// name, or read from the terminal, in that order.
func resolvePhrase(e *env, mnemonic, name string) wallet.Mnemonic {
	if mnemonic != "" && name != "" {
		fatal("use either --mnemonic or --name, not both")
	}

	if name != "" {
		password, err := readPassword("Vault password: ")
		if err != nil {
			fatal("read password: %v", err)
		}
		defer zero(password)

		store := openVault(e)
		defer store.Close()

		m, err := store.Load(name, password)
		if err != nil {
			fatal("%v", err)
		}
		return m
	}

	if mnemonic == "" {
		raw, err := readPassword("Recovery phrase: ")
		if err != nil {
			fatal("read phrase: %v", err)
		}
		defer zero(raw)
		mnemonic = string(raw)
	}
	return wallet.ParseMnemonic(mnemonic)
}

func recoverOrExplain(e *env, m wallet.Mnemonic, alg crypto.Algorithm) *crypto.Keypair {
	kp, err := e.deriver.RecoverKeypair(m, alg)
	if err != nil {
		fatal("%s", explainPhraseError(e.deriver, m, err))
	}
	return kp
}

// recordKey adds kp to the vault entry's key list. Failures are logged only.
func recordKey(e *env, name string, kp *crypto.Keypair) {
	store := openVault(e)
	defer store.Close()

	if err := store.AddKey(name, kp); err != nil {
		log.CLI.Warn().Err(err).Str("name", name).Msg("Could not record key in vault")
	}
}

// explainPhraseError turns a validation error into a message with typo hints.
func explainPhraseError(d *wallet.Deriver, m wallet.Mnemonic, err error) string {
	switch {
	case errors.Is(err, wallet.ErrUnknownWord):
		return "phrase contains unknown words:\n" + wallet.FormatTypoSuggestions(d.DetectTypos(m))
	case errors.Is(err, wallet.ErrWordCount):
		return fmt.Sprintf("phrase has %d words, need %d", len(m), wallet.WordCount)
	case errors.Is(err, wallet.ErrChecksumMismatch):
		return "phrase checksum does not match; check the word order and spelling"
	case errors.Is(err, crypto.ErrInvalidScalar):
		return "this phrase does not yield a valid secp256k1 key; generate a new phrase"
	default:
		return err.Error()
	}
}

func printPhrase(w io.Writer, m wallet.Mnemonic) {
	for i, word := range m {
		fmt.Fprintf(w, "  %2d. %-10s", i+1, word)
		if (i+1)%4 == 0 {
			fmt.Fprintln(w)
		}
	}
}

func printKeypair(w io.Writer, kp *crypto.Keypair, showPrivate bool) {
	fmt.Fprintf(w, "Algorithm:   %s\n", kp.Algorithm)
	fmt.Fprintf(w, "Key ID:      %s\n", kp.ID())
	fmt.Fprintf(w, "Public key:  %s\n", hex.EncodeToString(kp.PublicKey))
	if showPrivate {
		fmt.Fprintf(w, "Private key: %s\n", hex.EncodeToString(kp.PrivateKey))
	}
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func readNewPassword() []byte {
	password, err := readPassword("Enter vault password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm vault password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	defer zero(confirm)
	if len(password) == 0 {
		fatal("password must not be empty")
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}
	return password
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

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ── Error helper ───────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
