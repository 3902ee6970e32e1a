// derive_key.go prints the public key and key ID for a recovery phrase.
// Usage: go run scripts/derive_key.go <phrasefile|-> [ed25519|secp256k1]
//
// With "-" the phrase is read from stdin. Output is one key=value per line,
// suitable for sourcing into test fixtures.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/Klingon-tech/klingnet-vault/internal/wallet"
	"github.com/Klingon-tech/klingnet-vault/pkg/crypto"
)

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "derive_key: "+format+"\n", args...)
	os.Exit(1)
}

func readPhrase(path string) wallet.Mnemonic {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		die("%v", err)
	}
	return wallet.ParseMnemonic(string(data))
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		die("usage: derive_key <phrasefile|-> [ed25519|secp256k1]")
	}

	algs := crypto.Algorithms()
	if len(os.Args) == 3 {
		alg, err := crypto.ParseAlgorithm(os.Args[2])
		if err != nil {
			die("%v", err)
		}
		algs = []crypto.Algorithm{alg}
	}

	m := readPhrase(os.Args[1])
	defer m.Zero()

	for _, alg := range algs {
		kp, err := wallet.RecoverKeypair(m, alg)
		if err != nil {
			die("%s: %v", alg, err)
		}
		fmt.Printf("%s.pubkey=%s\n%s.keyid=%s\n", alg, hex.EncodeToString(kp.PublicKey), alg, kp.ID())
		kp.Zero()
	}
}
