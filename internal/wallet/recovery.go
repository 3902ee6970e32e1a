package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-vault/pkg/crypto"
)

var defaultDeriver = mustDefaultDeriver()

func mustDefaultDeriver() *Deriver {
	d, err := NewDeriver(DefaultParams())
	if err != nil {
		panic(fmt.Sprintf("wallet: default deriver: %v", err))
	}
	return d
}

// Default returns the Deriver built from DefaultParams.
func Default() *Deriver {
	return defaultDeriver
}

// NewMnemonic generates a fresh 24-word phrase with the default parameters.
func NewMnemonic() (Mnemonic, error) {
	return defaultDeriver.NewMnemonic()
}

// RecoverKeypair re-derives the keypair for alg from m with the default parameters.
func RecoverKeypair(m Mnemonic, alg crypto.Algorithm) (*crypto.Keypair, error) {
	return defaultDeriver.RecoverKeypair(m, alg)
}

// ValidateMnemonic checks m against the default wordlist.
func ValidateMnemonic(m Mnemonic) error {
	return defaultDeriver.Validate(m)
}
