package wallet

import (
	"strings"

	"github.com/Klingon-tech/klingnet-vault/pkg/crypto"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// DefaultSeedKey is the HMAC key used to turn a phrase into a seed.
// It is a public domain-separation constant, not a secret: the secret is
// the word sequence itself. Changing it changes every derived key.
const DefaultSeedKey = "SIGNER"

// Seed derives the 64-byte seed for m as HMAC-SHA512(key, words joined with
// no separator). No normalization is applied: any change to spelling, case,
// order or whitespace yields an unrelated seed.
func Seed(key []byte, m Mnemonic) []byte {
	return crypto.HMACSHA512(key, []byte(strings.Join(m, "")))
}
