package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-vault/pkg/crypto"
)

// DeriveKeypair builds the keypair for alg from a 64-byte seed.
//
// The window [from, to) is chosen by SliceBounds(selector).
//   - ed25519: seed[from:to] is the Ed25519 seed.
//   - secp256k1: HMAC-SHA512(key = keyWord, msg = seed)[from:to] is the
//     private scalar. An out-of-range scalar is a hard failure; there is no
//     alternate derivation.
func DeriveKeypair(seed []byte, keyWord string, selector byte, alg crypto.Algorithm) (*crypto.Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	from, to := SliceBounds(selector)

	switch alg {
	case crypto.Ed25519:
		kp, err := crypto.Ed25519FromSeed(seed[from:to])
		if err != nil {
			return nil, fmt.Errorf("derive ed25519 key: %w", err)
		}
		return kp, nil

	case crypto.Secp256k1:
		mac := crypto.HMACSHA512([]byte(keyWord), seed)
		defer zero(mac)
		kp, err := crypto.Secp256k1FromPrivate(mac[from:to])
		if err != nil {
			return nil, fmt.Errorf("derive secp256k1 key: %w", err)
		}
		return kp, nil

	default:
		return nil, fmt.Errorf("%w: %q", crypto.ErrUnknownAlgorithm, alg)
	}
}
