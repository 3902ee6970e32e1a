package crypto

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/Klingon-tech/klingnet-vault/pkg/types"
)

// Algorithm tags a signature scheme a keypair can be derived for.
type Algorithm string

const (
	Ed25519   Algorithm = "ed25519"
	Secp256k1 Algorithm = "secp256k1"
)

// ErrUnknownAlgorithm is returned for an algorithm tag that is not supported.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{Ed25519, Secp256k1}
}

// ParseAlgorithm maps a user-supplied tag onto an Algorithm.
// Matching is case-insensitive; there is no default.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case Ed25519:
		return Ed25519, nil
	case Secp256k1:
		return Secp256k1, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// String returns the algorithm tag.
func (a Algorithm) String() string {
	return string(a)
}

// Keypair is a private/public key pair tagged with its algorithm.
//
// For Ed25519, PrivateKey is the 64-byte seed||public form and PublicKey is 32 bytes.
// For secp256k1, PrivateKey is the 32-byte scalar and PublicKey is the
// 33-byte compressed point.
type Keypair struct {
	Algorithm  Algorithm
	PrivateKey []byte
	PublicKey  []byte
}

// Ed25519FromSeed builds an Ed25519 keypair from a 32-byte seed.
func Ed25519FromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return &Keypair{
		Algorithm:  Ed25519,
		PrivateKey: []byte(priv),
		PublicKey:  []byte(pub),
	}, nil
}

// Secp256k1FromPrivate builds a secp256k1 keypair from a 32-byte scalar.
// Returns ErrInvalidScalar if the scalar is zero or not below the curve order.
func Secp256k1FromPrivate(scalar []byte) (*Keypair, error) {
	key, err := scalarKey(scalar)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	return &Keypair{
		Algorithm:  Secp256k1,
		PrivateKey: key.Serialize(),
		PublicKey:  key.PubKey().SerializeCompressed(),
	}, nil
}

// ID returns the public key identifier.
func (k *Keypair) ID() types.KeyID {
	return KeyIDFromPubKey(k.Algorithm, k.PublicKey)
}

// Sign signs message. Ed25519 signs the message directly; secp256k1 signs
// SHA-256(message) with Schnorr.
func (k *Keypair) Sign(message []byte) ([]byte, error) {
	switch k.Algorithm {
	case Ed25519:
		if len(k.PrivateKey) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("ed25519 private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(k.PrivateKey))
		}
		return ed25519.Sign(ed25519.PrivateKey(k.PrivateKey), message), nil
	case Secp256k1:
		return schnorrSign(k.PrivateKey, SHA256(message))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, k.Algorithm)
	}
}

// Verify checks a signature produced by Sign against this keypair's public key.
func (k *Keypair) Verify(message, signature []byte) bool {
	return VerifyMessage(k.Algorithm, k.PublicKey, message, signature)
}

// VerifyMessage checks a signature for the given algorithm and public key.
// Returns false on any malformed input.
func VerifyMessage(alg Algorithm, publicKey, message, signature []byte) bool {
	switch alg {
	case Ed25519:
		if len(publicKey) != ed25519.PublicKeySize {
			return false
		}
		return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
	case Secp256k1:
		return schnorrVerify(publicKey, SHA256(message), signature)
	default:
		return false
	}
}

// Zero overwrites the private key bytes.
func (k *Keypair) Zero() {
	for i := range k.PrivateKey {
		k.PrivateKey[i] = 0
	}
}
