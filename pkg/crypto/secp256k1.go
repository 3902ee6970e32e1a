package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
)

// ScalarSize is the length of a serialized secp256k1 private scalar.
const ScalarSize = 32

// ErrInvalidScalar is returned when 32 bytes are not a usable secp256k1
// private key (zero, or not below the curve order).
var ErrInvalidScalar = errors.New("invalid secp256k1 private scalar")

// scalarKey turns b into a private key without reducing it mod n.
// The caller owns the result and should Zero it.
func scalarKey(b []byte) (*secp256k1.PrivateKey, error) {
	if len(b) != ScalarSize {
		return nil, fmt.Errorf("secp256k1 scalar must be %d bytes, got %d", ScalarSize, len(b))
	}
	var s secp256k1.ModNScalar
	defer s.Zero()
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return nil, ErrInvalidScalar
	}
	return secp256k1.NewPrivateKey(&s), nil
}

// schnorrSign signs a 32-byte digest with the scalar priv.
func schnorrSign(priv []byte, digest [32]byte) ([]byte, error) {
	key, err := scalarKey(priv)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	sig, err := schnorr.Sign(key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("schnorr sign: %w", err)
	}
	return sig.Serialize(), nil
}

// schnorrVerify reports whether sig is a valid signature of digest under
// the compressed public key pub.
func schnorrVerify(pub []byte, digest [32]byte, sig []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	parsed, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest[:], pubKey)
}
