// Package crypto provides the hash, HMAC and signature primitives used by
// the recovery pipeline.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/zeebo/blake3"

	"github.com/Klingon-tech/klingnet-vault/pkg/types"
)

// SHA256 computes the SHA-256 digest of data.
func SHA256(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// HMACSHA512 computes HMAC-SHA512 of message under key. The result is always 64 bytes.
func HMACSHA512(key, message []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// KeyIDFromPubKey derives a key ID from an algorithm tag and public key.
// KeyID = BLAKE3(tag || 0x00 || pubkey)[:20].
func KeyIDFromPubKey(alg Algorithm, pubKey []byte) types.KeyID {
	h := blake3.New()
	h.Write([]byte(alg))
	h.Write([]byte{0x00})
	h.Write(pubKey)

	var id types.KeyID
	copy(id[:], h.Sum(nil))
	return id
}
