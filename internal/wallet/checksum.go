package wallet

import "github.com/Klingon-tech/klingnet-vault/pkg/crypto"

// ChecksummedSize is the length of entropy with its checksum byte appended.
const ChecksummedSize = EntropySize + 1

// Digest returns the SHA-256 digest of entropy.
func Digest(entropy []byte) [32]byte {
	return crypto.SHA256(entropy)
}

// AppendChecksum returns the checksum byte (the first byte of digest) and a
// new buffer holding entropy followed by that byte. entropy is not modified.
func AppendChecksum(entropy []byte, digest [32]byte) (byte, []byte) {
	checksum := digest[0]
	out := make([]byte, 0, len(entropy)+1)
	out = append(out, entropy...)
	out = append(out, checksum)
	return checksum, out
}
