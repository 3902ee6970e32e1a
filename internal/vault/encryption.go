package vault

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/Klingon-tech/klingnet-vault/internal/log"
)

// Sealed blob layout, all integers big-endian:
//
//	format(1) | memory(4) | iterations(4) | parallelism(1) | salt(32) | nonce(24) | ciphertext
const (
	sealFormat = 0x01
	SaltSize   = 32
	paramsSize = 4 + 4 + 1
	headerSize = 1 + paramsSize + SaltSize + chacha20poly1305.NonceSizeX

	// maxMemory caps the Argon2id memory, in KiB, accepted anywhere (4 GiB).
	maxMemory = 4 * 1024 * 1024
)

var (
	// ErrDecrypt is returned when a password is wrong or the data was tampered with.
	ErrDecrypt = errors.New("wrong password or corrupted data")

	// ErrBadParams is returned for unusable Argon2id parameters.
	ErrBadParams = errors.New("invalid key derivation parameters")
)

// KDFParams holds Argon2id parameters.
type KDFParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultKDFParams returns the Argon2id cost used for new entries:
// 64 MiB, 3 passes, 4 lanes.
func DefaultKDFParams() KDFParams {
	return KDFParams{Memory: 64 * 1024, Iterations: 3, Parallelism: 4}
}

// Validate checks that p can be handed to Argon2id.
func (p KDFParams) Validate() error {
	switch {
	case p.Iterations == 0:
		return fmt.Errorf("%w: iterations must be at least 1", ErrBadParams)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be at least 1", ErrBadParams)
	case p.Memory < 8*uint32(p.Parallelism):
		return fmt.Errorf("%w: memory must be at least 8 KiB per lane", ErrBadParams)
	case p.Memory > maxMemory:
		return fmt.Errorf("%w: memory %d KiB exceeds %d KiB", ErrBadParams, p.Memory, maxMemory)
	}
	return nil
}

// newAEAD stretches password with Argon2id and keys XChaCha20-Poly1305 with it.
func newAEAD(password, salt []byte, p KDFParams) (cipher.AEAD, error) {
	done := log.Timer(log.Vault, "argon2id")
	key := argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, chacha20poly1305.KeySize)
	done()
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return aead, nil
}

// Encrypt seals data under password. ad is authenticated but not encrypted;
// Decrypt must be given the same ad. The Argon2id parameters travel in the
// header, so later changes to the defaults do not strand old entries.
func Encrypt(data, password, ad []byte, params KDFParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(data)+chacha20poly1305.Overhead)
	out[0] = sealFormat
	binary.BigEndian.PutUint32(out[1:], params.Memory)
	binary.BigEndian.PutUint32(out[5:], params.Iterations)
	out[9] = params.Parallelism

	salt := out[1+paramsSize : 1+paramsSize+SaltSize]
	nonce := out[1+paramsSize+SaltSize : headerSize]
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	aead, err := newAEAD(password, salt, params)
	if err != nil {
		return nil, err
	}
	return aead.Seal(out, nonce, data, ad), nil
}

// Decrypt opens a blob produced by Encrypt.
func Decrypt(sealed, password, ad []byte) ([]byte, error) {
	if len(sealed) < headerSize+chacha20poly1305.Overhead {
		return nil, fmt.Errorf("sealed data too short: %d bytes", len(sealed))
	}
	if sealed[0] != sealFormat {
		return nil, fmt.Errorf("unsupported seal format %#x", sealed[0])
	}

	params := KDFParams{
		Memory:      binary.BigEndian.Uint32(sealed[1:]),
		Iterations:  binary.BigEndian.Uint32(sealed[5:]),
		Parallelism: sealed[9],
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	salt := sealed[1+paramsSize : 1+paramsSize+SaltSize]
	nonce := sealed[1+paramsSize+SaltSize : headerSize]

	aead, err := newAEAD(password, salt, params)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, sealed[headerSize:], ad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}

func zero(b []byte) {
	clear(b)
}
