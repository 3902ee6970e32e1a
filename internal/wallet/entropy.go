package wallet

import (
	"errors"
	"fmt"
	"io"

	"github.com/tyler-smith/go-bip39"
)

// Entropy sizes for a 24-word mnemonic.
const (
	EntropyBits = 256
	EntropySize = EntropyBits / 8
)

// ErrEntropy is returned when secure randomness cannot be obtained.
// It is fatal: callers must not retry with a weaker source.
var ErrEntropy = errors.New("secure entropy unavailable")

// EntropySource returns EntropySize bytes of cryptographically secure randomness.
type EntropySource func() ([]byte, error)

// SystemEntropy reads 256 bits from the operating system's CSPRNG.
func SystemEntropy() ([]byte, error) {
	entropy, err := bip39.NewEntropy(EntropyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return entropy, nil
}

// ReaderEntropy returns an EntropySource that reads from r.
// A short read is an error.
func ReaderEntropy(r io.Reader) EntropySource {
	return func() ([]byte, error) {
		b := make([]byte, EntropySize)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
		}
		return b, nil
	}
}

// readEntropy pulls from src and enforces the entropy length.
func readEntropy(src EntropySource) ([]byte, error) {
	entropy, err := src()
	if err != nil {
		if errors.Is(err, ErrEntropy) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	if len(entropy) != EntropySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrEntropy, len(entropy), EntropySize)
	}
	return entropy, nil
}
