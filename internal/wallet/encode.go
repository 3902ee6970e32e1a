package wallet

import (
	"errors"
	"fmt"
)

// Mnemonic layout: 24 words of 11 bits each cover the 264 checksummed bits exactly.
const (
	WordCount    = 24
	WordBits     = 11
	WordlistSize = 1 << WordBits
)

// ErrMalformedWordlist is returned when a wordlist does not hold exactly
// 2048 distinct words.
var ErrMalformedWordlist = errors.New("malformed wordlist")

// Indices splits 33 bytes of checksummed entropy into 24 big-endian 11-bit
// word indices, most significant bits first.
func Indices(checksummed []byte) ([]int, error) {
	if len(checksummed) != ChecksummedSize {
		return nil, fmt.Errorf("checksummed entropy must be %d bytes, got %d", ChecksummedSize, len(checksummed))
	}

	indices := make([]int, 0, WordCount)
	var acc uint32
	var bits uint
	for _, b := range checksummed {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= WordBits {
			bits -= WordBits
			indices = append(indices, int(acc>>bits)&(WordlistSize-1))
		}
		acc &= 1<<bits - 1
	}
	return indices, nil
}

// Words maps 24 indices through wordlist.
func Words(wordlist []string, indices []int) (Mnemonic, error) {
	if len(wordlist) != WordlistSize {
		return nil, fmt.Errorf("%w: %d words, want %d", ErrMalformedWordlist, len(wordlist), WordlistSize)
	}
	if len(indices) != WordCount {
		return nil, fmt.Errorf("%w: %d indices, want %d", ErrWordCount, len(indices), WordCount)
	}

	m := make(Mnemonic, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= WordlistSize {
			return nil, fmt.Errorf("word %d: index %d out of range [0, %d]", i+1, idx, WordlistSize-1)
		}
		m[i] = wordlist[idx]
	}
	return m, nil
}
