// Package wallet derives 24-word recovery phrases from secure entropy and
// deterministically regenerates Ed25519 and secp256k1 keypairs from them.
//
// Generation: entropy -> SHA-256 checksum byte -> 24 x 11-bit indices -> words.
// Recovery: words -> HMAC-SHA512 seed -> 32-byte window -> keypair.
package wallet

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrWordCount indicates a phrase that is not exactly 24 words.
	ErrWordCount = errors.New("mnemonic must be 24 words")

	// ErrUnknownWord indicates a word that is not in the wordlist.
	ErrUnknownWord = errors.New("word not in wordlist")

	// ErrChecksumMismatch indicates the words decode to entropy whose
	// checksum does not match the final word.
	ErrChecksumMismatch = errors.New("mnemonic checksum mismatch")

	whitespaceRegex   = regexp.MustCompile(`\s+`)
	numberingRegex    = regexp.MustCompile(`(^|\s)\d+[.):]`)
	bulletListRegex   = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// Mnemonic is an ordered recovery phrase. Order is significant.
type Mnemonic []string

// String returns the words separated by single spaces.
func (m Mnemonic) String() string {
	return strings.Join(m, " ")
}

// Last returns the final word, or "" for an empty phrase.
func (m Mnemonic) Last() string {
	if len(m) == 0 {
		return ""
	}
	return m[len(m)-1]
}

// Equal reports whether both phrases hold the same words in the same order.
func (m Mnemonic) Equal(other Mnemonic) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

// ParseMnemonic cleans up a phrase as typed or pasted by a person:
// lower-cases it, drops "1." / "2)" numbering wherever it starts a token
// (so several numbered words may share a line), drops bullet prefixes,
// treats commas as separators and splits on whitespace.
//
// This is input cleanup only. Seed derivation itself never normalizes.
func ParseMnemonic(input string) Mnemonic {
	input = strings.ToLower(input)
	input = numberingRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	return Mnemonic(strings.Split(input, " "))
}

// Zero blanks every word so the phrase no longer references the strings.
func (m Mnemonic) Zero() {
	for i := range m {
		m[i] = ""
	}
}
