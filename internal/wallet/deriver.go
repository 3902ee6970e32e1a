package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39/wordlists"

	"github.com/Klingon-tech/klingnet-vault/internal/log"
	"github.com/Klingon-tech/klingnet-vault/pkg/crypto"
)

// Params configures a Deriver. Zero fields take the defaults from DefaultParams.
type Params struct {
	// Wordlist must hold exactly 2048 distinct words.
	Wordlist []string
	// SeedKey is the HMAC key used by Seed.
	SeedKey []byte
	// Entropy supplies randomness for NewMnemonic.
	Entropy EntropySource
}

// DefaultParams returns the English BIP-39 wordlist, DefaultSeedKey and
// the system entropy source.
func DefaultParams() Params {
	return Params{
		Wordlist: wordlists.English,
		SeedKey:  []byte(DefaultSeedKey),
		Entropy:  SystemEntropy,
	}
}

// Deriver generates phrases and recovers keypairs from them.
// It holds only immutable configuration and is safe for concurrent use.
type Deriver struct {
	wordlist []string
	index    map[string]int
	seedKey  []byte
	entropy  EntropySource
}

// NewDeriver validates p and returns a Deriver.
func NewDeriver(p Params) (*Deriver, error) {
	def := DefaultParams()
	if p.Wordlist == nil {
		p.Wordlist = def.Wordlist
	}
	if p.SeedKey == nil {
		p.SeedKey = def.SeedKey
	}
	if p.Entropy == nil {
		p.Entropy = def.Entropy
	}

	if len(p.Wordlist) != WordlistSize {
		return nil, fmt.Errorf("%w: %d words, want %d", ErrMalformedWordlist, len(p.Wordlist), WordlistSize)
	}
	index := make(map[string]int, WordlistSize)
	for i, w := range p.Wordlist {
		if w == "" {
			return nil, fmt.Errorf("%w: empty word at index %d", ErrMalformedWordlist, i)
		}
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrMalformedWordlist, w)
		}
		index[w] = i
	}

	wordlist := make([]string, WordlistSize)
	copy(wordlist, p.Wordlist)
	seedKey := make([]byte, len(p.SeedKey))
	copy(seedKey, p.SeedKey)

	return &Deriver{
		wordlist: wordlist,
		index:    index,
		seedKey:  seedKey,
		entropy:  p.Entropy,
	}, nil
}

// Wordlist returns a copy of the wordlist.
func (d *Deriver) Wordlist() []string {
	out := make([]string, len(d.wordlist))
	copy(out, d.wordlist)
	return out
}

// WordIndex returns the position of word in the wordlist.
func (d *Deriver) WordIndex(word string) (int, bool) {
	i, ok := d.index[word]
	return i, ok
}

// NewMnemonic draws fresh entropy and encodes it as a 24-word phrase.
func (d *Deriver) NewMnemonic() (Mnemonic, error) {
	entropy, err := readEntropy(d.entropy)
	if err != nil {
		return nil, err
	}
	defer zero(entropy)

	return d.FromEntropy(entropy)
}

// FromEntropy encodes 32 bytes of entropy as a 24-word phrase.
func (d *Deriver) FromEntropy(entropy []byte) (Mnemonic, error) {
	if len(entropy) != EntropySize {
		return nil, fmt.Errorf("entropy must be %d bytes, got %d", EntropySize, len(entropy))
	}

	_, checksummed := AppendChecksum(entropy, Digest(entropy))
	defer zero(checksummed)

	indices, err := Indices(checksummed)
	if err != nil {
		return nil, err
	}
	return Words(d.wordlist, indices)
}

// Seed derives the 64-byte seed for m under this Deriver's seed key.
func (d *Deriver) Seed(m Mnemonic) []byte {
	return Seed(d.seedKey, m)
}

// ChecksumByte recovers the checksum byte from m. The last 11-bit group
// holds 3 entropy bits followed by the 8 checksum bits, so the byte is the
// low 8 bits of the final word's index.
func (d *Deriver) ChecksumByte(m Mnemonic) (byte, error) {
	if len(m) != WordCount {
		return 0, fmt.Errorf("%w: got %d", ErrWordCount, len(m))
	}
	idx, ok := d.index[m.Last()]
	if !ok {
		return 0, fmt.Errorf("%w: word %d %q", ErrUnknownWord, WordCount, m.Last())
	}
	return byte(idx), nil
}

// Validate checks that m has 24 known words and that the entropy they
// encode matches the trailing checksum byte.
func (d *Deriver) Validate(m Mnemonic) error {
	if len(m) != WordCount {
		return fmt.Errorf("%w: got %d", ErrWordCount, len(m))
	}

	buf := make([]byte, 0, ChecksummedSize)
	defer zero(buf[:cap(buf)])

	var acc uint32
	var bits uint
	for i, w := range m {
		idx, ok := d.index[w]
		if !ok {
			return fmt.Errorf("%w: word %d %q", ErrUnknownWord, i+1, w)
		}
		acc = acc<<WordBits | uint32(idx)
		bits += WordBits
		for bits >= 8 {
			bits -= 8
			buf = append(buf, byte(acc>>bits))
		}
		acc &= 1<<bits - 1
	}

	digest := Digest(buf[:EntropySize])
	if digest[0] != buf[EntropySize] {
		return ErrChecksumMismatch
	}
	return nil
}

// RecoverKeypair validates m and re-derives the keypair for alg.
// The same phrase and algorithm always produce byte-identical keys.
func (d *Deriver) RecoverKeypair(m Mnemonic, alg crypto.Algorithm) (*crypto.Keypair, error) {
	switch alg {
	case crypto.Ed25519, crypto.Secp256k1:
	default:
		return nil, fmt.Errorf("%w: %q", crypto.ErrUnknownAlgorithm, alg)
	}

	if err := d.Validate(m); err != nil {
		return nil, fmt.Errorf("validate mnemonic: %w", err)
	}
	checksum, err := d.ChecksumByte(m)
	if err != nil {
		return nil, err
	}

	seed := d.Seed(m)
	defer zero(seed)

	kp, err := DeriveKeypair(seed, m.Last(), checksum, alg)
	if err != nil {
		return nil, err
	}

	log.Wallet.Debug().
		Str("algorithm", alg.String()).
		Str("key_id", kp.ID().String()).
		Msg("Keypair recovered")
	return kp, nil
}

// zero overwrites b.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
