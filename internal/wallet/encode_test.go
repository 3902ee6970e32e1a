package wallet

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
)

func TestDigest_Vectors(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			got := Digest(v.entropy)
			if !bytes.Equal(got[:], mustHex(t, v.digest)) {
				t.Errorf("Digest() = %x, want %s", got, v.digest)
			}
		})
	}
}

func TestAppendChecksum(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			orig := append([]byte(nil), v.entropy...)
			checksum, out := AppendChecksum(v.entropy, Digest(v.entropy))
			if checksum != v.checksum {
				t.Errorf("checksum = %d, want %d", checksum, v.checksum)
			}
			if len(out) != ChecksummedSize {
				t.Fatalf("len = %d, want %d", len(out), ChecksummedSize)
			}
			if !bytes.Equal(out[:EntropySize], v.entropy) || out[EntropySize] != v.checksum {
				t.Error("output should be entropy followed by checksum byte")
			}
			if !bytes.Equal(v.entropy, orig) {
				t.Error("input entropy was modified")
			}
		})
	}
}

func TestIndices_Vectors(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			_, buf := AppendChecksum(v.entropy, Digest(v.entropy))
			got, err := Indices(buf)
			if err != nil {
				t.Fatalf("Indices() error: %v", err)
			}
			if len(got) != WordCount {
				t.Fatalf("len = %d, want %d", len(got), WordCount)
			}
			for i := range got {
				if got[i] != v.indices[i] {
					t.Errorf("index %d = %d, want %d", i, got[i], v.indices[i])
				}
			}
			// Low 8 bits of the last index carry the checksum.
			if byte(got[WordCount-1]) != v.checksum {
				t.Errorf("last index low byte = %d, want %d", byte(got[WordCount-1]), v.checksum)
			}
		})
	}
}

func TestIndices_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, ChecksummedSize)
	for i := 0; i < 500; i++ {
		rng.Read(buf)
		got, err := Indices(buf)
		if err != nil {
			t.Fatalf("Indices() error: %v", err)
		}
		if len(got) != WordCount {
			t.Fatalf("len = %d, want %d", len(got), WordCount)
		}
		for _, idx := range got {
			if idx < 0 || idx >= WordlistSize {
				t.Fatalf("index %d out of range", idx)
			}
		}
	}
}

func TestIndices_WrongLength(t *testing.T) {
	for _, n := range []int{0, 32, 34} {
		if _, err := Indices(make([]byte, n)); err == nil {
			t.Errorf("Indices(%d bytes) should fail", n)
		}
	}
}

func TestWords(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			m, err := Words(wordlists.English, v.indices)
			if err != nil {
				t.Fatalf("Words() error: %v", err)
			}
			if m.String() != v.words {
				t.Errorf("Words() = %q, want %q", m.String(), v.words)
			}
		})
	}
}

func TestWords_Errors(t *testing.T) {
	good := repeatIdx(0, WordCount)

	if _, err := Words(wordlists.English[:100], good); !errors.Is(err, ErrMalformedWordlist) {
		t.Errorf("short wordlist: error = %v, want ErrMalformedWordlist", err)
	}
	if _, err := Words(wordlists.English, good[:12]); !errors.Is(err, ErrWordCount) {
		t.Errorf("12 indices: error = %v, want ErrWordCount", err)
	}

	bad := repeatIdx(0, WordCount)
	bad[5] = WordlistSize
	if _, err := Words(wordlists.English, bad); err == nil {
		t.Error("index 2048 should fail")
	}
	bad[5] = -1
	if _, err := Words(wordlists.English, bad); err == nil {
		t.Error("negative index should fail")
	}
}

func TestFromEntropy_MatchesBIP39(t *testing.T) {
	d := testDeriver(t)
	rng := rand.New(rand.NewSource(7))
	entropy := make([]byte, EntropySize)

	for i := 0; i < 100; i++ {
		rng.Read(entropy)
		m, err := d.FromEntropy(entropy)
		if err != nil {
			t.Fatalf("FromEntropy() error: %v", err)
		}
		want, err := bip39.NewMnemonic(entropy)
		if err != nil {
			t.Fatalf("bip39.NewMnemonic() error: %v", err)
		}
		if m.String() != want {
			t.Fatalf("FromEntropy(%x) = %q, want %q", entropy, m.String(), want)
		}
		if err := d.Validate(m); err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
	}
}

func TestFromEntropy_WrongLength(t *testing.T) {
	d := testDeriver(t)
	for _, n := range []int{0, 16, 31, 33} {
		if _, err := d.FromEntropy(make([]byte, n)); err == nil {
			t.Errorf("FromEntropy(%d bytes) should fail", n)
		}
	}
}
