package wallet

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

// vector is a known-answer case computed with the default seed key.
type vector struct {
	name     string
	entropy  []byte
	digest   string
	checksum byte
	indices  []int
	words    string
	seed     string
	from, to int
	edSeed   string
	edPub    string
	secPriv  string
	secPub   string
}

func seqBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func repeatIdx(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

var vectors = []vector{
	{
		name:     "zero",
		entropy:  make([]byte, 32),
		digest:   "66687aadf862bd776c8fc18b8e9f8e20089714856ee233b3902a591d0d5f2925",
		checksum: 0x66,
		indices:  append(repeatIdx(0, 23), 102),
		words:    strings.Repeat("abandon ", 23) + "art",
		seed:     "e40249d8a41d033a039443ed9b35a35c7b5b0a9fe6178bb0b96e4a1356be44da64651e5417a062c15f29337eade80c979303c5d8b29fc91ea33d8f9e3974649f",
		from:     6,
		to:       38,
		edSeed:   "033a039443ed9b35a35c7b5b0a9fe6178bb0b96e4a1356be44da64651e5417a0",
		edPub:    "5308b6e482a2b04854017f2032472b836011dede121ffe0cda44918514bc54ea",
		secPriv:  "c21abd116cea8dd3db5e81b271f5d6d8916ad87476a34ae350f8b8878b5161d4",
		secPub:   "02e55aa49269437af1e20f47e34016267ecdcf99f0d796dd99aa6676cea8a64112",
	},
	{
		name:     "all ones",
		entropy:  bytes.Repeat([]byte{0xff}, 32),
		digest:   "af9613760f72635fbdb44a5a0a63c39f12af30f950a6ee5c971be188e89c4051",
		checksum: 175,
		indices:  append(repeatIdx(2047, 23), 1967),
		words:    strings.Repeat("zoo ", 23) + "vote",
		seed:     "14faed48dd80fbdb7a87db7ab80fc55b79a97b16844fdf1fb71748394976135d4e06e38544e91eaabdf18c8f9ff7446a234abc03a4520dcf9d8addbfcc734dc9",
		from:     15,
		to:       47,
		edSeed:   "5b79a97b16844fdf1fb71748394976135d4e06e38544e91eaabdf18c8f9ff744",
		edPub:    "5a8929527684f0a0ac3c0c7e0277e2020270123fb11c64bd0d4d4bbcceb62bba",
		secPriv:  "7f2dd8af7719b69f4232c67b15b6f3b3736aefe9c65dc6e54392a121ba9ddfdc",
		secPub:   "024b42a3926f0748d0dd62dc7e06ab241726e80c92f667ae26d43c42f8bf9e5158",
	},
	{
		name:     "sequence",
		entropy:  seqBytes(32),
		digest:   "630dcd2966c4336691125448bbb25b4ff412a49c732db2c8abc1b8581bd710dd",
		checksum: 99,
		indices:  []int{0, 64, 1030, 64, 643, 28, 257, 266, 88, 771, 540, 241, 8, 1096, 610, 1045, 176, 1478, 50, 417, 1422, 116, 963, 1891},
		words:    "abandon amount liar amount expire adjust cage candy arch gather drum bullet absurd math era live bid rhythm alien crouch range attend journey unaware",
		seed:     "c9c9122e1ea656e98fbed50d9598b25339a9cf66ca188a1743c86625c30b486c431b2acadd318c59f4aa6879dbd151e6849f21d8fcb4992ed25e2e9b659cef17",
		from:     3,
		to:       35,
		edSeed:   "2e1ea656e98fbed50d9598b25339a9cf66ca188a1743c86625c30b486c431b2a",
		edPub:    "a194a22cd379e5dfe210f939beda9c1a7a0d344cb011b2be6175a931f147b565",
		secPriv:  "d66fa69eb0af0f528d7d0621cc03b2b8dba253ab23de47f5b406783f927431dc",
		secPub:   "033f640980d35a96250534d1aeb9865293761752a5c9b6018bd188933b067e3e43",
	},
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func mustMnemonic(t *testing.T, s string) Mnemonic {
	t.Helper()
	m := ParseMnemonic(s)
	if len(m) != WordCount {
		t.Fatalf("fixture has %d words, want %d", len(m), WordCount)
	}
	return m
}

func testDeriver(t *testing.T) *Deriver {
	t.Helper()
	d, err := NewDeriver(DefaultParams())
	if err != nil {
		t.Fatalf("NewDeriver() error: %v", err)
	}
	return d
}
