package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{input: "ed25519", want: Ed25519},
		{input: "secp256k1", want: Secp256k1},
		{input: "ED25519", want: Ed25519},
		{input: " secp256k1 ", want: Secp256k1},
		{input: "rsa", wantErr: true},
		{input: "", wantErr: true},
		{input: "ed448", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAlgorithm) {
					t.Errorf("ParseAlgorithm(%q) error = %v, want ErrUnknownAlgorithm", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAlgorithm(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestEd25519FromSeed_RFC8032(t *testing.T) {
	// RFC 8032 section 7.1, test 1.
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	wantPub := mustHex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")

	kp, err := Ed25519FromSeed(seed)
	if err != nil {
		t.Fatalf("Ed25519FromSeed() error: %v", err)
	}
	if kp.Algorithm != Ed25519 {
		t.Errorf("Algorithm = %s, want %s", kp.Algorithm, Ed25519)
	}
	if !bytes.Equal(kp.PublicKey, wantPub) {
		t.Errorf("PublicKey = %x, want %x", kp.PublicKey, wantPub)
	}
	if len(kp.PrivateKey) != 64 {
		t.Fatalf("PrivateKey length = %d, want 64", len(kp.PrivateKey))
	}
	if !bytes.Equal(kp.PrivateKey[:32], seed) || !bytes.Equal(kp.PrivateKey[32:], wantPub) {
		t.Error("PrivateKey should be seed || public key")
	}
}

func TestEd25519FromSeed_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 31, 33, 64} {
		if _, err := Ed25519FromSeed(make([]byte, n)); err == nil {
			t.Errorf("Ed25519FromSeed(%d bytes) should fail", n)
		}
	}
}

func TestSecp256k1FromPrivate(t *testing.T) {
	one := make([]byte, 32)
	one[31] = 1

	kp, err := Secp256k1FromPrivate(one)
	if err != nil {
		t.Fatalf("Secp256k1FromPrivate() error: %v", err)
	}
	if kp.Algorithm != Secp256k1 {
		t.Errorf("Algorithm = %s, want %s", kp.Algorithm, Secp256k1)
	}
	if !bytes.Equal(kp.PrivateKey, one) {
		t.Errorf("PrivateKey = %x, want %x", kp.PrivateKey, one)
	}
	want := mustHex(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	if !bytes.Equal(kp.PublicKey, want) {
		t.Errorf("PublicKey = %x, want %x", kp.PublicKey, want)
	}
}

func TestSecp256k1FromPrivate_InvalidScalar(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"zero", make([]byte, 32)},
		{"curve order", mustHex(t, curveOrderHex)},
		{"all 0xff", bytes.Repeat([]byte{0xff}, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Secp256k1FromPrivate(tt.data)
			if !errors.Is(err, ErrInvalidScalar) {
				t.Errorf("error = %v, want ErrInvalidScalar", err)
			}
		})
	}
}

func TestKeypair_SignVerify(t *testing.T) {
	edKP, err := Ed25519FromSeed(bytes.Repeat([]byte{0x07}, 32))
	if err != nil {
		t.Fatalf("Ed25519FromSeed() error: %v", err)
	}
	secKP, err := Secp256k1FromPrivate(bytes.Repeat([]byte{0x07}, 32))
	if err != nil {
		t.Fatalf("Secp256k1FromPrivate() error: %v", err)
	}

	msg := []byte("recover me")
	for _, kp := range []*Keypair{edKP, secKP} {
		t.Run(kp.Algorithm.String(), func(t *testing.T) {
			sig, err := kp.Sign(msg)
			if err != nil {
				t.Fatalf("Sign() error: %v", err)
			}
			if !kp.Verify(msg, sig) {
				t.Error("signature should verify")
			}
			if kp.Verify([]byte("other message"), sig) {
				t.Error("signature should not verify for another message")
			}
			if !VerifyMessage(kp.Algorithm, kp.PublicKey, msg, sig) {
				t.Error("VerifyMessage should accept the signature")
			}
		})
	}
}

func TestKeypair_SignUnknownAlgorithm(t *testing.T) {
	kp := &Keypair{Algorithm: "rsa", PrivateKey: make([]byte, 32)}
	if _, err := kp.Sign([]byte("x")); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Sign() error = %v, want ErrUnknownAlgorithm", err)
	}
	if VerifyMessage("rsa", nil, nil, nil) {
		t.Error("VerifyMessage should reject unknown algorithm")
	}
}

func TestKeypair_IDAndZero(t *testing.T) {
	kp, err := Ed25519FromSeed(bytes.Repeat([]byte{0x09}, 32))
	if err != nil {
		t.Fatalf("Ed25519FromSeed() error: %v", err)
	}

	id := kp.ID()
	if id != KeyIDFromPubKey(Ed25519, kp.PublicKey) {
		t.Error("ID() should match KeyIDFromPubKey")
	}

	kp.Zero()
	if !bytes.Equal(kp.PrivateKey, make([]byte, 64)) {
		t.Error("Zero() should clear private key bytes")
	}
	if kp.ID() != id {
		t.Error("Zero() should not touch the public key")
	}
}
