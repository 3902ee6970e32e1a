// Package types holds small value types shared across the vault packages.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// KeyIDSize is the length of a key identifier in bytes.
const KeyIDSize = 20

// KeyID is a short public identifier for a derived keypair.
// The same public key under two algorithms never shares a KeyID.
type KeyID [KeyIDSize]byte

// String returns the hex-encoded key ID.
func (k KeyID) String() string {
	return hex.EncodeToString(k[:])
}

// Short returns the first 8 hex characters, for display.
func (k KeyID) Short() string {
	return k.String()[:8]
}

// MarshalJSON encodes the key ID as a hex string.
func (k KeyID) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a hex string into a key ID.
func (k *KeyID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*k = KeyID{}
		return nil
	}
	parsed, err := ParseKeyID(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKeyID parses a 40-character hex key ID. A leading "0x" is accepted.
func ParseKeyID(s string) (KeyID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return KeyID{}, fmt.Errorf("empty key id")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return KeyID{}, fmt.Errorf("invalid key id: %w", err)
	}
	if len(b) != KeyIDSize {
		return KeyID{}, fmt.Errorf("key id must be %d bytes, got %d", KeyIDSize, len(b))
	}
	var k KeyID
	copy(k[:], b)
	return k, nil
}
