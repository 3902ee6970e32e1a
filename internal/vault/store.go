// Package vault keeps recovery phrases encrypted at rest, together with the
// public keys derived from them.
package vault

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Klingon-tech/klingnet-vault/internal/log"
	"github.com/Klingon-tech/klingnet-vault/internal/storage"
	"github.com/Klingon-tech/klingnet-vault/internal/wallet"
	"github.com/Klingon-tech/klingnet-vault/pkg/crypto"
	"github.com/Klingon-tech/klingnet-vault/pkg/types"
)

// entryVersion is the on-disk format version of an entry.
const entryVersion = 1

var (
	// ErrNotFound is returned when no entry has the requested name.
	ErrNotFound = errors.New("vault entry not found")

	// ErrExists is returned when creating an entry whose name is taken.
	ErrExists = errors.New("vault entry already exists")

	// ErrInvalidName is returned for names outside [a-z0-9_-]{1,64}.
	ErrInvalidName = errors.New("invalid vault entry name")

	// ErrKeyMismatch is returned when a different key is already recorded
	// for the same algorithm.
	ErrKeyMismatch = errors.New("a different key is already recorded for this algorithm")

	nameRegex = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)
)

// entryKeyspace is the storage keyspace holding vault entries.
const entryKeyspace = "entry"

// entryFile is the stored JSON format of a vault entry.
type entryFile struct {
	Version           int        `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	EncryptedMnemonic []byte     `json:"encrypted_mnemonic"`
	Keys              []KeyEntry `json:"keys"`
}

// KeyEntry records a public key derived from an entry's phrase.
type KeyEntry struct {
	Algorithm crypto.Algorithm `json:"algorithm"`
	KeyID     types.KeyID      `json:"key_id"`
	PublicKey string           `json:"public_key"` // hex-encoded
}

// EntryInfo summarizes an entry without decrypting it.
type EntryInfo struct {
	Name      string
	CreatedAt time.Time
	Keys      int
}

// Store manages encrypted phrases in a storage.DB.
type Store struct {
	entries *storage.Keyspace
	params  KDFParams
	closer  io.Closer
}

// NewStore returns a Store over db using params for new entries.
func NewStore(db storage.DB, params KDFParams) (*Store, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Store{entries: storage.NewKeyspace(db, entryKeyspace), params: params}, nil
}

// Open opens a Badger-backed Store in dir. Close releases the database.
func Open(dir string, params KDFParams) (*Store, error) {
	db, err := storage.OpenBadger(dir)
	if err != nil {
		return nil, err
	}
	s, err := NewStore(db, params)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.closer = db
	return s, nil
}

// ValidateName checks that name is 1 to 64 characters of [a-z0-9_-].
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ad binds a ciphertext to its entry name so entries cannot be swapped.
func ad(name string) []byte {
	return []byte("klingvault/v1/" + name)
}

// Create encrypts m under password and stores it as name. Only valid
// phrases are accepted, and their words are stored exactly as given.
func (s *Store) Create(name string, m wallet.Mnemonic, password []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := wallet.ValidateMnemonic(m); err != nil {
		return fmt.Errorf("refusing to store phrase: %w", err)
	}
	exists, err := s.entries.Has(name)
	if err != nil {
		return fmt.Errorf("check entry: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrExists, name)
	}

	plain := []byte(m.String())
	defer zero(plain)

	encrypted, err := Encrypt(plain, password, ad(name), s.params)
	if err != nil {
		return fmt.Errorf("encrypt mnemonic: %w", err)
	}

	ef := entryFile{
		Version:           entryVersion,
		CreatedAt:         time.Now().UTC(),
		EncryptedMnemonic: encrypted,
		Keys:              []KeyEntry{},
	}
	if err := s.write(name, &ef); err != nil {
		return err
	}

	log.Vault.Info().Str("name", name).Msg("Vault entry created")
	return nil
}

// Load decrypts and returns the phrase stored as name.
func (s *Store) Load(name string, password []byte) (wallet.Mnemonic, error) {
	ef, err := s.read(name)
	if err != nil {
		return nil, err
	}

	plain, err := Decrypt(ef.EncryptedMnemonic, password, ad(name))
	if err != nil {
		log.Vault.Warn().Str("name", name).Msg("Vault entry decryption failed")
		return nil, fmt.Errorf("decrypt entry %q: %w", name, err)
	}
	defer zero(plain)

	// The stored text is the phrase verbatim; it is split, never cleaned up,
	// so the seed derived from it cannot change.
	return wallet.Mnemonic(strings.Fields(string(plain))), nil
}

// AddKey records kp's public key on the entry. Recording the same key
// again is a no-op.
func (s *Store) AddKey(name string, kp *crypto.Keypair) error {
	ef, err := s.read(name)
	if err != nil {
		return err
	}

	entry := KeyEntry{
		Algorithm: kp.Algorithm,
		KeyID:     kp.ID(),
		PublicKey: hex.EncodeToString(kp.PublicKey),
	}
	for _, existing := range ef.Keys {
		if existing.Algorithm != entry.Algorithm {
			continue
		}
		if existing.KeyID == entry.KeyID {
			return nil
		}
		return fmt.Errorf("%w: %s on %q", ErrKeyMismatch, entry.Algorithm, name)
	}

	ef.Keys = append(ef.Keys, entry)
	if err := s.write(name, ef); err != nil {
		return err
	}

	log.Vault.Debug().
		Str("name", name).
		Str("algorithm", entry.Algorithm.String()).
		Str("key_id", entry.KeyID.String()).
		Msg("Key recorded")
	return nil
}

// Keys returns the public keys recorded on an entry.
func (s *Store) Keys(name string) ([]KeyEntry, error) {
	ef, err := s.read(name)
	if err != nil {
		return nil, err
	}
	return ef.Keys, nil
}

// List returns every entry, sorted by name.
func (s *Store) List() ([]EntryInfo, error) {
	var infos []EntryInfo
	err := s.entries.Each(func(name string, value []byte) error {
		var ef entryFile
		if err := json.Unmarshal(value, &ef); err != nil {
			return fmt.Errorf("parse entry %q: %w", name, err)
		}
		infos = append(infos, EntryInfo{
			Name:      name,
			CreatedAt: ef.CreatedAt,
			Keys:      len(ef.Keys),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete removes an entry.
func (s *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	exists, err := s.entries.Has(name)
	if err != nil {
		return fmt.Errorf("check entry: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := s.entries.Delete(name); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	log.Vault.Info().Str("name", name).Msg("Vault entry deleted")
	return nil
}

// Close closes the underlying database if the Store opened it.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *Store) write(name string, ef *entryFile) error {
	data, err := json.Marshal(ef)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if err := s.entries.Put(name, data); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

func (s *Store) read(name string) (*entryFile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := s.entries.Get(name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}

	var ef entryFile
	if err := json.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("parse entry: %w", err)
	}
	if ef.Version != entryVersion {
		return nil, fmt.Errorf("unsupported entry version: %d", ef.Version)
	}
	return &ef, nil
}
