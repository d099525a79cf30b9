package store

import (
	"crypto/x509"
	"encoding/json"
	"path/filepath"
	"sync"

	"golang.org/x/xerrors"

	"sslsim/internal/domain"
)

const idFilename = "identity.json.enc"

// keystoreRecord is the plaintext form inside the encrypted envelope. Key and
// certificate are stored as DER so the exact issued bytes round-trip.
type keystoreRecord struct {
	KeyDER  []byte `json:"key_der"`
	CertDER []byte `json:"cert_der"`
}

// IdentityFileStore persists the local identity to disk.
type IdentityFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir}
}

// SaveIdentity writes the encrypted identity to disk, replacing any previous
// one atomically.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(keystoreRecord{
		KeyDER:  x509.MarshalPKCS1PrivateKey(id.Key),
		CertDER: id.Cert.Raw,
	})
	if err != nil {
		return err
	}
	ct, err := encrypt(passphrase, raw)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, idFilename), ct, 0o600)
}

// LoadIdentity reads and decrypts the identity.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, idFilename))
	if err != nil {
		return domain.Identity{}, err
	}
	if b == nil {
		return domain.Identity{}, xerrors.New("store: no identity on disk")
	}
	pt, err := decrypt(passphrase, b)
	if err != nil {
		return domain.Identity{}, err
	}

	var rec keystoreRecord
	if err := json.Unmarshal(pt, &rec); err != nil {
		return domain.Identity{}, err
	}
	key, err := x509.ParsePKCS1PrivateKey(rec.KeyDER)
	if err != nil {
		return domain.Identity{}, xerrors.Errorf("store: parse key: %w", err)
	}
	c, err := domain.ParseCertificate(rec.CertDER)
	if err != nil {
		return domain.Identity{}, xerrors.Errorf("store: parse certificate: %w", err)
	}
	return domain.Identity{Key: key, Cert: c}, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
