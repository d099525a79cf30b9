package identity

import (
	"fmt"
	"time"
	"unicode"

	"sslsim/internal/cert"
	"sslsim/internal/crypto"
	"sslsim/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages identity creation and access using a backing store.
//
// The identity contains an RSA key pair and the self-signed certificate
// presented to peers during the handshake.
type Service struct {
	store     domain.IdentityStore
	authority *cert.Authority
}

// New returns an identity service backed by the given store.
func New(s domain.IdentityStore, a *cert.Authority) *Service {
	return &Service{store: s, authority: a}
}

// Generate creates a new identity for commonName, saves it encrypted with the
// passphrase, and returns the identity plus a short fingerprint of the public key.
func (s *Service) Generate(passphrase, commonName string, ttl time.Duration) (domain.Identity, string, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.Identity{}, "", ErrWeakPassphrase
	}
	if commonName == "" {
		return domain.Identity{}, "", fmt.Errorf("identity: common name required")
	}

	id, err := s.authority.Issue(commonName, time.Now(), ttl)
	if err != nil {
		return domain.Identity{}, "", err
	}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return domain.Identity{}, "", err
	}
	return id, fingerprint(id), nil
}

// Load decrypts and returns the local identity.
func (s *Service) Load(passphrase string) (domain.Identity, error) {
	return s.store.LoadIdentity(passphrase)
}

// Fingerprint returns a short fingerprint of the local public key.
func (s *Service) Fingerprint(passphrase string) (string, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	return fingerprint(id), nil
}

func fingerprint(id domain.Identity) string {
	return crypto.Fingerprint(id.Cert.Parsed.RawSubjectPublicKeyInfo)
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
