package cert

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"

	"golang.org/x/xerrors"

	"sslsim/internal/domain"
)

// keyBits is the RSA modulus size for issued identities.
const keyBits = 2048

// Authority issues self-signed certificates. Each endpoint acts as its own
// authority; there is no shared trust root, peers pin each other by name.
type Authority struct{}

// New returns an Authority.
func New() *Authority { return &Authority{} }

// Issue generates a fresh RSA keypair and a self-signed certificate for
// commonName, valid from notBefore for ttl.
func (a *Authority) Issue(commonName string, notBefore time.Time, ttl time.Duration) (domain.Identity, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return domain.Identity{}, xerrors.Errorf("cert: generate key: %w", err)
	}
	return a.IssueWithKey(key, commonName, notBefore, ttl)
}

// IssueWithKey self-signs a certificate for an existing key. Exercised
// directly by tests that need deterministic or small keys.
func (a *Authority) IssueWithKey(key *rsa.PrivateKey, commonName string, notBefore time.Time, ttl time.Duration) (domain.Identity, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return domain.Identity{}, xerrors.Errorf("cert: generate serial: %w", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(ttl),
		SignatureAlgorithm:    x509.SHA256WithRSA,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return domain.Identity{}, xerrors.Errorf("cert: create certificate: %w", err)
	}
	c, err := domain.ParseCertificate(der)
	if err != nil {
		return domain.Identity{}, xerrors.Errorf("cert: reparse certificate: %w", err)
	}
	return domain.Identity{Key: key, Cert: c}, nil
}
