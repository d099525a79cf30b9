package domain

import (
	"crypto/rsa"
	"crypto/x509"

	"sslsim/internal/util/memzero"
)

// Certificate is a self-signed X.509 certificate: the exact DER bytes that
// cross the wire, plus the parsed view so trusted bytes are never re-parsed.
type Certificate struct {
	Raw    []byte
	Parsed *x509.Certificate
}

// ParseCertificate builds a Certificate from its wire (DER) form.
func ParseCertificate(der []byte) (Certificate, error) {
	parsed, err := x509.ParseCertificate(der)
	if err != nil {
		return Certificate{}, err
	}
	return Certificate{Raw: der, Parsed: parsed}, nil
}

// Identity is the long-term key material of one endpoint: an RSA key pair and
// the certificate issued over it. It is immutable after load and safe to share
// read-only across any number of sequential connections.
type Identity struct {
	Key  *rsa.PrivateKey
	Cert Certificate
}

// SessionKeys are the symmetric keys derived exactly once per handshake from
// the premaster secret. They are owned by a single connection and must be
// wiped when it closes.
type SessionKeys struct {
	Enc []byte // AES-256 encryption key
	Mac []byte // HMAC-SHA256 integrity key
}

// Wipe overwrites both keys in place.
func (k *SessionKeys) Wipe() {
	memzero.Zero(k.Enc)
	memzero.Zero(k.Mac)
}
