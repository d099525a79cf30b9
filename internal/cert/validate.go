package cert

import (
	"crypto/rsa"
	"time"

	"golang.org/x/xerrors"

	"sslsim/internal/domain"
)

// Peer holds the verified result of validating a remote certificate.
type Peer struct {
	Name string
	Key  *rsa.PublicKey
	Cert domain.Certificate
}

// Validate parses and checks a peer's DER certificate against the identity we
// expect to be talking to. Checks run in a fixed order: self-signature,
// common name present, name matches expectedCN, then validity window at now.
func Validate(der []byte, expectedCN string, now time.Time) (Peer, error) {
	c, err := domain.ParseCertificate(der)
	if err != nil {
		return Peer{}, domain.FailWith(domain.ClassCertificate, xerrors.Errorf("cert: parse: %w", err))
	}
	parsed := c.Parsed

	if err := parsed.CheckSignature(parsed.SignatureAlgorithm, parsed.RawTBSCertificate, parsed.Signature); err != nil {
		return Peer{}, domain.FailWith(domain.ClassCertificate,
			xerrors.Errorf("cert: self-signature check failed: %v: %w", err, domain.ErrBadSignature))
	}
	cn := parsed.Subject.CommonName
	if cn == "" {
		return Peer{}, domain.FailWith(domain.ClassCertificate,
			xerrors.Errorf("cert: subject has no common name: %w", domain.ErrMissingCommonName))
	}
	if cn != expectedCN {
		return Peer{}, domain.FailWith(domain.ClassCertificate,
			xerrors.Errorf("cert: presented %q, expected %q: %w", cn, expectedCN, domain.ErrIdentityMismatch))
	}
	if now.Before(parsed.NotBefore) {
		return Peer{}, domain.FailWith(domain.ClassCertificate,
			xerrors.Errorf("cert: not valid until %s: %w", parsed.NotBefore.Format(time.RFC3339), domain.ErrNotYetValid))
	}
	if !now.Before(parsed.NotAfter) {
		return Peer{}, domain.FailWith(domain.ClassCertificate,
			xerrors.Errorf("cert: expired at %s: %w", parsed.NotAfter.Format(time.RFC3339), domain.ErrExpired))
	}

	pub, ok := parsed.PublicKey.(*rsa.PublicKey)
	if !ok {
		return Peer{}, domain.FailWith(domain.ClassCertificate,
			xerrors.Errorf("cert: unsupported public key type %T", parsed.PublicKey))
	}
	return Peer{Name: cn, Key: pub, Cert: c}, nil
}
