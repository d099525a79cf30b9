package keyex

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/xerrors"

	"sslsim/internal/crypto"
	"sslsim/internal/domain"
)

const (
	// ChallengeSize is the length of the server's liveness nonce.
	ChallengeSize = 8
	// PremasterSize is the length of the client's premaster secret.
	PremasterSize = 48

	kdfIterations = 65536
	encKeySize    = 32
)

// kdfSalt is fixed so both endpoints derive identical keys from the shared
// premaster alone.
var kdfSalt = []byte("salt")

// NewChallenge returns a fresh random nonce.
func NewChallenge() ([]byte, error) { return randomBytes(ChallengeSize) }

// NewPremaster returns a fresh random premaster secret.
func NewPremaster() ([]byte, error) { return randomBytes(PremasterSize) }

// Seal transforms value under the sender's private key so the peer can verify
// its origin with the certified public key.
func Seal(priv *rsa.PrivateKey, value []byte) ([]byte, error) {
	wire, err := crypto.PrivateTransform(priv, value)
	if err != nil {
		return nil, domain.FailWith(domain.ClassCrypto, xerrors.Errorf("keyex: seal: %w", err))
	}
	return wire, nil
}

// Open recovers the value sealed by the holder of pub's private half.
func Open(pub *rsa.PublicKey, wire []byte) ([]byte, error) {
	value, err := crypto.PublicUntransform(pub, wire)
	if err != nil {
		return nil, domain.FailWith(domain.ClassCrypto, xerrors.Errorf("keyex: open: %w", err))
	}
	return value, nil
}

// DeriveSessionKeys stretches the premaster into the session keys. Both sides
// call this with the same input and must arrive at identical keys.
func DeriveSessionKeys(premaster []byte) domain.SessionKeys {
	enc := pbkdf2.Key(premaster, kdfSalt, kdfIterations, encKeySize, sha256.New)
	mac := sha256.Sum256(premaster)
	return domain.SessionKeys{Enc: enc, Mac: mac[:]}
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, domain.FailWith(domain.ClassCrypto, xerrors.Errorf("keyex: read random: %w", err))
	}
	return b, nil
}
