package domain

import "time"

// IdentityStore persists the long-term key material at rest.
type IdentityStore interface {
	SaveIdentity(passphrase string, id Identity) error
	LoadIdentity(passphrase string) (Identity, error)
}

// IdentityService creates, loads and fingerprints the local identity.
type IdentityService interface {
	Generate(passphrase, commonName string, ttl time.Duration) (Identity, string, error)
	Load(passphrase string) (Identity, error)
	Fingerprint(passphrase string) (string, error)
}
