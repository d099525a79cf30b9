// Package identity manages creation, encryption and loading of the local identity.
//
// It enforces passphrase policy, issues the RSA keypair and self-signed
// certificate through the cert authority, and persists them via the
// domain.IdentityStore.
package identity
