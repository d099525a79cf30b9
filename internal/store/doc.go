// Package store provides file-based persistence for the local identity.
//
// The RSA key and certificate are serialised as DER inside a JSON record,
// then sealed in a passphrase-encrypted envelope (scrypt key derivation,
// ChaCha20-Poly1305). Methods are concurrency-safe via internal locking.
// The file lives under the user's configured home directory.
package store
