// Package keyex covers the asymmetric half of the handshake: nonces and the
// premaster secret sealed under the sender's private RSA key, and the
// derivation of session keys from the premaster.
//
// Sealing runs RSA in the signing direction, so it proves possession of the
// certified private key rather than hiding the value. Session keys come from
// PBKDF2-HMAC-SHA256 over the premaster for encryption and a plain SHA-256
// digest of it for integrity.
package keyex
