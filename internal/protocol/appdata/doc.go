// Package appdata protects the bulk transfer after a verified handshake:
// AES-256-CBC for confidentiality, encrypt-then-MAC with HMAC-SHA256 for
// integrity. Ciphertext and tag travel as separate records.
package appdata
