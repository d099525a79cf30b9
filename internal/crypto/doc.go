// Package crypto exposes the minimal primitives used by the simulator.
//
// Contents
//
//   - Raw RSA transforms under the sender's private key
//     (PrivateTransform, PublicUntransform)
//   - AES-256-CBC with PKCS#7 padding for bulk data (EncryptCBC, DecryptCBC)
//   - HMAC-SHA256 tagging for encrypt-then-MAC (TagSHA256, VerifyTagSHA256)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// The private-key transform runs RSA in the signing direction: anyone holding
// the public key can recover the payload, so it authenticates the sender
// without hiding the content. Callers that need secrecy must not rely on it.
package crypto
