package appdata

import (
	"golang.org/x/xerrors"

	"sslsim/internal/crypto"
	"sslsim/internal/domain"
)

// Seal encrypts plaintext under the session keys and tags the ciphertext.
func Seal(keys domain.SessionKeys, plaintext []byte) (ct, tag []byte, err error) {
	ct, err = crypto.EncryptCBC(keys.Enc, plaintext)
	if err != nil {
		return nil, nil, domain.FailWith(domain.ClassCrypto, xerrors.Errorf("appdata: encrypt: %w", err))
	}
	return ct, crypto.TagSHA256(keys.Mac, ct), nil
}

// Open verifies the tag over the ciphertext before decrypting. A bad tag
// rejects the record without touching the cipher.
func Open(keys domain.SessionKeys, ct, tag []byte) ([]byte, error) {
	if !crypto.VerifyTagSHA256(keys.Mac, ct, tag) {
		return nil, domain.Failf(domain.ClassCrypto, "appdata: integrity tag mismatch")
	}
	plaintext, err := crypto.DecryptCBC(keys.Enc, ct)
	if err != nil {
		return nil, domain.FailWith(domain.ClassCrypto, xerrors.Errorf("appdata: decrypt: %w", err))
	}
	return plaintext, nil
}
