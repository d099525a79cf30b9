package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/xerrors"
)

// EncryptCBC encrypts plaintext with AES-256-CBC under key, prefixing a fresh
// random IV to the ciphertext. Plaintext is PKCS#7 padded to the block size.
func EncryptCBC(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, xerrors.Errorf("crypto: init cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, block.BlockSize()+len(padded))
	iv := out[:block.BlockSize()]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, xerrors.Errorf("crypto: read iv: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[block.BlockSize():], padded)
	return out, nil
}

// DecryptCBC reverses EncryptCBC, expecting the IV at the front of ciphertext.
func DecryptCBC(key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, xerrors.Errorf("crypto: init cipher: %w", err)
	}
	bs := block.BlockSize()
	if len(ciphertext) < 2*bs || len(ciphertext)%bs != 0 {
		return nil, xerrors.New("crypto: ciphertext length invalid")
	}

	iv, body := ciphertext[:bs], ciphertext[bs:]
	padded := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, body)
	return pkcs7Unpad(padded, bs)
}

// TagSHA256 returns the HMAC-SHA256 tag of msg under key.
func TagSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// VerifyTagSHA256 reports whether tag is the HMAC-SHA256 of msg under key.
func VerifyTagSHA256(key, msg, tag []byte) bool {
	return hmac.Equal(TagSHA256(key, msg), tag)
}

func pkcs7Pad(b []byte, bs int) []byte {
	n := bs - len(b)%bs
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, bs int) ([]byte, error) {
	if len(b) == 0 || len(b)%bs != 0 {
		return nil, xerrors.New("crypto: padded length invalid")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > bs || n > len(b) {
		return nil, xerrors.New("crypto: bad padding byte")
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, xerrors.New("crypto: bad padding")
		}
	}
	return b[:len(b)-n], nil
}
