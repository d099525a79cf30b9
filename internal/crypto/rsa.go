package crypto

import (
	"crypto/rsa"
	"math/big"

	"golang.org/x/xerrors"
)

// PrivateTransform applies the raw RSA private-key operation to msg with
// PKCS#1 v1.5 type 1 padding, the same encoding used for signatures. The
// result is always k bytes long, where k is the modulus size.
//
// crypto/rsa deliberately hides this direction behind Sign*, so the padding
// and modular exponentiation are done here directly.
func PrivateTransform(priv *rsa.PrivateKey, msg []byte) ([]byte, error) {
	k := priv.Size()
	if len(msg) > k-11 {
		return nil, xerrors.Errorf("crypto: message length %d exceeds %d for a %d-byte modulus", len(msg), k-11, k)
	}

	// EM = 0x00 || 0x01 || FF..FF || 0x00 || msg
	em := make([]byte, k)
	em[1] = 1
	for i := 2; i < k-len(msg)-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-len(msg):], msg)

	m := new(big.Int).SetBytes(em)
	c := new(big.Int).Exp(m, priv.D, priv.N)

	out := make([]byte, k)
	c.FillBytes(out)
	return out, nil
}

// PublicUntransform reverses PrivateTransform using the matching public key
// and strips the padding, returning the original message.
func PublicUntransform(pub *rsa.PublicKey, wire []byte) ([]byte, error) {
	k := pub.Size()
	if len(wire) != k {
		return nil, xerrors.Errorf("crypto: wire length %d does not match %d-byte modulus", len(wire), k)
	}

	c := new(big.Int).SetBytes(wire)
	if c.Cmp(pub.N) >= 0 {
		return nil, xerrors.New("crypto: value out of range for modulus")
	}
	m := new(big.Int).Exp(c, big.NewInt(int64(pub.E)), pub.N)

	em := make([]byte, k)
	m.FillBytes(em)
	if em[0] != 0 || em[1] != 1 {
		return nil, xerrors.New("crypto: bad padding prefix")
	}
	sep := 2
	for sep < k && em[sep] == 0xff {
		sep++
	}
	// At least eight bytes of padding, then a zero separator.
	if sep < 10 || sep == k || em[sep] != 0 {
		return nil, xerrors.New("crypto: bad padding")
	}
	return em[sep+1:], nil
}
