package crypto

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return key
}

func TestPrivateTransformRoundTrip(t *testing.T) {
	key := testKey(t)
	msg := []byte("premaster secret material")

	wire, err := PrivateTransform(key, msg)
	if err != nil {
		t.Fatalf("PrivateTransform: %v", err)
	}
	if len(wire) != key.Size() {
		t.Fatalf("wire length = %d, want modulus size %d", len(wire), key.Size())
	}

	got, err := PublicUntransform(&key.PublicKey, wire)
	if err != nil {
		t.Fatalf("PublicUntransform: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("round trip mismatch: got %x, want %x", got, msg)
	}
}

func TestPrivateTransformRejectsOversizeMessage(t *testing.T) {
	key := testKey(t)
	msg := make([]byte, key.Size()-10)
	if _, err := PrivateTransform(key, msg); err == nil {
		t.Fatal("expected error for message larger than modulus allows")
	}
}

func TestPublicUntransformRejectsWrongLength(t *testing.T) {
	key := testKey(t)
	if _, err := PublicUntransform(&key.PublicKey, make([]byte, key.Size()-1)); err == nil {
		t.Fatal("expected error for short wire value")
	}
}

func TestPublicUntransformRejectsWrongKey(t *testing.T) {
	keyA, keyB := testKey(t), testKey(t)

	wire, err := PrivateTransform(keyA, []byte("nonce"))
	if err != nil {
		t.Fatalf("PrivateTransform: %v", err)
	}
	if got, err := PublicUntransform(&keyB.PublicKey, wire); err == nil && bytes.Equal(got, []byte("nonce")) {
		t.Fatal("unrelated key recovered the message")
	}
}
