package store

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"sslsim/internal/cert"
	"sslsim/internal/domain"
)

func testIdentity(t *testing.T) domain.Identity {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	id, err := cert.New().IssueWithKey(key, "Alice", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("IssueWithKey: %v", err)
	}
	return id
}

func TestIdentityRoundTrip(t *testing.T) {
	s := NewIdentityFileStore(t.TempDir())
	id := testIdentity(t)

	if err := s.SaveIdentity("correct horse battery staple", id); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	got, err := s.LoadIdentity("correct horse battery staple")
	if err != nil {
		t.Fatalf("LoadIdentity: %v", err)
	}
	if !got.Key.Equal(id.Key) {
		t.Fatal("loaded key does not match saved key")
	}
	if !bytes.Equal(got.Cert.Raw, id.Cert.Raw) {
		t.Fatal("loaded certificate does not match saved certificate")
	}
}

func TestLoadIdentityWrongPassphrase(t *testing.T) {
	s := NewIdentityFileStore(t.TempDir())

	if err := s.SaveIdentity("correct horse battery staple", testIdentity(t)); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	if _, err := s.LoadIdentity("wrong"); err == nil {
		t.Fatal("expected error for wrong passphrase")
	}
}

func TestLoadIdentityMissing(t *testing.T) {
	s := NewIdentityFileStore(t.TempDir())
	if _, err := s.LoadIdentity("anything"); err == nil {
		t.Fatal("expected error when no identity is stored")
	}
}
