package identity

import (
	"errors"
	"testing"
	"time"

	"sslsim/internal/cert"
	"sslsim/internal/store"
)

const goodPassphrase = "Str0ng&long-passphrase"

func TestGenerateAndLoad(t *testing.T) {
	svc := New(store.NewIdentityFileStore(t.TempDir()), cert.New())

	id, fp, err := svc.Generate(goodPassphrase, "Alice", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if fp == "" {
		t.Fatal("empty fingerprint")
	}
	if cn := id.Cert.Parsed.Subject.CommonName; cn != "Alice" {
		t.Fatalf("common name = %q, want Alice", cn)
	}

	loaded, err := svc.Load(goodPassphrase)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Key.Equal(id.Key) {
		t.Fatal("loaded key does not match generated key")
	}

	fp2, err := svc.Fingerprint(goodPassphrase)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp2 != fp {
		t.Fatalf("fingerprint changed across load: %s vs %s", fp, fp2)
	}
}

func TestGenerateRejectsWeakPassphrase(t *testing.T) {
	svc := New(store.NewIdentityFileStore(t.TempDir()), cert.New())

	for _, weak := range []string{"", "short1!A", "alllowercaseandlong1!"} {
		if _, _, err := svc.Generate(weak, "Alice", time.Hour); !errors.Is(err, ErrWeakPassphrase) {
			t.Fatalf("passphrase %q: err = %v, want ErrWeakPassphrase", weak, err)
		}
	}
}

func TestGenerateRequiresCommonName(t *testing.T) {
	svc := New(store.NewIdentityFileStore(t.TempDir()), cert.New())
	if _, _, err := svc.Generate(goodPassphrase, "", time.Hour); err == nil {
		t.Fatal("expected error for empty common name")
	}
}
