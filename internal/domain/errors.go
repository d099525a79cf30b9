package domain

import (
	"errors"
	"fmt"
)

// Certificate validation failures, one sentinel per fatal check.
var (
	ErrBadSignature      = errors.New("certificate self-signature invalid")
	ErrMissingCommonName = errors.New("certificate subject has no common name")
	ErrIdentityMismatch  = errors.New("certificate common name does not match expected peer")
	ErrNotYetValid       = errors.New("certificate not yet valid")
	ErrExpired           = errors.New("certificate expired")
)

// Class partitions every fatal condition a connection can hit. No step
// recovers locally: a failure of any class aborts the whole handshake.
type Class int

const (
	// ClassStartup covers identity/key load failures before any connection.
	ClassStartup Class = iota + 1
	// ClassCertificate covers signature, identity and validity failures.
	ClassCertificate
	// ClassCrypto covers malformed ciphertext, padding and MAC input.
	ClassCrypto
	// ClassTranscriptMismatch is a failed Finished verification. The alert is
	// sent and no application data is exchanged.
	ClassTranscriptMismatch
	// ClassTransport covers a closed, unreadable or out-of-order stream.
	ClassTransport
)

func (c Class) String() string {
	switch c {
	case ClassStartup:
		return "startup"
	case ClassCertificate:
		return "certificate"
	case ClassCrypto:
		return "crypto"
	case ClassTranscriptMismatch:
		return "transcript-mismatch"
	case ClassTransport:
		return "transport"
	default:
		return "unclassified"
	}
}

// Failure wraps the cause of an aborted handshake with its class. It
// propagates to the connection handler, which closes the stream and discards
// the transcript and session keys before returning to idle.
type Failure struct {
	Class Class
	Err   error
}

func (f *Failure) Error() string { return fmt.Sprintf("%s: %v", f.Class, f.Err) }

func (f *Failure) Unwrap() error { return f.Err }

// Failf builds a classified Failure from a formatted cause.
func Failf(class Class, format string, args ...any) *Failure {
	return &Failure{Class: class, Err: fmt.Errorf(format, args...)}
}

// FailWith classifies an existing error. The cause stays unwrappable, so
// errors.Is still matches the certificate sentinels through it.
func FailWith(class Class, err error) *Failure {
	return &Failure{Class: class, Err: err}
}

// ClassOf reports the failure class of err, or zero if err is unclassified.
func ClassOf(err error) Class {
	var f *Failure
	if errors.As(err, &f) {
		return f.Class
	}
	return 0
}
