// Package handshake drives the full connection lifecycle for both endpoints.
//
// A connection walks a single ordered sequence of states, phrased from the
// server's perspective; the client mirrors each phase from its side:
//
//	INIT -> WAIT_HELLO -> SENT_HELLO -> SENT_CERT -> SENT_CERT_REQUEST
//	     -> WAIT_PEER_CERT -> VALIDATING_CERT -> SENT_CHALLENGE
//	     -> WAIT_CHALLENGE_RESPONSE -> WAIT_PREMASTER -> KEYS_DERIVED
//	     -> SENT_FINISHED -> WAIT_PEER_FINISHED -> VERIFIED
//	     -> DATA_TRANSFER -> CLOSED
//
// Any failure moves the session to FAIL, a terminal state: the stream is
// closed and transcript plus keys are discarded. A Finished mismatch sends a
// single alert record before failing.
//
// A Session is single-goroutine; run one connection at a time per identity.
package handshake
