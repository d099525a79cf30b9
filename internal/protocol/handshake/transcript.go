package handshake

import "sslsim/internal/util/memzero"

// Transcript is the ordered list of raw record bytes both sides accumulate
// during the handshake. It is append-only until sealed at key derivation;
// the Finished exchange itself is never part of it.
type Transcript struct {
	entries [][]byte
}

// Append copies raw into the transcript.
func (t *Transcript) Append(raw []byte) {
	t.entries = append(t.entries, append([]byte(nil), raw...))
}

// Len reports the number of recorded records.
func (t *Transcript) Len() int { return len(t.entries) }

func (t *Transcript) at(i int) []byte { return t.entries[i] }

// Wipe zeroes and drops every entry.
func (t *Transcript) Wipe() {
	for _, e := range t.entries {
		memzero.Zero(e)
	}
	t.entries = nil
}
