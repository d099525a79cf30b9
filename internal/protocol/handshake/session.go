package handshake

import (
	"io"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"sslsim/internal/cert"
	"sslsim/internal/domain"
	"sslsim/internal/protocol/keyex"
	"sslsim/internal/record"
	"sslsim/internal/util/memzero"
)

const (
	// HelloCipherSuite is the single suite the simulator speaks.
	HelloCipherSuite = "TLS_RSA_WITH_AES_256"

	helloAccepted     = "Cipher Suite Accepted"
	certRequestPrompt = "Please respond with certificate."
	alertText         = "transcript verification failed"
)

// Config carries everything a Session needs besides the stream itself.
type Config struct {
	// Identity is the local long-term key material.
	Identity domain.Identity
	// ExpectedPeer is the common name the remote certificate must carry.
	ExpectedPeer string
	// Logger receives per-step events. Defaults to a disabled logger.
	Logger zerolog.Logger
	// Now overrides the validity-check clock. Defaults to time.Now.
	Now func() time.Time
}

// Session is the state shared by both roles: the stream, the transcript, and
// the secrets accumulated along the way. It is not safe for concurrent use.
type Session struct {
	id   string
	role Role
	conn *record.Conn
	cfg  Config
	log  zerolog.Logger
	now  func() time.Time

	state      State
	transcript Transcript
	sealed     bool

	peer          cert.Peer
	premasterWire []byte
	keys          domain.SessionKeys
}

func newSession(role Role, rw io.ReadWriter, cfg Config) *Session {
	id := xid.New().String()
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:    id,
		role:  role,
		conn:  record.NewConn(rw),
		cfg:   cfg,
		log:   cfg.Logger.With().Str("session", id).Str("role", role.String()).Logger(),
		now:   now,
		state: StateInit,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// advance moves to next, which must be the immediate successor of the
// current state. Skips and regressions are programming errors surfaced here.
func (s *Session) advance(next State) error {
	if s.state == StateFail || next != s.state+1 {
		return s.fail(domain.Failf(domain.ClassTransport,
			"handshake: illegal transition %s -> %s", s.state, next))
	}
	s.log.Debug().Stringer("state", next).Msg("state advanced")
	s.state = next
	return nil
}

// fail moves to the terminal FAIL state, discarding all session secrets, and
// returns err for the caller to propagate.
func (s *Session) fail(err error) error {
	s.log.Error().Stringer("class", domain.ClassOf(err)).Err(err).Msg("handshake failed")
	s.state = StateFail
	s.discard()
	return err
}

func (s *Session) discard() {
	s.keys.Wipe()
	s.transcript.Wipe()
	memzero.Zero(s.premasterWire)
	s.premasterWire = nil
}

// send frames payloads as one record of type t, transcribing it while the
// transcript is open.
func (s *Session) send(t record.Type, payloads ...[]byte) error {
	rec, err := s.conn.Write(t, payloads...)
	if err != nil {
		return domain.FailWith(domain.ClassTransport, err)
	}
	s.log.Debug().Stringer("type", t).Msg("record sent")
	s.transcribe(rec)
	return nil
}

// expect reads the next record and requires it to be of type want. An alert
// arriving instead means the peer aborted after a Finished mismatch.
func (s *Session) expect(want record.Type) (record.Record, error) {
	rec, err := s.conn.Read()
	if err != nil {
		return record.Record{}, domain.FailWith(domain.ClassTransport, err)
	}
	if rec.Header.Type == record.TypeAlert && want != record.TypeAlert {
		return record.Record{}, domain.Failf(domain.ClassTranscriptMismatch,
			"handshake: peer alert: %s", firstPayload(rec))
	}
	if rec.Header.Type != want {
		return record.Record{}, domain.Failf(domain.ClassTransport,
			"handshake: expected %s, received %s", want, rec.Header.Type)
	}
	s.log.Debug().Stringer("type", want).Msg("record received")
	s.transcribe(rec)
	return rec, nil
}

func (s *Session) transcribe(rec record.Record) {
	if s.sealed {
		return
	}
	s.transcript.Append(rec.Raw)
}

// payloadAt bounds-checks access to a record payload.
func payloadAt(rec record.Record, i int) ([]byte, error) {
	if i >= len(rec.Payloads) {
		return nil, domain.Failf(domain.ClassTransport,
			"handshake: %s record carries %d payloads, need %d", rec.Header.Type, len(rec.Payloads), i+1)
	}
	return rec.Payloads[i], nil
}

func firstPayload(rec record.Record) []byte {
	if len(rec.Payloads) == 0 {
		return nil
	}
	return rec.Payloads[0]
}

// deriveKeys turns the premaster into session keys, wipes the premaster, and
// seals the transcript: nothing after this point is tagged.
func (s *Session) deriveKeys(premaster []byte) {
	s.keys = keyex.DeriveSessionKeys(premaster)
	memzero.Zero(premaster)
	s.sealed = true
	s.log.Info().Int("transcript_len", s.transcript.Len()).Msg("session keys derived")
}

// finishedExchange swaps and verifies Finished tag lists. Both lists are
// computed before any bytes move so neither side blocks the other on an
// unbuffered stream. The server sends first; the client verifies before
// answering.
func (s *Session) finishedExchange() error {
	ours := Tags(&s.transcript, s.role.label(), s.premasterWire)
	expected := Tags(&s.transcript, s.role.peer().label(), s.premasterWire)
	encoded, err := encodeTags(ours)
	if err != nil {
		return s.fail(domain.FailWith(domain.ClassCrypto, err))
	}

	verify := func(rec record.Record) error {
		body, err := payloadAt(rec, 0)
		if err != nil {
			return s.fail(err)
		}
		theirs, err := decodeTags(body)
		if err != nil {
			return s.failWithAlert(domain.Failf(domain.ClassTranscriptMismatch,
				"handshake: malformed finished payload: %v", err))
		}
		if !TagsEqual(expected, theirs) {
			return s.failWithAlert(domain.Failf(domain.ClassTranscriptMismatch,
				"handshake: finished tags do not match transcript"))
		}
		return nil
	}

	if s.role == RoleServer {
		if err := s.send(record.TypeFinished, encoded); err != nil {
			return s.fail(err)
		}
		if err := s.advance(StateSentFinished); err != nil {
			return err
		}
		rec, err := s.expect(record.TypeFinished)
		if err != nil {
			return s.fail(err)
		}
		if err := s.advance(StateWaitPeerFinished); err != nil {
			return err
		}
		if err := verify(rec); err != nil {
			return err
		}
	} else {
		rec, err := s.expect(record.TypeFinished)
		if err != nil {
			return s.fail(err)
		}
		if err := verify(rec); err != nil {
			return err
		}
		if err := s.send(record.TypeFinished, encoded); err != nil {
			return s.fail(err)
		}
		if err := s.advance(StateSentFinished); err != nil {
			return err
		}
		if err := s.advance(StateWaitPeerFinished); err != nil {
			return err
		}
	}

	if err := s.advance(StateVerified); err != nil {
		return err
	}
	s.transcript.Wipe()
	s.log.Info().Msg("transcript verified")
	return nil
}

// failWithAlert notifies the peer before failing. The alert itself is
// best-effort; the local abort happens regardless.
func (s *Session) failWithAlert(cause error) error {
	if _, err := s.conn.Write(record.TypeAlert, []byte(alertText)); err != nil {
		s.log.Warn().Err(err).Msg("alert not delivered")
	}
	return s.fail(cause)
}
