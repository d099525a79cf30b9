package handshake

import (
	"bytes"
	"io"

	"sslsim/internal/cert"
	"sslsim/internal/domain"
	"sslsim/internal/protocol/appdata"
	"sslsim/internal/protocol/keyex"
	"sslsim/internal/record"
)

// Server drives the accepting side of a connection.
type Server struct {
	*Session
}

// NewServer wraps an accepted stream.
func NewServer(rw io.ReadWriter, cfg Config) *Server {
	return &Server{Session: newSession(RoleServer, rw, cfg)}
}

// Run performs the full handshake and, on success, delivers payload to the
// client as a single protected transfer. It returns nil only from CLOSED.
func (s *Server) Run(payload []byte) error {
	if err := s.advance(StateWaitHello); err != nil {
		return err
	}

	// Hello: the client opens with its one supported suite.
	hello, err := s.expect(record.TypeClientHello)
	if err != nil {
		return s.fail(err)
	}
	suite, err := payloadAt(hello, 0)
	if err != nil {
		return s.fail(err)
	}
	if string(suite) != HelloCipherSuite {
		return s.fail(domain.Failf(domain.ClassTransport,
			"handshake: unsupported cipher suite %q", suite))
	}
	if err := s.send(record.TypeServerHello, []byte(helloAccepted)); err != nil {
		return s.fail(err)
	}
	if err := s.advance(StateSentHello); err != nil {
		return err
	}

	// Certificates: ours out, then request and collect the client's.
	if err := s.send(record.TypeCertificate, s.cfg.Identity.Cert.Raw); err != nil {
		return s.fail(err)
	}
	if err := s.advance(StateSentCert); err != nil {
		return err
	}
	if err := s.send(record.TypeCertificateRequest, []byte(certRequestPrompt)); err != nil {
		return s.fail(err)
	}
	if err := s.advance(StateSentCertRequest); err != nil {
		return err
	}
	peerCert, err := s.expect(record.TypeCertificate)
	if err != nil {
		return s.fail(err)
	}
	if err := s.advance(StateWaitPeerCert); err != nil {
		return err
	}

	der, err := payloadAt(peerCert, 0)
	if err != nil {
		return s.fail(err)
	}
	peer, err := cert.Validate(der, s.cfg.ExpectedPeer, s.now())
	if err != nil {
		return s.fail(err)
	}
	s.peer = peer
	s.log.Info().
		Str("peer", peer.Name).
		Str("serial", peer.Cert.Parsed.SerialNumber.String()).
		Stringer("sig_alg", peer.Cert.Parsed.SignatureAlgorithm).
		Time("not_before", peer.Cert.Parsed.NotBefore).
		Time("not_after", peer.Cert.Parsed.NotAfter).
		Msg("peer certificate accepted")
	if err := s.advance(StateValidatingCert); err != nil {
		return err
	}

	// Challenge: prove the client holds the certified private key and can
	// read what we seal under ours.
	nonce, err := keyex.NewChallenge()
	if err != nil {
		return s.fail(err)
	}
	sealed, err := keyex.Seal(s.cfg.Identity.Key, nonce)
	if err != nil {
		return s.fail(err)
	}
	if err := s.send(record.TypeServerKeyExchange, sealed); err != nil {
		return s.fail(err)
	}
	if err := s.advance(StateSentChallenge); err != nil {
		return err
	}

	resp, err := s.expect(record.TypeClientKeyExchange)
	if err != nil {
		return s.fail(err)
	}
	respWire, err := payloadAt(resp, 0)
	if err != nil {
		return s.fail(err)
	}
	echoed, err := keyex.Open(peer.Key, respWire)
	if err != nil {
		return s.fail(err)
	}
	if !bytes.Equal(echoed, nonce) {
		return s.fail(domain.Failf(domain.ClassCrypto, "handshake: challenge echo mismatch"))
	}
	if err := s.advance(StateWaitChallengeResponse); err != nil {
		return err
	}

	// Key exchange: the client's sealed premaster ends the asymmetric phase.
	kx, err := s.expect(record.TypeClientKeyExchange)
	if err != nil {
		return s.fail(err)
	}
	wire, err := payloadAt(kx, 0)
	if err != nil {
		return s.fail(err)
	}
	s.premasterWire = append([]byte(nil), wire...)
	premaster, err := keyex.Open(peer.Key, wire)
	if err != nil {
		return s.fail(err)
	}
	if len(premaster) != keyex.PremasterSize {
		return s.fail(domain.Failf(domain.ClassCrypto,
			"handshake: premaster length %d, want %d", len(premaster), keyex.PremasterSize))
	}
	if err := s.advance(StateWaitPremaster); err != nil {
		return err
	}
	s.deriveKeys(premaster)
	if err := s.advance(StateKeysDerived); err != nil {
		return err
	}

	if err := s.finishedExchange(); err != nil {
		return err
	}

	// Protected transfer: ciphertext record, then its tag.
	ct, tag, err := appdata.Seal(s.keys, payload)
	if err != nil {
		return s.fail(err)
	}
	if err := s.send(record.TypeApplicationData, ct); err != nil {
		return s.fail(err)
	}
	if err := s.send(record.TypeApplicationData, tag); err != nil {
		return s.fail(err)
	}
	if err := s.advance(StateDataTransfer); err != nil {
		return err
	}

	if err := s.advance(StateClosed); err != nil {
		return err
	}
	s.keys.Wipe()
	s.log.Info().Int("bytes", len(payload)).Msg("transfer complete")
	return nil
}
