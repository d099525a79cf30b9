package handshake

import (
	"io"

	"sslsim/internal/cert"
	"sslsim/internal/domain"
	"sslsim/internal/protocol/appdata"
	"sslsim/internal/protocol/keyex"
	"sslsim/internal/record"
)

// Client drives the dialing side of a connection.
type Client struct {
	*Session
}

// NewClient wraps a dialed stream.
func NewClient(rw io.ReadWriter, cfg Config) *Client {
	return &Client{Session: newSession(RoleClient, rw, cfg)}
}

// Run performs the full handshake and returns the plaintext the server
// delivered over the protected channel.
func (c *Client) Run() ([]byte, error) {
	if err := c.advance(StateWaitHello); err != nil {
		return nil, err
	}

	// Hello: offer the one suite and require the fixed acceptance.
	if err := c.send(record.TypeClientHello, []byte(HelloCipherSuite)); err != nil {
		return nil, c.fail(err)
	}
	hello, err := c.expect(record.TypeServerHello)
	if err != nil {
		return nil, c.fail(err)
	}
	accept, err := payloadAt(hello, 0)
	if err != nil {
		return nil, c.fail(err)
	}
	if string(accept) != helloAccepted {
		return nil, c.fail(domain.Failf(domain.ClassTransport,
			"handshake: hello rejected: %q", accept))
	}
	if err := c.advance(StateSentHello); err != nil {
		return nil, err
	}

	// Certificates: the server's arrives first, then its request for ours.
	srvCert, err := c.expect(record.TypeCertificate)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.advance(StateSentCert); err != nil {
		return nil, err
	}
	if _, err := c.expect(record.TypeCertificateRequest); err != nil {
		return nil, c.fail(err)
	}
	if err := c.advance(StateSentCertRequest); err != nil {
		return nil, err
	}

	der, err := payloadAt(srvCert, 0)
	if err != nil {
		return nil, c.fail(err)
	}
	peer, err := cert.Validate(der, c.cfg.ExpectedPeer, c.now())
	if err != nil {
		return nil, c.fail(err)
	}
	c.peer = peer
	c.log.Info().
		Str("peer", peer.Name).
		Str("serial", peer.Cert.Parsed.SerialNumber.String()).
		Stringer("sig_alg", peer.Cert.Parsed.SignatureAlgorithm).
		Time("not_before", peer.Cert.Parsed.NotBefore).
		Time("not_after", peer.Cert.Parsed.NotAfter).
		Msg("peer certificate accepted")

	if err := c.send(record.TypeCertificate, c.cfg.Identity.Cert.Raw); err != nil {
		return nil, c.fail(err)
	}
	if err := c.advance(StateWaitPeerCert); err != nil {
		return nil, err
	}
	if err := c.advance(StateValidatingCert); err != nil {
		return nil, err
	}

	// Challenge: recover the server's nonce and echo it under our own key.
	chal, err := c.expect(record.TypeServerKeyExchange)
	if err != nil {
		return nil, c.fail(err)
	}
	chalWire, err := payloadAt(chal, 0)
	if err != nil {
		return nil, c.fail(err)
	}
	nonce, err := keyex.Open(peer.Key, chalWire)
	if err != nil {
		return nil, c.fail(err)
	}
	resealed, err := keyex.Seal(c.cfg.Identity.Key, nonce)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.send(record.TypeClientKeyExchange, resealed); err != nil {
		return nil, c.fail(err)
	}
	if err := c.advance(StateSentChallenge); err != nil {
		return nil, err
	}
	if err := c.advance(StateWaitChallengeResponse); err != nil {
		return nil, err
	}

	// Key exchange: generate the premaster, seal and send it, derive keys.
	premaster, err := keyex.NewPremaster()
	if err != nil {
		return nil, c.fail(err)
	}
	wire, err := keyex.Seal(c.cfg.Identity.Key, premaster)
	if err != nil {
		return nil, c.fail(err)
	}
	c.premasterWire = wire
	if err := c.send(record.TypeClientKeyExchange, wire); err != nil {
		return nil, c.fail(err)
	}
	if err := c.advance(StateWaitPremaster); err != nil {
		return nil, err
	}
	c.deriveKeys(premaster)
	if err := c.advance(StateKeysDerived); err != nil {
		return nil, err
	}

	if err := c.finishedExchange(); err != nil {
		return nil, err
	}

	// Protected transfer: ciphertext record, then its tag.
	ctRec, err := c.expect(record.TypeApplicationData)
	if err != nil {
		return nil, c.fail(err)
	}
	ct, err := payloadAt(ctRec, 0)
	if err != nil {
		return nil, c.fail(err)
	}
	tagRec, err := c.expect(record.TypeApplicationData)
	if err != nil {
		return nil, c.fail(err)
	}
	tag, err := payloadAt(tagRec, 0)
	if err != nil {
		return nil, c.fail(err)
	}
	plaintext, err := appdata.Open(c.keys, ct, tag)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.advance(StateDataTransfer); err != nil {
		return nil, err
	}

	if err := c.advance(StateClosed); err != nil {
		return nil, err
	}
	c.keys.Wipe()
	c.log.Info().Int("bytes", len(plaintext)).Msg("transfer complete")
	return plaintext, nil
}
