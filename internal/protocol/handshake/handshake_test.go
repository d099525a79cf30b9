package handshake

import (
	"crypto/rand"
	"crypto/rsa"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sslsim/internal/cert"
	"sslsim/internal/domain"
	"sslsim/internal/protocol/keyex"
	"sslsim/internal/record"
)

func testIdentity(t *testing.T, cn string) domain.Identity {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	id, err := cert.New().IssueWithKey(key, cn, time.Now().Add(-time.Hour), 48*time.Hour)
	require.NoError(t, err)
	return id
}

func testConfig(id domain.Identity, expectedPeer string) Config {
	return Config{Identity: id, ExpectedPeer: expectedPeer, Logger: zerolog.Nop()}
}

func TestHandshakeAndTransfer(t *testing.T) {
	serverID := testIdentity(t, "Server")
	clientID := testIdentity(t, "Client")
	payload := []byte("top secret document contents")

	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	srv := NewServer(serverConn, testConfig(serverID, "Client"))
	cl := NewClient(clientConn, testConfig(clientID, "Server"))

	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Run(payload) }()

	plaintext, err := cl.Run()
	require.NoError(t, err)
	require.Equal(t, payload, plaintext)

	require.NoError(t, <-srvErr)
	require.Equal(t, StateClosed, srv.State())
	require.Equal(t, StateClosed, cl.State())
}

func TestHandshakeRejectsWrongClientIdentity(t *testing.T) {
	serverID := testIdentity(t, "Server")
	attackerID := testIdentity(t, "Attacker")

	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	srv := NewServer(serverConn, testConfig(serverID, "Client"))
	cl := NewClient(clientConn, testConfig(attackerID, "Server"))

	srvErr := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		srvErr <- srv.Run([]byte("payload"))
	}()

	plaintext, err := cl.Run()
	require.Error(t, err)
	require.Nil(t, plaintext)

	err = <-srvErr
	require.ErrorIs(t, err, domain.ErrIdentityMismatch)
	require.Equal(t, domain.ClassCertificate, domain.ClassOf(err))
	require.Equal(t, StateFail, srv.State())
	require.Equal(t, StateFail, cl.State())
}

func TestHandshakeRejectsExpiredPeerCertificate(t *testing.T) {
	serverID := testIdentity(t, "Server")

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	expiredID, err := cert.New().IssueWithKey(key, "Client", time.Now().Add(-48*time.Hour), time.Hour)
	require.NoError(t, err)

	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	srv := NewServer(serverConn, testConfig(serverID, "Client"))
	cl := NewClient(clientConn, testConfig(expiredID, "Server"))

	srvErr := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		srvErr <- srv.Run([]byte("payload"))
	}()

	_, err = cl.Run()
	require.Error(t, err)
	require.ErrorIs(t, <-srvErr, domain.ErrExpired)
}

// rawFinishedClient follows the protocol correctly up to Finished, then sends
// an empty tag list to provoke the server's alert.
func rawFinishedClient(t *testing.T, conn net.Conn, id domain.Identity) record.Record {
	t.Helper()
	rc := record.NewConn(conn)

	_, err := rc.Write(record.TypeClientHello, []byte(HelloCipherSuite))
	require.NoError(t, err)

	hello, err := rc.Read()
	require.NoError(t, err)
	require.Equal(t, record.TypeServerHello, hello.Header.Type)

	srvCert, err := rc.Read()
	require.NoError(t, err)
	require.Equal(t, record.TypeCertificate, srvCert.Header.Type)
	peer, err := cert.Validate(srvCert.Payloads[0], "Server", time.Now())
	require.NoError(t, err)

	req, err := rc.Read()
	require.NoError(t, err)
	require.Equal(t, record.TypeCertificateRequest, req.Header.Type)

	_, err = rc.Write(record.TypeCertificate, id.Cert.Raw)
	require.NoError(t, err)

	chal, err := rc.Read()
	require.NoError(t, err)
	require.Equal(t, record.TypeServerKeyExchange, chal.Header.Type)
	nonce, err := keyex.Open(peer.Key, chal.Payloads[0])
	require.NoError(t, err)
	echo, err := keyex.Seal(id.Key, nonce)
	require.NoError(t, err)
	_, err = rc.Write(record.TypeClientKeyExchange, echo)
	require.NoError(t, err)

	pm, err := keyex.NewPremaster()
	require.NoError(t, err)
	wire, err := keyex.Seal(id.Key, pm)
	require.NoError(t, err)
	_, err = rc.Write(record.TypeClientKeyExchange, wire)
	require.NoError(t, err)

	fin, err := rc.Read()
	require.NoError(t, err)
	require.Equal(t, record.TypeFinished, fin.Header.Type)

	_, err = rc.Write(record.TypeFinished, []byte("[]"))
	require.NoError(t, err)

	alert, err := rc.Read()
	require.NoError(t, err)
	return alert
}

func TestFinishedMismatchSendsAlert(t *testing.T) {
	serverID := testIdentity(t, "Server")
	clientID := testIdentity(t, "Client")

	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	srv := NewServer(serverConn, testConfig(serverID, "Client"))
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Run([]byte("payload")) }()

	alert := rawFinishedClient(t, clientConn, clientID)
	require.Equal(t, record.TypeAlert, alert.Header.Type)
	require.Equal(t, []byte(alertText), alert.Payloads[0])

	err := <-srvErr
	require.Error(t, err)
	require.Equal(t, domain.ClassTranscriptMismatch, domain.ClassOf(err))
	require.Equal(t, StateFail, srv.State())
}

func TestPeerAlertAbortsClient(t *testing.T) {
	// A fabricated alert in place of any expected record reports the peer's
	// abort rather than an ordering error.
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	cl := NewClient(clientConn, testConfig(testIdentity(t, "Client"), "Server"))

	go func() {
		rc := record.NewConn(serverConn)
		if _, err := rc.Read(); err != nil { // client hello
			return
		}
		_, _ = rc.Write(record.TypeAlert, []byte(alertText))
	}()

	_, err := cl.Run()
	require.Error(t, err)
	require.Equal(t, domain.ClassTranscriptMismatch, domain.ClassOf(err))
	require.Equal(t, StateFail, cl.State())
}
