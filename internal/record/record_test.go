package record

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	conn := NewConn(&buf)

	sent, err := conn.Write(TypeCertificate, []byte("der bytes"), []byte("second"))
	require.NoError(t, err)

	got, err := conn.Read()
	require.NoError(t, err)
	require.Equal(t, Version, got.Header.Version)
	require.Equal(t, TypeCertificate, got.Header.Type)
	require.Len(t, got.Payloads, 2)
	require.Equal(t, []byte("der bytes"), got.Payloads[0])
	require.Equal(t, []byte("second"), got.Payloads[1])
	require.Equal(t, sent.Raw, got.Raw)
}

func TestWriteReadEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	conn := NewConn(&buf)

	_, err := conn.Write(TypeAlert)
	require.NoError(t, err)

	got, err := conn.Read()
	require.NoError(t, err)
	require.Equal(t, TypeAlert, got.Header.Type)
	require.Empty(t, got.Payloads)
}

func TestRawMatchesHeaderEncode(t *testing.T) {
	var buf bytes.Buffer
	sent, err := NewConn(&buf).Write(TypeClientHello, []byte("suite"))
	require.NoError(t, err)
	require.Equal(t, sent.Header.Encode(), sent.Raw[:len(sent.Raw)-5])
	require.Equal(t, []byte("suite"), sent.Raw[len(sent.Raw)-5:])
}

func TestReadRejectsBadVersion(t *testing.T) {
	var buf bytes.Buffer
	conn := NewConn(&buf)
	_, err := conn.Write(TypeClientHello, []byte("x"))
	require.NoError(t, err)

	raw := buf.Bytes()
	raw[0] = 0xff

	_, err = NewConn(bytes.NewBuffer(raw)).Read()
	require.Error(t, err)
}

func TestReadRejectsTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewConn(&buf).Write(TypeClientHello, []byte("hello"))
	require.NoError(t, err)

	raw := buf.Bytes()
	_, err = NewConn(bytes.NewBuffer(raw[:len(raw)-2])).Read()
	require.Error(t, err)
}

func TestReadRejectsOversizedLength(t *testing.T) {
	raw := Header{Version: Version, Type: TypeApplicationData, Lengths: []uint32{1 << 30}}.Encode()
	_, err := NewConn(bytes.NewBuffer(raw)).Read()
	require.Error(t, err)
}

func TestReadRejectsOversizedTotal(t *testing.T) {
	// Each length sits at the per-payload cap, so only the aggregate check
	// can reject the record.
	raw := Header{
		Version: Version,
		Type:    TypeApplicationData,
		Lengths: []uint32{maxPayload, maxPayload},
	}.Encode()
	_, err := NewConn(bytes.NewBuffer(raw)).Read()
	require.Error(t, err)
}
