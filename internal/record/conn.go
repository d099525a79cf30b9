package record

import (
	"encoding/binary"
	"io"

	"golang.org/x/xerrors"
)

// Record is one framed message as it appeared on the wire.
type Record struct {
	Header   Header
	Raw      []byte // header bytes followed by payload bytes
	Payloads [][]byte
}

// Conn reads and writes records over an underlying byte stream. It performs
// no internal buffering or locking; the handshake drives it strictly in turn.
type Conn struct {
	rw io.ReadWriter
}

// NewConn wraps an open byte stream.
func NewConn(rw io.ReadWriter) *Conn { return &Conn{rw: rw} }

// Write frames payloads as a single record of type t and sends it. The
// returned Record carries the exact bytes written, for transcript use.
func (c *Conn) Write(t Type, payloads ...[]byte) (Record, error) {
	h := Header{Version: Version, Type: t, Lengths: make([]uint32, len(payloads))}
	for i, p := range payloads {
		if len(p) > maxPayload {
			return Record{}, xerrors.Errorf("record: payload %d length %d exceeds limit", i, len(p))
		}
		h.Lengths[i] = uint32(len(p))
	}

	raw := h.Encode()
	for _, p := range payloads {
		raw = append(raw, p...)
	}
	if _, err := c.rw.Write(raw); err != nil {
		return Record{}, xerrors.Errorf("record: write %s: %w", t, err)
	}
	return Record{Header: h, Raw: raw, Payloads: payloads}, nil
}

// Read blocks until a full record arrives and returns it.
func (c *Conn) Read() (Record, error) {
	prefix := make([]byte, headerPrefixLen)
	if _, err := io.ReadFull(c.rw, prefix); err != nil {
		return Record{}, xerrors.Errorf("record: read header: %w", err)
	}

	h := Header{
		Version: binary.BigEndian.Uint16(prefix[0:2]),
		Type:    Type(prefix[2]),
	}
	if h.Version != Version {
		return Record{}, xerrors.Errorf("record: unsupported version %#04x", h.Version)
	}
	count := int(prefix[3])

	lengths := make([]byte, 4*count)
	if _, err := io.ReadFull(c.rw, lengths); err != nil {
		return Record{}, xerrors.Errorf("record: read lengths: %w", err)
	}
	h.Lengths = make([]uint32, count)
	total := 0
	for i := range h.Lengths {
		n := binary.BigEndian.Uint32(lengths[4*i:])
		if n > maxPayload {
			return Record{}, xerrors.Errorf("record: payload %d length %d exceeds limit", i, n)
		}
		h.Lengths[i] = n
		total += int(n)
	}
	if total > maxPayload {
		return Record{}, xerrors.Errorf("record: payloads total %d exceeds limit", total)
	}

	body := make([]byte, total)
	if _, err := io.ReadFull(c.rw, body); err != nil {
		return Record{}, xerrors.Errorf("record: read payloads: %w", err)
	}

	payloads := make([][]byte, count)
	off := 0
	for i, n := range h.Lengths {
		payloads[i] = body[off : off+int(n)]
		off += int(n)
	}

	raw := append(append(append([]byte(nil), prefix...), lengths...), body...)
	return Record{Header: h, Raw: raw, Payloads: payloads}, nil
}
