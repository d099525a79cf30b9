package record

import "encoding/binary"

// Version is the protocol version carried in every record.
const Version uint16 = 0x0304

// Type identifies what a record carries.
type Type uint8

const (
	TypeClientHello Type = iota + 1
	TypeServerHello
	TypeCertificate
	TypeCertificateRequest
	TypeServerKeyExchange
	TypeClientKeyExchange
	TypeFinished
	TypeApplicationData
	TypeAlert
)

func (t Type) String() string {
	switch t {
	case TypeClientHello:
		return "client_hello"
	case TypeServerHello:
		return "server_hello"
	case TypeCertificate:
		return "certificate"
	case TypeCertificateRequest:
		return "certificate_request"
	case TypeServerKeyExchange:
		return "server_key_exchange"
	case TypeClientKeyExchange:
		return "client_key_exchange"
	case TypeFinished:
		return "finished"
	case TypeApplicationData:
		return "application_data"
	case TypeAlert:
		return "alert"
	default:
		return "unknown"
	}
}

const (
	// maxPayload bounds a single payload length and the sum of all payload
	// lengths in one record, to keep a corrupt or hostile header from
	// provoking a huge allocation.
	maxPayload = 1 << 24

	headerPrefixLen = 4
)

// Header describes one record: version, type and the length of each payload.
type Header struct {
	Version uint16
	Type    Type
	Lengths []uint32
}

// Encode serialises the header to its wire form.
func (h Header) Encode() []byte {
	out := make([]byte, headerPrefixLen+4*len(h.Lengths))
	binary.BigEndian.PutUint16(out[0:2], h.Version)
	out[2] = byte(h.Type)
	out[3] = byte(len(h.Lengths))
	for i, n := range h.Lengths {
		binary.BigEndian.PutUint32(out[headerPrefixLen+4*i:], n)
	}
	return out
}
