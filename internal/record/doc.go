// Package record frames handshake and application messages on the wire.
//
// Every record is a big-endian header followed by its payloads:
//
//	version (2 bytes) | type (1) | payload count (1) | length (4) per payload
//
// The header bytes and payload bytes together are what the handshake
// transcript records, so both sides hash identical input.
package record
