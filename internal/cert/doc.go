// Package cert issues and validates the self-signed X.509 certificates the
// two endpoints exchange during the handshake.
//
// Authority generates RSA keypairs and wraps them in self-signed
// certificates. Validate checks a peer's DER certificate: signature,
// common name, identity match and validity window, in that order.
package cert
