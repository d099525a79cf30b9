// Package commands defines the sslsim CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init           Create or rotate the local identity
//   - fingerprint    Print the identity fingerprint
//   - serve          Accept one connection, handshake, send a protected file
//   - connect        Dial a server, handshake, receive the protected file
//
// # Implementation
//
// The root command builds the dependency graph (store, authority, identity
// service) and a console logger before any subcommand runs, so handlers share
// an app context.
package commands
