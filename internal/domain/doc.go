// Package domain defines core data models and the failure taxonomy shared
// across the simulator. It contains plain types (identities, certificates,
// session keys) and contracts (interfaces) only.
package domain
