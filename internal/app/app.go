package app

import (
	"github.com/rs/zerolog"

	"sslsim/internal/cert"
	"sslsim/internal/domain"
	identitysvc "sslsim/internal/services/identity"
	"sslsim/internal/store"
)

// App bundles the store, authority and services for the CLI.
type App struct {
	Identity  domain.IdentityService
	Store     domain.IdentityStore
	Authority *cert.Authority
	Log       zerolog.Logger
}

// New constructs the dependency graph from cfg.
func New(cfg Config) *App {
	identityStore := store.NewIdentityFileStore(cfg.Home)
	authority := cert.New()

	return &App{
		Identity:  identitysvc.New(identityStore, authority),
		Store:     identityStore,
		Authority: authority,
		Log:       cfg.Logger,
	}
}
