package app

import "github.com/rs/zerolog"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home   string         // config directory, e.g. $HOME/.sslsim
	Logger zerolog.Logger // root logger shared by all components
}
