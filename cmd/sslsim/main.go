package main

import (
	"os"

	"sslsim/cmd/sslsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
