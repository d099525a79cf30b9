package commands

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"sslsim/internal/domain"
	"sslsim/internal/protocol/handshake"
)

func connectCmd() *cobra.Command {
	var (
		addr string
		peer string
		out  string
	)
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Dial a server and receive the protected file",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Identity.Load(passphrase)
			if err != nil {
				return domain.FailWith(domain.ClassStartup, err)
			}

			conn, err := net.Dial("tcp", addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			cl := handshake.NewClient(conn, handshake.Config{
				Identity:     id,
				ExpectedPeer: peer,
				Logger:       appCtx.Log,
			})
			plaintext, err := cl.Run()
			if err != nil {
				appCtx.Log.Error().
					Stringer("class", domain.ClassOf(err)).
					Stringer("state", cl.State()).
					Err(err).Msg("connection aborted")
				return err
			}

			if out == "" {
				_, err = os.Stdout.Write(plaintext)
				return err
			}
			if err := os.WriteFile(out, plaintext, 0o600); err != nil {
				return err
			}
			fmt.Printf("Received %d bytes into %s.\n", len(plaintext), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:4433", "server address")
	cmd.Flags().StringVar(&peer, "peer", "", "expected server common name")
	cmd.Flags().StringVar(&out, "out", "", "write the received file here (default stdout)")
	return cmd
}
