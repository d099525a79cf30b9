package commands

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"sslsim/internal/domain"
	"sslsim/internal/protocol/handshake"
)

func serveCmd() *cobra.Command {
	var (
		listen string
		peer   string
		file   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept one connection and deliver a file over the protected channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := appCtx.Identity.Load(passphrase)
			if err != nil {
				return domain.FailWith(domain.ClassStartup, err)
			}
			payload, err := os.ReadFile(file)
			if err != nil {
				return domain.FailWith(domain.ClassStartup, err)
			}

			ln, err := net.Listen("tcp", listen)
			if err != nil {
				return err
			}
			defer ln.Close()
			appCtx.Log.Info().Str("addr", ln.Addr().String()).Msg("listening")

			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			defer conn.Close()

			srv := handshake.NewServer(conn, handshake.Config{
				Identity:     id,
				ExpectedPeer: peer,
				Logger:       appCtx.Log,
			})
			if err := srv.Run(payload); err != nil {
				appCtx.Log.Error().
					Stringer("class", domain.ClassOf(err)).
					Stringer("state", srv.State()).
					Err(err).Msg("connection aborted")
				return err
			}
			fmt.Printf("Delivered %d bytes to %s.\n", len(payload), conn.RemoteAddr())
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:4433", "address to listen on")
	cmd.Flags().StringVar(&peer, "peer", "", "expected client common name")
	cmd.Flags().StringVar(&file, "file", "", "file to deliver after the handshake")
	return cmd
}
