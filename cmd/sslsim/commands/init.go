package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var (
		name string
		days int
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate an identity keypair and certificate, stored encrypted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			ttl := time.Duration(days) * 24 * time.Hour
			_, fp, err := appCtx.Identity.Generate(passphrase, name, ttl)
			if err != nil {
				return err
			}
			fmt.Printf("Identity created for %q.\nFingerprint: %s\n", name, fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "certificate common name")
	cmd.Flags().IntVar(&days, "days", 365, "certificate validity in days")
	return cmd
}
