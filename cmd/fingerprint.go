package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afrantzis/ugcs/pkg/tokencache"
)

var fingerprintRaw bool

var fingerprintCmd = &cobra.Command{
	Use:     "fingerprint",
	Aliases: []string{"fp"},
	Short:   "Show the token cache key for the service account",
	Long: `Shows the fingerprint that identifies the configured service
account's token cache entry, and the file it is stored in. The
fingerprint covers issuer, audience and scope: identities targeting
the same account with the same scope share a cache entry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.Config()
		if err != nil {
			return err
		}

		identity, err := f.Identity()
		if err != nil {
			return err
		}

		fp := tokencache.Fingerprint(identity.ClientEmail, identity.TokenURI, cfg.Auth.Scope)

		if fingerprintRaw {
			fmt.Println(fp)
			return nil
		}

		store, err := tokencache.NewFileStore(cfg.Auth.CacheDir)
		if err != nil {
			return err
		}

		fmt.Println("Account:    ", identity.ClientEmail)
		fmt.Println("Fingerprint:", fp)
		fmt.Println("Cache File: ", store.Path(fp))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)

	fingerprintCmd.Flags().BoolVarP(&fingerprintRaw, "raw", "r", false,
		"Output only the fingerprint value without additional text")
}
