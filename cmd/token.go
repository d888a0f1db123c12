package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tokenRaw bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Obtain an access token for the service account",
	Long: `Obtains a currently-valid access token for the configured service
account, going through the same cache the storage commands use. Useful
for debugging or for passing a token to other tooling.`,
	Example: `  # Use the token with curl
  curl -H "Authorization: Bearer $(ugcs --service-account-file sa.json token --raw)" ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := f.TokenProvider()
		if err != nil {
			return err
		}

		token, err := provider.Token(cmd.Context())
		if err != nil {
			return err
		}

		if tokenRaw {
			fmt.Println(token.AccessToken)
			return nil
		}

		fmt.Println("Token Type:", token.TokenType)
		fmt.Println("Expires At:", token.ExpiresAt.Format(time.RFC3339),
			color.New(color.Faint).Sprintf("(in %s)", time.Until(token.ExpiresAt).Round(time.Second)))
		fmt.Println("Token:     ", token.AccessToken)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().BoolVarP(&tokenRaw, "raw", "r", false,
		"Output only the token value without additional text")
}
