package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm [remote]",
	Aliases: []string{"delete"},
	Short:   "Delete an object",
	Example: `  ugcs --service-account-file sa.json rm gs://my-bucket/path/file.bin`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucketName, object, err := parseRemote(args[0])
		if err != nil {
			return err
		}
		if object == "" {
			return fmt.Errorf("remote '%s' is missing an object path", args[0])
		}

		b, err := f.Bucket(bucketName)
		if err != nil {
			return err
		}

		if err := b.Delete(cmd.Context(), object); err != nil {
			log.Error().Msgf("%s failed to delete gs://%s/%s", redCross, bucketName, object)
			return err
		}

		log.Info().Msgf("%s deleted gs://%s/%s", greenCheck, bucketName, object)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
