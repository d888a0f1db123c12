package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var getOutputPath string

var getCmd = &cobra.Command{
	Use:   "get [remote]",
	Short: "Download an object",
	Long: `Downloads an object and writes its raw content to stdout, or to a
file when --output is given.`,
	Example: `  ugcs --service-account-file sa.json get gs://my-bucket/path/file.bin > file.bin
  ugcs --service-account-file sa.json get -o file.bin gs://my-bucket/path/file.bin`,
	Args: cobra.ExactArgs(1),
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

		data, err := b.Get(cmd.Context(), object)
		if err != nil {
			return err
		}

		if getOutputPath == "" {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(getOutputPath, data, 0644); err != nil {
			return fmt.Errorf("writing output file '%s': %w", getOutputPath, err)
		}
		log.Info().Msgf("%s downloaded gs://%s/%s to %s", greenCheck, bucketName, object, getOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOutputPath, "output", "o", "",
		"Write the object content to this file instead of stdout")
}
