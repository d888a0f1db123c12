package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:     "stat [remote]",
	Aliases: []string{"get-metadata"},
	Short:   "Show metadata for an object",
	Example: `  ugcs --service-account-file sa.json stat gs://my-bucket/path/file.bin`,
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

		metadata, err := b.Metadata(cmd.Context(), object)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(metadata)
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
}
